//go:build !linux

package platform

import "fmt"

// New constructs the backend for platforms without a native integration.
// Only the fallback backend is available; requesting x11 is an error
// rather than a silent substitution.
func New(opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendAuto, BackendFallback, "":
		return NewFallbackBackend(opts.seed()), nil
	default:
		return nil, fmt.Errorf("backend %q is not available on this platform", opts.Backend)
	}
}
