//go:build linux

package platform

import (
	"fmt"
	"os"
)

// New selects and constructs the backend for this host. With BackendAuto
// the X11 backend is chosen whenever a display looks reachable, otherwise
// the fallback backend serves synthesized telemetry.
func New(opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendX11:
		return NewX11Backend(opts.Display, opts.IdleThreshold), nil
	case BackendFallback:
		return NewFallbackBackend(opts.seed()), nil
	case BackendAuto, "":
		if opts.Display != "" || os.Getenv("DISPLAY") != "" {
			return NewX11Backend(opts.Display, opts.IdleThreshold), nil
		}
		return NewFallbackBackend(opts.seed()), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Backend)
	}
}
