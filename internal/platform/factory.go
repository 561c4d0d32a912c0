package platform

import "time"

// Backend selection names accepted in configuration.
const (
	BackendAuto     = "auto"
	BackendX11      = "x11"
	BackendFallback = "fallback"
)

// Options is the single configuration point for backend selection.
type Options struct {
	// Backend selects the implementation: auto, x11 or fallback.
	Backend string

	// Display overrides the X display to connect to (X11 backend only).
	Display string

	// IdleThreshold is how long without input counts as idle.
	IdleThreshold time.Duration

	// Seed seeds the fallback backend's synthetic input source; zero
	// selects the current time.
	Seed int64
}

func (o Options) seed() int64 {
	if o.Seed != 0 {
		return o.Seed
	}
	return time.Now().UnixNano()
}
