package platform

// Capacity limits for text fields. Values read from the OS are clipped to
// these lengths so a payload can never grow without bound, no matter what a
// window manager or input source reports.
const (
	MaxTitleLen       = 512
	MaxProcessNameLen = 256
	MaxBundleIDLen    = 256
	MaxLayoutLen      = 64
	MaxInputSourceLen = 128
)

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// WindowInfo describes the currently active (focused) top-level window.
// Text fields are length-bounded; Truncated reports whether any of them
// was clipped to its capacity.
type WindowInfo struct {
	Title       string
	ProcessName string
	ProcessID   int
	BundleID    string
	WindowID    uint64
	Bounds      Rect
	IsFocused   bool
	Workspace   int
	Truncated   bool
}

// ModifierState holds the keyboard modifier keys. Every combination is
// valid; Command maps to Super/Mod4 on non-Apple platforms.
type ModifierState struct {
	Shift    bool
	Control  bool
	Alt      bool
	Command  bool
	CapsLock bool
}

// KeyboardState describes the keyboard configuration and live modifier
// state. RepeatRate and RepeatDelay are in seconds and non-negative.
type KeyboardState struct {
	Modifiers   ModifierState
	Layout      string
	InputSource string
	RepeatRate  float64
	RepeatDelay float64
}

// ButtonState holds the mouse button states.
type ButtonState struct {
	Left   bool
	Right  bool
	Middle bool
}

// MouseState describes the pointer position and button state. X and Y may
// be negative on multi-monitor setups whose origin is not at (0,0). Screen
// is an index into the screen list of the SystemInfo captured at the same
// time. Pressure is always defined; devices without pressure sensing
// report 1.0.
type MouseState struct {
	X        int
	Y        int
	Screen   int
	Pressure float64
	Buttons  ButtonState
}

// ScreenInfo describes one attached display. Scale is the pixel density
// factor and is always > 0.
type ScreenInfo struct {
	ID        int
	Bounds    Rect
	Scale     float64
	IsPrimary bool
}

// SystemInfo is a complete snapshot of the host configuration. Invariants:
// CPUCount > 0, MemoryAvailable <= MemoryTotal, and exactly one screen has
// IsPrimary set when Screens is non-empty.
type SystemInfo struct {
	Platform               string
	OSVersion              string
	Architecture           string
	CPUCount               int
	MemoryTotal            uint64
	MemoryAvailable        uint64
	Screens                []ScreenInfo
	AccessibilityEnabled   bool
	ScreenRecordingEnabled bool
}

// PermissionStatus reports the monitoring-related permission grants at
// query time. Grants can change out-of-band, so callers must re-query
// rather than cache.
type PermissionStatus struct {
	Accessibility   bool
	ScreenRecording bool
	InputMonitoring bool
}

// IdleState describes user presence. IdleSeconds is how long the host has
// gone without input; IsLocked reports whether the session is locked.
type IdleState struct {
	IsIdle      bool
	IsLocked    bool
	IdleSeconds int64
}

// bound clips s to max bytes and reports whether clipping happened.
func bound(s string, max int) (string, bool) {
	if len(s) <= max {
		return s, false
	}
	return s[:max], true
}
