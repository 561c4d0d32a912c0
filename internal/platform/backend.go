package platform

import "errors"

// ErrInitFailed reports that a backend could not bring up its native
// resources. Stateless queries may still be attempted afterwards.
var ErrInitFailed = errors.New("backend initialization failed")

// ErrNotImplemented reports a capability with no real OS integration on
// the active backend. It is always surfaced, never silently swallowed.
var ErrNotImplemented = errors.New("not implemented")

// Backend abstracts host telemetry queries across platforms. Query methods
// are synchronous and side-effect-free; each returns a complete value or
// an error, never a partial result. Unavailable data is represented by
// the documented per-field defaults, not by omission.
type Backend interface {
	// Name identifies the backend ("x11", "fallback", ...).
	Name() string

	// Initialize brings up native resources. Idempotent: a second call
	// when already initialized is a no-op success.
	Initialize() error

	// Shutdown releases all native resources, including any active
	// monitoring hooks. Idempotent and best-effort; it never fails.
	Shutdown()

	ActiveWindow() (WindowInfo, error)
	KeyboardState() (KeyboardState, error)
	MouseState() (MouseState, error)
	SystemInfo() (SystemInfo, error)
	IdleState() (IdleState, error)

	// CheckPermissions never fails. Platforms without a real permission
	// API resolve to conservative defaults (all denied).
	CheckPermissions() PermissionStatus

	// Permission requests are fire-and-forget triggers for an OS consent
	// flow; callers observe the outcome by re-querying CheckPermissions.
	RequestAccessibilityPermission() error
	RequestScreenRecordingPermission() error
}

// EventMonitor is implemented by backends that own a real OS-level event
// delivery resource (an event tap or input hook). The session manager
// drives it; backends without one are tolerated as bookkeeping-only.
type EventMonitor interface {
	StartMonitoring() error
	StopMonitoring() error
}

// HotkeyRegistrar is implemented by backends that can register hotkey
// combinations with the OS. The hotkey registry rolls its entry back when
// a grab fails, so registry and OS state never diverge.
type HotkeyRegistrar interface {
	GrabHotkey(modifiers int, keycode int) error
	UngrabHotkey(modifiers int, keycode int) error
}
