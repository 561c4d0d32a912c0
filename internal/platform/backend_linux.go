//go:build linux

package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/godbus/dbus/v5"

	"github.com/selfspy/hostmon/internal/x11"
)

const defaultIdleThreshold = 5 * time.Minute

// X11Backend answers telemetry queries against a live X display. It is
// safe for concurrent use; the X connection is created lazily so stateless
// queries keep working even when Initialize was never called.
type X11Backend struct {
	mu            sync.Mutex
	conn          *x11.Connection
	dbusConn      *dbus.Conn
	display       string
	idleThreshold time.Duration
}

var (
	_ Backend         = (*X11Backend)(nil)
	_ HotkeyRegistrar = (*X11Backend)(nil)
)

// NewX11Backend creates an X11 backend. The display may be empty to use
// the environment; idleThreshold <= 0 selects the default of 5 minutes.
func NewX11Backend(display string, idleThreshold time.Duration) *X11Backend {
	if idleThreshold <= 0 {
		idleThreshold = defaultIdleThreshold
	}
	return &X11Backend{display: display, idleThreshold: idleThreshold}
}

// Name identifies the backend.
func (b *X11Backend) Name() string { return "x11" }

// Initialize opens the X connection. Idempotent.
func (b *X11Backend) Initialize() error {
	_, err := b.connection()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitFailed, err)
	}
	return nil
}

// Shutdown closes the X and session-bus connections. Idempotent; grabs
// held on the X connection are released by the server on disconnect.
func (b *X11Backend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	if b.dbusConn != nil {
		b.dbusConn.Close()
		b.dbusConn = nil
	}
}

func (b *X11Backend) connection() (*x11.Connection, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		return b.conn, nil
	}
	conn, err := x11.NewConnectionDisplay(b.display)
	if err != nil {
		return nil, err
	}
	b.conn = conn
	return conn, nil
}

// ActiveWindow returns the focused window's metadata and geometry.
func (b *X11Backend) ActiveWindow() (WindowInfo, error) {
	conn, err := b.connection()
	if err != nil {
		return WindowInfo{}, err
	}

	win, err := conn.GetActiveWindow()
	if err != nil {
		return WindowInfo{}, err
	}

	title, t1 := bound(win.Title, MaxTitleLen)
	process, t2 := bound(processName(win.PID, win.Class), MaxProcessNameLen)
	// X11 has no bundle identifiers; a reverse-DNS tag is synthesized from
	// the WM_CLASS so the field is never missing.
	bundle, t3 := bound(classBundleID(win.Class), MaxBundleIDLen)

	return WindowInfo{
		Title:       title,
		ProcessName: process,
		ProcessID:   win.PID,
		BundleID:    bundle,
		WindowID:    uint64(win.ID),
		Bounds:      Rect{X: win.X, Y: win.Y, Width: win.Width, Height: win.Height},
		IsFocused:   true,
		Workspace:   win.Desktop,
		Truncated:   t1 || t2 || t3,
	}, nil
}

// KeyboardState reads the live modifier mask from the server. X exposes no
// portable auto-repeat rate query, so the documented defaults are used.
func (b *X11Backend) KeyboardState() (KeyboardState, error) {
	conn, err := b.connection()
	if err != nil {
		return KeyboardState{}, err
	}

	ptr, err := conn.QueryPointer()
	if err != nil {
		return KeyboardState{}, err
	}

	layout, source := keyboardIdentity()
	return KeyboardState{
		Modifiers: ModifierState{
			Shift:    ptr.Shift,
			Control:  ptr.Control,
			Alt:      ptr.Alt,
			Command:  ptr.Super,
			CapsLock: ptr.CapsLock,
		},
		Layout:      layout,
		InputSource: source,
		RepeatRate:  defaultRepeatRate,
		RepeatDelay: defaultRepeatDelay,
	}, nil
}

// MouseState reads the pointer position and button state, resolving the
// screen index against the current RandR layout.
func (b *X11Backend) MouseState() (MouseState, error) {
	conn, err := b.connection()
	if err != nil {
		return MouseState{}, err
	}

	ptr, err := conn.QueryPointer()
	if err != nil {
		return MouseState{}, err
	}

	screens, err := conn.GetScreens()
	if err != nil {
		return MouseState{}, err
	}

	return MouseState{
		X:        ptr.X,
		Y:        ptr.Y,
		Screen:   x11.ScreenAt(screens, ptr.X, ptr.Y),
		Pressure: 1.0,
		Buttons: ButtonState{
			Left:   ptr.Left,
			Right:  ptr.Right,
			Middle: ptr.Middle,
		},
	}, nil
}

// SystemInfo assembles the host snapshot from the kernel and RandR.
func (b *X11Backend) SystemInfo() (SystemInfo, error) {
	conn, err := b.connection()
	if err != nil {
		return SystemInfo{}, err
	}

	xscreens, err := conn.GetScreens()
	if err != nil {
		return SystemInfo{}, err
	}

	screens := make([]ScreenInfo, 0, len(xscreens))
	for _, s := range xscreens {
		screens = append(screens, ScreenInfo{
			ID:        s.ID,
			Bounds:    Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height},
			Scale:     s.Scale,
			IsPrimary: s.Primary,
		})
	}

	cpus := runtime.NumCPU()
	if cpus < 1 {
		cpus = 1
	}

	total, avail, err := probeMemory()
	if err != nil || total == 0 {
		total, avail = defaultMemoryTotal, defaultMemoryAvailable
	}
	if avail > total {
		avail = total
	}

	perms := b.CheckPermissions()
	return SystemInfo{
		Platform:               "linux",
		OSVersion:              osVersion(),
		Architecture:           runtime.GOARCH,
		CPUCount:               cpus,
		MemoryTotal:            total,
		MemoryAvailable:        avail,
		Screens:                screens,
		AccessibilityEnabled:   perms.Accessibility,
		ScreenRecordingEnabled: perms.ScreenRecording,
	}, nil
}

// IdleState queries the freedesktop ScreenSaver service over the session
// bus. Desktops without the service report an active, unlocked session.
func (b *X11Backend) IdleState() (IdleState, error) {
	bus, err := b.sessionBus()
	if err != nil {
		return IdleState{}, nil
	}

	obj := bus.Object("org.freedesktop.ScreenSaver", "/org/freedesktop/ScreenSaver")

	var idleSecs uint32
	if err := obj.Call("org.freedesktop.ScreenSaver.GetSessionIdleTime", 0).Store(&idleSecs); err != nil {
		idleSecs = 0
	}

	var locked bool
	if err := obj.Call("org.freedesktop.ScreenSaver.GetActive", 0).Store(&locked); err != nil {
		locked = false
	}

	return IdleState{
		IsIdle:      time.Duration(idleSecs)*time.Second >= b.idleThreshold,
		IsLocked:    locked,
		IdleSeconds: int64(idleSecs),
	}, nil
}

func (b *X11Backend) sessionBus() (*dbus.Conn, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dbusConn != nil {
		return b.dbusConn, nil
	}
	bus, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	b.dbusConn = bus
	return bus, nil
}

// CheckPermissions re-derives grants on every call; they can change
// out-of-band while the process runs. Under X11, window introspection and
// screen capture are implicitly allowed once the display is reachable;
// input monitoring requires readable raw input devices.
func (b *X11Backend) CheckPermissions() PermissionStatus {
	_, err := b.connection()
	displayOK := err == nil
	return PermissionStatus{
		Accessibility:   displayOK,
		ScreenRecording: displayOK,
		InputMonitoring: inputMonitoringAllowed(),
	}
}

// RequestAccessibilityPermission is a no-op trigger: X11 has no consent
// flow, access follows from the display connection itself.
func (b *X11Backend) RequestAccessibilityPermission() error { return nil }

// RequestScreenRecordingPermission pokes the XDG desktop portal when one
// is running. Capture under plain X11 needs no consent, so portal errors
// are not surfaced; callers observe the grant via CheckPermissions.
func (b *X11Backend) RequestScreenRecordingPermission() error {
	bus, err := b.sessionBus()
	if err != nil {
		return nil
	}
	obj := bus.Object("org.freedesktop.portal.Desktop", "/org/freedesktop/portal/desktop")
	_, _ = obj.GetProperty("org.freedesktop.portal.ScreenCast.version")
	return nil
}

// GrabHotkey registers the combination with the X server.
func (b *X11Backend) GrabHotkey(modifiers int, keycode int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	kc, err := x11Keycode(keycode)
	if err != nil {
		return err
	}
	return conn.GrabKey(x11Modifiers(modifiers), kc)
}

// UngrabHotkey releases a previously grabbed combination.
func (b *X11Backend) UngrabHotkey(modifiers int, keycode int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	kc, err := x11Keycode(keycode)
	if err != nil {
		return err
	}
	return conn.UngrabKey(x11Modifiers(modifiers), kc)
}

func x11Modifiers(modifiers int) uint16 {
	var mask uint16
	if modifiers&ModShift != 0 {
		mask |= xproto.ModMaskShift
	}
	if modifiers&ModControl != 0 {
		mask |= xproto.ModMaskControl
	}
	if modifiers&ModAlt != 0 {
		mask |= xproto.ModMask1
	}
	if modifiers&ModCommand != 0 {
		mask |= xproto.ModMask4
	}
	return mask
}

func x11Keycode(keycode int) (byte, error) {
	if keycode < 1 || keycode > 255 {
		return 0, fmt.Errorf("keycode %d outside X11 range 1-255", keycode)
	}
	return byte(keycode), nil
}

// processName resolves the executable name for a PID from procfs, falling
// back to the window class when the process is gone or unreadable.
func processName(pid int, class string) string {
	if pid > 0 {
		if data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid)); err == nil {
			if name := strings.TrimSpace(string(data)); name != "" {
				return name
			}
		}
	}
	return class
}

func classBundleID(class string) string {
	class = strings.ToLower(strings.TrimSpace(class))
	if class == "" {
		return ""
	}
	return "org.x11." + class
}
