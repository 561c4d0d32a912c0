package wire

import "github.com/selfspy/hostmon/internal/platform"

// Converters from platform snapshots to wire maps. Key order is part of
// the contract and must not change between releases.

func rectMap(r platform.Rect) *Map {
	return NewMap().
		Set("x", r.X).
		Set("y", r.Y).
		Set("width", r.Width).
		Set("height", r.Height)
}

// WindowInfoMap encodes an active window snapshot.
func WindowInfoMap(w platform.WindowInfo) *Map {
	return NewMap().
		Set("title", w.Title).
		Set("process_name", w.ProcessName).
		Set("process_id", w.ProcessID).
		Set("bundle_id", w.BundleID).
		Set("window_id", w.WindowID).
		Set("bounds", rectMap(w.Bounds)).
		Set("is_focused", Flag(w.IsFocused)).
		Set("workspace", w.Workspace).
		Set("truncated", Flag(w.Truncated))
}

// KeyboardStateMap encodes a keyboard snapshot.
func KeyboardStateMap(k platform.KeyboardState) *Map {
	modifiers := NewMap().
		Set("shift", Flag(k.Modifiers.Shift)).
		Set("control", Flag(k.Modifiers.Control)).
		Set("alt", Flag(k.Modifiers.Alt)).
		Set("command", Flag(k.Modifiers.Command)).
		Set("caps_lock", Flag(k.Modifiers.CapsLock))

	return NewMap().
		Set("modifiers", modifiers).
		Set("layout", k.Layout).
		Set("input_source", k.InputSource).
		Set("repeat_rate", k.RepeatRate).
		Set("repeat_delay", k.RepeatDelay)
}

// MouseStateMap encodes a pointer snapshot.
func MouseStateMap(m platform.MouseState) *Map {
	buttons := NewMap().
		Set("left", Flag(m.Buttons.Left)).
		Set("right", Flag(m.Buttons.Right)).
		Set("middle", Flag(m.Buttons.Middle))

	return NewMap().
		Set("x", m.X).
		Set("y", m.Y).
		Set("screen", m.Screen).
		Set("pressure", m.Pressure).
		Set("button_state", buttons)
}

func screenMap(s platform.ScreenInfo) *Map {
	return NewMap().
		Set("id", s.ID).
		Set("bounds", rectMap(s.Bounds)).
		Set("scale", s.Scale).
		Set("is_primary", Flag(s.IsPrimary))
}

// SystemInfoMap encodes a host configuration snapshot.
func SystemInfoMap(s platform.SystemInfo) *Map {
	screens := make([]any, len(s.Screens))
	for i, screen := range s.Screens {
		screens[i] = screenMap(screen)
	}

	return NewMap().
		Set("platform", s.Platform).
		Set("os_version", s.OSVersion).
		Set("architecture", s.Architecture).
		Set("cpu_count", s.CPUCount).
		Set("memory_total", s.MemoryTotal).
		Set("memory_available", s.MemoryAvailable).
		Set("screen_count", len(s.Screens)).
		Set("screens", screens).
		Set("accessibility_enabled", Flag(s.AccessibilityEnabled)).
		Set("screen_recording_enabled", Flag(s.ScreenRecordingEnabled))
}

// PermissionsMap encodes a permission check.
func PermissionsMap(p platform.PermissionStatus) *Map {
	return NewMap().
		Set("accessibility", Grant(p.Accessibility)).
		Set("screen_recording", Grant(p.ScreenRecording)).
		Set("input_monitoring", Grant(p.InputMonitoring))
}

// IdleStateMap encodes an idle and lock snapshot.
func IdleStateMap(i platform.IdleState) *Map {
	return NewMap().
		Set("is_idle", Flag(i.IsIdle)).
		Set("is_locked", Flag(i.IsLocked)).
		Set("idle_seconds", i.IdleSeconds)
}

// IDMap wraps a hotkey registration identifier.
func IDMap(id int64) *Map {
	return NewMap().Set("id", id)
}

// HandleMap wraps a monitoring session handle.
func HandleMap(handle int64) *Map {
	return NewMap().Set("handle", handle)
}
