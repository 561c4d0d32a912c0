package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/selfspy/hostmon/internal/wire"
)

// Outcome data maps hold the native Go values the converters put there;
// these helpers pull them back out for the typed tool outputs.

func mapStr(m *wire.Map, key string) string {
	v, _ := m.Get(key)
	s, _ := v.(string)
	return s
}

func mapInt(m *wire.Map, key string) int {
	v, _ := m.Get(key)
	n, _ := v.(int)
	return n
}

func mapI64(m *wire.Map, key string) int64 {
	v, _ := m.Get(key)
	n, _ := v.(int64)
	return n
}

func mapU64(m *wire.Map, key string) uint64 {
	v, _ := m.Get(key)
	n, _ := v.(uint64)
	return n
}

func mapF64(m *wire.Map, key string) float64 {
	v, _ := m.Get(key)
	f, _ := v.(float64)
	return f
}

func mapFlag(m *wire.Map, key string) bool {
	return mapStr(m, key) == "true"
}

func mapNested(m *wire.Map, key string) *wire.Map {
	v, _ := m.Get(key)
	nested, _ := v.(*wire.Map)
	if nested == nil {
		nested = wire.NewMap()
	}
	return nested
}

func boundsOutput(m *wire.Map) BoundsOutput {
	return BoundsOutput{
		X:      mapInt(m, "x"),
		Y:      mapInt(m, "y"),
		Width:  mapInt(m, "width"),
		Height: mapInt(m, "height"),
	}
}

// outcomeErr converts an error-tagged outcome into a tool error.
func outcomeErr(out wire.Outcome) error {
	return fmt.Errorf("operation failed: %s", out.Error)
}

func (s *Server) handleGetWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetWindowInput) (*mcpsdk.CallToolResult, GetWindowOutput, error) {
	out := s.service.ActiveWindow()
	if !out.IsOK() {
		return nil, GetWindowOutput{}, outcomeErr(out)
	}

	d := out.Data
	return nil, GetWindowOutput{
		Title:       mapStr(d, "title"),
		ProcessName: mapStr(d, "process_name"),
		ProcessID:   mapInt(d, "process_id"),
		BundleID:    mapStr(d, "bundle_id"),
		WindowID:    mapU64(d, "window_id"),
		Bounds:      boundsOutput(mapNested(d, "bounds")),
		IsFocused:   mapFlag(d, "is_focused"),
		Workspace:   mapInt(d, "workspace"),
		Truncated:   mapFlag(d, "truncated"),
	}, nil
}

func (s *Server) handleGetKeyboard(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetKeyboardInput) (*mcpsdk.CallToolResult, GetKeyboardOutput, error) {
	out := s.service.KeyboardState()
	if !out.IsOK() {
		return nil, GetKeyboardOutput{}, outcomeErr(out)
	}

	d := out.Data
	mods := mapNested(d, "modifiers")
	return nil, GetKeyboardOutput{
		Shift:       mapFlag(mods, "shift"),
		Control:     mapFlag(mods, "control"),
		Alt:         mapFlag(mods, "alt"),
		Command:     mapFlag(mods, "command"),
		CapsLock:    mapFlag(mods, "caps_lock"),
		Layout:      mapStr(d, "layout"),
		InputSource: mapStr(d, "input_source"),
		RepeatRate:  mapF64(d, "repeat_rate"),
		RepeatDelay: mapF64(d, "repeat_delay"),
	}, nil
}

func (s *Server) handleGetMouse(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetMouseInput) (*mcpsdk.CallToolResult, GetMouseOutput, error) {
	out := s.service.MousePosition()
	if !out.IsOK() {
		return nil, GetMouseOutput{}, outcomeErr(out)
	}

	d := out.Data
	buttons := mapNested(d, "button_state")
	return nil, GetMouseOutput{
		X:        mapInt(d, "x"),
		Y:        mapInt(d, "y"),
		Screen:   mapInt(d, "screen"),
		Pressure: mapF64(d, "pressure"),
		Left:     mapFlag(buttons, "left"),
		Right:    mapFlag(buttons, "right"),
		Middle:   mapFlag(buttons, "middle"),
	}, nil
}

func (s *Server) handleGetSystem(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetSystemInput) (*mcpsdk.CallToolResult, GetSystemOutput, error) {
	out := s.service.SystemInfo()
	if !out.IsOK() {
		return nil, GetSystemOutput{}, outcomeErr(out)
	}

	d := out.Data
	screensVal, _ := d.Get("screens")
	screensList, _ := screensVal.([]any)
	screens := make([]ScreenOutput, 0, len(screensList))
	for _, entry := range screensList {
		sm, ok := entry.(*wire.Map)
		if !ok {
			continue
		}
		screens = append(screens, ScreenOutput{
			ID:        mapInt(sm, "id"),
			Bounds:    boundsOutput(mapNested(sm, "bounds")),
			Scale:     mapF64(sm, "scale"),
			IsPrimary: mapFlag(sm, "is_primary"),
		})
	}

	return nil, GetSystemOutput{
		Platform:               mapStr(d, "platform"),
		OSVersion:              mapStr(d, "os_version"),
		Architecture:           mapStr(d, "architecture"),
		CPUCount:               mapInt(d, "cpu_count"),
		MemoryTotal:            mapU64(d, "memory_total"),
		MemoryAvailable:        mapU64(d, "memory_available"),
		ScreenCount:            mapInt(d, "screen_count"),
		Screens:                screens,
		AccessibilityEnabled:   mapFlag(d, "accessibility_enabled"),
		ScreenRecordingEnabled: mapFlag(d, "screen_recording_enabled"),
	}, nil
}

func (s *Server) handleCheckPermissions(_ context.Context, _ *mcpsdk.CallToolRequest, _ CheckPermissionsInput) (*mcpsdk.CallToolResult, CheckPermissionsOutput, error) {
	out := s.service.CheckPermissions()
	if !out.IsOK() {
		return nil, CheckPermissionsOutput{}, outcomeErr(out)
	}

	d := out.Data
	return nil, CheckPermissionsOutput{
		Accessibility:   mapStr(d, "accessibility"),
		ScreenRecording: mapStr(d, "screen_recording"),
		InputMonitoring: mapStr(d, "input_monitoring"),
	}, nil
}

func (s *Server) handleGetIdle(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetIdleInput) (*mcpsdk.CallToolResult, GetIdleOutput, error) {
	out := s.service.IdleState()
	if !out.IsOK() {
		return nil, GetIdleOutput{}, outcomeErr(out)
	}

	d := out.Data
	return nil, GetIdleOutput{
		IsIdle:      mapFlag(d, "is_idle"),
		IsLocked:    mapFlag(d, "is_locked"),
		IdleSeconds: mapI64(d, "idle_seconds"),
	}, nil
}

func (s *Server) handleSetHotkey(_ context.Context, _ *mcpsdk.CallToolRequest, args SetHotkeyInput) (*mcpsdk.CallToolResult, SetHotkeyOutput, error) {
	if args.Keycode <= 0 {
		return nil, SetHotkeyOutput{}, fmt.Errorf("keycode must be positive, got %d", args.Keycode)
	}

	out := s.service.SetGlobalHotkey(args.Modifiers, args.Keycode)
	if !out.IsOK() {
		return nil, SetHotkeyOutput{}, outcomeErr(out)
	}
	return nil, SetHotkeyOutput{ID: mapI64(out.Data, "id")}, nil
}

func (s *Server) handleRemoveHotkey(_ context.Context, _ *mcpsdk.CallToolRequest, args RemoveHotkeyInput) (*mcpsdk.CallToolResult, RemoveHotkeyOutput, error) {
	out := s.service.RemoveGlobalHotkey(args.ID)
	if !out.IsOK() {
		return nil, RemoveHotkeyOutput{}, outcomeErr(out)
	}
	return nil, RemoveHotkeyOutput{Removed: true}, nil
}

func (s *Server) handleStartMonitoring(_ context.Context, _ *mcpsdk.CallToolRequest, _ StartMonitoringInput) (*mcpsdk.CallToolResult, StartMonitoringOutput, error) {
	out := s.service.StartMonitoring()
	if !out.IsOK() {
		return nil, StartMonitoringOutput{}, outcomeErr(out)
	}
	return nil, StartMonitoringOutput{Handle: mapI64(out.Data, "handle")}, nil
}

func (s *Server) handleStopMonitoring(_ context.Context, _ *mcpsdk.CallToolRequest, args StopMonitoringInput) (*mcpsdk.CallToolResult, StopMonitoringOutput, error) {
	out := s.service.StopMonitoring(args.Handle)
	if !out.IsOK() {
		return nil, StopMonitoringOutput{}, outcomeErr(out)
	}
	return nil, StopMonitoringOutput{Stopped: true}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	out := s.service.Status()
	if !out.IsOK() {
		return nil, GetStatusOutput{}, outcomeErr(out)
	}

	d := out.Data
	return nil, GetStatusOutput{
		Backend:       mapStr(d, "backend"),
		UptimeSeconds: mapI64(d, "uptime_seconds"),
		Monitoring:    mapFlag(d, "monitoring"),
		HotkeyCount:   mapInt(d, "hotkey_count"),
	}, nil
}
