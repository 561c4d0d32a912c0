package mcp

import (
	"context"
	"testing"

	"github.com/selfspy/hostmon/internal/monitor"
	"github.com/selfspy/hostmon/internal/platform"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := monitor.NewService(platform.NewFallbackBackend(1), nil)
	t.Cleanup(svc.Close)
	return NewServer(svc)
}

func TestGetWindowTool(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.handleGetWindow(context.Background(), nil, GetWindowInput{})
	if err != nil {
		t.Fatalf("get_active_window failed: %v", err)
	}
	if out.Title == "" {
		t.Error("expected a non-empty title")
	}
	if out.ProcessID <= 0 {
		t.Errorf("expected positive process id, got %d", out.ProcessID)
	}
	if !out.IsFocused {
		t.Error("active window should report focused")
	}
	if out.Bounds.Width <= 0 || out.Bounds.Height <= 0 {
		t.Errorf("degenerate bounds: %+v", out.Bounds)
	}
}

func TestGetSystemTool(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.handleGetSystem(context.Background(), nil, GetSystemInput{})
	if err != nil {
		t.Fatalf("get_system_info failed: %v", err)
	}
	if out.CPUCount < 1 {
		t.Errorf("expected cpu_count >= 1, got %d", out.CPUCount)
	}
	if out.MemoryAvailable > out.MemoryTotal {
		t.Errorf("available %d exceeds total %d", out.MemoryAvailable, out.MemoryTotal)
	}
	if out.ScreenCount != len(out.Screens) {
		t.Errorf("screen_count %d disagrees with %d screens", out.ScreenCount, len(out.Screens))
	}
	primaries := 0
	for _, screen := range out.Screens {
		if screen.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		t.Errorf("expected exactly one primary screen, got %d", primaries)
	}
}

func TestCheckPermissionsTool(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.handleCheckPermissions(context.Background(), nil, CheckPermissionsInput{})
	if err != nil {
		t.Fatalf("check_permissions failed: %v", err)
	}
	for name, grant := range map[string]string{
		"accessibility":    out.Accessibility,
		"screen_recording": out.ScreenRecording,
		"input_monitoring": out.InputMonitoring,
	} {
		if grant != "granted" && grant != "denied" {
			t.Errorf("%s: unexpected grant value %q", name, grant)
		}
	}
}

func TestHotkeyTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	if _, _, err := s.handleSetHotkey(ctx, nil, SetHotkeyInput{Modifiers: 1}); err == nil {
		t.Error("expected error for missing keycode")
	}

	_, set, err := s.handleSetHotkey(ctx, nil, SetHotkeyInput{Modifiers: 3, Keycode: 38})
	if err != nil {
		t.Fatalf("set_hotkey failed: %v", err)
	}
	if set.ID <= 0 {
		t.Fatalf("expected positive id, got %d", set.ID)
	}

	_, rm, err := s.handleRemoveHotkey(ctx, nil, RemoveHotkeyInput{ID: set.ID})
	if err != nil {
		t.Fatalf("remove_hotkey failed: %v", err)
	}
	if !rm.Removed {
		t.Error("remove_hotkey reported not removed")
	}

	if _, _, err := s.handleRemoveHotkey(ctx, nil, RemoveHotkeyInput{ID: set.ID}); err == nil {
		t.Error("expected error for unknown hotkey id")
	}
}

func TestMonitoringTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, start, err := s.handleStartMonitoring(ctx, nil, StartMonitoringInput{})
	if err != nil {
		t.Fatalf("start_monitoring failed: %v", err)
	}
	if start.Handle <= 0 {
		t.Fatalf("expected positive handle, got %d", start.Handle)
	}

	_, status, err := s.handleGetStatus(ctx, nil, GetStatusInput{})
	if err != nil {
		t.Fatalf("get_status failed: %v", err)
	}
	if !status.Monitoring {
		t.Error("status should report monitoring after start")
	}
	if status.Backend != "fallback" {
		t.Errorf("expected fallback backend, got %q", status.Backend)
	}

	if _, _, err := s.handleStopMonitoring(ctx, nil, StopMonitoringInput{Handle: start.Handle + 1}); err == nil {
		t.Error("expected error for stale handle")
	}
	if _, _, err := s.handleStopMonitoring(ctx, nil, StopMonitoringInput{Handle: start.Handle}); err != nil {
		t.Errorf("stop_monitoring failed: %v", err)
	}
}
