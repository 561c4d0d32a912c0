package monitor

import (
	"encoding/json"
	"testing"

	"github.com/selfspy/hostmon/internal/platform"
	"github.com/selfspy/hostmon/internal/wire"
)

type recordingLog struct {
	ops  []string
	tags []string
}

func (l *recordingLog) Record(op, status, tag string) {
	l.ops = append(l.ops, op)
	l.tags = append(l.tags, tag)
}

func newTestService(t *testing.T) (*Service, *recordingLog) {
	t.Helper()
	log := &recordingLog{}
	svc := NewService(platform.NewFallbackBackend(1), log)
	t.Cleanup(svc.Close)
	return svc, log
}

func dataOf(t *testing.T, out wire.Outcome) *wire.Map {
	t.Helper()
	if !out.IsOK() {
		t.Fatalf("expected ok outcome, got error %q", out.Error)
	}
	if out.Data == nil {
		t.Fatal("ok outcome carries no data")
	}
	return out.Data
}

func TestQueriesSucceedOnFallback(t *testing.T) {
	svc, log := newTestService(t)

	queries := []struct {
		name string
		call func() wire.Outcome
	}{
		{"get_active_window_info", svc.ActiveWindow},
		{"get_keyboard_state", svc.KeyboardState},
		{"get_mouse_position", svc.MousePosition},
		{"get_system_info", svc.SystemInfo},
		{"check_permissions", svc.CheckPermissions},
		{"get_idle_state", svc.IdleState},
	}

	for _, q := range queries {
		out := q.call()
		if !out.IsOK() {
			t.Errorf("%s: expected ok, got %q", q.name, out.Error)
		}
		if out.Data == nil {
			t.Errorf("%s: ok outcome without data", q.name)
		}
	}

	if len(log.ops) != len(queries) {
		t.Fatalf("expected %d logged ops, got %d", len(queries), len(log.ops))
	}
	for i, q := range queries {
		if log.ops[i] != q.name {
			t.Errorf("op %d: logged %q, want %q", i, log.ops[i], q.name)
		}
		if log.tags[i] != "" {
			t.Errorf("op %d: unexpected error tag %q", i, log.tags[i])
		}
	}
}

func TestActiveWindowShape(t *testing.T) {
	svc, _ := newTestService(t)

	data := dataOf(t, svc.ActiveWindow())
	pid, ok := data.Get("process_id")
	if !ok {
		t.Fatal("process_id missing")
	}
	if pid.(int) <= 0 {
		t.Errorf("expected positive process_id, got %v", pid)
	}
	if focused, _ := data.Get("is_focused"); focused != "true" {
		t.Errorf("expected is_focused %q, got %v", "true", focused)
	}
}

func TestPermissionsAllDeniedOnFallback(t *testing.T) {
	svc, _ := newTestService(t)

	data := dataOf(t, svc.CheckPermissions())
	for _, key := range []string{"accessibility", "screen_recording", "input_monitoring"} {
		v, ok := data.Get(key)
		if !ok {
			t.Fatalf("%s missing", key)
		}
		if v != "denied" {
			t.Errorf("%s: expected denied, got %v", key, v)
		}
	}
}

func TestPermissionsStableAcrossCalls(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := json.Marshal(svc.CheckPermissions())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	second, err := json.Marshal(svc.CheckPermissions())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("permission payload changed between calls:\n%s\n%s", first, second)
	}
}

func TestHotkeyLifecycle(t *testing.T) {
	svc, _ := newTestService(t)

	out := svc.SetGlobalHotkey(platform.ModControl|platform.ModShift, 38)
	id, _ := dataOf(t, out).Get("id")

	if rm := svc.RemoveGlobalHotkey(id.(int64)); !rm.IsOK() {
		t.Fatalf("remove failed: %q", rm.Error)
	}
	if rm := svc.RemoveGlobalHotkey(id.(int64)); rm.Error != wire.TagUnknownHotkey {
		t.Errorf("second remove: expected %q, got %q", wire.TagUnknownHotkey, rm.Error)
	}
}

func TestMonitoringLifecycle(t *testing.T) {
	backend := platform.NewFallbackBackend(1)
	svc := NewService(backend, nil)
	defer svc.Close()

	out := svc.StartMonitoring()
	handle, _ := dataOf(t, out).Get("handle")

	if !backend.Monitoring() {
		t.Error("backend not monitoring after start")
	}

	// A second start joins the existing session.
	again := svc.StartMonitoring()
	h2, _ := dataOf(t, again).Get("handle")
	if handle != h2 {
		t.Errorf("second start minted a new handle: %v vs %v", handle, h2)
	}

	if stop := svc.StopMonitoring(handle.(int64) + 1); stop.Error != wire.TagInvalidHandle {
		t.Errorf("mismatched stop: expected %q, got %q", wire.TagInvalidHandle, stop.Error)
	}
	if stop := svc.StopMonitoring(handle.(int64)); !stop.IsOK() {
		t.Fatalf("stop failed: %q", stop.Error)
	}
	if backend.Monitoring() {
		t.Error("backend still monitoring after stop")
	}
	if stop := svc.StopMonitoring(handle.(int64)); stop.Error != wire.TagInvalidHandle {
		t.Errorf("repeat stop: expected %q, got %q", wire.TagInvalidHandle, stop.Error)
	}
}

func TestStopOnlyOutcomeHasNoData(t *testing.T) {
	svc, _ := newTestService(t)

	out := svc.StartMonitoring()
	handle, _ := dataOf(t, out).Get("handle")

	stop := svc.StopMonitoring(handle.(int64))
	encoded, err := json.Marshal(stop)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(encoded) != `{"status":"ok"}` {
		t.Errorf("unit success encoding: %s", encoded)
	}
}

func TestStatus(t *testing.T) {
	svc, _ := newTestService(t)

	data := dataOf(t, svc.Status())
	if name, _ := data.Get("backend"); name != "fallback" {
		t.Errorf("expected backend fallback, got %v", name)
	}
	if mon, _ := data.Get("monitoring"); mon != "false" {
		t.Errorf("expected monitoring false, got %v", mon)
	}

	svc.StartMonitoring()
	data = dataOf(t, svc.Status())
	if mon, _ := data.Get("monitoring"); mon != "true" {
		t.Errorf("expected monitoring true after start, got %v", mon)
	}
}

func TestCloseStopsEverything(t *testing.T) {
	backend := platform.NewFallbackBackend(1)
	svc := NewService(backend, nil)

	svc.StartMonitoring()
	svc.SetGlobalHotkey(platform.ModControl, 38)
	svc.Close()

	if backend.Monitoring() {
		t.Error("backend monitoring after Close")
	}
}
