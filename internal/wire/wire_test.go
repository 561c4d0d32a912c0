package wire

import (
	"encoding/json"
	"testing"

	"github.com/selfspy/hostmon/internal/platform"
)

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap().
		Set("zulu", 1).
		Set("alpha", 2).
		Set("mike", 3)

	want := []string{"zulu", "alpha", "mike"}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(got))
	}
	for i, key := range want {
		if got[i] != key {
			t.Errorf("key %d: expected %q, got %q", i, key, got[i])
		}
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	expected := `{"zulu":1,"alpha":2,"mike":3}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}

func TestMapSetReplacesInPlace(t *testing.T) {
	m := NewMap().Set("a", 1).Set("b", 2).Set("a", 3)

	if m.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.Len())
	}
	if keys := m.Keys(); keys[0] != "a" || keys[1] != "b" {
		t.Errorf("replace moved key position: %v", keys)
	}
	v, ok := m.Get("a")
	if !ok || v != 3 {
		t.Errorf("expected a=3, got %v (ok=%v)", v, ok)
	}
}

func TestWindowInfoRoundTrip(t *testing.T) {
	info := platform.WindowInfo{
		Title:       "Dashboard",
		ProcessName: "hostmon",
		ProcessID:   12345,
		BundleID:    "com.selfspy.hostmon",
		WindowID:    7,
		Bounds:      platform.Rect{X: 100, Y: 100, Width: 1200, Height: 800},
		IsFocused:   true,
		Workspace:   1,
	}

	first, err := json.Marshal(WindowInfoMap(info))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Map
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	second, err := json.Marshal(&decoded)
	if err != nil {
		t.Fatalf("re-marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("round trip changed encoding:\n first: %s\nsecond: %s", first, second)
	}

	keys := decoded.Keys()
	wantKeys := []string{"title", "process_name", "process_id", "bundle_id",
		"window_id", "bounds", "is_focused", "workspace", "truncated"}
	if len(keys) != len(wantKeys) {
		t.Fatalf("expected %d keys, got %d: %v", len(wantKeys), len(keys), keys)
	}
	for i, key := range wantKeys {
		if keys[i] != key {
			t.Errorf("key %d: expected %q, got %q", i, key, keys[i])
		}
	}

	bounds, ok := decoded.Get("bounds")
	if !ok {
		t.Fatal("bounds missing after decode")
	}
	bm, ok := bounds.(*Map)
	if !ok {
		t.Fatalf("bounds decoded as %T, want *Map", bounds)
	}
	w, _ := bm.Get("width")
	if n, ok := w.(json.Number); !ok || n.String() != "1200" {
		t.Errorf("expected width 1200, got %v", w)
	}

	focused, _ := decoded.Get("is_focused")
	if focused != "true" {
		t.Errorf("expected is_focused %q, got %v", "true", focused)
	}
}

func TestSystemInfoMapScreens(t *testing.T) {
	info := platform.SystemInfo{
		Platform:        "linux",
		OSVersion:       "test",
		Architecture:    "amd64",
		CPUCount:        8,
		MemoryTotal:     16 * 1024 * 1024 * 1024,
		MemoryAvailable: 8 * 1024 * 1024 * 1024,
		Screens: []platform.ScreenInfo{
			{ID: 0, Bounds: platform.Rect{Width: 1920, Height: 1080}, Scale: 1.0, IsPrimary: true},
			{ID: 1, Bounds: platform.Rect{X: 1920, Width: 2560, Height: 1440}, Scale: 2.0},
		},
	}

	m := SystemInfoMap(info)
	count, _ := m.Get("screen_count")
	if count != 2 {
		t.Errorf("expected screen_count 2, got %v", count)
	}
	screensVal, _ := m.Get("screens")
	screens, ok := screensVal.([]any)
	if !ok || len(screens) != 2 {
		t.Fatalf("expected 2 screen entries, got %v", screensVal)
	}
	primary, _ := screens[0].(*Map).Get("is_primary")
	if primary != "true" {
		t.Errorf("screen 0 should be primary, got %v", primary)
	}
	secondary, _ := screens[1].(*Map).Get("is_primary")
	if secondary != "false" {
		t.Errorf("screen 1 should not be primary, got %v", secondary)
	}
}

func TestOutcomeEncoding(t *testing.T) {
	ok := OK(IDMap(42))
	data, err := json.Marshal(ok)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"status":"ok","data":{"id":42}}` {
		t.Errorf("unexpected success encoding: %s", data)
	}
	if !ok.IsOK() {
		t.Error("success outcome not reported as ok")
	}

	fail := Err(TagInvalidHandle)
	data, err = json.Marshal(fail)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"status":"error","error":"invalid_handle"}` {
		t.Errorf("unexpected error encoding: %s", data)
	}
	if fail.IsOK() {
		t.Error("error outcome reported as ok")
	}
}

func TestFlagAndGrant(t *testing.T) {
	if Flag(true) != "true" || Flag(false) != "false" {
		t.Errorf("Flag produced %q/%q", Flag(true), Flag(false))
	}
	if Grant(true) != "granted" || Grant(false) != "denied" {
		t.Errorf("Grant produced %q/%q", Grant(true), Grant(false))
	}
}

func TestPermissionsMap(t *testing.T) {
	m := PermissionsMap(platform.PermissionStatus{Accessibility: true})
	keys := m.Keys()
	want := []string{"accessibility", "screen_recording", "input_monitoring"}
	for i, key := range want {
		if keys[i] != key {
			t.Errorf("key %d: expected %q, got %q", i, key, keys[i])
		}
	}
	a, _ := m.Get("accessibility")
	if a != "granted" {
		t.Errorf("expected granted, got %v", a)
	}
	s, _ := m.Get("screen_recording")
	if s != "denied" {
		t.Errorf("expected denied, got %v", s)
	}
}
