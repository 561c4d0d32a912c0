package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledLoggerDropsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.log")
	l, err := NewOpLog(Config{Enabled: false, FilePath: path})
	if err != nil {
		t.Fatalf("NewOpLog failed: %v", err)
	}
	defer l.Close()

	l.Record("get_system_info", "ok", "")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("disabled logger created a log file")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *OpLog
	l.Record("get_system_info", "ok", "")
	if err := l.Close(); err != nil {
		t.Errorf("nil Close returned %v", err)
	}
}

func TestRecordWritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.log")
	l, err := NewOpLog(Config{Enabled: true, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("NewOpLog failed: %v", err)
	}

	l.Record("get_active_window_info", "ok", "")
	l.Record("stop_monitoring", "error", "invalid_handle")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "op=get_active_window_info status=ok") {
		t.Errorf("unexpected first entry: %q", lines[0])
	}
	if strings.Contains(lines[0], "error=") {
		t.Errorf("success entry carries an error tag: %q", lines[0])
	}
	if !strings.Contains(lines[1], "status=error error=invalid_handle") {
		t.Errorf("unexpected second entry: %q", lines[1])
	}
}

func TestRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.log")
	l, err := NewOpLog(Config{Enabled: true, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("NewOpLog failed: %v", err)
	}
	defer l.Close()

	// Force rotation on the next record.
	l.mu.Lock()
	l.currentSize = 2 * 1024 * 1024
	l.mu.Unlock()

	l.Record("get_mouse_position", "ok", "")

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("rotated file missing: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fresh log: %v", err)
	}
	if !strings.Contains(string(data), "op=get_mouse_position") {
		t.Errorf("entry missing from fresh log: %q", data)
	}
}
