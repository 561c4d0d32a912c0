package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Backend != "auto" {
		t.Errorf("expected backend auto, got %q", cfg.Backend)
	}
	if cfg.IdleThresholdSeconds != DefaultIdleThresholdSeconds {
		t.Errorf("expected idle threshold %d, got %d", DefaultIdleThresholdSeconds, cfg.IdleThresholdSeconds)
	}
	if cfg.Logging.MaxSizeMB != DefaultLogMaxSizeMB || cfg.Logging.MaxFiles != DefaultLogMaxFiles {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
backend: fallback
idle_threshold_seconds: 60
socket_path: /tmp/custom.sock
logging:
  enabled: true
  max_size_mb: 5
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Backend != "fallback" {
		t.Errorf("expected backend fallback, got %q", cfg.Backend)
	}
	if cfg.IdleThresholdSeconds != 60 {
		t.Errorf("expected idle threshold 60, got %d", cfg.IdleThresholdSeconds)
	}
	if cfg.SocketPath != "/tmp/custom.sock" {
		t.Errorf("unexpected socket path %q", cfg.SocketPath)
	}
	if !cfg.Logging.Enabled {
		t.Error("expected logging enabled")
	}
	if cfg.Logging.MaxSizeMB != 5 {
		t.Errorf("expected max_size_mb 5, got %d", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxFiles != DefaultLogMaxFiles {
		t.Errorf("expected default max_files, got %d", cfg.Logging.MaxFiles)
	}
}

func TestExplicitZeroIdleThresholdKept(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, "idle_threshold_seconds: 0\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.IdleThresholdSeconds != 0 {
		t.Errorf("explicit zero replaced by %d", cfg.IdleThresholdSeconds)
	}
}

func TestSocketResolution(t *testing.T) {
	t.Run("configured path wins", func(t *testing.T) {
		cfg := Default()
		cfg.SocketPath = "/tmp/custom.sock"
		got, err := cfg.Socket()
		if err != nil {
			t.Fatalf("Socket() error: %v", err)
		}
		if got != "/tmp/custom.sock" {
			t.Errorf("Socket() = %q, want configured path", got)
		}
	})

	t.Run("xdg runtime dir", func(t *testing.T) {
		td := t.TempDir()
		t.Setenv("XDG_RUNTIME_DIR", td)
		got, err := Default().Socket()
		if err != nil {
			t.Fatalf("Socket() error: %v", err)
		}
		if got != filepath.Join(td, "hostmon.sock") {
			t.Errorf("Socket() = %q, want socket under %q", got, td)
		}
	})

	t.Run("fallback without xdg", func(t *testing.T) {
		t.Setenv("XDG_RUNTIME_DIR", "")
		got, err := Default().Socket()
		if err != nil {
			t.Fatalf("Socket() error: %v", err)
		}
		wantRun := fmt.Sprintf("/run/user/%d/hostmon.sock", os.Getuid())
		wantTmp := fmt.Sprintf("/tmp/hostmon-%d/hostmon.sock", os.Getuid())
		if got != wantRun && got != wantTmp {
			t.Errorf("Socket() = %q, want %q or %q", got, wantRun, wantTmp)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"valid x11", "backend: x11\n", false},
		{"unknown backend", "backend: wayland\n", true},
		{"negative idle threshold", "idle_threshold_seconds: -1\n", true},
		{"negative max files", "logging:\n  max_files: -2\n", true},
		{"zero max files", "logging:\n  max_files: 0\n", true},
		{"zero max size", "logging:\n  max_size_mb: 0\n", true},
		{"malformed yaml", "backend: [\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, tt.content))
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
