// Package config loads the daemon configuration from YAML with sensible
// defaults for every field, so a missing file is a fully valid setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default operation-log settings.
const (
	DefaultLogMaxSizeMB = 10
	DefaultLogMaxFiles  = 3
)

// DefaultIdleThresholdSeconds is the idle time after which the session
// counts as idle.
const DefaultIdleThresholdSeconds = 300

// LoggingConfig configures boundary operation logging.
type LoggingConfig struct {
	// Enabled turns operation logging on/off
	Enabled bool `yaml:"enabled,omitempty"`
	// File is the log file path (default: ~/.local/share/hostmon/operations.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// Config is the daemon configuration.
type Config struct {
	// Backend selects the platform backend: auto, x11 or fallback.
	Backend string `yaml:"backend"`
	// Display overrides the X11 display to connect to (default: $DISPLAY).
	Display string `yaml:"display,omitempty"`
	// IdleThresholdSeconds is the inactivity time before the session
	// counts as idle.
	IdleThresholdSeconds int `yaml:"idle_threshold_seconds"`
	// SocketPath overrides the IPC socket location.
	SocketPath string `yaml:"socket_path,omitempty"`
	// Logging configures the operation log.
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Backend:              "auto",
		IdleThresholdSeconds: DefaultIdleThresholdSeconds,
		Logging: LoggingConfig{
			MaxSizeMB: DefaultLogMaxSizeMB,
			MaxFiles:  DefaultLogMaxFiles,
		},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "hostmon", "config.yaml"), nil
}

// DefaultLogPath returns the standard operation log location.
func DefaultLogPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "hostmon", "operations.log"), nil
}

// Load reads the configuration from the standard location. A missing
// file yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from path, applies defaults for
// unset fields and validates the result.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// applyDefaults normalizes fields whose zero value has no meaning of its
// own. Numeric fields are left alone: the document is decoded on top of
// Default(), so an absent key keeps its default while an explicit zero
// survives for Validate to judge.
func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = "auto"
	}
}

// Validate checks field values after defaults have been applied.
func (c *Config) Validate() error {
	switch c.Backend {
	case "auto", "x11", "fallback":
	default:
		return fmt.Errorf("unknown backend %q (want auto, x11 or fallback)", c.Backend)
	}
	if c.IdleThresholdSeconds < 0 {
		return fmt.Errorf("idle_threshold_seconds must not be negative, got %d", c.IdleThresholdSeconds)
	}
	if c.Logging.MaxSizeMB < 1 {
		return fmt.Errorf("logging.max_size_mb must be positive, got %d", c.Logging.MaxSizeMB)
	}
	if c.Logging.MaxFiles < 1 {
		return fmt.Errorf("logging.max_files must be positive, got %d", c.Logging.MaxFiles)
	}
	return nil
}

// LogFile returns the operation log path, resolving the default when
// unset.
func (c *Config) LogFile() (string, error) {
	if c.Logging.File != "" {
		return c.Logging.File, nil
	}
	return DefaultLogPath()
}

// Socket returns the IPC socket path, resolving the default when
// socket_path is unset.
func (c *Config) Socket() (string, error) {
	if c.SocketPath != "" {
		return c.SocketPath, nil
	}
	dir, err := runtimeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hostmon.sock"), nil
}

// runtimeDir picks the per-user runtime directory for the socket:
// XDG_RUNTIME_DIR when set, /run/user/<uid> when it exists, otherwise a
// private directory under /tmp.
func runtimeDir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := os.Getuid()
	runUser := fmt.Sprintf("/run/user/%d", uid)
	if info, err := os.Stat(runUser); err == nil && info.IsDir() {
		return runUser, nil
	}

	tmp := fmt.Sprintf("/tmp/hostmon-%d", uid)
	if err := os.MkdirAll(tmp, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return tmp, nil
}
