package platform

// Platform-neutral hotkey modifier bits. Backends translate these into
// their native masks; Command maps to Super/Mod4 outside macOS.
const (
	ModShift   = 1 << 0
	ModControl = 1 << 1
	ModAlt     = 1 << 2
	ModCommand = 1 << 3
)
