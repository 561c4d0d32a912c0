package mcp

// GetWindowInput is the input for the get_active_window tool.
type GetWindowInput struct{}

// BoundsOutput describes a rectangle in screen coordinates.
type BoundsOutput struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetWindowOutput is the output for the get_active_window tool.
type GetWindowOutput struct {
	Title       string       `json:"title"`
	ProcessName string       `json:"process_name"`
	ProcessID   int          `json:"process_id"`
	BundleID    string       `json:"bundle_id"`
	WindowID    uint64       `json:"window_id"`
	Bounds      BoundsOutput `json:"bounds"`
	IsFocused   bool         `json:"is_focused"`
	Workspace   int          `json:"workspace"`
	Truncated   bool         `json:"truncated"`
}

// GetKeyboardInput is the input for the get_keyboard_state tool.
type GetKeyboardInput struct{}

// GetKeyboardOutput is the output for the get_keyboard_state tool.
type GetKeyboardOutput struct {
	Shift       bool    `json:"shift"`
	Control     bool    `json:"control"`
	Alt         bool    `json:"alt"`
	Command     bool    `json:"command"`
	CapsLock    bool    `json:"caps_lock"`
	Layout      string  `json:"layout"`
	InputSource string  `json:"input_source"`
	RepeatRate  float64 `json:"repeat_rate"`
	RepeatDelay float64 `json:"repeat_delay"`
}

// GetMouseInput is the input for the get_mouse_position tool.
type GetMouseInput struct{}

// GetMouseOutput is the output for the get_mouse_position tool.
type GetMouseOutput struct {
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Screen   int     `json:"screen"`
	Pressure float64 `json:"pressure"`
	Left     bool    `json:"left"`
	Right    bool    `json:"right"`
	Middle   bool    `json:"middle"`
}

// GetSystemInput is the input for the get_system_info tool.
type GetSystemInput struct{}

// ScreenOutput describes one attached display.
type ScreenOutput struct {
	ID        int          `json:"id"`
	Bounds    BoundsOutput `json:"bounds"`
	Scale     float64      `json:"scale"`
	IsPrimary bool         `json:"is_primary"`
}

// GetSystemOutput is the output for the get_system_info tool.
type GetSystemOutput struct {
	Platform               string         `json:"platform"`
	OSVersion              string         `json:"os_version"`
	Architecture           string         `json:"architecture"`
	CPUCount               int            `json:"cpu_count"`
	MemoryTotal            uint64         `json:"memory_total"`
	MemoryAvailable        uint64         `json:"memory_available"`
	ScreenCount            int            `json:"screen_count"`
	Screens                []ScreenOutput `json:"screens"`
	AccessibilityEnabled   bool           `json:"accessibility_enabled"`
	ScreenRecordingEnabled bool           `json:"screen_recording_enabled"`
}

// CheckPermissionsInput is the input for the check_permissions tool.
type CheckPermissionsInput struct{}

// CheckPermissionsOutput is the output for the check_permissions tool.
// Each field is "granted" or "denied".
type CheckPermissionsOutput struct {
	Accessibility   string `json:"accessibility"`
	ScreenRecording string `json:"screen_recording"`
	InputMonitoring string `json:"input_monitoring"`
}

// GetIdleInput is the input for the get_idle_state tool.
type GetIdleInput struct{}

// GetIdleOutput is the output for the get_idle_state tool.
type GetIdleOutput struct {
	IsIdle      bool  `json:"is_idle"`
	IsLocked    bool  `json:"is_locked"`
	IdleSeconds int64 `json:"idle_seconds"`
}

// SetHotkeyInput is the input for the set_hotkey tool.
type SetHotkeyInput struct {
	Modifiers int `json:"modifiers" jsonschema:"Modifier bitmask: 1=shift 2=control 4=alt 8=command. Zero grabs the bare key."`
	Keycode   int `json:"keycode" jsonschema:"required,Platform keycode to grab"`
}

// SetHotkeyOutput is the output for the set_hotkey tool.
type SetHotkeyOutput struct {
	ID int64 `json:"id"`
}

// RemoveHotkeyInput is the input for the remove_hotkey tool.
type RemoveHotkeyInput struct {
	ID int64 `json:"id" jsonschema:"required,Registration id returned by set_hotkey"`
}

// RemoveHotkeyOutput is the output for the remove_hotkey tool.
type RemoveHotkeyOutput struct {
	Removed bool `json:"removed"`
}

// StartMonitoringInput is the input for the start_monitoring tool.
type StartMonitoringInput struct{}

// StartMonitoringOutput is the output for the start_monitoring tool.
type StartMonitoringOutput struct {
	Handle int64 `json:"handle"`
}

// StopMonitoringInput is the input for the stop_monitoring tool.
type StopMonitoringInput struct {
	Handle int64 `json:"handle" jsonschema:"required,Session handle returned by start_monitoring"`
}

// StopMonitoringOutput is the output for the stop_monitoring tool.
type StopMonitoringOutput struct {
	Stopped bool `json:"stopped"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	Backend       string `json:"backend"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Monitoring    bool   `json:"monitoring"`
	HotkeyCount   int    `json:"hotkey_count"`
}
