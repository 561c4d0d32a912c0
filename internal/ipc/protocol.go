package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetActiveWindowInfo CommandType = "GET_ACTIVE_WINDOW_INFO"
	CommandGetKeyboardState    CommandType = "GET_KEYBOARD_STATE"
	CommandGetMousePosition    CommandType = "GET_MOUSE_POSITION"
	CommandGetSystemInfo       CommandType = "GET_SYSTEM_INFO"
	CommandCheckPermissions    CommandType = "CHECK_PERMISSIONS"
	CommandGetIdleState        CommandType = "GET_IDLE_STATE"
	CommandSetGlobalHotkey     CommandType = "SET_GLOBAL_HOTKEY"
	CommandRemoveGlobalHotkey  CommandType = "REMOVE_GLOBAL_HOTKEY"
	CommandStartMonitoring     CommandType = "START_MONITORING"
	CommandStopMonitoring      CommandType = "STOP_MONITORING"
	CommandGetStatus           CommandType = "GET_STATUS"
)

// Request represents an IPC request from client to server. Responses are
// tagged outcomes (wire.Outcome) sent back verbatim, one JSON value per
// line.
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// HotkeyPayload carries a SET_GLOBAL_HOTKEY request. Keycode must be
// positive; modifiers may be zero.
type HotkeyPayload struct {
	Modifiers int `json:"modifiers"`
	Keycode   int `json:"keycode"`
}

// RemoveHotkeyPayload carries a REMOVE_GLOBAL_HOTKEY request.
type RemoveHotkeyPayload struct {
	ID int64 `json:"id"`
}

// StopPayload carries a STOP_MONITORING request.
type StopPayload struct {
	Handle int64 `json:"handle"`
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("request has no command")
	}
	return &req, nil
}
