// Package wire is the result-marshaling boundary: it converts backend
// results into the tagged success/error values the host runtime consumes.
//
// Every outcome is exactly one of two shapes: status "ok" with a payload
// mapping, or status "error" with a symbolic tag from a closed vocabulary.
// Payloads are ordered key->value mappings rather than positional tuples,
// and boolean fields cross the wire as literal two-valued tags so host
// consumers can pattern-match deterministically.
package wire

// Error tags. The vocabulary is closed: never free-form text.
const (
	TagWindowInfoFailed    = "failed_to_get_window_info"
	TagKeyboardStateFailed = "failed_to_get_keyboard_state"
	TagMousePositionFailed = "failed_to_get_mouse_position"
	TagSystemInfoFailed    = "failed_to_get_system_info"
	TagPermissionsFailed   = "failed_to_check_permissions"
	TagIdleStateFailed     = "failed_to_get_idle_state"
	TagStartFailed         = "failed_to_start_monitoring"
	TagStopFailed          = "failed_to_stop_monitoring"
	TagNotImplemented      = "not_implemented"
	TagInvalidHandle       = "invalid_handle"
	TagUnknownHotkey       = "unknown_hotkey"
	TagInvalidRequest      = "invalid_request"
)

// Outcome statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Outcome is a tagged boundary result.
type Outcome struct {
	Status string `json:"status"`
	Data   *Map   `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OK wraps a payload mapping in a success outcome. A nil payload is a
// bare unit success.
func OK(data *Map) Outcome {
	return Outcome{Status: StatusOK, Data: data}
}

// Err wraps an error tag in a failure outcome.
func Err(tag string) Outcome {
	return Outcome{Status: StatusError, Error: tag}
}

// IsOK reports whether the outcome carries a success payload.
func (o Outcome) IsOK() bool {
	return o.Status == StatusOK
}

// Flag renders a boolean as the uniform "true"/"false" wire tag.
func Flag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Grant renders a permission boolean as the "granted"/"denied" wire tag.
func Grant(b bool) string {
	if b {
		return "granted"
	}
	return "denied"
}
