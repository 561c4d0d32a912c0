package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/selfspy/hostmon/internal/wire"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client for the socket path.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// Call sends one request and returns the daemon's outcome. The returned
// error covers transport failures only; operation failures arrive as
// error-tagged outcomes.
func (c *Client) Call(command CommandType, payload any) (wire.Outcome, error) {
	req := &Request{Command: command}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return wire.Outcome{}, fmt.Errorf("failed to marshal payload: %w", err)
		}
		req.Payload = data
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return wire.Outcome{}, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return wire.Outcome{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return wire.Outcome{}, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return wire.Outcome{}, fmt.Errorf("failed to read response: %w", err)
	}

	var out wire.Outcome
	if err := json.Unmarshal(respData, &out); err != nil {
		return wire.Outcome{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return out, nil
}

// ActiveWindow queries the focused window.
func (c *Client) ActiveWindow() (wire.Outcome, error) {
	return c.Call(CommandGetActiveWindowInfo, nil)
}

// KeyboardState queries the keyboard state.
func (c *Client) KeyboardState() (wire.Outcome, error) {
	return c.Call(CommandGetKeyboardState, nil)
}

// MousePosition queries the pointer state.
func (c *Client) MousePosition() (wire.Outcome, error) {
	return c.Call(CommandGetMousePosition, nil)
}

// SystemInfo queries the host configuration.
func (c *Client) SystemInfo() (wire.Outcome, error) {
	return c.Call(CommandGetSystemInfo, nil)
}

// CheckPermissions queries the permission grants.
func (c *Client) CheckPermissions() (wire.Outcome, error) {
	return c.Call(CommandCheckPermissions, nil)
}

// IdleState queries user presence.
func (c *Client) IdleState() (wire.Outcome, error) {
	return c.Call(CommandGetIdleState, nil)
}

// SetGlobalHotkey registers a hotkey combination.
func (c *Client) SetGlobalHotkey(modifiers, keycode int) (wire.Outcome, error) {
	return c.Call(CommandSetGlobalHotkey, HotkeyPayload{Modifiers: modifiers, Keycode: keycode})
}

// RemoveGlobalHotkey releases a hotkey registration.
func (c *Client) RemoveGlobalHotkey(id int64) (wire.Outcome, error) {
	return c.Call(CommandRemoveGlobalHotkey, RemoveHotkeyPayload{ID: id})
}

// StartMonitoring starts the monitoring session.
func (c *Client) StartMonitoring() (wire.Outcome, error) {
	return c.Call(CommandStartMonitoring, nil)
}

// StopMonitoring stops the monitoring session.
func (c *Client) StopMonitoring(handle int64) (wire.Outcome, error) {
	return c.Call(CommandStopMonitoring, StopPayload{Handle: handle})
}

// Status retrieves daemon status.
func (c *Client) Status() (wire.Outcome, error) {
	return c.Call(CommandGetStatus, nil)
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.Status()
	return err
}
