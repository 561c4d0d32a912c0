// Package mcp exposes the host telemetry operations as MCP tools over
// stdio, so agent hosts can consume them without linking the IPC client.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/selfspy/hostmon/internal/monitor"
)

const (
	ServerName    = "hostmon"
	ServerVersion = "0.1.0"
)

// Server is the MCP server over the monitor service.
type Server struct {
	mcpServer *mcpsdk.Server
	service   *monitor.Service
}

// NewServer creates a new MCP server over the service.
func NewServer(service *monitor.Service) *Server {
	s := &Server{
		service: service,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_active_window",
		Description: "Get the currently focused window: title, owning process, bundle id and geometry. Text fields are length-bounded; truncated reports whether any field was clipped.",
	}, s.handleGetWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_keyboard_state",
		Description: "Get the keyboard configuration and live modifier state: shift/control/alt/command/caps_lock, layout, input source and key repeat settings.",
	}, s.handleGetKeyboard)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_mouse_position",
		Description: "Get the pointer position, the screen it is on, pressure and button state.",
	}, s.handleGetMouse)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_system_info",
		Description: "Get a host snapshot: platform, OS version, architecture, cpu count, memory figures and the attached screens with exactly one marked primary.",
	}, s.handleGetSystem)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "check_permissions",
		Description: "Check the monitoring permission grants (accessibility, screen recording, input monitoring). Each resolves to granted or denied; grants can change out-of-band, so re-query rather than cache.",
	}, s.handleCheckPermissions)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_idle_state",
		Description: "Get user presence: whether the session is idle, whether it is locked, and the seconds since the last input.",
	}, s.handleGetIdle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_hotkey",
		Description: "Register a global hotkey (modifier bitmask + keycode) and return its registration id. Duplicate combinations are allowed and get distinct ids.",
	}, s.handleSetHotkey)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "remove_hotkey",
		Description: "Release a global hotkey registration by id.",
	}, s.handleRemoveHotkey)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "start_monitoring",
		Description: "Start the monitoring session and return its handle. Starting while already active returns the existing handle.",
	}, s.handleStartMonitoring)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "stop_monitoring",
		Description: "Stop the monitoring session identified by handle. A stale or unknown handle fails without changing state.",
	}, s.handleStopMonitoring)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get the monitor status: active backend, uptime, whether a monitoring session is running and the hotkey registration count.",
	}, s.handleGetStatus)
}
