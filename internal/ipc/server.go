package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"github.com/selfspy/hostmon/internal/monitor"
	"github.com/selfspy/hostmon/internal/wire"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	service      *monitor.Service
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server over the monitor service. The
// socket path must already be resolved by the caller.
func NewServer(socketPath string, service *monitor.Service) *Server {
	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		service:    service,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection. Each line is one
// request; the connection stays open for follow-up requests until the
// client closes it.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	for {
		data, err := reader.ReadBytes('\n')
		if len(data) == 0 {
			if err != nil && err != io.EOF {
				log.Printf("IPC read error: %v", err)
			}
			return
		}

		out := s.dispatch(data)
		if !s.send(conn, out) {
			return
		}
		if err != nil {
			return
		}
	}
}

// dispatch parses one request line and runs it. Malformed requests are
// rejected before the service is touched.
func (s *Server) dispatch(data []byte) wire.Outcome {
	req, err := ParseRequest(data)
	if err != nil {
		return wire.Err(wire.TagInvalidRequest)
	}
	return s.handleCommand(req)
}

// handleCommand processes an IPC command and returns the outcome
func (s *Server) handleCommand(req *Request) wire.Outcome {
	switch req.Command {
	case CommandGetActiveWindowInfo:
		return s.service.ActiveWindow()
	case CommandGetKeyboardState:
		return s.service.KeyboardState()
	case CommandGetMousePosition:
		return s.service.MousePosition()
	case CommandGetSystemInfo:
		return s.service.SystemInfo()
	case CommandCheckPermissions:
		return s.service.CheckPermissions()
	case CommandGetIdleState:
		return s.service.IdleState()
	case CommandSetGlobalHotkey:
		var p HotkeyPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil || p.Keycode <= 0 {
			return wire.Err(wire.TagInvalidRequest)
		}
		return s.service.SetGlobalHotkey(p.Modifiers, p.Keycode)
	case CommandRemoveGlobalHotkey:
		var p RemoveHotkeyPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil || p.ID <= 0 {
			return wire.Err(wire.TagInvalidRequest)
		}
		return s.service.RemoveGlobalHotkey(p.ID)
	case CommandStartMonitoring:
		return s.service.StartMonitoring()
	case CommandStopMonitoring:
		var p StopPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil || p.Handle <= 0 {
			return wire.Err(wire.TagInvalidRequest)
		}
		return s.service.StopMonitoring(p.Handle)
	case CommandGetStatus:
		return s.service.Status()
	default:
		return wire.Err(wire.TagInvalidRequest)
	}
}

// send writes one outcome line. Returns false when the connection is
// unusable.
func (s *Server) send(conn net.Conn, out wire.Outcome) bool {
	data, err := json.Marshal(out)
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return false
	}

	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		log.Printf("Failed to send response: %v", err)
		return false
	}
	return true
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
