// Package monitor assembles the platform backend, the monitoring session
// manager and the hotkey registry into one service object exposing a
// method per boundary operation. Every method returns a tagged outcome;
// errors never escape as raw Go errors past this layer.
package monitor

import (
	"errors"
	"time"

	"github.com/selfspy/hostmon/internal/hotkeys"
	"github.com/selfspy/hostmon/internal/platform"
	"github.com/selfspy/hostmon/internal/session"
	"github.com/selfspy/hostmon/internal/wire"
)

// OpLogger records boundary operations and their outcome tags. A nil
// logger disables recording.
type OpLogger interface {
	Record(op string, status string, tag string)
}

// Service is the explicit context object owning all monitor state.
type Service struct {
	backend  platform.Backend
	sessions *session.Manager
	hotkeys  *hotkeys.Registry
	log      OpLogger
	started  time.Time
}

// NewService wires a service over the backend. The op logger may be nil.
func NewService(backend platform.Backend, log OpLogger) *Service {
	return &Service{
		backend:  backend,
		sessions: session.NewManager(backend),
		hotkeys:  hotkeys.NewRegistry(backend),
		log:      log,
		started:  time.Now(),
	}
}

// Backend returns the active backend.
func (s *Service) Backend() platform.Backend {
	return s.backend
}

func (s *Service) record(op string, out wire.Outcome) wire.Outcome {
	if s.log != nil {
		s.log.Record(op, out.Status, out.Error)
	}
	return out
}

// ActiveWindow queries the focused window.
func (s *Service) ActiveWindow() wire.Outcome {
	info, err := s.backend.ActiveWindow()
	if err != nil {
		return s.record("get_active_window_info", wire.Err(wire.TagWindowInfoFailed))
	}
	return s.record("get_active_window_info", wire.OK(wire.WindowInfoMap(info)))
}

// KeyboardState queries the keyboard configuration and modifiers.
func (s *Service) KeyboardState() wire.Outcome {
	state, err := s.backend.KeyboardState()
	if err != nil {
		return s.record("get_keyboard_state", wire.Err(wire.TagKeyboardStateFailed))
	}
	return s.record("get_keyboard_state", wire.OK(wire.KeyboardStateMap(state)))
}

// MousePosition queries the pointer position and button state.
func (s *Service) MousePosition() wire.Outcome {
	state, err := s.backend.MouseState()
	if err != nil {
		return s.record("get_mouse_position", wire.Err(wire.TagMousePositionFailed))
	}
	return s.record("get_mouse_position", wire.OK(wire.MouseStateMap(state)))
}

// SystemInfo queries the host configuration snapshot.
func (s *Service) SystemInfo() wire.Outcome {
	info, err := s.backend.SystemInfo()
	if err != nil {
		return s.record("get_system_info", wire.Err(wire.TagSystemInfoFailed))
	}
	return s.record("get_system_info", wire.OK(wire.SystemInfoMap(info)))
}

// CheckPermissions queries the permission grants. The backend contract
// makes this infallible.
func (s *Service) CheckPermissions() wire.Outcome {
	perms := s.backend.CheckPermissions()
	return s.record("check_permissions", wire.OK(wire.PermissionsMap(perms)))
}

// IdleState queries user presence and session lock state.
func (s *Service) IdleState() wire.Outcome {
	state, err := s.backend.IdleState()
	if err != nil {
		if errors.Is(err, platform.ErrNotImplemented) {
			return s.record("get_idle_state", wire.Err(wire.TagNotImplemented))
		}
		return s.record("get_idle_state", wire.Err(wire.TagIdleStateFailed))
	}
	return s.record("get_idle_state", wire.OK(wire.IdleStateMap(state)))
}

// SetGlobalHotkey registers a hotkey combination and returns its id.
func (s *Service) SetGlobalHotkey(modifiers, keycode int) wire.Outcome {
	id, err := s.hotkeys.Register(modifiers, keycode)
	if err != nil {
		return s.record("set_global_hotkey", wire.Err(wire.TagNotImplemented))
	}
	return s.record("set_global_hotkey", wire.OK(wire.IDMap(id)))
}

// RemoveGlobalHotkey releases a previously registered hotkey.
func (s *Service) RemoveGlobalHotkey(id int64) wire.Outcome {
	if err := s.hotkeys.Unregister(id); err != nil {
		if errors.Is(err, hotkeys.ErrUnknownHotkey) {
			return s.record("remove_global_hotkey", wire.Err(wire.TagUnknownHotkey))
		}
		return s.record("remove_global_hotkey", wire.Err(wire.TagNotImplemented))
	}
	return s.record("remove_global_hotkey", wire.OK(nil))
}

// StartMonitoring starts (or joins) the monitoring session and returns
// its handle.
func (s *Service) StartMonitoring() wire.Outcome {
	handle, err := s.sessions.Start()
	if err != nil {
		return s.record("start_monitoring", wire.Err(wire.TagStartFailed))
	}
	return s.record("start_monitoring", wire.OK(wire.HandleMap(handle)))
}

// StopMonitoring stops the session identified by handle.
func (s *Service) StopMonitoring(handle int64) wire.Outcome {
	if err := s.sessions.Stop(handle); err != nil {
		if errors.Is(err, session.ErrInvalidHandle) {
			return s.record("stop_monitoring", wire.Err(wire.TagInvalidHandle))
		}
		return s.record("stop_monitoring", wire.Err(wire.TagStopFailed))
	}
	return s.record("stop_monitoring", wire.OK(nil))
}

// Status reports the daemon state for the CLI.
func (s *Service) Status() wire.Outcome {
	data := wire.NewMap().
		Set("backend", s.backend.Name()).
		Set("uptime_seconds", int64(time.Since(s.started).Seconds())).
		Set("monitoring", wire.Flag(s.sessions.Active() != 0)).
		Set("hotkey_count", len(s.hotkeys.Registrations()))
	return s.record("get_status", wire.OK(data))
}

// Close tears the service down: hotkeys released, session stopped,
// backend shut down. Safe to call more than once.
func (s *Service) Close() {
	s.hotkeys.Close()
	s.sessions.Close()
}
