// Package session owns the lifecycle of the process-wide monitoring
// session: a long-lived OS observation resource represented outside this
// package only by an opaque handle.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/selfspy/hostmon/internal/platform"
)

// ErrInvalidHandle reports a stop with no matching active session. State
// is never mutated when it is returned.
var ErrInvalidHandle = errors.New("invalid monitoring handle")

// Manager is a two-state machine: Idle, or Active with exactly one handle.
// All methods are safe for concurrent use; start/stop are atomic with
// respect to concurrent callers.
type Manager struct {
	mu          sync.Mutex
	backend     platform.Backend
	initialized bool
	active      int64 // 0 while Idle
	nextHandle  int64
}

// NewManager creates an idle manager over the backend.
func NewManager(backend platform.Backend) *Manager {
	return &Manager{backend: backend}
}

// Start transitions Idle -> Active and returns a freshly minted positive
// handle. Calling Start while already Active returns the existing handle
// unchanged. The backend is initialized lazily on the first start.
func (m *Manager) Start() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != 0 {
		return m.active, nil
	}

	if !m.initialized {
		if err := m.backend.Initialize(); err != nil {
			return 0, fmt.Errorf("failed to start monitoring: %w", err)
		}
		m.initialized = true
	}

	if mon, ok := m.backend.(platform.EventMonitor); ok {
		if err := mon.StartMonitoring(); err != nil {
			return 0, fmt.Errorf("failed to start monitoring: %w", err)
		}
	}

	m.nextHandle++
	m.active = m.nextHandle
	return m.active, nil
}

// Stop transitions Active -> Idle only when handle matches the active
// session. Any mismatch, including stopping while Idle, fails with
// ErrInvalidHandle and leaves state untouched.
func (m *Manager) Stop(handle int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == 0 || handle != m.active {
		return ErrInvalidHandle
	}

	if mon, ok := m.backend.(platform.EventMonitor); ok {
		if err := mon.StopMonitoring(); err != nil {
			return fmt.Errorf("failed to stop monitoring: %w", err)
		}
	}

	m.active = 0
	return nil
}

// Active returns the current handle, or 0 while Idle.
func (m *Manager) Active() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Close unconditionally stops any active session and shuts the backend
// down. It is the teardown path: no skip conditions, so native hooks can
// never leak past process exit.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != 0 {
		if mon, ok := m.backend.(platform.EventMonitor); ok {
			_ = mon.StopMonitoring()
		}
		m.active = 0
	}

	m.backend.Shutdown()
	m.initialized = false
}
