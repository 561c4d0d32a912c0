// Package hotkeys tracks global hotkey registrations, mapping opaque IDs
// to modifier+keycode combinations.
package hotkeys

import (
	"errors"
	"fmt"
	"sync"

	"github.com/selfspy/hostmon/internal/platform"
)

// ErrUnknownHotkey reports an unregister for an ID with no live
// registration.
var ErrUnknownHotkey = errors.New("unknown hotkey id")

// Registration is one live hotkey binding.
type Registration struct {
	ID        int64
	Modifiers int
	Keycode   int
}

// Registry maps opaque positive IDs to hotkey combinations. Duplicate
// combinations are permitted and receive distinct IDs: every call is a
// fresh resource, the registry does not deduplicate by value.
//
// When the backend implements platform.HotkeyRegistrar, registrations are
// mirrored at the OS level; a failed grab rolls the entry back so the
// registry never diverges from actual OS state. Without a registrar the
// registry is pure bookkeeping.
type Registry struct {
	mu        sync.Mutex
	registrar platform.HotkeyRegistrar // may be nil
	nextID    int64
	live      map[int64]Registration
}

// NewRegistry creates an empty registry. The backend may or may not
// support OS-level registration.
func NewRegistry(backend platform.Backend) *Registry {
	registrar, _ := backend.(platform.HotkeyRegistrar)
	return &Registry{
		registrar: registrar,
		live:      make(map[int64]Registration),
	}
}

// Register records a hotkey combination and returns its fresh ID. With a
// registrar present the OS-level grab happens first; its failure is the
// caller's failure and nothing is recorded.
func (r *Registry) Register(modifiers, keycode int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registrar != nil {
		if err := r.registrar.GrabHotkey(modifiers, keycode); err != nil {
			return 0, fmt.Errorf("failed to register hotkey: %w", err)
		}
	}

	r.nextID++
	id := r.nextID
	r.live[id] = Registration{ID: id, Modifiers: modifiers, Keycode: keycode}
	return id, nil
}

// Unregister removes a registration by ID. Unknown IDs fail with
// ErrUnknownHotkey. When the OS-level ungrab fails the entry is kept, so
// registry state keeps matching what the OS still holds.
func (r *Registry) Unregister(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.live[id]
	if !ok {
		return ErrUnknownHotkey
	}

	if r.registrar != nil {
		if err := r.registrar.UngrabHotkey(reg.Modifiers, reg.Keycode); err != nil {
			return fmt.Errorf("failed to unregister hotkey %d: %w", id, err)
		}
	}

	delete(r.live, id)
	return nil
}

// Registrations returns a snapshot of all live registrations.
func (r *Registry) Registrations() []Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Registration, 0, len(r.live))
	for _, reg := range r.live {
		out = append(out, reg)
	}
	return out
}

// Close releases every live registration, best-effort. Used on daemon
// teardown after the session manager has stopped monitoring.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, reg := range r.live {
		if r.registrar != nil {
			_ = r.registrar.UngrabHotkey(reg.Modifiers, reg.Keycode)
		}
		delete(r.live, id)
	}
}
