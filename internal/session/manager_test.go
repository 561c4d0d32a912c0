package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/selfspy/hostmon/internal/platform"
)

func newTestManager(t *testing.T) (*Manager, *platform.FallbackBackend) {
	t.Helper()
	backend := platform.NewFallbackBackend(1)
	return NewManager(backend), backend
}

func TestStart_IsIdempotent(t *testing.T) {
	m, _ := newTestManager(t)

	h1, err := m.Start()
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if h1 <= 0 {
		t.Fatalf("expected positive handle, got %d", h1)
	}

	h2, err := m.Start()
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if h2 != h1 {
		t.Fatalf("expected same handle on repeated start, got %d then %d", h1, h2)
	}
}

func TestStop_SecondStopFailsInvalidHandle(t *testing.T) {
	m, _ := newTestManager(t)

	h, err := m.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Stop(h); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := m.Stop(h); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle on second stop, got %v", err)
	}
}

func TestStop_WhileIdleFailsAndDoesNotMutate(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.Stop(42); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
	if got := m.Active(); got != 0 {
		t.Fatalf("expected manager to stay idle, active handle %d", got)
	}
}

func TestStop_MismatchedHandleLeavesSessionActive(t *testing.T) {
	m, _ := newTestManager(t)

	h, err := m.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Stop(h + 1); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("expected ErrInvalidHandle, got %v", err)
	}
	if got := m.Active(); got != h {
		t.Fatalf("expected session %d to stay active, got %d", h, got)
	}
}

func TestStart_DrivesBackendMonitoring(t *testing.T) {
	m, backend := newTestManager(t)

	h, err := m.Start()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !backend.Monitoring() {
		t.Fatalf("expected backend monitoring to be running")
	}
	if err := m.Stop(h); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if backend.Monitoring() {
		t.Fatalf("expected backend monitoring to be stopped")
	}
}

func TestClose_StopsActiveSessionAndShutsDownBackend(t *testing.T) {
	m, backend := newTestManager(t)

	if _, err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.Close()

	if got := m.Active(); got != 0 {
		t.Fatalf("expected manager idle after close, active handle %d", got)
	}
	if backend.Monitoring() {
		t.Fatalf("expected backend monitoring stopped after close")
	}
}

func TestStart_ConcurrentCallersShareOneHandle(t *testing.T) {
	m, _ := newTestManager(t)

	const callers = 16
	handles := make([]int64, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := m.Start()
			if err != nil {
				t.Errorf("start: %v", err)
				return
			}
			handles[i] = h
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if handles[i] != handles[0] {
			t.Fatalf("expected all callers to observe one handle, got %v", handles)
		}
	}
}
