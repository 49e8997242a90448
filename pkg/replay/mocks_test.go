package replay

import (
	"context"
	"sync"
	"time"

	"github.com/xkilldash9x/pointerforge/api/schemas"
)

// mockExecutor implements the Executor interface for testing. Centralized
// here so every test in the package shares one implementation.
type mockExecutor struct {
	mu     sync.Mutex
	events []schemas.PointerEvent
	sleeps []time.Duration

	// Scenario controls.
	returnErr    error
	failOnCall   int
	callCount    int
	cancelOnCall int
	cancelFunc   context.CancelFunc

	// Overrides. When set they replace the default behavior; an override
	// can still call the corresponding Default* method when it only wants
	// to wrap it.
	MockDispatchPointerEvent func(ctx context.Context, event schemas.PointerEvent) error
	MockSleep                func(ctx context.Context, d time.Duration) error
}

func newMockExecutor() *mockExecutor {
	return &mockExecutor{
		events: make([]schemas.PointerEvent, 0),
		sleeps: make([]time.Duration, 0),
	}
}

func (m *mockExecutor) DispatchPointerEvent(ctx context.Context, event schemas.PointerEvent) error {
	if m.MockDispatchPointerEvent != nil {
		return m.MockDispatchPointerEvent(ctx, event)
	}
	return m.DefaultDispatchPointerEvent(ctx, event)
}

// DefaultDispatchPointerEvent is the standard mock behavior, split out so
// overrides can fall back to it.
func (m *mockExecutor) DefaultDispatchPointerEvent(ctx context.Context, event schemas.PointerEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Record before any failure so tests can assert how far a replay got.
	m.events = append(m.events, event)
	m.callCount++

	if m.returnErr != nil && (m.failOnCall == 0 || m.callCount >= m.failOnCall) {
		return m.returnErr
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if m.cancelOnCall > 0 && m.callCount == m.cancelOnCall && m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}

func (m *mockExecutor) Sleep(ctx context.Context, d time.Duration) error {
	if m.MockSleep != nil {
		return m.MockSleep(ctx, d)
	}
	return m.DefaultSleep(ctx, d)
}

// DefaultSleep records the requested pause without actually waiting, which
// lets a full replay run instantly.
func (m *mockExecutor) DefaultSleep(ctx context.Context, d time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sleeps = append(m.sleeps, d)
	return nil
}

func (m *mockExecutor) recordedEvents() []schemas.PointerEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]schemas.PointerEvent(nil), m.events...)
}

func (m *mockExecutor) recordedSleeps() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.sleeps...)
}
