// Package replay walks a synthesized trace and hands each pointer event to
// a caller-supplied executor with the trace's own pacing. The package
// performs no I/O itself; the executor decides what dispatching and
// sleeping mean, which also lets tests run a full replay instantly.
package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/xkilldash9x/pointerforge/api/schemas"

	"go.uber.org/zap"
)

// Executor receives the replayed events. Implementations bridge traces
// into whatever surface consumes them: a UI test driver, a visualization,
// a capture file writer.
type Executor interface {
	// DispatchPointerEvent delivers one event. Returning an error aborts
	// the replay.
	DispatchPointerEvent(ctx context.Context, event schemas.PointerEvent) error

	// Sleep pauses for the inter-event gap. Implementations may compress
	// or skip the wait; the replayer only requires that cancellation is
	// honored.
	Sleep(ctx context.Context, d time.Duration) error
}

// Replayer plays traces through an Executor.
type Replayer struct {
	logger *zap.Logger
}

// New creates a Replayer. A nil logger disables logging.
func New(logger *zap.Logger) *Replayer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Replayer{logger: logger}
}

// Replay walks the trace's merged event stream in order, sleeping each
// inter-event gap before dispatching. Context cancellation stops the walk
// between events; dispatch errors come back wrapped with the failing
// event's index.
func (r *Replayer) Replay(ctx context.Context, trace *schemas.Trace, exec Executor) error {
	if trace == nil {
		return fmt.Errorf("replay: nil trace")
	}

	events := trace.Events()
	var last time.Duration

	for i, ev := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if gap := ev.At - last; gap > 0 {
			if err := exec.Sleep(ctx, gap); err != nil {
				return err
			}
		}
		if err := exec.DispatchPointerEvent(ctx, ev); err != nil {
			return fmt.Errorf("replay: event %d (%s): %w", i, ev.Type, err)
		}
		last = ev.At
	}

	r.logger.Debug("trace replayed",
		zap.String("trace_id", trace.ID.String()),
		zap.Int("events", len(events)),
		zap.Duration("duration", trace.Duration()),
	)
	return nil
}

// ReplaySession plays every step of a session in timeline order, sleeping
// the idle gap between steps.
func (r *Replayer) ReplaySession(ctx context.Context, session *schemas.Session, exec Executor) error {
	if session == nil {
		return fmt.Errorf("replay: nil session")
	}

	var cursor time.Duration
	for i, step := range session.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if gap := step.StartAt - cursor; gap > 0 {
			if err := exec.Sleep(ctx, gap); err != nil {
				return err
			}
		}
		if err := r.Replay(ctx, step.Trace, exec); err != nil {
			return fmt.Errorf("replay: session step %d: %w", i, err)
		}
		cursor = step.StartAt + step.Trace.Duration()
	}
	return nil
}
