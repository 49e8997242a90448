package motion

import (
	"fmt"
	"time"

	"github.com/xkilldash9x/pointerforge/api/schemas"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"
)

// SessionStep names one target in a multi-target interaction plan.
type SessionStep struct {
	Target schemas.Region
	Click  schemas.ClickMode
}

// ComposeSession synthesizes one trace per step, chaining them so each
// movement begins where the previous one ended. Steps are separated by an
// idle gap drawn from an ex-Gaussian think-time model, so StartAt values
// are strictly increasing.
func (s *Synthesizer) ComposeSession(start schemas.Point, steps []SessionStep) (*schemas.Session, error) {
	sess := &schemas.Session{Steps: make([]schemas.SessionTrace, 0, len(steps))}
	cursor := start
	var at time.Duration

	for i, step := range steps {
		trace, err := s.Synthesize(Request{
			Target: step.Target,
			Start:  &cursor,
			Click:  step.Click,
		})
		if err != nil {
			return nil, fmt.Errorf("motion: session step %d: %w", i, err)
		}

		sess.Steps = append(sess.Steps, schemas.SessionTrace{Trace: trace, StartAt: at})
		at += trace.Duration() + s.idleGap()
		cursor = trace.Trajectory.End()
	}

	s.logger.Debug("session composed",
		zap.Int("steps", len(sess.Steps)),
		zap.Duration("duration", sess.Duration()),
	)
	return sess, nil
}

// idleGap samples the think time between session steps. The ex-Gaussian
// form, a Gaussian core with an exponential tail, reproduces the
// long-tailed pauses humans leave between discrete actions.
func (s *Synthesizer) idleGap() time.Duration {
	core := distuv.Normal{Mu: s.cfg.IdleMeanMs, Sigma: s.cfg.IdleStdDevMs, Src: s.rng}.Rand()
	tail := distuv.Exponential{Rate: 1 / s.cfg.IdleTailMs, Src: s.rng}.Rand()
	ms := clampFloat(core+tail, s.cfg.IdleMinMs, s.cfg.IdleMaxMs)
	return s.msDuration(ms)
}
