package motion

import (
	"fmt"
	"time"

	"github.com/xkilldash9x/pointerforge/api/schemas"
)

// clickState tracks the button state machine while a gesture is sequenced.
type clickState uint8

const (
	stateIdle clickState = iota
	statePressed
	stateReleased
)

// clickBuilder accumulates press/release transitions at a fixed position,
// enforcing legal ordering. A gesture that would press while pressed or
// release while idle is rejected instead of emitting a malformed sequence.
type clickBuilder struct {
	state  clickState
	pos    schemas.Point
	events schemas.ClickSequence
}

func newClickBuilder(pos schemas.Point) *clickBuilder {
	return &clickBuilder{state: stateIdle, pos: pos}
}

func (b *clickBuilder) press(at time.Duration, count int) error {
	if b.state == statePressed {
		return fmt.Errorf("%w: press while button is already down", ErrInvalidClickMode)
	}
	b.state = statePressed
	b.events = append(b.events, schemas.ClickEvent{
		Type:       schemas.PointerPress,
		Position:   b.pos,
		At:         at,
		Button:     schemas.ButtonLeft,
		ClickCount: count,
	})
	return nil
}

func (b *clickBuilder) release(at time.Duration, count int) error {
	if b.state != statePressed {
		return fmt.Errorf("%w: release without a preceding press", ErrInvalidClickMode)
	}
	b.state = stateReleased
	b.events = append(b.events, schemas.ClickEvent{
		Type:       schemas.PointerRelease,
		Position:   b.pos,
		At:         at,
		Button:     schemas.ButtonLeft,
		ClickCount: count,
	})
	return nil
}

// sequenceClicks emits the click gesture for the requested mode at the
// trajectory's final position. Timestamps continue the trajectory's
// timeline: a settle delay first, then the press/release pattern.
func (s *Synthesizer) sequenceClicks(mode schemas.ClickMode, pos schemas.Point, arrivedAt time.Duration) (schemas.ClickSequence, error) {
	b := newClickBuilder(pos)
	at := arrivedAt + s.msDuration(s.uniform(s.cfg.PressDelayMinMs, s.cfg.PressDelayMaxMs))

	switch mode {
	case schemas.ClickSingle:
		if err := b.press(at, 1); err != nil {
			return nil, err
		}
		at += s.clickDwell()
		if err := b.release(at, 1); err != nil {
			return nil, err
		}

	case schemas.ClickDouble:
		firstPress := at
		if err := b.press(at, 1); err != nil {
			return nil, err
		}
		at += s.clickDwell()
		if err := b.release(at, 1); err != nil {
			return nil, err
		}

		gap := s.msDuration(s.uniform(s.cfg.DoubleGapMinMs, s.cfg.DoubleGapMaxMs))
		// The second press must land inside the double-click window
		// measured from the first press.
		window := s.msDuration(s.cfg.DoubleClickGapMs)
		if at+gap-firstPress >= window {
			gap = firstPress + window - at - 10*time.Millisecond
			if gap < time.Millisecond {
				gap = time.Millisecond
			}
		}
		at += gap
		if err := b.press(at, 2); err != nil {
			return nil, err
		}
		at += s.clickDwell()
		if err := b.release(at, 2); err != nil {
			return nil, err
		}

	case schemas.ClickHold:
		if err := b.press(at, 1); err != nil {
			return nil, err
		}
		dwell := s.msDuration(s.uniform(s.cfg.HoldMinMs, s.cfg.HoldMaxMs))
		if floor := s.msDuration(s.cfg.HoldMinMs); dwell < floor {
			dwell = floor
		}
		at += dwell
		if err := b.release(at, 1); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidClickMode, mode)
	}

	return b.events, nil
}

// clickDwell samples the press-to-release time of an ordinary click from a
// Gaussian, clamped into the configured band.
func (s *Synthesizer) clickDwell() time.Duration {
	ms := s.gauss(s.cfg.DwellMeanMs, s.cfg.DwellStdDevMs)
	return s.msDuration(clampFloat(ms, s.cfg.DwellMinMs, s.cfg.DwellMaxMs))
}

func (s *Synthesizer) msDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
