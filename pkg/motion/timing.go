package motion

import (
	"math"
	"sort"
	"time"

	"github.com/xkilldash9x/pointerforge/api/schemas"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// Assumed target width for the Fitts index of difficulty, in pixels.
	fittsTargetWidthPx = 30.0

	// Pink noise contribution to inter-sample gap length.
	gapNoiseGain = 0.25
)

// timedSample is one scheduled cursor sample before jitter: the curve
// parameter to evaluate, the wall-clock offset, and the pipeline stage tag.
// bump carries a pre-computed micro-correction displacement, zero for
// ordinary samples.
type timedSample struct {
	t    float64
	at   time.Duration
	kind schemas.WaypointKind
	bump vec2
}

// movementPlan carves one movement's clamped total duration into phases.
// moveDur + hesitation pauses + the overshoot return always sum to total,
// so the final waypoint lands exactly on the duration bound.
type movementPlan struct {
	total     time.Duration
	moveDur   time.Duration
	pauses    []pausePoint
	reach     float64
	returnDur time.Duration
}

type pausePoint struct {
	frac   float64
	length time.Duration
}

// computeEaseInOutCubic provides a smooth acceleration and deceleration
// profile for movement.
func computeEaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// movementDuration determines a realistic total movement time from a
// Fitts-style difficulty model, spread by a lognormal factor and scaled by
// the effective speed, then clamped to the configured bounds.
func (s *Synthesizer) movementDuration(pathLen, speed float64) time.Duration {
	id := math.Log2(1.0 + pathLen/fittsTargetWidthPx)
	mt := s.cfg.FittsA + s.cfg.FittsB*id

	spread := distuv.LogNormal{Mu: 0, Sigma: s.cfg.DurationSpreadSigma, Src: s.rng}.Rand()
	mt *= clampFloat(spread, 0.72, 1.38)
	mt /= speed

	d := time.Duration(mt * float64(time.Millisecond))
	return clampDuration(d, s.cfg.MinDuration, s.cfg.MaxDuration)
}

// planPhases decides, up front, everything that stretches a movement:
// whether it overshoots the target and by how much, and where the cursor
// hesitates along the way. Pauses and the corrective return are carved out
// of the clamped total so the trajectory never exceeds MaxDuration.
func (s *Synthesizer) planPhases(pathLen, speed float64) movementPlan {
	total := s.movementDuration(pathLen, speed)
	plan := movementPlan{total: total, reach: 1.0}
	budget := total

	if s.rng.Float64() < s.cfg.OvershootProbability && pathLen >= s.cfg.OvershootMinDistancePx {
		plan.reach = s.uniform(s.cfg.OvershootReachMin, s.cfg.OvershootReachMax)
		ret := time.Duration(s.gauss(s.cfg.OvershootReturnMeanMs, s.cfg.OvershootReturnStdDevMs) * float64(time.Millisecond))
		plan.returnDur = clampDuration(ret, 40*time.Millisecond, total/5)
		budget -= plan.returnDur
	}

	if s.rng.Float64() < s.cfg.HesitationProbability {
		n := 1 + s.rng.IntN(2)
		pauseBudget := total / 4
		var used time.Duration
		for i := 0; i < n; i++ {
			l := time.Duration(s.uniform(s.cfg.HesitationMinMs, s.cfg.HesitationMaxMs) * float64(time.Millisecond))
			if used+l > pauseBudget {
				break
			}
			used += l
			plan.pauses = append(plan.pauses, pausePoint{
				frac:   0.2 + 0.6*s.rng.Float64(),
				length: l,
			})
		}
		sort.Slice(plan.pauses, func(i, j int) bool {
			return plan.pauses[i].frac < plan.pauses[j].frac
		})
		budget -= used
	}

	plan.moveDur = budget
	return plan
}

// buildSchedule lays out the sample timeline for a planned movement.
// Inter-sample gaps are gamma distributed around the configured cadence
// and modulated by pink noise; progress through the curve is eased so the
// cursor accelerates out of the start and brakes into the target. The
// first sample is always (t=0, at=0) and the last exactly (t=1, at=total).
func (s *Synthesizer) buildSchedule(plan movementPlan) []timedSample {
	moveMs := float64(plan.moveDur) / float64(time.Millisecond)
	gamma := distuv.Gamma{
		Alpha: s.cfg.SampleGammaShape,
		Beta:  s.cfg.SampleGammaShape / s.cfg.SampleIntervalMs,
		Src:   s.rng,
	}

	// Room for the overshoot apex, corrective tail, and terminal sample.
	const tailReserve = 8

	samples := make([]timedSample, 0, int(moveMs/s.cfg.SampleIntervalMs)+tailReserve+1)
	samples = append(samples, timedSample{t: 0, at: 0, kind: schemas.KindNormal})

	pending := plan.pauses
	var pauseOffset time.Duration
	wall := 0.0
	minGap := s.cfg.SampleIntervalMs * 0.25

	for {
		gap := gamma.Rand() * (1 + gapNoiseGain*s.gapNoise.Next())
		if gap < minGap {
			gap = minGap
		}
		wall += gap
		if wall >= moveMs || len(samples) >= s.cfg.MaxSamples-tailReserve {
			break
		}

		frac := wall / moveMs
		kind := schemas.KindNormal
		for len(pending) > 0 && pending[0].frac <= frac {
			// The cursor rests here: the curve parameter holds while the
			// timestamp jumps by the pause length.
			pauseOffset += pending[0].length
			pending = pending[1:]
			kind = schemas.KindHesitation
		}

		samples = append(samples, timedSample{
			t:    computeEaseInOutCubic(frac) * plan.reach,
			at:   time.Duration(wall*float64(time.Millisecond)) + pauseOffset,
			kind: kind,
		})
	}

	if plan.reach > 1 {
		apexAt := plan.moveDur + pauseOffset
		samples = append(samples, timedSample{t: plan.reach, at: apexAt, kind: schemas.KindNormal})

		// Corrective sub-movement easing back from the apex to the target.
		k := 3 + s.rng.IntN(3)
		for i := 1; i < k; i++ {
			f := float64(i) / float64(k)
			samples = append(samples, timedSample{
				t:    plan.reach + (1.0-plan.reach)*computeEaseInOutCubic(f),
				at:   apexAt + time.Duration(f*float64(plan.returnDur)),
				kind: schemas.KindOvershootCorrection,
			})
		}
	}

	samples = append(samples, timedSample{t: 1, at: plan.total, kind: schemas.KindNormal})
	return samples
}
