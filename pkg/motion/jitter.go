package motion

import (
	"math"
	"time"

	"github.com/xkilldash9x/pointerforge/api/schemas"
)

// perlinFrequency scales the sample timestamp into the Perlin domain so
// the drift wanders at a few cycles per second.
const perlinFrequency = 0.8

// approachAttenuation scales jitter down as the cursor closes on the
// target, mirroring how hand tremor tightens during the homing phase.
// Exponential saturation keeps a configurable floor so the cursor never
// goes perfectly still.
func (s *Synthesizer) approachAttenuation(remainingPx float64) float64 {
	f := s.cfg.JitterFloor
	return f + (1-f)*(1-math.Exp(-remainingPx/s.cfg.JitterWindowPx))
}

// injectMicroCorrections splices brief deviate-and-return excursions into
// the sample timeline. Each excursion interpolates the curve parameter and
// timestamps of its host gap and carries its displacement in the bump
// field, so the jitter pass can enforce the deviation clamp on the sum of
// all perturbations.
func (s *Synthesizer) injectMicroCorrections(samples []timedSample) []timedSample {
	if len(samples) < 4 || s.cfg.MicroCorrectionChance <= 0 || s.cfg.MicroCorrectionRadiusPx <= 0 {
		return samples
	}

	const maxExcursions = 2
	out := make([]timedSample, 0, len(samples)+maxExcursions*4)
	inserted := 0

	for i, smp := range samples {
		out = append(out, smp)

		// Never between the last two samples: the terminal approach and
		// the terminal waypoint itself stay clean.
		if i == 0 || i >= len(samples)-2 || inserted >= maxExcursions {
			continue
		}
		if len(out)+6 > s.cfg.MaxSamples {
			continue
		}
		if s.rng.Float64() >= s.cfg.MicroCorrectionChance {
			continue
		}

		next := samples[i+1]
		gap := next.at - smp.at
		if gap < 8*time.Millisecond {
			continue
		}

		n := 2 + s.rng.IntN(3)
		dir := s.randomUnit()
		radius := (0.3 + 0.7*s.rng.Float64()) * s.cfg.MicroCorrectionRadiusPx
		for k := 1; k <= n; k++ {
			f := float64(k) / float64(n+1)
			out = append(out, timedSample{
				t:    smp.t + (next.t-smp.t)*f,
				at:   smp.at + time.Duration(f*float64(gap)),
				kind: schemas.KindMicroCorrection,
				// Sine envelope: deviate out, come back.
				bump: dir.mul(math.Sin(f*math.Pi) * radius),
			})
		}
		inserted++
	}
	return out
}

// perturbSamples maps scheduled samples onto the curve and applies the
// jitter stack: spatially correlated Perlin drift scaled by the randomness
// parameter, Gaussian tremor, and any micro-correction bump, all attenuated
// on approach and clamped to MaxDeviationPx from the ideal curve position.
// The terminal sample is exempt; it is pinned to the exact end point so the
// final waypoint and the click position coincide.
func (s *Synthesizer) perturbSamples(samples []timedSample, path ControlPath, end schemas.Point, randomness float64) schemas.Trajectory {
	endV := fromPoint(end)
	traj := make(schemas.Trajectory, len(samples))
	last := len(samples) - 1

	for i, smp := range samples {
		if i == last {
			traj[i] = schemas.Waypoint{Position: end, At: smp.at, Kind: smp.kind}
			continue
		}

		ideal := fromPoint(path.position(smp.t))
		atten := s.approachAttenuation(ideal.dist(endV))

		sec := smp.at.Seconds()
		drift := vec2{
			X: s.noiseX.Noise1D(sec * perlinFrequency),
			Y: s.noiseY.Noise1D(sec * perlinFrequency),
		}.mul(s.cfg.PerlinAmplitude * randomness)

		strength := s.cfg.TremorStrength * (0.5 + s.rng.Float64())
		tremor := vec2{
			X: s.rng.NormFloat64(),
			Y: s.rng.NormFloat64(),
		}.mul(strength)

		offset := drift.add(tremor).mul(atten).add(smp.bump).limit(s.cfg.MaxDeviationPx)
		traj[i] = schemas.Waypoint{
			Position: ideal.add(offset).point(),
			At:       smp.at,
			Kind:     smp.kind,
		}
	}
	return traj
}

// dwellTrajectory handles the degenerate start==end request: the cursor is
// already on target, so it rests in place for the minimum duration with
// only floor-level tremor.
func (s *Synthesizer) dwellTrajectory(start, end schemas.Point) schemas.Trajectory {
	total := s.cfg.MinDuration
	n := 3 + s.rng.IntN(3)

	traj := make(schemas.Trajectory, 0, n+2)
	traj = append(traj, schemas.Waypoint{Position: start, At: 0, Kind: schemas.KindNormal})

	anchor := fromPoint(end)
	for i := 1; i <= n; i++ {
		f := float64(i) / float64(n+1)
		strength := s.cfg.TremorStrength * s.cfg.JitterFloor
		off := vec2{
			X: s.rng.NormFloat64(),
			Y: s.rng.NormFloat64(),
		}.mul(strength).limit(s.cfg.MaxDeviationPx)
		traj = append(traj, schemas.Waypoint{
			Position: anchor.add(off).point(),
			At:       time.Duration(f * float64(total)),
			Kind:     schemas.KindNormal,
		})
	}

	traj = append(traj, schemas.Waypoint{Position: end, At: total, Kind: schemas.KindNormal})
	return traj
}

// randomUnit returns a unit vector with uniformly distributed direction.
func (s *Synthesizer) randomUnit() vec2 {
	angle := s.rng.Float64() * 2 * math.Pi
	return vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}
