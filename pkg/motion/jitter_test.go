package motion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/pointerforge/api/schemas"
)

func TestApproachAttenuation(t *testing.T) {
	s := newTestSynthesizer(t, 31, func(c *Config) {
		c.JitterFloor = 0.15
		c.JitterWindowPx = 90
	})

	assert.InDelta(t, 0.15, s.approachAttenuation(0), 1e-9, "on target, jitter bottoms out at the floor")
	assert.InDelta(t, 1.0, s.approachAttenuation(1e6), 1e-9, "far out, jitter is unattenuated")

	prev := 0.0
	for d := 0.0; d <= 600; d += 10 {
		v := s.approachAttenuation(d)
		assert.GreaterOrEqual(t, v, prev, "attenuation must grow with distance")
		assert.GreaterOrEqual(t, v, s.cfg.JitterFloor)
		assert.LessOrEqual(t, v, 1.0)
		prev = v
	}
}

func TestPerturbSamplesHonorsDeviationBound(t *testing.T) {
	s := newTestSynthesizer(t, 32, nil)

	start := schemas.Point{X: 0, Y: 0}
	end := schemas.Point{X: 640, Y: 480}
	path := buildControlPath(start, end, s.cfg.Randomness, s.rng)
	plan := s.planPhases(path.length(), s.cfg.Speed)
	samples := s.injectMicroCorrections(s.buildSchedule(plan))

	traj := s.perturbSamples(samples, path, end, s.cfg.Randomness)
	require.Len(t, traj, len(samples))

	for i, wp := range traj {
		ideal := path.position(samples[i].t)
		assert.LessOrEqual(t, wp.Position.Dist(ideal), s.cfg.MaxDeviationPx+1e-9,
			"waypoint %d strays past the deviation clamp", i)
		assert.Equal(t, samples[i].at, wp.At)
		assert.Equal(t, samples[i].kind, wp.Kind)
	}

	assert.Equal(t, end, traj[len(traj)-1].Position, "the terminal waypoint is pinned to the end point")
}

func TestPerturbSamplesWideWindowSuppressesJitter(t *testing.T) {
	// A zero floor with an enormous window attenuates everything to almost
	// nothing, leaving the waypoints on the ideal curve.
	s := newTestSynthesizer(t, 36, func(c *Config) {
		c.JitterFloor = 0
		c.JitterWindowPx = 1e9
		c.MicroCorrectionChance = 0
	})

	start := schemas.Point{X: 0, Y: 0}
	end := schemas.Point{X: 900, Y: 0}
	path := buildControlPath(start, end, 0, s.rng)
	plan := s.planPhases(path.length(), 1.0)
	samples := s.buildSchedule(plan)

	traj := s.perturbSamples(samples, path, end, s.cfg.Randomness)
	for i, wp := range traj {
		ideal := path.position(samples[i].t)
		assert.InDelta(t, 0, wp.Position.Dist(ideal), 1e-3, "waypoint %d", i)
	}
}

func TestJitterTightensOnApproach(t *testing.T) {
	var farSum, nearSum float64
	var farN, nearN int

	for seed := uint64(0); seed < 20; seed++ {
		s := newTestSynthesizer(t, 200+seed, func(c *Config) {
			c.HesitationProbability = 0
			c.OvershootProbability = 0
			c.MicroCorrectionChance = 0
		})
		start := schemas.Point{}
		end := schemas.Point{X: 1200, Y: 300}
		path := buildControlPath(start, end, s.cfg.Randomness, s.rng)
		plan := s.planPhases(path.length(), s.cfg.Speed)
		samples := s.buildSchedule(plan)
		traj := s.perturbSamples(samples, path, end, s.cfg.Randomness)

		for i := 0; i < len(traj)-1; i++ {
			ideal := path.position(samples[i].t)
			dev := traj[i].Position.Dist(ideal)
			switch remaining := ideal.Dist(end); {
			case remaining > 400:
				farSum += dev
				farN++
			case remaining < 50:
				nearSum += dev
				nearN++
			}
		}
	}

	require.Greater(t, farN, 50)
	require.Greater(t, nearN, 50)
	assert.Less(t, nearSum/float64(nearN), farSum/float64(farN),
		"tremor amplitude must shrink as the cursor closes on the target")
}

func TestJitterScalesWithRandomness(t *testing.T) {
	var tameSum, wildSum float64
	var n int

	for seed := uint64(0); seed < 10; seed++ {
		s := newTestSynthesizer(t, 300+seed, func(c *Config) {
			c.HesitationProbability = 0
			c.OvershootProbability = 0
			c.MicroCorrectionChance = 0
		})
		start := schemas.Point{}
		end := schemas.Point{X: 1000, Y: 400}
		path := buildControlPath(start, end, 0.5, s.rng)
		plan := s.planPhases(path.length(), 1.0)
		samples := s.buildSchedule(plan)

		tame := s.perturbSamples(samples, path, end, 0.05)
		wild := s.perturbSamples(samples, path, end, 1.0)

		for i := 0; i < len(samples)-1; i++ {
			ideal := path.position(samples[i].t)
			tameSum += tame[i].Position.Dist(ideal)
			wildSum += wild[i].Position.Dist(ideal)
			n++
		}
	}

	require.Greater(t, n, 100)
	assert.Less(t, tameSum/float64(n), wildSum/float64(n),
		"a precise persona must drift less than a casual one")
}

func TestInjectMicroCorrectionsSplicesExcursions(t *testing.T) {
	s := newTestSynthesizer(t, 33, func(c *Config) {
		c.MicroCorrectionChance = 1
		c.MicroCorrectionRadiusPx = 5
	})

	// Hand-built schedule with generous gaps so every interior slot
	// qualifies as a host.
	base := make([]timedSample, 0, 11)
	for i := 0; i <= 10; i++ {
		base = append(base, timedSample{
			t:  float64(i) / 10,
			at: time.Duration(i) * 40 * time.Millisecond,
		})
	}

	out := s.injectMicroCorrections(base)
	require.Greater(t, len(out), len(base), "chance 1 must splice in at least one excursion")

	var bumps int
	for i, smp := range out {
		if i > 0 {
			assert.GreaterOrEqual(t, smp.at, out[i-1].at, "splicing must keep time monotonic")
			assert.GreaterOrEqual(t, smp.t, out[i-1].t, "splicing must keep progress monotonic")
		}
		if smp.kind == schemas.KindMicroCorrection {
			bumps++
			assert.Greater(t, smp.bump.mag(), 0.0)
			assert.LessOrEqual(t, smp.bump.mag(), s.cfg.MicroCorrectionRadiusPx+1e-9)
		} else {
			assert.Equal(t, vec2{}, smp.bump)
		}
	}
	assert.GreaterOrEqual(t, bumps, 4, "two excursions of at least two points each")
	assert.LessOrEqual(t, bumps, 8, "at most two excursions of four points")
}

func TestInjectMicroCorrectionsLeavesShortSchedulesAlone(t *testing.T) {
	s := newTestSynthesizer(t, 37, func(c *Config) {
		c.MicroCorrectionChance = 1
	})

	short := []timedSample{
		{t: 0, at: 0},
		{t: 0.5, at: 50 * time.Millisecond},
		{t: 1, at: 100 * time.Millisecond},
	}
	assert.Equal(t, short, s.injectMicroCorrections(short))

	// Tight gaps leave no room for an excursion either.
	tight := make([]timedSample, 0, 11)
	for i := 0; i <= 10; i++ {
		tight = append(tight, timedSample{
			t:  float64(i) / 10,
			at: time.Duration(i) * 4 * time.Millisecond,
		})
	}
	assert.Equal(t, tight, s.injectMicroCorrections(tight))
}

func TestDwellTrajectoryRestsInPlace(t *testing.T) {
	s := newTestSynthesizer(t, 34, nil)

	at := schemas.Point{X: 250, Y: 140}
	traj := s.dwellTrajectory(at, at)

	require.GreaterOrEqual(t, len(traj), 5)
	assert.Equal(t, at, traj[0].Position)
	assert.Equal(t, time.Duration(0), traj[0].At)
	assert.Equal(t, at, traj[len(traj)-1].Position)
	assert.Equal(t, s.cfg.MinDuration, traj.Duration())

	for i := 1; i < len(traj); i++ {
		assert.Greater(t, traj[i].At, traj[i-1].At)
		assert.LessOrEqual(t, traj[i].Position.Dist(at), s.cfg.MaxDeviationPx+1e-9,
			"resting tremor stays inside the deviation clamp")
	}
}

func TestRandomUnitIsUnitLength(t *testing.T) {
	s := newTestSynthesizer(t, 35, nil)
	for i := 0; i < 50; i++ {
		assert.InDelta(t, 1.0, s.randomUnit().mag(), 1e-9)
	}
}
