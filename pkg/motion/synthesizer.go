// Package motion synthesizes time-stamped 2D pointer trajectories and
// click sequences that approximate human pointer behavior. It produces
// data only: no device, browser, or network surface is touched. Typical
// consumers are UI test harnesses that replay the synthesized traces
// through their own event dispatchers.
package motion

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/google/uuid"
	"github.com/xkilldash9x/pointerforge/api/schemas"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"
)

// Standard Perlin noise parameters.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = int32(3)
)

// Synthesizer runs the fixed pipeline: geometry, timing, jitter, click
// sequencing. One instance owns one random source and is not safe for
// concurrent use; give each goroutine its own instance.
type Synthesizer struct {
	cfg      Config
	logger   *zap.Logger
	rng      *rand.Rand
	noiseX   *perlin.Perlin
	noiseY   *perlin.Perlin
	gapNoise *pinkNoise
}

// Request describes one synthesis call.
type Request struct {
	// Target is the region the pointer must finish inside. Required.
	Target schemas.Region

	// Start overrides the configured origin when non-nil.
	Start *schemas.Point

	// Click selects the gesture performed at the target. Empty uses the
	// configured default mode.
	Click schemas.ClickMode

	// Speed and Randomness override the session persona when positive.
	Speed      float64
	Randomness float64
}

// NewSynthesizer creates a Synthesizer with the given configuration. A nil
// logger disables logging. When cfg.Rng is nil a time-seeded source is
// built, so distinct instances produce distinct traces.
func NewSynthesizer(cfg Config, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}

	rng := cfg.Rng
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	}

	cfg.normalize()
	cfg.FinalizeSessionPersona(rng)

	s := &Synthesizer{
		cfg:    cfg,
		logger: logger,
		rng:    rng,
		// Noise seeds derive from the session source so a fixed seed
		// reproduces the drift exactly.
		noiseX:   perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, int64(rng.Uint64())),
		noiseY:   perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, int64(rng.Uint64())),
		gapNoise: newPinkNoise(rng, 12),
	}

	logger.Debug("motion persona finalized",
		zap.Float64("speed", cfg.Speed),
		zap.Float64("randomness", cfg.Randomness),
		zap.Float64("fitts_a", cfg.FittsA),
		zap.Float64("fitts_b", cfg.FittsB),
	)
	return s
}

// NewSeeded creates a fully deterministic Synthesizer from a fixed seed.
// Two instances built from the same seed and configuration synthesize
// bit-identical traces for identical requests.
func NewSeeded(seed uint64, cfg Config, logger *zap.Logger) *Synthesizer {
	cfg.Rng = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	return NewSynthesizer(cfg, logger)
}

// Synthesize produces one complete trace: a trajectory from the start
// point into the target region, and the click gesture performed there.
func (s *Synthesizer) Synthesize(req Request) (*schemas.Trace, error) {
	start := s.cfg.Origin
	if req.Start != nil {
		start = *req.Start
	}
	if err := validateGeometry(start, req.Target); err != nil {
		return nil, err
	}

	speed := s.cfg.Speed
	if req.Speed > 0 {
		speed = clampFloat(req.Speed, 0.25, 4.0)
	}
	randomness := s.cfg.Randomness
	if req.Randomness > 0 {
		randomness = clampFloat(req.Randomness, 0.05, 1.0)
	}
	mode := req.Click
	if mode == "" {
		mode = s.cfg.ClickMode
	}

	end := s.pickEndPoint(req.Target)
	path := buildControlPath(start, end, randomness, s.rng)

	var traj schemas.Trajectory
	if len(path) == 1 {
		traj = s.dwellTrajectory(start, end)
	} else {
		plan := s.planPhases(path.length(), speed)
		samples := s.buildSchedule(plan)
		samples = s.injectMicroCorrections(samples)
		traj = s.perturbSamples(samples, path, end, randomness)
	}

	clicks, err := s.sequenceClicks(mode, traj.End(), traj.Duration())
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewRandomFromReader(rngReader{rng: s.rng})
	if err != nil {
		return nil, fmt.Errorf("motion: generating trace id: %w", err)
	}

	trace := &schemas.Trace{
		ID:         id,
		Start:      start,
		Target:     req.Target,
		Trajectory: traj,
		Clicks:     clicks,
	}

	s.logger.Debug("trace synthesized",
		zap.String("trace_id", id.String()),
		zap.Float64("distance", start.Dist(end)),
		zap.Int("waypoints", len(traj)),
		zap.Int("click_events", len(clicks)),
		zap.Duration("duration", trace.Duration()),
	)
	return trace, nil
}

// pickEndPoint samples the exact landing point inside the target region.
// Coordinates follow a truncated Gaussian centered on the region's center
// so landings cluster near the middle without ever sitting exactly on it
// every time, then clamp into a small inset to keep off the edges.
func (s *Synthesizer) pickEndPoint(target schemas.Region) schemas.Point {
	margin := math.Min(target.Width, target.Height) * 0.05
	inner := target.Inset(margin)
	center := inner.Center()
	if inner.Width <= 0 || inner.Height <= 0 {
		return center
	}

	x := distuv.Normal{Mu: center.X, Sigma: inner.Width / 6, Src: s.rng}.Rand()
	y := distuv.Normal{Mu: center.Y, Sigma: inner.Height / 6, Src: s.rng}.Rand()
	return inner.Clamp(schemas.Point{X: x, Y: y})
}

// uniform samples from [min, max). Equal bounds return min.
func (s *Synthesizer) uniform(min, max float64) float64 {
	if max <= min {
		return min
	}
	return distuv.Uniform{Min: min, Max: max, Src: s.rng}.Rand()
}

func (s *Synthesizer) gauss(mean, stdDev float64) float64 {
	if stdDev <= 0 {
		return mean
	}
	return distuv.Normal{Mu: mean, Sigma: stdDev, Src: s.rng}.Rand()
}

// rngReader adapts the session source to io.Reader so trace IDs stay
// reproducible under a fixed seed.
type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}
