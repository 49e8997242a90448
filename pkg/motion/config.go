// pkg/motion/config.go
package motion

import (
	"math/rand/v2"
	"time"

	"github.com/xkilldash9x/pointerforge/api/schemas"
)

// Config holds the parameters defining how trajectories are synthesized.
// Numeric options outside their documented bounds are clamped silently by
// normalize; out-of-range configuration is never an error.
type Config struct {
	// Rng seeds the whole pipeline. When nil the synthesizer builds its
	// own time-seeded source; supply a fixed source for reproducible runs.
	Rng *rand.Rand `json:"-" yaml:"-" mapstructure:"-"`

	// Movement Persona
	SpeedMean        float64 `json:"speed_mean" yaml:"speed_mean" mapstructure:"speed_mean"`
	SpeedStdDev      float64 `json:"speed_std_dev" yaml:"speed_std_dev" mapstructure:"speed_std_dev"`
	RandomnessMean   float64 `json:"randomness_mean" yaml:"randomness_mean" mapstructure:"randomness_mean"`
	RandomnessStdDev float64 `json:"randomness_std_dev" yaml:"randomness_std_dev" mapstructure:"randomness_std_dev"`

	// Fitts Timing Parameters (milliseconds)
	FittsAMean          float64 `json:"fitts_a_mean" yaml:"fitts_a_mean" mapstructure:"fitts_a_mean"`
	FittsAStdDev        float64 `json:"fitts_a_std_dev" yaml:"fitts_a_std_dev" mapstructure:"fitts_a_std_dev"`
	FittsBMean          float64 `json:"fitts_b_mean" yaml:"fitts_b_mean" mapstructure:"fitts_b_mean"`
	FittsBStdDev        float64 `json:"fitts_b_std_dev" yaml:"fitts_b_std_dev" mapstructure:"fitts_b_std_dev"`
	DurationSpreadSigma float64 `json:"duration_spread_sigma" yaml:"duration_spread_sigma" mapstructure:"duration_spread_sigma"`

	// Duration And Sampling Bounds
	MinDuration      time.Duration `json:"min_duration" yaml:"min_duration" mapstructure:"min_duration"`
	MaxDuration      time.Duration `json:"max_duration" yaml:"max_duration" mapstructure:"max_duration"`
	SampleIntervalMs float64       `json:"sample_interval_ms" yaml:"sample_interval_ms" mapstructure:"sample_interval_ms"`
	SampleGammaShape float64       `json:"sample_gamma_shape" yaml:"sample_gamma_shape" mapstructure:"sample_gamma_shape"`
	MaxSamples       int           `json:"max_samples" yaml:"max_samples" mapstructure:"max_samples"`

	// Jitter And Tremor
	PerlinAmplitudeMean     float64 `json:"perlin_amplitude_mean" yaml:"perlin_amplitude_mean" mapstructure:"perlin_amplitude_mean"`
	PerlinAmplitudeStdDev   float64 `json:"perlin_amplitude_std_dev" yaml:"perlin_amplitude_std_dev" mapstructure:"perlin_amplitude_std_dev"`
	TremorStrengthMean      float64 `json:"tremor_strength_mean" yaml:"tremor_strength_mean" mapstructure:"tremor_strength_mean"`
	TremorStrengthStdDev    float64 `json:"tremor_strength_std_dev" yaml:"tremor_strength_std_dev" mapstructure:"tremor_strength_std_dev"`
	MaxDeviationPx          float64 `json:"max_deviation_px" yaml:"max_deviation_px" mapstructure:"max_deviation_px"`
	JitterFloor             float64 `json:"jitter_floor" yaml:"jitter_floor" mapstructure:"jitter_floor"`
	JitterWindowPx          float64 `json:"jitter_window_px" yaml:"jitter_window_px" mapstructure:"jitter_window_px"`
	MicroCorrectionChance   float64 `json:"micro_correction_chance" yaml:"micro_correction_chance" mapstructure:"micro_correction_chance"`
	MicroCorrectionRadiusPx float64 `json:"micro_correction_radius_px" yaml:"micro_correction_radius_px" mapstructure:"micro_correction_radius_px"`

	// Hesitation And Overshoot
	HesitationProbability   float64 `json:"hesitation_probability" yaml:"hesitation_probability" mapstructure:"hesitation_probability"`
	HesitationMinMs         float64 `json:"hesitation_min_ms" yaml:"hesitation_min_ms" mapstructure:"hesitation_min_ms"`
	HesitationMaxMs         float64 `json:"hesitation_max_ms" yaml:"hesitation_max_ms" mapstructure:"hesitation_max_ms"`
	OvershootProbability    float64 `json:"overshoot_probability" yaml:"overshoot_probability" mapstructure:"overshoot_probability"`
	OvershootMinDistancePx  float64 `json:"overshoot_min_distance_px" yaml:"overshoot_min_distance_px" mapstructure:"overshoot_min_distance_px"`
	OvershootReachMin       float64 `json:"overshoot_reach_min" yaml:"overshoot_reach_min" mapstructure:"overshoot_reach_min"`
	OvershootReachMax       float64 `json:"overshoot_reach_max" yaml:"overshoot_reach_max" mapstructure:"overshoot_reach_max"`
	OvershootReturnMeanMs   float64 `json:"overshoot_return_mean_ms" yaml:"overshoot_return_mean_ms" mapstructure:"overshoot_return_mean_ms"`
	OvershootReturnStdDevMs float64 `json:"overshoot_return_std_dev_ms" yaml:"overshoot_return_std_dev_ms" mapstructure:"overshoot_return_std_dev_ms"`

	// Clicking Behavior
	ClickMode        schemas.ClickMode `json:"click_mode" yaml:"click_mode" mapstructure:"click_mode"`
	PressDelayMinMs  float64           `json:"press_delay_min_ms" yaml:"press_delay_min_ms" mapstructure:"press_delay_min_ms"`
	PressDelayMaxMs  float64           `json:"press_delay_max_ms" yaml:"press_delay_max_ms" mapstructure:"press_delay_max_ms"`
	DwellMeanMs      float64           `json:"dwell_mean_ms" yaml:"dwell_mean_ms" mapstructure:"dwell_mean_ms"`
	DwellStdDevMs    float64           `json:"dwell_std_dev_ms" yaml:"dwell_std_dev_ms" mapstructure:"dwell_std_dev_ms"`
	DwellMinMs       float64           `json:"dwell_min_ms" yaml:"dwell_min_ms" mapstructure:"dwell_min_ms"`
	DwellMaxMs       float64           `json:"dwell_max_ms" yaml:"dwell_max_ms" mapstructure:"dwell_max_ms"`
	DoubleGapMinMs   float64           `json:"double_gap_min_ms" yaml:"double_gap_min_ms" mapstructure:"double_gap_min_ms"`
	DoubleGapMaxMs   float64           `json:"double_gap_max_ms" yaml:"double_gap_max_ms" mapstructure:"double_gap_max_ms"`
	DoubleClickGapMs float64           `json:"double_click_gap_ms" yaml:"double_click_gap_ms" mapstructure:"double_click_gap_ms"`
	HoldMinMs        float64           `json:"hold_min_ms" yaml:"hold_min_ms" mapstructure:"hold_min_ms"`
	HoldMaxMs        float64           `json:"hold_max_ms" yaml:"hold_max_ms" mapstructure:"hold_max_ms"`

	// Session Idle Gaps (ex-Gaussian think time between session steps)
	IdleMeanMs   float64 `json:"idle_mean_ms" yaml:"idle_mean_ms" mapstructure:"idle_mean_ms"`
	IdleStdDevMs float64 `json:"idle_std_dev_ms" yaml:"idle_std_dev_ms" mapstructure:"idle_std_dev_ms"`
	IdleTailMs   float64 `json:"idle_tail_ms" yaml:"idle_tail_ms" mapstructure:"idle_tail_ms"`
	IdleMinMs    float64 `json:"idle_min_ms" yaml:"idle_min_ms" mapstructure:"idle_min_ms"`
	IdleMaxMs    float64 `json:"idle_max_ms" yaml:"idle_max_ms" mapstructure:"idle_max_ms"`

	// Origin is the start point used when a request does not supply one.
	Origin schemas.Point `json:"origin" yaml:"origin" mapstructure:"origin"`

	// Instance Parameters, fixed per session by FinalizeSessionPersona.
	// Never populated from configuration files.
	Speed           float64 `json:"-" yaml:"-" mapstructure:"-"`
	Randomness      float64 `json:"-" yaml:"-" mapstructure:"-"`
	FittsA          float64 `json:"-" yaml:"-" mapstructure:"-"`
	FittsB          float64 `json:"-" yaml:"-" mapstructure:"-"`
	PerlinAmplitude float64 `json:"-" yaml:"-" mapstructure:"-"`
	TremorStrength  float64 `json:"-" yaml:"-" mapstructure:"-"`
}

// DefaultConfig returns a configuration representing an average user.
func DefaultConfig() Config {
	return Config{
		SpeedMean: 1.0, SpeedStdDev: 0.12,
		RandomnessMean: 0.5, RandomnessStdDev: 0.1,
		FittsAMean: 100.0, FittsAStdDev: 15.0,
		FittsBMean: 120.0, FittsBStdDev: 20.0,
		DurationSpreadSigma: 0.18,
		MinDuration:         150 * time.Millisecond,
		MaxDuration:         2500 * time.Millisecond,
		SampleIntervalMs:    7.8,
		SampleGammaShape:    3.5,
		MaxSamples:          600,
		PerlinAmplitudeMean: 2.5, PerlinAmplitudeStdDev: 0.5,
		TremorStrengthMean: 0.5, TremorStrengthStdDev: 0.1,
		MaxDeviationPx:          14.0,
		JitterFloor:             0.15,
		JitterWindowPx:          90.0,
		MicroCorrectionChance:   0.05,
		MicroCorrectionRadiusPx: 5.0,
		HesitationProbability:   0.15,
		HesitationMinMs:         50.0,
		HesitationMaxMs:         200.0,
		OvershootProbability:    0.15,
		OvershootMinDistancePx:  120.0,
		OvershootReachMin:       1.02,
		OvershootReachMax:       1.06,
		OvershootReturnMeanMs:   110.0,
		OvershootReturnStdDevMs: 30.0,
		ClickMode:               schemas.ClickSingle,
		PressDelayMinMs:         50.0,
		PressDelayMaxMs:         150.0,
		DwellMeanMs:             70.0,
		DwellStdDevMs:           18.0,
		DwellMinMs:              25.0,
		DwellMaxMs:              160.0,
		DoubleGapMinMs:          55.0,
		DoubleGapMaxMs:          130.0,
		DoubleClickGapMs:        500.0,
		HoldMinMs:               500.0,
		HoldMaxMs:               1500.0,
		IdleMeanMs:              420.0,
		IdleStdDevMs:            140.0,
		IdleTailMs:              260.0,
		IdleMinMs:               120.0,
		IdleMaxMs:               2400.0,
	}
}

// normalize clamps every numeric option into its working range. The clamp
// is silent so that a slightly out-of-range configuration degrades to the
// nearest usable one instead of failing the whole synthesis.
func (c *Config) normalize() {
	if c.SpeedMean <= 0 {
		c.SpeedMean = 1.0
	}
	c.SpeedStdDev = clampFloat(c.SpeedStdDev, 0, c.SpeedMean)
	c.RandomnessMean = clampFloat(c.RandomnessMean, 0, 1)
	c.RandomnessStdDev = clampFloat(c.RandomnessStdDev, 0, 0.5)

	c.HesitationProbability = clampFloat(c.HesitationProbability, 0, 1)
	c.OvershootProbability = clampFloat(c.OvershootProbability, 0, 1)
	c.MicroCorrectionChance = clampFloat(c.MicroCorrectionChance, 0, 1)

	if c.MinDuration < 20*time.Millisecond {
		c.MinDuration = 20 * time.Millisecond
	}
	if c.MaxDuration < c.MinDuration {
		c.MaxDuration = c.MinDuration
	}
	if c.SampleIntervalMs < 2 {
		c.SampleIntervalMs = 2
	}
	if c.SampleGammaShape < 1 {
		c.SampleGammaShape = 1
	}
	if c.MaxSamples < 16 {
		c.MaxSamples = 16
	}

	if c.MaxDeviationPx < 1 {
		c.MaxDeviationPx = 1
	}
	c.JitterFloor = clampFloat(c.JitterFloor, 0, 1)
	if c.JitterWindowPx < 1 {
		c.JitterWindowPx = 1
	}
	c.MicroCorrectionRadiusPx = clampFloat(c.MicroCorrectionRadiusPx, 0, c.MaxDeviationPx)

	if c.HesitationMinMs < 0 {
		c.HesitationMinMs = 0
	}
	if c.HesitationMaxMs < c.HesitationMinMs {
		c.HesitationMaxMs = c.HesitationMinMs
	}
	if c.OvershootMinDistancePx < 0 {
		c.OvershootMinDistancePx = 0
	}
	// Reach below 1 would undershoot the target instead of passing it.
	if c.OvershootReachMin < 1.005 {
		c.OvershootReachMin = 1.005
	}
	if c.OvershootReachMax < c.OvershootReachMin {
		c.OvershootReachMax = c.OvershootReachMin
	}
	if c.OvershootReturnMeanMs < 20 {
		c.OvershootReturnMeanMs = 20
	}
	if c.OvershootReturnStdDevMs < 0 {
		c.OvershootReturnStdDevMs = 0
	}

	if c.ClickMode == "" {
		c.ClickMode = schemas.ClickSingle
	}
	if c.PressDelayMinMs < 0 {
		c.PressDelayMinMs = 0
	}
	if c.PressDelayMaxMs <= c.PressDelayMinMs {
		c.PressDelayMaxMs = c.PressDelayMinMs + 1
	}
	if c.DwellMinMs < 5 {
		c.DwellMinMs = 5
	}
	if c.DwellMaxMs <= c.DwellMinMs {
		c.DwellMaxMs = c.DwellMinMs + 1
	}
	c.DwellMeanMs = clampFloat(c.DwellMeanMs, c.DwellMinMs, c.DwellMaxMs)
	if c.DwellStdDevMs < 0 {
		c.DwellStdDevMs = 0
	}
	if c.DoubleGapMinMs < 10 {
		c.DoubleGapMinMs = 10
	}
	if c.DoubleGapMaxMs <= c.DoubleGapMinMs {
		c.DoubleGapMaxMs = c.DoubleGapMinMs + 1
	}
	// The double-click threshold must leave room for a full dwell plus the
	// shortest inter-click gap, or the second press could never qualify.
	if floor := c.DwellMaxMs + c.DoubleGapMinMs + 20; c.DoubleClickGapMs < floor {
		c.DoubleClickGapMs = floor
	}
	if c.HoldMinMs < 50 {
		c.HoldMinMs = 50
	}
	if c.HoldMaxMs <= c.HoldMinMs {
		c.HoldMaxMs = c.HoldMinMs + 1
	}

	if c.IdleMinMs < 0 {
		c.IdleMinMs = 0
	}
	if c.IdleMaxMs < c.IdleMinMs {
		c.IdleMaxMs = c.IdleMinMs
	}
	if c.IdleTailMs <= 0 {
		c.IdleTailMs = 1
	}
	if c.IdleStdDevMs < 0 {
		c.IdleStdDevMs = 0
	}

	if !c.Origin.Finite() {
		c.Origin = schemas.Point{}
	}
}

// FinalizeSessionPersona fixes the per-session instance parameters by
// sampling each from its configured distribution. Sampled values are
// bounded so an unlucky draw cannot stall or degenerate the simulation.
func (c *Config) FinalizeSessionPersona(rng *rand.Rand) {
	c.Rng = rng
	c.Speed = sampleGaussian(rng, c.SpeedMean, c.SpeedStdDev)
	c.Randomness = sampleGaussian(rng, c.RandomnessMean, c.RandomnessStdDev)
	c.FittsA = sampleGaussian(rng, c.FittsAMean, c.FittsAStdDev)
	c.FittsB = sampleGaussian(rng, c.FittsBMean, c.FittsBStdDev)
	c.PerlinAmplitude = sampleGaussian(rng, c.PerlinAmplitudeMean, c.PerlinAmplitudeStdDev)
	c.TremorStrength = sampleGaussian(rng, c.TremorStrengthMean, c.TremorStrengthStdDev)

	c.Speed = clampFloat(c.Speed, 0.25, 4.0)
	c.Randomness = clampFloat(c.Randomness, 0.05, 1.0)
	c.FittsA = clampFloat(c.FittsA, 30.0, 400.0)
	c.FittsB = clampFloat(c.FittsB, 40.0, 400.0)
	c.PerlinAmplitude = clampFloat(c.PerlinAmplitude, 0.2, c.MaxDeviationPx)
	c.TremorStrength = clampFloat(c.TremorStrength, 0.05, c.MaxDeviationPx/2)
}

// sampleGaussian samples a value from a Gaussian distribution.
func sampleGaussian(rng *rand.Rand, mean, stdDev float64) float64 {
	if rng == nil {
		return mean
	}
	return mean + rng.NormFloat64()*stdDev
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		d = lo
	}
	if d > hi {
		d = hi
	}
	return d
}
