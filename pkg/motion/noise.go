// File: pkg/motion/noise.go
package motion

import (
	"math"
	"math/rand/v2"
)

// pinkNoise implements the stochastic Voss-McCartney algorithm for 1/f
// noise. Inter-sample cadence modulated by pink noise shows the long-range
// correlation of human motor timing, unlike plain white noise.
type pinkNoise struct {
	rng    *rand.Rand
	values []float64 // current value of each white noise source
	probs  []float64 // update probability per source
	sum    float64   // running sum of all sources
	scale  float64   // normalization factor
}

// newPinkNoise creates a generator backed by n white-noise sources. Twelve
// sources cover the frequency range relevant at millisecond cadences.
func newPinkNoise(rng *rand.Rand, n int) *pinkNoise {
	if n <= 0 {
		n = 12
	}
	p := &pinkNoise{
		rng:    rng,
		values: make([]float64, n),
		probs:  make([]float64, n),
		scale:  1.0 / math.Sqrt(float64(n)),
	}

	// Geometric update probabilities give each source its own octave.
	total := 0.0
	for i := range p.probs {
		p.probs[i] = math.Pow(2, float64(-i))
		total += p.probs[i]
	}
	for i := range p.probs {
		p.probs[i] /= total
	}

	for i := range p.values {
		p.values[i] = p.nextWhite()
		p.sum += p.values[i]
	}
	return p
}

func (p *pinkNoise) nextWhite() float64 {
	return p.rng.Float64()*2.0 - 1.0
}

// Next returns the next normalized pink noise sample.
func (p *pinkNoise) Next() float64 {
	// Pick one source to refresh, weighted by its octave probability.
	r := p.rng.Float64()
	cumulative := 0.0
	idx := len(p.values) - 1
	for i, prob := range p.probs {
		cumulative += prob
		if r < cumulative {
			idx = i
			break
		}
	}

	old := p.values[idx]
	p.values[idx] = p.nextWhite()
	p.sum += p.values[idx] - old

	return p.sum * p.scale
}
