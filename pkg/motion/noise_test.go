package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinkNoiseDeterministic(t *testing.T) {
	a := newPinkNoise(testRng(9), 12)
	b := newPinkNoise(testRng(9), 12)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestPinkNoiseBounded(t *testing.T) {
	p := newPinkNoise(testRng(10), 12)
	bound := math.Sqrt(12)
	for i := 0; i < 1000; i++ {
		assert.LessOrEqual(t, math.Abs(p.Next()), bound)
	}
}

func TestPinkNoiseStepsAreLocal(t *testing.T) {
	// Only one source refreshes per step, which bounds how far consecutive
	// samples can jump. That locality is what separates pink from white.
	p := newPinkNoise(testRng(11), 12)
	maxStep := 2.0 / math.Sqrt(12)

	prev := p.Next()
	for i := 0; i < 1000; i++ {
		cur := p.Next()
		assert.LessOrEqual(t, math.Abs(cur-prev), maxStep+1e-12)
		prev = cur
	}
}

func TestPinkNoiseDefaultSourceCount(t *testing.T) {
	p := newPinkNoise(testRng(12), 0)
	require.Len(t, p.values, 12)
}
