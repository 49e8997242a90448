package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xkilldash9x/pointerforge/api/schemas"
)

func TestVec2Normalize(t *testing.T) {
	assert.InDelta(t, 1.0, vec2{X: 3, Y: 4}.normalize().mag(), 1e-12)
	assert.Equal(t, vec2{}, vec2{}.normalize(), "the zero vector has no direction")
	assert.Equal(t, vec2{}, vec2{X: 1e-12, Y: 0}.normalize(), "sub-threshold magnitudes stay zero")
}

func TestVec2Limit(t *testing.T) {
	v := vec2{X: 30, Y: 40}
	capped := v.limit(5)
	assert.InDelta(t, 5.0, capped.mag(), 1e-12)
	assert.InDelta(t, v.X/v.Y, capped.X/capped.Y, 1e-12, "limiting preserves direction")

	small := vec2{X: 1, Y: 1}
	assert.Equal(t, small, small.limit(5), "vectors inside the cap pass through untouched")
}

func TestVec2Perp(t *testing.T) {
	v := vec2{X: 1, Y: 0}
	p := v.perp()
	assert.Equal(t, vec2{X: 0, Y: 1}, p)
	assert.Zero(t, v.X*p.X+v.Y*p.Y, "perpendicular means zero dot product")
}

func TestLerpExtrapolates(t *testing.T) {
	a := vec2{X: 0, Y: 0}
	b := vec2{X: 10, Y: 20}
	assert.Equal(t, a, lerp(a, b, 0))
	assert.Equal(t, b, lerp(a, b, 1))
	assert.Equal(t, vec2{X: 5, Y: 10}, lerp(a, b, 0.5))
	assert.Equal(t, vec2{X: 15, Y: 30}, lerp(a, b, 1.5))
}

func TestPointConversionRoundTrip(t *testing.T) {
	p := schemas.Point{X: 12.5, Y: -7.25}
	assert.Equal(t, p, fromPoint(p).point())
}
