// pkg/motion/vector.go
package motion

import (
	"math"

	"github.com/xkilldash9x/pointerforge/api/schemas"
)

// vec2 is the internal 2D vector used for curve and jitter arithmetic.
// Positions cross the package boundary as schemas.Point; vec2 keeps the
// math off the public surface.
type vec2 struct {
	X float64
	Y float64
}

func fromPoint(p schemas.Point) vec2 {
	return vec2{X: p.X, Y: p.Y}
}

func (v vec2) point() schemas.Point {
	return schemas.Point{X: v.X, Y: v.Y}
}

func (v vec2) add(other vec2) vec2 {
	return vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v vec2) sub(other vec2) vec2 {
	return vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v vec2) mul(scalar float64) vec2 {
	return vec2{X: v.X * scalar, Y: v.Y * scalar}
}

// magSq avoids the square root of mag, making it the cheaper choice for
// threshold comparisons.
func (v vec2) magSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// mag uses math.Hypot for numerical stability with very large or very
// small components.
func (v vec2) mag() float64 {
	return math.Hypot(v.X, v.Y)
}

// normalize returns the unit vector with the same direction, or the zero
// vector when the magnitude is too small to divide safely.
func (v vec2) normalize() vec2 {
	mag := v.mag()
	if mag < 1e-9 {
		return vec2{}
	}
	return v.mul(1.0 / mag)
}

// perp returns the counter-clockwise perpendicular. Paired with normalize
// it provides the lateral axis for control point displacement.
func (v vec2) perp() vec2 {
	return vec2{X: -v.Y, Y: v.X}
}

func (v vec2) dist(other vec2) float64 {
	return math.Hypot(v.X-other.X, v.Y-other.Y)
}

// limit caps the magnitude at max while preserving direction. Vectors
// already inside the cap are returned unchanged.
func (v vec2) limit(max float64) vec2 {
	magSq := v.magSq()
	if magSq > max*max && magSq > 0 {
		return v.mul(max / math.Sqrt(magSq))
	}
	return v
}

// lerp interpolates between a and b; t outside [0,1] extrapolates.
func lerp(a, b vec2, t float64) vec2 {
	return vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
