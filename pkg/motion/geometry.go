package motion

import (
	"fmt"
	"math/rand/v2"

	"github.com/xkilldash9x/pointerforge/api/schemas"
)

const (
	// Control point displacement scales, as fractions of the chord length.
	lateralCurveScale      = 0.2
	longitudinalCurveScale = 0.08

	// Movements shorter than this are treated as already on target.
	degenerateDistancePx = 1.0

	arcLengthSegments = 64
)

// ControlPath is the ordered control polygon of one movement: the start
// point, two or three interior control points, and the end point. A
// single-point path marks the degenerate start==end case.
type ControlPath []schemas.Point

// buildControlPath derives the control polygon for a movement from start
// to end. Interior points are pushed off the straight chord laterally and
// longitudinally, both displacements scaled by the randomness parameter
// and the chord length, so short precise movements stay nearly straight
// while long casual ones bow visibly.
func buildControlPath(start, end schemas.Point, randomness float64, rng *rand.Rand) ControlPath {
	s := fromPoint(start)
	e := fromPoint(end)
	chord := e.sub(s)
	dist := chord.mag()

	if dist < degenerateDistancePx {
		return ControlPath{start}
	}

	dir := chord.normalize()
	lat := dir.perp()

	interior := 2 + rng.IntN(2)
	path := make(ControlPath, 0, interior+2)
	path = append(path, start)
	for i := 1; i <= interior; i++ {
		f := float64(i) / float64(interior+1)
		base := lerp(s, e, f)
		lateral := (rng.Float64()*2 - 1) * randomness * dist * lateralCurveScale
		along := (rng.Float64()*2 - 1) * randomness * dist * longitudinalCurveScale
		p := base.add(lat.mul(lateral)).add(dir.mul(along))
		path = append(path, p.point())
	}
	path = append(path, end)
	return path
}

// position evaluates the Bezier curve defined by the path at parameter t
// using de Casteljau's algorithm. The endpoints are returned exactly at
// t=0 and t=1; values past 1 extrapolate the terminal approach, which the
// timing stage uses to sample overshoot.
func (cp ControlPath) position(t float64) schemas.Point {
	switch len(cp) {
	case 0:
		return schemas.Point{}
	case 1:
		return cp[0]
	}
	// Exact endpoints, independent of float rounding in the reduction.
	if t == 0 {
		return cp[0]
	}
	if t == 1 {
		return cp[len(cp)-1]
	}

	scratch := make([]vec2, len(cp))
	for i, p := range cp {
		scratch[i] = fromPoint(p)
	}
	for n := len(scratch) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			scratch[i] = lerp(scratch[i], scratch[i+1], t)
		}
	}
	return scratch[0].point()
}

// length approximates the arc length of the curve by chordal sampling.
func (cp ControlPath) length() float64 {
	if len(cp) < 2 {
		return 0
	}
	total := 0.0
	prev := fromPoint(cp[0])
	for i := 1; i <= arcLengthSegments; i++ {
		t := float64(i) / arcLengthSegments
		cur := fromPoint(cp.position(t))
		total += cur.dist(prev)
		prev = cur
	}
	return total
}

// validateGeometry rejects requests the pipeline cannot satisfy: a target
// region without positive area, or coordinates that are not real numbers.
func validateGeometry(start schemas.Point, target schemas.Region) error {
	if !target.Valid() {
		return fmt.Errorf("%w: target region must be finite with positive width and height, got %+v",
			ErrInvalidGeometry, target)
	}
	if !start.Finite() {
		return fmt.Errorf("%w: start point must be finite, got %+v", ErrInvalidGeometry, start)
	}
	return nil
}
