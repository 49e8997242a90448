package schemas

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// -- Pointer Geometry Schemas --

// Point is an absolute coordinate pair in the synthetic pointer plane.
// The plane uses screen conventions: X grows rightward, Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Finite reports whether both coordinates are real numbers (no NaN or Inf).
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Dist returns the Euclidean distance to another point.
func (p Point) Dist(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Region is an axis-aligned rectangle identifying a movement target.
type Region struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether the region has strictly positive dimensions and
// finite coordinates. A zero-value Region is not valid.
func (r Region) Valid() bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	for _, v := range [4]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Center returns the geometric center of the region.
func (r Region) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether the point lies inside the region. The boundary
// is inclusive on all four edges.
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Clamp returns the point moved to the nearest position inside the region.
// Points already inside are returned unchanged.
func (r Region) Clamp(p Point) Point {
	return Point{
		X: math.Min(math.Max(p.X, r.X), r.X+r.Width),
		Y: math.Min(math.Max(p.Y, r.Y), r.Y+r.Height),
	}
}

// Inset returns the region shrunk by the margin on every side. If the margin
// would invert the rectangle, the region collapses to its center.
func (r Region) Inset(margin float64) Region {
	if 2*margin >= r.Width || 2*margin >= r.Height {
		c := r.Center()
		return Region{X: c.X, Y: c.Y, Width: 0, Height: 0}
	}
	return Region{
		X:      r.X + margin,
		Y:      r.Y + margin,
		Width:  r.Width - 2*margin,
		Height: r.Height - 2*margin,
	}
}

// -- Pointer Event Schemas --

// PointerEventType identifies the kind of a synthesized pointer event.
type PointerEventType string

const (
	PointerMove    PointerEventType = "pointerMoved"
	PointerPress   PointerEventType = "pointerPressed"
	PointerRelease PointerEventType = "pointerReleased"
)

// PointerButton identifies which button a press or release refers to.
type PointerButton string

const (
	ButtonNone PointerButton = "none"
	ButtonLeft PointerButton = "left"
)

// ClickMode selects the click gesture appended at the end of a trajectory.
type ClickMode string

const (
	ClickSingle ClickMode = "single"
	ClickDouble ClickMode = "double"
	ClickHold   ClickMode = "hold"
)

// WaypointKind tags the pipeline stage that produced a waypoint. All
// waypoints share one shape; the tag is the only discriminator.
type WaypointKind string

const (
	KindNormal              WaypointKind = "normal"
	KindHesitation          WaypointKind = "hesitation"
	KindOvershootCorrection WaypointKind = "overshoot-correction"
	KindMicroCorrection     WaypointKind = "micro-correction"
)

// Waypoint is a single time-stamped cursor sample. At is the offset from
// the start of the owning trajectory and is never negative.
type Waypoint struct {
	Position Point         `json:"position"`
	At       time.Duration `json:"at"`
	Kind     WaypointKind  `json:"kind,omitempty"`
}

// Trajectory is an ordered series of waypoints with non-decreasing
// timestamps. The first waypoint sits at the movement origin (up to jitter)
// and the final waypoint lies inside the target region.
type Trajectory []Waypoint

// Duration returns the timestamp of the final waypoint, or zero for an
// empty trajectory.
func (t Trajectory) Duration() time.Duration {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].At
}

// End returns the final waypoint position, or the zero Point when empty.
func (t Trajectory) End() Point {
	if len(t) == 0 {
		return Point{}
	}
	return t[len(t)-1].Position
}

// ClickEvent is a button transition at a fixed position. Type is always
// PointerPress or PointerRelease.
type ClickEvent struct {
	Type       PointerEventType `json:"type"`
	Position   Point            `json:"position"`
	At         time.Duration    `json:"at"`
	Button     PointerButton    `json:"button"`
	ClickCount int              `json:"clickCount"`
}

// ClickSequence is the ordered press/release pattern appended to a
// trajectory. Presses and releases alternate, starting with a press.
type ClickSequence []ClickEvent

// Duration returns the timestamp of the final click event, or zero.
func (c ClickSequence) Duration() time.Duration {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1].At
}

// PointerEvent is the flattened on-the-wire view of a trace element, used
// for replay and for downstream encoders.
type PointerEvent struct {
	Type       PointerEventType `json:"type"`
	Position   Point            `json:"position"`
	At         time.Duration    `json:"at"`
	Button     PointerButton    `json:"button"`
	ClickCount int              `json:"clickCount,omitempty"`
}

// -- Trace Schema --

// Trace is one complete synthesized interaction: the movement toward a
// target plus the click gesture performed there. A returned Trace is
// immutable; all timestamps are offsets from the same origin.
type Trace struct {
	ID         uuid.UUID     `json:"id"`
	Start      Point         `json:"start"`
	Target     Region        `json:"target"`
	Trajectory Trajectory    `json:"trajectory"`
	Clicks     ClickSequence `json:"clicks"`
}

// Duration returns the offset of the last event in the trace.
func (t *Trace) Duration() time.Duration {
	d := t.Trajectory.Duration()
	if c := t.Clicks.Duration(); c > d {
		d = c
	}
	return d
}

// Events returns the merged, time-ordered event stream: every waypoint as a
// PointerMove followed by the click transitions. Click timestamps always
// trail the final waypoint, so a simple append preserves ordering.
func (t *Trace) Events() []PointerEvent {
	events := make([]PointerEvent, 0, len(t.Trajectory)+len(t.Clicks))
	for _, wp := range t.Trajectory {
		events = append(events, PointerEvent{
			Type:     PointerMove,
			Position: wp.Position,
			At:       wp.At,
			Button:   ButtonNone,
		})
	}
	for _, ce := range t.Clicks {
		events = append(events, PointerEvent{
			Type:       ce.Type,
			Position:   ce.Position,
			At:         ce.At,
			Button:     ce.Button,
			ClickCount: ce.ClickCount,
		})
	}
	return events
}
