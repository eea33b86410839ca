// Package motionpath builds a smooth composite curve through an ordered set
// of marker targets and maps a scalar progress value onto it.
//
// A [Curve] chains one cubic segment from a fixed origin to the first target
// and one between every consecutive pair of targets. Progress in [0, 1] is
// measured along arclength, so equal progress steps move the traveling point
// equal distances regardless of how the control points bunch up.
//
// A [Controller] owns a curve plus the markers it was built from and turns
// progress updates into [TraversalState] snapshots: the traveling point, the
// markers currently in range and the monotonic set of markers passed so far.
//
// Geometry (segments, evaluation, arclength) comes from gg.
package motionpath

import (
	"math"
	"sort"

	"github.com/gogpu/gg"
)

// Point is a location in the container's coordinate space.
type Point = gg.Point

// Vec is a direction, used for the tangent at the traveling point.
type Vec = gg.Vec2

// sample is one entry of the arclength lookup table.
type sample struct {
	seg int
	t   float64
	s   float64 // cumulative chord length from the curve start
}

// Curve is a single continuous path of cubic segments. It is immutable; a
// layout change builds a new one.
type Curve struct {
	origin   Point
	segments []gg.CubicBez
	path     *gg.Path
	length   float64
	lut      []sample
}

// Build constructs the curve from origin through points in order.
// An empty points slice, or any non-finite coordinate, yields an empty curve
// positioned at origin.
func Build(origin Point, points []Point, opts Options) *Curve {
	opts = opts.withDefaults()
	c := &Curve{origin: origin, path: gg.NewPath()}
	if len(points) == 0 || !finite(origin) {
		return c
	}
	for _, p := range points {
		if !finite(p) {
			return c
		}
	}

	c.path.MoveTo(origin.X, origin.Y)
	prev := origin
	for i, p := range points {
		fx, fy, skew := opts.ControlFraction, opts.ControlFraction, opts.ControlSkew
		if i == 0 {
			fx, fy, skew = opts.LeadWidth, opts.LeadHeight, opts.LeadSkew
		}
		seg := segment(prev, p, fx, fy, skew)
		c.segments = append(c.segments, seg)
		c.path.CubicTo(seg.P1.X, seg.P1.Y, seg.P2.X, seg.P2.Y, seg.P3.X, seg.P3.Y)
		prev = p
	}

	c.length = c.path.Length(opts.Accuracy)
	c.buildTable(opts.Samples)
	return c
}

// segment returns the cubic from a to b. The first control point swings away
// from a on one side and the second approaches b from the other, so each
// segment is an S-bend and consecutive segments join without a kink.
func segment(a, b Point, fx, fy, skew float64) gg.CubicBez {
	w := math.Abs(b.X-a.X) * fx
	h := math.Abs(b.Y-a.Y) * fy
	return gg.NewCubicBez(
		a,
		gg.Pt(a.X-w, a.Y+h*skew),
		gg.Pt(b.X+w, b.Y-h*skew),
		b,
	)
}

func (c *Curve) buildTable(perSegment int) {
	c.lut = make([]sample, 0, len(c.segments)*perSegment+1)
	c.lut = append(c.lut, sample{seg: 0, t: 0, s: 0})
	var s float64
	for i, seg := range c.segments {
		prev := seg.Eval(0)
		for k := 1; k <= perSegment; k++ {
			t := float64(k) / float64(perSegment)
			p := seg.Eval(t)
			s += prev.Distance(p)
			c.lut = append(c.lut, sample{seg: i, t: t, s: s})
			prev = p
		}
	}
}

// Empty reports whether the curve has no segments.
func (c *Curve) Empty() bool {
	return c == nil || len(c.segments) == 0
}

// Origin returns the curve's start point.
func (c *Curve) Origin() Point {
	if c == nil {
		return Point{}
	}
	return c.origin
}

// Length returns the total arclength, computed once at build time.
func (c *Curve) Length() float64 {
	if c == nil {
		return 0
	}
	return c.length
}

// Segments returns the cubic segments in traversal order. The returned
// slice MUST NOT be mutated.
func (c *Curve) Segments() []gg.CubicBez {
	if c == nil {
		return nil
	}
	return c.segments
}

// Path returns the curve as a gg path for stroking.
func (c *Curve) Path() *gg.Path {
	if c == nil {
		return gg.NewPath()
	}
	return c.path
}

// End returns the last point of the curve, or the origin when empty.
func (c *Curve) End() Point {
	if c.Empty() {
		return c.Origin()
	}
	return c.segments[len(c.segments)-1].P3
}

// locate maps progress to a segment index and local parameter.
func (c *Curve) locate(progress float64) (int, float64) {
	progress = Clamp01(progress)
	total := c.lut[len(c.lut)-1].s
	if total == 0 {
		return len(c.segments) - 1, progress
	}
	target := progress * total
	i := sort.Search(len(c.lut), func(i int) bool { return c.lut[i].s >= target })
	if i == 0 {
		return 0, 0
	}
	if i >= len(c.lut) {
		last := c.lut[len(c.lut)-1]
		return last.seg, last.t
	}
	lo, hi := c.lut[i-1], c.lut[i]
	frac := 0.0
	if hi.s > lo.s {
		frac = (target - lo.s) / (hi.s - lo.s)
	}
	// A sample at t=1 ends its segment; the previous entry may belong to the
	// prior segment's end, which is the same point as t=0 of this one.
	loT := lo.t
	if lo.seg != hi.seg {
		loT = 0
	}
	return hi.seg, loT + (hi.t-loT)*frac
}

// PointAt returns the position and tangent at arclength fraction progress.
// Progress is clamped to [0, 1]. An empty curve yields its origin and a zero
// tangent.
func (c *Curve) PointAt(progress float64) (Point, Vec) {
	if c.Empty() {
		return c.Origin(), Vec{}
	}
	seg, t := c.locate(progress)
	s := c.segments[seg]
	return s.Eval(t), s.Tangent(t)
}

// Prefix returns the portion of the curve from its start up to progress as a
// new path. It is used to draw the trail behind the traveling point.
func (c *Curve) Prefix(progress float64) *gg.Path {
	p := gg.NewPath()
	if c.Empty() || progress <= 0 {
		return p
	}
	seg, t := c.locate(progress)
	p.MoveTo(c.origin.X, c.origin.Y)
	for i := 0; i < seg; i++ {
		s := c.segments[i]
		p.CubicTo(s.P1.X, s.P1.Y, s.P2.X, s.P2.Y, s.P3.X, s.P3.Y)
	}
	if t > 0 {
		s := c.segments[seg].Subsegment(0, t)
		p.CubicTo(s.P1.X, s.P1.Y, s.P2.X, s.P2.Y, s.P3.X, s.P3.Y)
	}
	return p
}

// Polyline flattens the first progress fraction of the curve into points
// no further than tolerance from the true curve.
func (c *Curve) Polyline(progress, tolerance float64) []Point {
	return c.Prefix(progress).Flatten(tolerance)
}

// Clamp01 clamps v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
