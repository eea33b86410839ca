package motionpath

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

var scenarioPoints = []Point{gg.Pt(100, 100), gg.Pt(300, 100), gg.Pt(300, 300)}

func TestBuildSegmentsJoinTargets(t *testing.T) {
	origin := gg.Pt(50, 50)
	c := Build(origin, scenarioPoints, DefaultOptions())

	segs := c.Segments()
	if len(segs) != len(scenarioPoints) {
		t.Fatalf("len(Segments) = %d, want %d", len(segs), len(scenarioPoints))
	}
	if segs[0].P0 != origin {
		t.Errorf("first segment starts at %v, want %v", segs[0].P0, origin)
	}
	for i, seg := range segs {
		if seg.P3 != scenarioPoints[i] {
			t.Errorf("segment %d ends at %v, want %v", i, seg.P3, scenarioPoints[i])
		}
		if i > 0 && seg.P0 != segs[i-1].P3 {
			t.Errorf("segment %d starts at %v, previous ended at %v", i, seg.P0, segs[i-1].P3)
		}
	}
	if c.End() != scenarioPoints[2] {
		t.Errorf("End() = %v, want %v", c.End(), scenarioPoints[2])
	}
}

func TestBuildControlPoints(t *testing.T) {
	c := Build(gg.Pt(0, 0), []Point{gg.Pt(100, 50), gg.Pt(300, 250)}, DefaultOptions())
	segs := c.Segments()

	// Lead segment: width 0.6*100, height 0.4*50, skew 0.3.
	lead := segs[0]
	if want := gg.Pt(-60, 6); !near(lead.P1, want) {
		t.Errorf("lead P1 = %v, want %v", lead.P1, want)
	}
	if want := gg.Pt(160, 44); !near(lead.P2, want) {
		t.Errorf("lead P2 = %v, want %v", lead.P2, want)
	}

	// Later segment: fraction 0.5 on dx=200 and dy=200, skew 0.4.
	next := segs[1]
	if want := gg.Pt(0, 90); !near(next.P1, want) {
		t.Errorf("P1 = %v, want %v", next.P1, want)
	}
	if want := gg.Pt(400, 210); !near(next.P2, want) {
		t.Errorf("P2 = %v, want %v", next.P2, want)
	}
}

func TestBuildLengthMatchesStraightLine(t *testing.T) {
	// Vertical segment: no horizontal offset, so the curve is a straight line.
	c := Build(gg.Pt(10, 0), []Point{gg.Pt(10, 200)}, DefaultOptions())
	if math.Abs(c.Length()-200) > 0.5 {
		t.Errorf("Length() = %f, want ~200", c.Length())
	}
}

func TestBuildEmpty(t *testing.T) {
	tests := []struct {
		name   string
		origin Point
		points []Point
	}{
		{"no points", gg.Pt(5, 5), nil},
		{"NaN point", gg.Pt(5, 5), []Point{gg.Pt(math.NaN(), 1)}},
		{"infinite origin", gg.Pt(math.Inf(1), 0), []Point{gg.Pt(1, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Build(tt.origin, tt.points, DefaultOptions())
			if !c.Empty() {
				t.Fatal("expected empty curve")
			}
			if c.Length() != 0 {
				t.Errorf("Length() = %f, want 0", c.Length())
			}
			pt, tan := c.PointAt(0.5)
			if pt != tt.origin && !math.IsInf(tt.origin.X, 0) {
				t.Errorf("PointAt = %v, want origin %v", pt, tt.origin)
			}
			if tan != (Vec{}) {
				t.Errorf("tangent = %v, want zero", tan)
			}
			if n := len(c.Prefix(1).Elements()); n != 0 {
				t.Errorf("Prefix has %d elements, want 0", n)
			}
		})
	}
}

func TestNilCurveIsEmpty(t *testing.T) {
	var c *Curve
	if !c.Empty() || c.Length() != 0 || c.Segments() != nil {
		t.Fatal("nil curve should behave as empty")
	}
	if pt, _ := c.PointAt(1); pt != (Point{}) {
		t.Errorf("PointAt on nil = %v, want zero", pt)
	}
}

func TestPointAtEndpoints(t *testing.T) {
	origin := gg.Pt(50, 50)
	c := Build(origin, scenarioPoints, DefaultOptions())

	if pt, _ := c.PointAt(0); !near(pt, origin) {
		t.Errorf("PointAt(0) = %v, want %v", pt, origin)
	}
	if pt, _ := c.PointAt(1); !near(pt, scenarioPoints[2]) {
		t.Errorf("PointAt(1) = %v, want %v", pt, scenarioPoints[2])
	}
	if pt, _ := c.PointAt(-3); !near(pt, origin) {
		t.Errorf("PointAt(-3) = %v, want clamp to %v", pt, origin)
	}
	if pt, _ := c.PointAt(7); !near(pt, scenarioPoints[2]) {
		t.Errorf("PointAt(7) = %v, want clamp to %v", pt, scenarioPoints[2])
	}
}

func TestPointAtIsArclengthUniform(t *testing.T) {
	// A straight vertical path: progress maps linearly onto y.
	c := Build(gg.Pt(0, 0), []Point{gg.Pt(0, 400)}, DefaultOptions())
	for _, p := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		pt, _ := c.PointAt(p)
		if math.Abs(pt.Y-400*p) > 1 {
			t.Errorf("PointAt(%v).Y = %f, want ~%f", p, pt.Y, 400*p)
		}
	}
}

func TestPointAtMonotonicDistanceTravelled(t *testing.T) {
	c := Build(gg.Pt(50, 50), scenarioPoints, DefaultOptions())
	prev, _ := c.PointAt(0)
	var travelled float64
	const steps = 200
	for i := 1; i <= steps; i++ {
		pt, _ := c.PointAt(float64(i) / steps)
		travelled += prev.Distance(pt)
		prev = pt
	}
	if math.Abs(travelled-c.Length())/c.Length() > 0.02 {
		t.Errorf("travelled %f, curve length %f", travelled, c.Length())
	}
}

func TestPrefixGrowsWithProgress(t *testing.T) {
	c := Build(gg.Pt(50, 50), scenarioPoints, DefaultOptions())
	if n := len(c.Prefix(0).Elements()); n != 0 {
		t.Fatalf("Prefix(0) has %d elements, want 0", n)
	}
	half := c.Prefix(0.5).Length(0.1)
	full := c.Prefix(1).Length(0.1)
	if !(half > 0 && half < full) {
		t.Errorf("prefix lengths half=%f full=%f, want 0 < half < full", half, full)
	}
	if math.Abs(full-c.Length()) > 1 {
		t.Errorf("Prefix(1) length %f, want ~%f", full, c.Length())
	}
	if pts := c.Polyline(1, 0.5); len(pts) < 2 {
		t.Errorf("Polyline returned %d points", len(pts))
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.3, 0.3}, {1, 1}, {2, 1}, {math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}
