package motionpath

import (
	"testing"

	"github.com/gogpu/gg"
)

func scenarioMarkers() []Marker {
	return []Marker{
		{ID: 1, Target: gg.Pt(100, 100)},
		{ID: 2, Target: gg.Pt(300, 100)},
		{ID: 3, Target: gg.Pt(300, 300)},
	}
}

func scenarioController(opts Options) *Controller {
	return NewController(Size{Width: 400, Height: 400}, gg.Pt(50, 50), scenarioMarkers(), opts)
}

func TestTraversalScenario(t *testing.T) {
	c := scenarioController(DefaultOptions())

	s := c.Update(0)
	if len(s.Passed) != 0 {
		t.Fatalf("Update(0).Passed = %v, want empty", s.Passed)
	}
	if s.Active != nil {
		t.Errorf("Update(0).Active = %d, want nil", *s.Active)
	}

	s = c.Update(0.5)
	if !s.IsPassed(1) {
		t.Errorf("Update(0.5).Passed = %v, want marker 1 included", s.Passed)
	}

	s = c.Update(1)
	for _, id := range []int{1, 2, 3} {
		if !s.IsPassed(id) {
			t.Errorf("Update(1).Passed = %v, missing %d", s.Passed, id)
		}
	}
	if id, ok := s.ActiveID(); !ok || id != 3 {
		t.Errorf("Update(1).Active = %v, %v, want 3", id, ok)
	}
}

func TestTraversalJumpToEnd(t *testing.T) {
	c := scenarioController(DefaultOptions())
	s := c.Update(1)
	if len(s.Passed) != 3 {
		t.Fatalf("Passed = %v, want all three markers after a single jump", s.Passed)
	}
}

func TestPassedIsMonotonic(t *testing.T) {
	c := scenarioController(DefaultOptions())
	var prev []int
	for i := 0; i <= 100; i++ {
		s := c.Update(float64(i) / 100)
		for _, id := range prev {
			if !s.IsPassed(id) {
				t.Fatalf("progress %v: marker %d dropped from passed set %v", s.Progress, id, s.Passed)
			}
		}
		prev = s.Passed
	}
}

func TestPassedSurvivesScrollingBack(t *testing.T) {
	c := scenarioController(DefaultOptions())
	c.Update(1)
	s := c.Update(0.1)
	if len(s.Passed) != 3 {
		t.Errorf("Passed after scrolling back = %v, want all three", s.Passed)
	}
	if s.Progress != 0.1 {
		t.Errorf("Progress = %v, want 0.1", s.Progress)
	}
}

func TestEndOfPathForcesLastMarker(t *testing.T) {
	// A tiny threshold keeps proximity from firing, so only the end rule can
	// pass the last marker.
	opts := DefaultOptions()
	opts.Threshold = 1e-9
	c := scenarioController(opts)

	s := c.Update(0.99)
	if s.IsPassed(3) {
		t.Fatalf("marker 3 passed before the end threshold: %v", s.Passed)
	}
	for _, p := range []float64{0.995, 1} {
		s = c.Update(p)
		if !s.IsPassed(3) {
			t.Errorf("Update(%v): marker 3 not passed, got %v", p, s.Passed)
		}
		if id, ok := s.ActiveID(); !ok || id != 3 {
			t.Errorf("Update(%v): Active = %v, %v, want 3", p, id, ok)
		}
	}
}

func TestActiveIsNearestInRange(t *testing.T) {
	markers := []Marker{
		{ID: 10, Target: gg.Pt(0, 100)},
		{ID: 20, Target: gg.Pt(0, 160)},
	}
	c := NewController(Size{Width: 200, Height: 400}, gg.Pt(0, 0), markers, DefaultOptions())
	// Advance until the point sits at the first marker.
	var s TraversalState
	for i := 1; i <= 1000; i++ {
		s = c.Update(float64(i) / 1000)
		if s.Point.Distance(markers[0].Target) < 1 {
			break
		}
	}
	id, ok := s.ActiveID()
	if !ok || id != 10 {
		t.Fatalf("Active = %v, %v, want 10 (both in range, 10 nearest)", id, ok)
	}
	if !s.IsPassed(20) {
		t.Errorf("marker 20 is in range and should be passed: %v", s.Passed)
	}
}

func TestActiveNilWhenOutOfRange(t *testing.T) {
	markers := []Marker{{ID: 1, Target: gg.Pt(0, 1000)}}
	c := NewController(Size{Width: 100, Height: 1000}, gg.Pt(0, 0), markers, DefaultOptions())
	s := c.Update(0.3)
	if s.Active != nil {
		t.Errorf("Active = %d, want nil", *s.Active)
	}
}

func TestStrictOrderBlocksLaterMarkers(t *testing.T) {
	// Marker 2 sits right next to the origin; proximity order would pass it
	// first, strict order has to wait for marker 1.
	markers := []Marker{
		{ID: 1, Target: gg.Pt(0, 600)},
		{ID: 2, Target: gg.Pt(0, 60)},
	}
	size := Size{Width: 100, Height: 800}

	loose := NewController(size, gg.Pt(0, 0), markers, DefaultOptions())
	if s := loose.Update(0.05); !s.IsPassed(2) {
		t.Fatalf("proximity order: marker 2 should pass early, got %v", s.Passed)
	}

	opts := DefaultOptions()
	opts.StrictOrder = true
	strict := NewController(size, gg.Pt(0, 0), markers, opts)
	if s := strict.Update(0.05); s.IsPassed(2) {
		t.Fatalf("strict order: marker 2 passed before marker 1: %v", s.Passed)
	}
	s := strict.Update(1)
	if !s.IsPassed(1) || !s.IsPassed(2) {
		t.Errorf("strict order at end: Passed = %v, want both", s.Passed)
	}
}

func TestZeroSizeContainerIsNeutral(t *testing.T) {
	c := NewController(Size{}, gg.Pt(5, 5), scenarioMarkers(), DefaultOptions())
	if !c.Curve().Empty() {
		t.Fatal("expected empty curve for zero-size container")
	}
	s := c.Update(1)
	if len(s.Passed) != 0 || s.Active != nil {
		t.Errorf("neutral state expected, got Passed=%v Active=%v", s.Passed, s.Active)
	}
	if s.Point != gg.Pt(5, 5) {
		t.Errorf("Point = %v, want origin", s.Point)
	}
}

func TestNoMarkersIsNeutral(t *testing.T) {
	c := NewController(Size{Width: 100, Height: 100}, gg.Pt(0, 0), nil, DefaultOptions())
	s := c.Update(1)
	if len(s.Passed) != 0 || s.Active != nil {
		t.Errorf("neutral state expected, got Passed=%v Active=%v", s.Passed, s.Active)
	}
}

func TestRebuildResetsState(t *testing.T) {
	c := scenarioController(DefaultOptions())
	c.Update(1)
	c.Rebuild(Size{Width: 800, Height: 800}, gg.Pt(100, 100), []Marker{
		{ID: 7, Target: gg.Pt(600, 600)},
	})
	s := c.State()
	if len(s.Passed) != 0 || s.Active != nil || s.Progress != 0 {
		t.Fatalf("state after Rebuild = %+v, want neutral", s)
	}
	if len(c.Markers()) != 1 || c.Markers()[0].ID != 7 {
		t.Errorf("Markers() = %v, want the rebuilt set", c.Markers())
	}
	if s := c.Update(1); !s.IsPassed(7) || s.IsPassed(1) {
		t.Errorf("Passed after rebuild = %v, want only 7", s.Passed)
	}
}

func TestRebuildCopiesMarkers(t *testing.T) {
	markers := scenarioMarkers()
	c := scenarioController(DefaultOptions())
	c.Rebuild(Size{Width: 400, Height: 400}, gg.Pt(50, 50), markers)
	markers[0].ID = 99
	if c.Markers()[0].ID != 1 {
		t.Error("controller aliases the caller's marker slice")
	}
}

func TestOptionsDefaults(t *testing.T) {
	c := NewController(Size{Width: 1, Height: 1}, gg.Pt(0, 0), nil, Options{})
	got := c.Options()
	want := DefaultOptions()
	if got != want {
		t.Errorf("Options() = %+v, want %+v", got, want)
	}
}

func BenchmarkControllerUpdate_Scrolling(b *testing.B) {
	c := scenarioController(DefaultOptions())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Update(float64(i%1000) / 1000)
	}
}
