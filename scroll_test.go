package folio

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestSmoothScrollAdaptiveLerp(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		want   float64
	}{
		// 1000 px away saturates the range: 0.32 of the gap.
		{"far", 1000, 320},
		// 10 px away: lerp 0.06 + 0.26*0.02 = 0.0652, rounded to hundredths.
		{"near", 10, 0.65},
		// Under half a pixel snaps.
		{"snap", 0.4, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSmoothScroll(3000, 500)
			s.SetTarget(tt.target)
			s.Update(1.0 / 60)
			assertNear(t, "Offset", s.Offset(), tt.want)
		})
	}
}

func TestSmoothScrollConverges(t *testing.T) {
	s := NewSmoothScroll(3000, 500)
	s.SetTarget(1200)
	prev := 0.0
	for i := 0; i < 600 && !s.Settled(); i++ {
		s.Update(1.0 / 60)
		if s.Offset() < prev {
			t.Fatalf("offset went backwards at frame %d: %v < %v", i, s.Offset(), prev)
		}
		prev = s.Offset()
	}
	if !s.Settled() || s.Offset() != 1200 {
		t.Errorf("Offset = %v settled=%v, want 1200 settled", s.Offset(), s.Settled())
	}
}

func TestSmoothScrollClamps(t *testing.T) {
	s := NewSmoothScroll(2000, 500)
	s.SetTarget(5000)
	if s.Target() != 1500 {
		t.Errorf("Target = %v, want 1500", s.Target())
	}
	s.SetTarget(-10)
	if s.Target() != 0 {
		t.Errorf("Target = %v, want 0", s.Target())
	}
	s.SetTarget(math.NaN())
	if s.Target() != 0 {
		t.Errorf("Target = %v, want 0 for NaN", s.Target())
	}

	s.Jump(1500)
	s.SetExtent(1000, 500)
	if s.Offset() != 500 || s.Target() != 500 {
		t.Errorf("after shrinking: Offset=%v Target=%v, want 500", s.Offset(), s.Target())
	}
}

func TestSmoothScrollContentShorterThanViewport(t *testing.T) {
	s := NewSmoothScroll(300, 500)
	s.ScrollBy(100)
	s.Update(1)
	if s.Offset() != 0 || s.MaxOffset() != 0 || s.Fraction() != 0 {
		t.Errorf("Offset=%v Max=%v Fraction=%v, want zeros", s.Offset(), s.MaxOffset(), s.Fraction())
	}
}

func TestSmoothScrollTo(t *testing.T) {
	s := NewSmoothScroll(3000, 500)
	s.ScrollTo(1000, 1, ease.Linear)
	if !s.Animating() {
		t.Fatal("ScrollTo did not start")
	}
	s.Update(0.5)
	if math.Abs(s.Target()-500) > 0.5 {
		t.Errorf("Target mid-animation = %v, want ~500", s.Target())
	}
	s.Update(0.5)
	if s.Animating() {
		t.Error("ScrollTo still running after its duration")
	}
	if math.Abs(s.Target()-1000) > 1e-3 {
		t.Errorf("Target = %v, want 1000", s.Target())
	}

	s.ScrollTo(0, 1, nil)
	s.SetTarget(700)
	if s.Animating() {
		t.Error("SetTarget should cancel ScrollTo")
	}
}

func TestSmoothScrollProgress(t *testing.T) {
	s := NewSmoothScroll(3000, 500)
	tests := []struct {
		offset, start, end, want float64
	}{
		{0, 400, 1400, 0},
		{400, 400, 1400, 0},
		{900, 400, 1400, 0.5},
		{1400, 400, 1400, 1},
		{2000, 400, 1400, 1},
		{500, 500, 500, 1},
		{499, 500, 500, 0},
	}
	for _, tt := range tests {
		s.Jump(tt.offset)
		if got := s.Progress(tt.start, tt.end); math.Abs(got-tt.want) > epsilon {
			t.Errorf("offset %v: Progress(%v, %v) = %v, want %v", tt.offset, tt.start, tt.end, got, tt.want)
		}
	}
}
