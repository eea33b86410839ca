package folio

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Smooth scroll tuning. The catch-up factor grows linearly from
// scrollMinLerp to scrollMaxLerp as the remaining distance goes from 0 to
// scrollLerpRange pixels.
const (
	scrollMinLerp   = 0.06
	scrollMaxLerp   = 0.32
	scrollLerpRange = 500.0
	scrollSnap      = 0.5
	scrollEpsilon   = 0.01
)

// SmoothScroll is a scroll proxy: input moves Target immediately and the
// visible Offset eases toward it once per frame. Offsets are in content
// pixels, 0 at the top, clamped to [0, ContentHeight-ViewportHeight].
type SmoothScroll struct {
	target  float64
	current float64
	offset  float64

	contentHeight  float64
	viewportHeight float64

	anim *gween.Tween
}

// NewSmoothScroll creates a scroll proxy for the given content and viewport
// heights.
func NewSmoothScroll(contentHeight, viewportHeight float64) *SmoothScroll {
	s := &SmoothScroll{}
	s.SetExtent(contentHeight, viewportHeight)
	return s
}

// SetExtent updates the scrollable extent and re-clamps both offsets.
func (s *SmoothScroll) SetExtent(contentHeight, viewportHeight float64) {
	s.contentHeight = math.Max(0, contentHeight)
	s.viewportHeight = math.Max(0, viewportHeight)
	s.target = s.clamp(s.target)
	s.current = s.clamp(s.current)
	s.offset = roundHundredths(s.current)
}

// MaxOffset returns the largest reachable offset.
func (s *SmoothScroll) MaxOffset() float64 {
	return math.Max(0, s.contentHeight-s.viewportHeight)
}

// ViewportHeight returns the viewport height.
func (s *SmoothScroll) ViewportHeight() float64 {
	return s.viewportHeight
}

// ContentHeight returns the content height.
func (s *SmoothScroll) ContentHeight() float64 {
	return s.contentHeight
}

// Target returns the offset the view is easing toward.
func (s *SmoothScroll) Target() float64 {
	return s.target
}

// Offset returns the visible offset, rounded to two decimals.
func (s *SmoothScroll) Offset() float64 {
	return s.offset
}

// SetTarget sets the destination offset. Any running ScrollTo is cancelled.
func (s *SmoothScroll) SetTarget(y float64) {
	s.anim = nil
	s.target = s.clamp(y)
}

// ScrollBy moves the destination by dy pixels.
func (s *SmoothScroll) ScrollBy(dy float64) {
	s.SetTarget(s.target + dy)
}

// Jump moves both target and visible offset to y with no easing.
func (s *SmoothScroll) Jump(y float64) {
	s.anim = nil
	s.target = s.clamp(y)
	s.current = s.target
	s.offset = roundHundredths(s.current)
}

// ScrollTo animates the destination to y over duration seconds. The visible
// offset still eases behind it. A nil easing is linear.
func (s *SmoothScroll) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	if duration <= 0 {
		s.SetTarget(y)
		return
	}
	s.anim = gween.New(float32(s.target), float32(s.clamp(y)), duration, easeFn)
}

// Animating reports whether a ScrollTo is running.
func (s *SmoothScroll) Animating() bool {
	return s.anim != nil
}

// Settled reports whether the visible offset has reached the target.
func (s *SmoothScroll) Settled() bool {
	return s.anim == nil && s.current == s.target
}

// Update advances the proxy by one frame.
func (s *SmoothScroll) Update(dt float64) {
	if s.anim != nil {
		v, done := s.anim.Update(float32(dt))
		s.target = s.clamp(float64(v))
		if done {
			s.anim = nil
		}
	}

	diff := s.target - s.current
	abs := math.Abs(diff)
	if abs < scrollSnap {
		s.current = s.target
	} else {
		t := math.Min(abs/scrollLerpRange, 1)
		s.current += diff * (scrollMinLerp + (scrollMaxLerp-scrollMinLerp)*t)
	}
	if math.Abs(s.current) < scrollEpsilon {
		s.current = 0
	}
	s.offset = roundHundredths(s.current)
}

// Progress maps the visible offset to [0, 1] between two trigger offsets:
// 0 at or before start, 1 at or after end. A non-positive span is a step at
// start.
func (s *SmoothScroll) Progress(start, end float64) float64 {
	if end <= start {
		if s.offset >= start {
			return 1
		}
		return 0
	}
	return math.Max(0, math.Min(1, (s.offset-start)/(end-start)))
}

// Fraction returns the visible offset as a fraction of MaxOffset.
func (s *SmoothScroll) Fraction() float64 {
	m := s.MaxOffset()
	if m == 0 {
		return 0
	}
	return s.offset / m
}

func (s *SmoothScroll) clamp(y float64) float64 {
	if math.IsNaN(y) {
		return 0
	}
	return math.Max(0, math.Min(y, s.MaxOffset()))
}

func roundHundredths(v float64) float64 {
	return math.Round(v*100) / 100
}
