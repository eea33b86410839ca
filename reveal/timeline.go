package reveal

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Target receives animated states.
type Target interface {
	SetRevealState(s State)
}

// TargetFunc adapts a function to Target.
type TargetFunc func(State)

// SetRevealState calls f(s).
func (f TargetFunc) SetRevealState(s State) { f(s) }

// Motion describes one transition.
type Motion struct {
	// Delay before the transition starts, in seconds.
	Delay float64
	// Duration of one pass, in seconds.
	Duration float64
	// Ease shapes the pass. Nil means linear.
	Ease ease.TweenFunc
	// Yoyo plays the pass forward and then back once.
	Yoyo bool
}

// Animator runs transitions between states. onComplete, when non-nil, is
// called once after the last pass finishes.
type Animator interface {
	Animate(target Target, from, to State, m Motion, onComplete func())
}

// BackOut returns a back-out easing with the given overshoot.
func BackOut(overshoot float64) ease.TweenFunc {
	s := float32(overshoot)
	return func(t, b, c, d float32) float32 {
		t = t/d - 1
		return c*(t*t*((s+1)*t+s)+1) + b
	}
}

// minDuration keeps tweens from dividing by zero.
const minDuration = 1e-4

// track is one running transition.
type track struct {
	target     Target
	from, to   State
	opacity    *gween.Tween
	offset     *gween.Tween
	motion     Motion
	wait       float32
	reversed   bool
	onComplete func()
}

func newTrack(target Target, from, to State, m Motion, onComplete func()) *track {
	tr := &track{target: target, from: from, to: to, motion: m, onComplete: onComplete}
	if m.Delay > 0 {
		tr.wait = float32(m.Delay)
	}
	tr.start(from, to)
	return tr
}

func (tr *track) start(from, to State) {
	fn := tr.motion.Ease
	if fn == nil {
		fn = ease.Linear
	}
	d := float32(math.Max(tr.motion.Duration, minDuration))
	tr.opacity = gween.New(float32(from.Opacity), float32(to.Opacity), d, fn)
	tr.offset = gween.New(float32(from.OffsetY), float32(to.OffsetY), d, fn)
}

// advance moves the track by dt and reports whether it finished.
func (tr *track) advance(dt float32) bool {
	if tr.wait > 0 {
		tr.wait -= dt
		if tr.wait > 0 {
			return false
		}
		dt = -tr.wait
		tr.wait = 0
	}
	o, doneO := tr.opacity.Update(dt)
	y, doneY := tr.offset.Update(dt)
	tr.target.SetRevealState(State{Opacity: float64(o), OffsetY: float64(y)})
	if !doneO || !doneY {
		return false
	}
	if tr.motion.Yoyo && !tr.reversed {
		tr.reversed = true
		tr.start(tr.to, tr.from)
		return false
	}
	return true
}

// Timeline is an Animator backed by gween tweens. It does nothing on its own:
// call Update once per frame with the elapsed time.
type Timeline struct {
	tracks []*track
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Animate implements Animator. The target is set to from immediately so
// delayed units stay hidden until their turn.
func (tl *Timeline) Animate(target Target, from, to State, m Motion, onComplete func()) {
	if target == nil {
		return
	}
	target.SetRevealState(from)
	tl.tracks = append(tl.tracks, newTrack(target, from, to, m, onComplete))
}

// Update advances every track by dt seconds. Completion callbacks run after
// all tracks have advanced; transitions they start begin on the next Update.
func (tl *Timeline) Update(dt float32) {
	if len(tl.tracks) == 0 {
		return
	}
	var done []func()
	live := tl.tracks[:0]
	for _, tr := range tl.tracks {
		if tr.advance(dt) {
			if tr.onComplete != nil {
				done = append(done, tr.onComplete)
			}
			continue
		}
		live = append(live, tr)
	}
	for i := len(live); i < len(tl.tracks); i++ {
		tl.tracks[i] = nil
	}
	tl.tracks = live

	for _, fn := range done {
		fn()
	}
}

// Active returns the number of running transitions, delayed ones included.
func (tl *Timeline) Active() int {
	return len(tl.tracks)
}

// Clear drops every transition without completing it.
func (tl *Timeline) Clear() {
	tl.tracks = nil
}
