package reveal

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Options configure a Scheduler and the entrance motion played from its
// plans.
type Options struct {
	// PerUnitDelay is the stagger between consecutive units, in seconds.
	PerUnitDelay float64
	// FastDelay is the stagger used by TriggerFast.
	FastDelay float64
	// Duration is the length of one unit's entrance.
	Duration float64
	// Overshoot is the back-out easing overshoot of the entrance.
	Overshoot float64
	// BobHeight and BobDuration shape the secondary bob played after a unit
	// lands. A zero height disables it.
	BobHeight, BobDuration float64
	// FlourishDuration is how long a draw-behind highlight takes to scale in.
	FlourishDuration float64
	// ReducedMotion skips decomposition: plans come back revealed with no
	// units.
	ReducedMotion bool
	// Attached reports whether a root is part of the render tree. Nil treats
	// every root as attached.
	Attached func(root *Fragment) bool
}

// DefaultOptions returns the standard jelly entrance.
func DefaultOptions() Options {
	return Options{
		PerUnitDelay:     0.035,
		FastDelay:        0.012,
		Duration:         0.5,
		Overshoot:        1.8,
		BobHeight:        6,
		BobDuration:      0.6,
		FlourishDuration: 0.7,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if !(o.PerUnitDelay > 0) {
		o.PerUnitDelay = d.PerUnitDelay
	}
	if !(o.FastDelay > 0) {
		o.FastDelay = d.FastDelay
	}
	if !(o.Duration > 0) {
		o.Duration = d.Duration
	}
	if !(o.Overshoot > 0) {
		o.Overshoot = d.Overshoot
	}
	if !(o.BobDuration > 0) {
		o.BobDuration = d.BobDuration
	}
	if !(o.FlourishDuration > 0) {
		o.FlourishDuration = d.FlourishDuration
	}
	return o
}

// Scheduler hands out reveal plans at most once per root. The played set is
// owned by the scheduler; fragments are never mutated.
//
// A Scheduler is not safe for concurrent use. It is driven from the frame
// loop like everything else in a scene.
type Scheduler struct {
	opts   Options
	played map[*Fragment]bool
}

// NewScheduler creates a scheduler. Zero-valued timing fields fall back to
// DefaultOptions.
func NewScheduler(opts Options) *Scheduler {
	return &Scheduler{opts: opts.withDefaults(), played: make(map[*Fragment]bool)}
}

// Options returns the effective options.
func (s *Scheduler) Options() Options {
	return s.opts
}

// SetReducedMotion switches the reduced-motion fallback for later triggers.
// Roots that already played are unaffected.
func (s *Scheduler) SetReducedMotion(reduced bool) {
	s.opts.ReducedMotion = reduced
}

// Played reports whether root has been triggered.
func (s *Scheduler) Played(root *Fragment) bool {
	return s.played[root]
}

// Trigger claims root and returns its plan. The second return is false when
// root was already claimed (or is nil), in which case the plan is empty and
// nothing should be scheduled.
//
// The root is marked played before any other work, so a root that is
// detached or has no content stays claimed and yields an unrevealed plan.
// A non-positive or NaN perUnitDelay uses the configured default.
func (s *Scheduler) Trigger(root *Fragment, baseDelay, perUnitDelay float64) (Plan, bool) {
	if root == nil || s.played[root] {
		return Plan{}, false
	}
	s.played[root] = true

	if s.opts.ReducedMotion {
		return Plan{Root: root, Revealed: true, Reduced: true}, true
	}
	if s.opts.Attached != nil && !s.opts.Attached(root) {
		return Plan{Root: root}, true
	}
	if !(perUnitDelay > 0) {
		perUnitDelay = s.opts.PerUnitDelay
	}
	if math.IsNaN(baseDelay) || baseDelay < 0 {
		baseDelay = 0
	}
	return Decompose(root, baseDelay, perUnitDelay), true
}

// TriggerFast is Trigger with the fast stagger.
func (s *Scheduler) TriggerFast(root *Fragment, baseDelay float64) (Plan, bool) {
	return s.Trigger(root, baseDelay, s.opts.FastDelay)
}

// Play schedules every unit of plan on a, resolving each unit's target with
// target. Units whose target is nil are skipped. When the options enable it,
// each unit bobs once after landing.
func Play(plan Plan, a Animator, target func(Unit) Target, opts Options) {
	opts = opts.withDefaults()
	entrance := Motion{Duration: opts.Duration, Ease: BackOut(opts.Overshoot)}
	bob := Motion{Duration: opts.BobDuration, Ease: ease.InOutSine, Yoyo: true}

	for _, u := range plan.Units {
		t := target(u)
		if t == nil {
			continue
		}
		m := entrance
		m.Delay = u.Delay
		var done func()
		if opts.BobHeight != 0 {
			to := u.To
			lift := State{Opacity: to.Opacity, OffsetY: to.OffsetY - opts.BobHeight}
			done = func() { a.Animate(t, to, lift, bob, nil) }
		}
		a.Animate(t, u.From, u.To, m, done)
	}
}
