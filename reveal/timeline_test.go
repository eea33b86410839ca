package reveal

import (
	"math"
	"testing"
)

// recorder is a Target that keeps every state it was given.
type recorder struct {
	states []State
}

func (r *recorder) SetRevealState(s State) { r.states = append(r.states, s) }

func (r *recorder) last() State { return r.states[len(r.states)-1] }

func (r *recorder) minOffset() float64 {
	m := math.Inf(1)
	for _, s := range r.states {
		m = math.Min(m, s.OffsetY)
	}
	return m
}

func nearState(a, b State) bool {
	return math.Abs(a.Opacity-b.Opacity) < 1e-4 && math.Abs(a.OffsetY-b.OffsetY) < 1e-4
}

func TestTimelineDelayThenLinear(t *testing.T) {
	tl := NewTimeline()
	rec := &recorder{}
	calls := 0
	tl.Animate(rec, Hidden, Shown, Motion{Delay: 0.25, Duration: 0.5}, func() { calls++ })

	if rec.last() != Hidden {
		t.Fatalf("initial state = %+v, want Hidden", rec.last())
	}

	tl.Update(0.125)
	if rec.last() != Hidden || len(rec.states) != 1 {
		t.Fatalf("state changed during delay: %+v", rec.states)
	}

	tl.Update(0.25) // 0.125 into the tween
	if want := (State{Opacity: 0.25, OffsetY: 18}); !nearState(rec.last(), want) {
		t.Errorf("mid state = %+v, want %+v", rec.last(), want)
	}
	if tl.Active() != 1 {
		t.Errorf("Active = %d, want 1", tl.Active())
	}

	tl.Update(0.5)
	if !nearState(rec.last(), Shown) {
		t.Errorf("final state = %+v, want Shown", rec.last())
	}
	if calls != 1 {
		t.Errorf("onComplete called %d times, want 1", calls)
	}
	if tl.Active() != 0 {
		t.Errorf("Active = %d, want 0", tl.Active())
	}

	tl.Update(1)
	if calls != 1 {
		t.Errorf("onComplete called again after finishing")
	}
}

func TestTimelineYoyo(t *testing.T) {
	tl := NewTimeline()
	rec := &recorder{}
	lifted := State{Opacity: 1, OffsetY: -6}
	tl.Animate(rec, Shown, lifted, Motion{Duration: 0.5, Yoyo: true}, nil)

	tl.Update(0.5)
	if !nearState(rec.last(), lifted) {
		t.Fatalf("after forward pass = %+v, want %+v", rec.last(), lifted)
	}
	if tl.Active() != 1 {
		t.Fatal("yoyo finished after one pass")
	}
	tl.Update(0.5)
	if !nearState(rec.last(), Shown) {
		t.Errorf("after return pass = %+v, want Shown", rec.last())
	}
	if tl.Active() != 0 {
		t.Errorf("Active = %d, want 0", tl.Active())
	}
}

func TestTimelineNilTarget(t *testing.T) {
	tl := NewTimeline()
	tl.Animate(nil, Hidden, Shown, Motion{Duration: 1}, nil)
	if tl.Active() != 0 {
		t.Error("nil target was scheduled")
	}
}

func TestTimelineClear(t *testing.T) {
	tl := NewTimeline()
	called := false
	tl.Animate(&recorder{}, Hidden, Shown, Motion{Duration: 1}, func() { called = true })
	tl.Clear()
	tl.Update(2)
	if called || tl.Active() != 0 {
		t.Error("Clear did not drop the transition")
	}
}

func TestPlayLandsEveryUnitAndBobs(t *testing.T) {
	plan := Decompose(Block(Text("ab")), 0, 0.035)
	recs := []*recorder{{}, {}}
	tl := NewTimeline()
	Play(plan, tl, func(u Unit) Target { return recs[u.Index] }, DefaultOptions())

	if tl.Active() != 2 {
		t.Fatalf("Active = %d, want 2", tl.Active())
	}
	for i := 0; i < 256; i++ {
		tl.Update(1.0 / 64)
	}
	if tl.Active() != 0 {
		t.Fatalf("Active = %d after 4s, want 0", tl.Active())
	}
	for i, r := range recs {
		if r.states[0] != Hidden {
			t.Errorf("unit %d first state = %+v, want Hidden", i, r.states[0])
		}
		if !nearState(r.last(), Shown) {
			t.Errorf("unit %d final state = %+v, want Shown", i, r.last())
		}
		if r.minOffset() > -6+1e-3 {
			t.Errorf("unit %d never bobbed: min offset %v", i, r.minOffset())
		}
	}
}

func TestPlaySkipsNilTargets(t *testing.T) {
	plan := Decompose(Block(Text("ab")), 0, 0.035)
	tl := NewTimeline()
	rec := &recorder{}
	Play(plan, tl, func(u Unit) Target {
		if u.Index == 0 {
			return nil
		}
		return rec
	}, DefaultOptions())
	if tl.Active() != 1 {
		t.Errorf("Active = %d, want 1", tl.Active())
	}
}

func TestPlayWithoutBob(t *testing.T) {
	plan := Decompose(Block(Text("a")), 0, 0.035)
	opts := DefaultOptions()
	opts.BobHeight = 0
	tl := NewTimeline()
	rec := &recorder{}
	Play(plan, tl, func(Unit) Target { return rec }, opts)
	tl.Update(0.5)
	if tl.Active() != 0 {
		t.Errorf("Active = %d, want 0 with bob disabled", tl.Active())
	}
}

func TestBackOut(t *testing.T) {
	fn := BackOut(1.8)
	if got := fn(0, 0, 1, 1); math.Abs(float64(got)) > 1e-6 {
		t.Errorf("BackOut(0) = %v, want 0", got)
	}
	if got := fn(1, 0, 1, 1); math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("BackOut(1) = %v, want 1", got)
	}
	if got := fn(0.7, 0, 1, 1); got <= 1 {
		t.Errorf("BackOut(0.7) = %v, want overshoot above 1", got)
	}
}

func TestTargetFunc(t *testing.T) {
	var got State
	var target Target = TargetFunc(func(s State) { got = s })
	target.SetRevealState(Shown)
	if got != Shown {
		t.Errorf("got %+v", got)
	}
}
