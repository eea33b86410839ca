package folio

import (
	"errors"
	"testing"
)

func TestSceneResizeHooks(t *testing.T) {
	s := NewScene()
	var got [][2]float64
	remove := s.OnResize(func(w, h float64) { got = append(got, [2]float64{w, h}) })

	s.Resize(800, 600)
	s.Resize(800, 600)
	if len(got) != 1 || got[0] != [2]float64{800, 600} {
		t.Fatalf("hook calls = %v, want one (800, 600)", got)
	}
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Errorf("Size = (%v, %v)", w, h)
	}

	remove()
	s.Resize(1024, 768)
	if len(got) != 1 {
		t.Error("removed hook still ran")
	}
}

func TestSceneResizeUpdatesScrollExtent(t *testing.T) {
	s := NewScene()
	s.SetContentHeight(3000)
	s.Resize(800, 600)
	if got := s.Scroll().MaxOffset(); got != 2400 {
		t.Errorf("MaxOffset = %v, want 2400", got)
	}
	s.Resize(800, 1000)
	if got := s.Scroll().MaxOffset(); got != 2000 {
		t.Errorf("MaxOffset after resize = %v, want 2000", got)
	}
}

func TestScenePlayRemovesFinishedGroup(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	s.Root().AddChild(n)
	done := false
	g := TweenPosition(n, 10, 0, 0.1, nil)
	g.OnComplete = func() { done = true }
	s.Play(g)
	if s.Ticker().Len() != 1 {
		t.Fatal("Play did not register with the ticker")
	}
	for i := 0; i < 10; i++ {
		s.Step(1.0 / 60)
	}
	if !done || s.Ticker().Len() != 0 {
		t.Errorf("done=%v tickers=%d, want done with no tickers left", done, s.Ticker().Len())
	}
	if x, _ := n.LocalToWorld(0, 0); x != 10 {
		t.Errorf("world x = %v, want 10", x)
	}
}

func TestSceneStepOrder(t *testing.T) {
	s := NewScene()
	s.Resize(800, 600)
	s.SetContentHeight(2000)

	var order []string
	n := NewRect("block", 100, 100, ColorWhite)
	s.Root().AddChild(n)
	s.Ticker().Add(func(float64) { order = append(order, "ticker") })
	n.OnUpdate = func(float64) { order = append(order, "node") }
	s.Observer().Observe(n, func(*Node) { order = append(order, "observer") })

	s.Step(1.0 / 60)
	want := []string{"ticker", "node", "observer"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestSceneUpdateFuncError(t *testing.T) {
	s := NewScene()
	sentinel := errors.New("stop")
	s.SetUpdateFunc(func() error { return sentinel })
	if err := s.Update(); !errors.Is(err, sentinel) {
		t.Errorf("Update error = %v, want sentinel", err)
	}
}

func TestSceneDebugModeStats(t *testing.T) {
	s := NewScene()
	defer s.SetDebugMode(false)
	s.SetDebugMode(true)
	s.Ticker().Add(func(float64) {})
	s.Step(1.0 / 60)
	if s.stats.tickers != 1 {
		t.Errorf("stats.tickers = %d, want 1", s.stats.tickers)
	}
	if !globalDebug {
		t.Error("globalDebug not set")
	}
}
