package folio

import "testing"

// observed builds a scene with a rect node at y inside a scrolled page
// container and returns both.
func observed(y, h float64) (*Scene, *Node) {
	s := NewScene()
	s.Resize(800, 600)
	page := NewContainer("page")
	s.Root().AddChild(page)
	block := NewRect("block", 200, h, ColorWhite)
	block.SetPosition(0, y)
	page.AddChild(block)
	return s, block
}

func TestObserverFiresOnceAtThreshold(t *testing.T) {
	s, block := observed(1000, 100)
	page := block.Parent
	fired := 0
	s.Observer().Observe(block, func(*Node) { fired++ })

	s.Step(1.0 / 60)
	if fired != 0 {
		t.Fatal("fired while the block was below the fold")
	}

	// Visible band is [0, 540]. Block top at 510: 30% visible.
	page.SetPosition(0, -490)
	s.Step(1.0 / 60)
	if fired != 0 {
		t.Fatal("fired at 30% visibility")
	}

	// Block top at 500: 40% visible.
	page.SetPosition(0, -500)
	s.Step(1.0 / 60)
	if fired != 1 {
		t.Fatalf("fired = %d at 40%% visibility, want 1", fired)
	}
	if s.Observer().Len() != 0 {
		t.Error("node still watched after firing")
	}

	page.SetPosition(0, -700)
	s.Step(1.0 / 60)
	if fired != 1 {
		t.Error("fired a second time")
	}
}

func TestObserverSweepRevealsOnScreen(t *testing.T) {
	s, block := observed(570, 100)
	fired := false
	s.Observer().Observe(block, func(*Node) { fired = true })
	updateWorldTransform(s.Root(), identityTransform, 1, false)

	// 30 px of the block are on screen but below the bottom margin.
	s.Observer().Check(s.Viewport())
	if fired {
		t.Fatal("Check fired inside the bottom margin")
	}
	s.Observer().Sweep(s.Viewport())
	if !fired {
		t.Error("Sweep did not fire a block that intersects the screen")
	}
}

func TestObserverDropsDetached(t *testing.T) {
	s, block := observed(0, 100)
	fired := false
	s.Observer().Observe(block, func(*Node) { fired = true })
	block.RemoveFromParent()
	s.Step(1.0 / 60)
	if fired || s.Observer().Len() != 0 {
		t.Error("detached node should be dropped without firing")
	}
}

func TestObserverUnobserve(t *testing.T) {
	s, block := observed(0, 100)
	s.Observer().Observe(block, func(*Node) { t.Error("unobserved node fired") })
	s.Observer().Unobserve(block)
	s.Step(1.0 / 60)
}

func TestVisibleFraction(t *testing.T) {
	area := Rect{0, 0, 100, 100}
	tests := []struct {
		name string
		b    Rect
		want float64
	}{
		{"inside", Rect{10, 10, 20, 20}, 1},
		{"half", Rect{0, 50, 100, 100}, 0.5},
		{"outside", Rect{0, 200, 10, 10}, 0},
		{"empty inside", Rect{5, 5, 0, 0}, 1},
		{"empty outside", Rect{500, 5, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "fraction", visibleFraction(tt.b, area), tt.want)
		})
	}
}

func TestObserverRequestSweep(t *testing.T) {
	s, block := observed(570, 100)
	fired := false
	s.Observer().Observe(block, func(*Node) { fired = true })
	s.Observer().RequestSweep()
	s.Step(1.0 / 60)
	if !fired {
		t.Error("requested sweep did not fire an on-screen block")
	}
}
