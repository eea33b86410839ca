package folio

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// setupBenchPage builds a scrolling scene with n rect blocks stacked 40 px
// apart inside one page container, every block observed.
func setupBenchPage(n int) (*Scene, *Node) {
	s := NewScene()
	s.Resize(1280, 720)
	page := NewContainer("page")
	s.Root().AddChild(page)
	for i := 0; i < n; i++ {
		r := NewRect("block", 600, 32, ColorWhite)
		r.X = 40
		r.Y = float64(i) * 40
		page.AddChild(r)
		s.Observer().Observe(r, func(*Node) {})
	}
	s.SetContentHeight(float64(n) * 40)
	return s, page
}

// --- Frame Benchmarks ---

func BenchmarkStep_2000Blocks_Scrolling(b *testing.B) {
	s, page := setupBenchPage(2000)
	s.Step(1.0 / 60) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Scroll().ScrollBy(8)
		s.Step(1.0 / 60)
		page.SetPosition(0, -s.Scroll().Offset())
	}
}

func BenchmarkStep_2000Blocks_Idle(b *testing.B) {
	s, _ := setupBenchPage(2000)
	s.Step(1.0 / 60)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Step(1.0 / 60)
	}
}

func BenchmarkDraw_2000Blocks(b *testing.B) {
	s, _ := setupBenchPage(2000)
	screen := ebiten.NewImage(1280, 720)
	s.Step(1.0 / 60)
	s.Draw(screen) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Draw(screen)
	}
}

// --- Tween Benchmarks ---

func BenchmarkTweenAlpha_500Units(b *testing.B) {
	nodes := make([]*Node, 500)
	for i := range nodes {
		nodes[i] = NewRect("unit", 10, 20, ColorWhite)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, n := range nodes {
			n.Alpha = 0
			g := TweenAlpha(n, 1, 0.5, nil)
			for !g.Done {
				g.Update(1.0 / 60)
			}
		}
	}
}
