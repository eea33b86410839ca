package folio

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

const (
	defaultWheelStep = 60.0 // pixels per wheel notch
	arrowStep        = 40.0 // pixels per arrow key step
	pageFraction     = 0.9  // page keys move this fraction of the viewport
	jumpDuration     = 0.6  // seconds for Home/End
	keyRepeatDelay   = 20   // ticks before an arrow key repeats
	keyRepeatEvery   = 3    // ticks between repeats
)

// repeating reports whether key fires this tick: on press, then at a steady
// rate while held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatEvery == 0)
}

// processInput maps wheel and keyboard input onto the scroll proxy.
func (s *Scene) processInput() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.scroll.ScrollBy(-wy * s.WheelStep)
	}

	page := s.height * pageFraction
	switch {
	case repeating(ebiten.KeyArrowDown):
		s.scroll.ScrollBy(arrowStep)
	case repeating(ebiten.KeyArrowUp):
		s.scroll.ScrollBy(-arrowStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		s.scroll.ScrollBy(page)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		s.scroll.ScrollBy(-page)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			s.scroll.ScrollBy(-page)
		} else {
			s.scroll.ScrollBy(page)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		s.scroll.ScrollTo(0, jumpDuration, ease.InOutSine)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		s.scroll.ScrollTo(s.scroll.MaxOffset(), jumpDuration, ease.InOutSine)
	}
}
