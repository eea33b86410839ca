package folio

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates an image node that displays the current FPS and TPS,
// refreshed about twice a second.
func NewFPSWidget() *Node {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img := ebiten.NewImage(100, 32)
	node := NewImage("fps_widget", img)

	var sinceRefresh float64
	refresh := func() {
		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	refresh()

	node.OnUpdate = func(dt float64) {
		sinceRefresh += dt
		if sinceRefresh < 0.5 {
			return
		}
		sinceRefresh = 0
		refresh()
	}
	return node
}
