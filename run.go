package folio

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool
}

// game adapts a Scene to ebiten.Game. The logical screen always matches the
// window, so a resize reaches the scene through Layout.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and drives scene until it is closed or the update
// function returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("folio: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	scene.Resize(float64(cfg.Width), float64(cfg.Height))
	if cfg.ShowFPS {
		fps := NewFPSWidget()
		fps.SetZIndex(1 << 20)
		scene.Root().AddChild(fps)
	}

	Logger().Info("window opened", slog.String("title", cfg.Title),
		slog.Int("width", cfg.Width), slog.Int("height", cfg.Height))
	if err := ebiten.RunGame(&game{scene: scene}); err != nil {
		return fmt.Errorf("folio: run: %w", err)
	}
	return nil
}
