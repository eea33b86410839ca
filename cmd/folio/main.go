// Command folio opens a portfolio document in a resizable window.
//
// Scroll with the mouse wheel, arrow keys or Page Up/Down. Number keys jump
// to the matching section and F12 saves a screenshot.
//
// With -script the window plays a YAML scroll script (see folio.LoadScript)
// and closes when it ends, which makes unattended captures possible.
//
// Flags default to FOLIO_* environment variables, which may also come from a
// .env file in the working directory.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	_ "github.com/joho/godotenv/autoload"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/portfolio"
)

const windowTitle = "Folio"

var sectionKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

func main() {
	var (
		path     = flag.String("content", os.Getenv("FOLIO_CONTENT"), "content YAML file (empty uses the built-in page)")
		width    = flag.Int("width", envInt("FOLIO_WIDTH", 1280), "initial window width")
		height   = flag.Int("height", envInt("FOLIO_HEIGHT", 800), "initial window height")
		seed     = flag.Uint64("seed", uint64(envInt("FOLIO_SEED", 0)), "doodle layout seed (0 picks one at random)")
		level    = flag.String("log-level", envOr("FOLIO_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
		showFPS  = flag.Bool("fps", false, "show the FPS counter")
		debug    = flag.Bool("debug", false, "enable scene debug checks")
		noMotion = flag.Bool("reduced-motion", false, "force reduced motion")
		script   = flag.String("script", "", "scroll script to play, then exit")
		shotDir  = flag.String("screenshots", envOr("FOLIO_SCREENSHOTS", folio.DefaultScreenshotDir), "screenshot directory")
	)
	flag.Parse()

	cfg := viewerConfig{
		content: *path, script: *script, screenshots: *shotDir, level: *level,
		width: *width, height: *height, seed: *seed,
		showFPS: *showFPS, debug: *debug, reduced: *noMotion,
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		os.Exit(1)
	}
}

type viewerConfig struct {
	content     string
	script      string
	screenshots string
	level       string
	width       int
	height      int
	seed        uint64
	showFPS     bool
	debug       bool
	reduced     bool
}

func run(cfg viewerConfig) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	folio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	doc := content.Default()
	if cfg.content != "" {
		var err error
		if doc, err = content.Load(cfg.content); err != nil {
			return err
		}
	}

	caps := folio.DetectCapability()
	caps.Forced = caps.Forced || cfg.reduced

	scene := folio.NewScene()
	scene.SetDebugMode(cfg.debug)
	scene.ScreenshotDir = cfg.screenshots
	scene.Resize(float64(cfg.width), float64(cfg.height))

	page, err := portfolio.New(scene, doc, portfolio.Options{Capability: &caps, Seed: cfg.seed})
	if err != nil {
		return err
	}
	defer page.Close()

	var script *folio.Script
	if cfg.script != "" {
		data, err := os.ReadFile(cfg.script)
		if err != nil {
			return err
		}
		if script, err = folio.LoadScript(data); err != nil {
			return err
		}
		script.OnSection = page.ScrollToSection
		script.OnResize = func(w, h float64) { ebiten.SetWindowSize(int(w), int(h)) }
		scene.SetScript(script)
	}

	scene.SetUpdateFunc(func() error {
		if script != nil && script.Done() {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
			scene.Screenshot("capture")
		}
		for i, key := range sectionKeys {
			if i < len(doc.Sections) && inpututil.IsKeyJustPressed(key) {
				page.ScrollToSection(doc.Sections[i].ID)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		return nil
	})

	err = folio.Run(scene, folio.RunConfig{
		Title:     windowTitle,
		Width:     cfg.width,
		Height:    cfg.height,
		Resizable: true,
		ShowFPS:   cfg.showFPS,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
