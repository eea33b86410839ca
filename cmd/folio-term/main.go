// Command folio-term previews the doodle layout and the timeline traversal in
// a terminal.
//
// Keys: j/k or arrows scrub the traversal, space toggles autoplay, r
// re-scatters the doodles, q or Esc quits. A short tone plays when a marker
// is passed, if an audio device is available.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	_ "github.com/joho/godotenv/autoload"

	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/motionpath"
	"github.com/phanxgames/folio/scatter"
)

// Each terminal cell stands for a cellW×cellH pixel area.
const (
	cellW = 8.0
	cellH = 16.0

	frameInterval = 33 * time.Millisecond
	scrubStep     = 0.02
	playSpeed     = 0.1 // progress per second
)

var (
	styleDoodle = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleGuide  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTrail  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleMarker = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePassed = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleActive = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true).Reverse(true)
	styleIcon   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

type preview struct {
	screen   tcell.Screen
	doc      *content.Document
	seed     uint64
	cols     int
	rows     int
	items    []scatter.PlacedItem
	ctrl     *motionpath.Controller
	state    motionpath.TraversalState
	guide    []motionpath.Point
	progress float64
	playing  bool
	passed   int
	audio    bool
}

func newPreview(doc *content.Document, seed uint64) (*preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	p := &preview{screen: screen, doc: doc, seed: seed}
	p.audio = initAudio() == nil
	p.relayout()
	return p, nil
}

func initAudio() error {
	sr := beep.SampleRate(44100)
	return speaker.Init(sr, sr.N(time.Second/10))
}

func (p *preview) chime() {
	if !p.audio {
		return
	}
	sr := beep.SampleRate(44100)
	tone, err := generators.SineTone(sr, 660)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sr.N(60*time.Millisecond), tone))
}

// relayout rebuilds the doodles and the curve for the current screen size.
// Progress restarts from zero.
func (p *preview) relayout() {
	p.cols, p.rows = p.screen.Size()
	w, h := float64(p.cols)*cellW, float64(max(p.rows-1, 1))*cellH

	cfg := p.doc.Doodles.Config()
	cfg.Count = scatter.CountForWidth(w, cfg.Count)
	p.items = scatter.Scatter(w, h, cfg, scatter.NewSeededRand(p.seed))

	origin, markers := p.doc.Timeline.Resolve(w, h)
	size := motionpath.Size{Width: w, Height: h}
	if p.ctrl == nil {
		p.ctrl = motionpath.NewController(size, origin, markers, motionpath.Options{})
	} else {
		p.ctrl.Rebuild(size, origin, markers)
	}
	p.guide = p.ctrl.Curve().Polyline(1, cellW/2)
	p.progress = 0
	p.passed = 0
	p.state = p.ctrl.Update(0)
}

func (p *preview) setProgress(v float64) {
	p.progress = motionpath.Clamp01(v)
	p.state = p.ctrl.Update(p.progress)
	if n := len(p.state.Passed); n > p.passed {
		p.passed = n
		p.chime()
	}
}

func (p *preview) cell(pt motionpath.Point) (int, int) {
	return int(pt.X / cellW), int(pt.Y / cellH)
}

func (p *preview) put(x, y int, r rune, style tcell.Style) {
	if x >= 0 && y >= 0 && x < p.cols && y < p.rows-1 {
		p.screen.SetContent(x, y, r, nil, style)
	}
}

func (p *preview) draw() {
	p.screen.Clear()

	for _, it := range p.items {
		x0, y0 := p.cell(motionpath.Point{X: it.Left, Y: it.Top})
		x1, y1 := p.cell(motionpath.Point{X: it.Left + it.Width, Y: it.Top + it.Height})
		for x := x0; x <= x1; x++ {
			p.put(x, y0, '─', styleDoodle)
			p.put(x, y1, '─', styleDoodle)
		}
		for y := y0; y <= y1; y++ {
			p.put(x0, y, '│', styleDoodle)
			p.put(x1, y, '│', styleDoodle)
		}
		p.put(x0, y0, '┌', styleDoodle)
		p.put(x1, y0, '┐', styleDoodle)
		p.put(x0, y1, '└', styleDoodle)
		p.put(x1, y1, '┘', styleDoodle)
	}

	for _, pt := range p.guide {
		x, y := p.cell(pt)
		p.put(x, y, '·', styleGuide)
	}
	for _, pt := range p.ctrl.Curve().Polyline(p.progress, cellW/2) {
		x, y := p.cell(pt)
		p.put(x, y, '•', styleTrail)
	}

	for _, m := range p.ctrl.Markers() {
		x, y := p.cell(m.Target)
		style, r := styleMarker, 'o'
		switch {
		case p.state.Active != nil && *p.state.Active == m.ID:
			style, r = styleActive, '◉'
		case p.state.IsPassed(m.ID):
			style, r = stylePassed, '●'
		}
		p.put(x, y, r, style)
		for i, c := range strconv.Itoa(m.ID) {
			p.put(x+2+i, y, c, style)
		}
	}

	x, y := p.cell(p.state.Point)
	p.put(x, y, '@', styleIcon)

	status := []rune(fmt.Sprintf(" progress %3.0f%%  passed %v  doodles %d/%d  seed %d ",
		p.progress*100, p.state.Passed, len(p.items), p.doc.Doodles.Config().Count, p.seed))
	for i := 0; i < p.cols; i++ {
		r := ' '
		if i < len(status) {
			r = status[i]
		}
		p.screen.SetContent(i, p.rows-1, r, nil, styleStatus)
	}
	p.screen.Show()
}

// handle applies one event and reports whether the preview should keep
// running.
func (p *preview) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown, tcell.KeyRight:
			p.setProgress(p.progress + scrubStep)
		case tcell.KeyUp, tcell.KeyLeft:
			p.setProgress(p.progress - scrubStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'j':
				p.setProgress(p.progress + scrubStep)
			case 'k':
				p.setProgress(p.progress - scrubStep)
			case ' ':
				p.playing = !p.playing
			case 'r':
				p.seed++
				p.relayout()
			}
		}
	case *tcell.EventResize:
		p.screen.Sync()
		p.relayout()
	}
	return true
}

func (p *preview) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !p.handle(ev) {
				return
			}
		case now := <-ticker.C:
			if p.playing {
				p.setProgress(p.progress + playSpeed*now.Sub(last).Seconds())
				if p.progress >= 1 {
					p.playing = false
				}
			}
			last = now
		}
		p.draw()
	}
}

func (p *preview) close() {
	if p.audio {
		speaker.Close()
	}
	p.screen.Fini()
}

func main() {
	path := flag.String("content", os.Getenv("FOLIO_CONTENT"), "content YAML file (empty uses the built-in page)")
	seed := flag.Uint64("seed", 1, "doodle layout seed")
	flag.Parse()

	doc := content.Default()
	if *path != "" {
		var err error
		if doc, err = content.Load(*path); err != nil {
			fmt.Fprintf(os.Stderr, "folio-term: %v\n", err)
			os.Exit(1)
		}
	}

	p, err := newPreview(doc, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "folio-term: %v\n", err)
		os.Exit(1)
	}
	defer p.close()
	p.run()
}
