package folio

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultTPS is the frame rate assumed by Update.
const DefaultTPS = 60

type resizeHook struct {
	id uint32
	fn func(w, h float64)
}

// Scene is the top-level object that owns the node tree, the frame ticker,
// the scroll proxy and the viewport observer.
//
// One frame runs in this order: input (or an attached Script) moves the
// scroll target, the scroll proxy eases, ticker callbacks run, node OnUpdate
// callbacks run, world transforms refresh, and the viewport observer fires.
type Scene struct {
	root     *Node
	ticker   Ticker
	scroll   *SmoothScroll
	observer *ViewportObserver

	width, height float64
	resizeHooks   []resizeHook
	nextHookID    uint32

	// ClearColor fills the screen before drawing. A zero alpha skips the fill.
	ClearColor Color

	// WheelStep is the scroll distance per wheel notch, in pixels.
	WheelStep float64

	// ScreenshotDir receives Screenshot captures. Empty uses
	// DefaultScreenshotDir.
	ScreenshotDir string
	shots         []string
	script        *Script

	updateFunc func() error
	debug      bool
	stats      debugStats
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.sceneRoot = true
	return &Scene{
		root:      root,
		scroll:    NewSmoothScroll(0, 0),
		observer:  NewViewportObserver(),
		WheelStep: defaultWheelStep,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Ticker returns the per-frame callback list.
func (s *Scene) Ticker() *Ticker {
	return &s.ticker
}

// Scroll returns the scroll proxy.
func (s *Scene) Scroll() *SmoothScroll {
	return s.scroll
}

// Observer returns the viewport observer checked at the end of every frame.
func (s *Scene) Observer() *ViewportObserver {
	return s.observer
}

// Size returns the viewport size.
func (s *Scene) Size() (w, h float64) {
	return s.width, s.height
}

// Viewport returns the screen rectangle.
func (s *Scene) Viewport() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// Resize sets the viewport size and runs resize hooks when it changed.
func (s *Scene) Resize(w, h float64) {
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	s.scroll.SetExtent(s.scroll.ContentHeight(), h)
	for _, hook := range append([]resizeHook(nil), s.resizeHooks...) {
		hook.fn(w, h)
	}
}

// SetContentHeight sets the scrollable content height.
func (s *Scene) SetContentHeight(h float64) {
	s.scroll.SetExtent(h, s.height)
}

// OnResize registers fn to run after every viewport size change. The
// returned function unregisters it.
func (s *Scene) OnResize(fn func(w, h float64)) (remove func()) {
	s.nextHookID++
	id := s.nextHookID
	s.resizeHooks = append(s.resizeHooks, resizeHook{id: id, fn: fn})
	return func() {
		for i, h := range s.resizeHooks {
			if h.id == id {
				s.resizeHooks = append(s.resizeHooks[:i], s.resizeHooks[i+1:]...)
				return
			}
		}
	}
}

// SetUpdateFunc sets a function called once per Update after the frame has
// advanced. A non-nil error stops Run.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Play advances g from the ticker until it is done.
func (s *Scene) Play(g *TweenGroup) TickerHandle {
	var h TickerHandle
	h = s.ticker.Add(func(dt float64) {
		g.Update(float32(dt))
		if g.Done {
			s.ticker.Remove(h)
		}
	})
	return h
}

// Update processes input and advances one frame at the fixed tick rate.
func (s *Scene) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = DefaultTPS
	}
	s.processInput()
	s.Step(1 / float64(tps))
	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// Step advances one frame by dt seconds without reading input.
func (s *Scene) Step(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.script != nil {
		s.script.advance(s)
	}
	s.scroll.Update(dt)
	s.ticker.Update(dt)
	updateNodes(s.root, dt)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.observer.Check(s.Viewport())

	if s.debug {
		s.stats.updateTime = time.Since(t0)
		s.stats.tickers = s.ticker.Len()
		s.stats.observed = s.observer.Len()
	}
}

// Draw fills the clear color and draws the tree onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.RGBA8())
	}
	draws := 0
	s.traverse(screen, s.root, identityTransform, 1.0, false, &draws)
	s.flushScreenshots(screen)

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.drawCount = draws
		s.stats.nodeCount = s.root.CountNodes()
		s.debugLog(s.stats)
	}
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
