// Package portfolio binds a content document onto a folio scene: stacked
// sections whose text blocks reveal as they scroll into view, and the
// qualifications timeline where a traveling icon follows a path through the
// markers while doodles drift behind it.
package portfolio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/motionpath"
	"github.com/phanxgames/folio/reveal"
	"github.com/phanxgames/folio/scatter"
)

// navDuration is how long a section jump takes, in seconds.
const navDuration = 0.8

type sectionView struct {
	sec     *content.Section
	node    *folio.Node
	heading *folio.Node
	blocks  []*blockView
	top     float64
	height  float64
}

type blockView struct {
	block *content.Block
	view  *textView
}

type delayed struct {
	wait float64
	fn   func()
}

// State is a snapshot of the page.
type State struct {
	Scroll         float64                   `json:"scroll"`
	ScrollFraction float64                   `json:"scrollFraction"`
	Progress       float64                   `json:"progress"`
	Traversal      motionpath.TraversalState `json:"traversal"`
	// Panels lists mounted marker panels in mount order.
	Panels []int `json:"panels"`
	// Revealed counts blocks whose reveal was triggered.
	Revealed      int  `json:"revealed"`
	Doodles       int  `json:"doodles"`
	ReducedMotion bool `json:"reducedMotion"`
	NavVisible    bool `json:"navVisible"`
}

// Page is a mounted document. It owns one ticker callback and one resize
// hook on its scene; Close releases both.
type Page struct {
	scene *folio.Scene
	doc   *content.Document
	opts  Options
	fonts FontFunc
	caps  folio.Capability
	rng   *rand.Rand

	root     *folio.Node
	sections []*sectionView
	views    map[*reveal.Fragment]*textView
	timeline *timelineView
	contact  *sectionView
	qr       *folio.Node

	sched  *reveal.Scheduler
	anim   *reveal.Timeline
	resize *folio.Debouncer
	timers []delayed

	tick       folio.TickerHandle
	removeHook func()

	tlStart, tlEnd float64
	progress       float64
	traversal      motionpath.TraversalState
	revealed       int
	reduced        bool
	mounted        bool
	closed         bool
}

// New builds doc under scene's root and starts driving it from the scene's
// ticker. Layout happens now if the scene has a size, else on the first
// resize.
func New(scene *folio.Scene, doc *content.Document, opts Options) (*Page, error) {
	if scene == nil || doc == nil {
		return nil, errors.New("portfolio: nil scene or document")
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}
	opts = opts.withDefaults()

	fonts := opts.Fonts
	if fonts == nil {
		f, err := defaultFonts()
		if err != nil {
			return nil, fmt.Errorf("portfolio: load fonts: %w", err)
		}
		fonts = f
	}

	p := &Page{
		scene: scene,
		doc:   doc,
		opts:  opts,
		fonts: fonts,
		views: make(map[*reveal.Fragment]*textView),
		anim:  reveal.NewTimeline(),
	}
	if opts.Capability != nil {
		p.caps = *opts.Capability
	} else {
		p.caps = folio.DetectCapability()
	}
	if opts.Seed != 0 {
		p.rng = scatter.NewSeededRand(opts.Seed)
	} else {
		p.rng = scatter.NewRand()
	}

	ro := opts.Reveal
	ro.Attached = func(root *reveal.Fragment) bool {
		v, ok := p.views[root]
		return ok && v.node.Attached()
	}
	p.sched = reveal.NewScheduler(ro)
	p.resize = folio.NewDebouncer(opts.ResizeDelay, p.layout)

	p.build()
	scene.Root().AddChild(p.root)
	scene.ClearColor = opts.Theme.Background
	p.tick = scene.Ticker().Add(p.update)
	p.removeHook = scene.OnResize(p.onResize)

	if w, h := scene.Size(); w > 0 && h > 0 {
		p.layout()
	}
	folio.Logger().Info("page mounted",
		slog.String("title", doc.Title),
		slog.Int("sections", len(doc.Sections)),
		slog.Int("markers", len(doc.Timeline.Markers)))
	return p, nil
}

// build creates every node. Positions are set by layout.
func (p *Page) build() {
	th := p.opts.Theme
	p.root = folio.NewContainer("page")

	for i := range p.doc.Sections {
		sec := &p.doc.Sections[i]
		sv := &sectionView{sec: sec, node: folio.NewContainer("section/" + sec.ID)}
		sv.heading = folio.NewText(sv.node.Name+"/heading", sec.Heading, p.fonts(headingSize))
		sv.heading.TextBlock.Color = th.Muted
		sv.node.AddChild(sv.heading)

		for j := range sec.Blocks {
			b := &sec.Blocks[j]
			size := b.Size
			if size <= 0 {
				size = bodySize
			}
			bv := &blockView{block: b}
			bv.view = newTextView("block/"+b.ID, b.Fragments(), p.fonts(size), folio.ParseTextAlign(b.Align), th.Text, th.Accent)
			p.views[bv.view.root] = bv.view
			sv.node.AddChild(bv.view.node)
			sv.blocks = append(sv.blocks, bv)
			p.scene.Observer().Observe(bv.view.plain, func(*folio.Node) { p.revealBlock(bv) })
		}

		if sec.ID == p.opts.TimelineSection && p.timeline == nil {
			p.timeline = newTimelineView(sv, &p.doc.Timeline, th, p.opts.Path)
			sv.node.AddChild(p.timeline.node)
		}
		if sec.ID == "contact" && p.doc.Contact.URL != "" {
			qr, err := folio.NewQRSprite("contact/qr", p.doc.Contact.URL, 160)
			if err != nil {
				folio.Logger().Warn("contact code skipped", slog.Any("error", err))
			} else {
				p.contact, p.qr = sv, qr
				sv.node.AddChild(qr)
			}
		}
		p.sections = append(p.sections, sv)
		p.root.AddChild(sv.node)
	}
}

// layout positions everything for the current viewport size.
func (p *Page) layout() {
	if p.closed {
		return
	}
	w, h := p.scene.Size()
	if w <= 0 || h <= 0 {
		return
	}
	p.reduced = p.caps.ReducedMotion(w)
	p.sched.SetReducedMotion(p.reduced)

	textW := math.Max(0, w-2*sectionPadding)
	y := 0.0
	for _, s := range p.sections {
		s.top = y
		s.node.SetPosition(0, y)
		s.heading.SetPosition(sectionPadding, sectionPadding)
		s.heading.TextBlock.WrapWidth = textW
		_, hh := s.heading.TextBlock.Measure()
		by := sectionPadding + hh + blockGap
		for _, b := range s.blocks {
			b.view.setWidth(textW)
			b.view.node.SetPosition(sectionPadding, by)
			by += b.view.height() + blockGap
		}

		if p.timeline != nil && p.timeline.section == s {
			tlH := viewports(p.doc.Timeline.Height, 2) * h
			p.timeline.node.SetPosition(0, by)
			p.tlStart = y + by - h/2
			p.tlEnd = y + by + tlH - h/2

			cfg := p.doc.Doodles.Config()
			cfg.Count = scatter.CountForWidth(w, cfg.Count)
			items := scatter.Scatter(w, tlH, cfg, p.rng)
			p.timeline.rebuild(w, tlH, items, !p.reduced)
			p.progress = 0
			by += tlH + blockGap
		}
		if s == p.contact {
			p.qr.SetPosition(w/2-p.qr.Width/2, by)
			by += p.qr.Height + blockGap
		}

		s.height = math.Max(viewports(s.sec.Height, 1)*h, by+sectionPadding)
		y += s.height
	}
	p.scene.SetContentHeight(y)

	if !p.mounted {
		p.mounted = true
		p.scene.Observer().RequestSweep()
	}
	folio.Logger().Debug("layout",
		slog.Float64("width", w), slog.Float64("height", h),
		slog.Float64("content", y), slog.Bool("reduced", p.reduced))
}

// viewports returns v, or def when v is not positive.
func viewports(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func (p *Page) onResize(w, h float64) {
	if !p.mounted {
		p.layout()
		return
	}
	p.resize.Trigger()
}

// Resize resizes the scene. The page relayout waits until resizing has been
// quiet for Options.ResizeDelay.
func (p *Page) Resize(w, h float64) {
	p.scene.Resize(w, h)
}

// update runs once per frame from the scene ticker.
func (p *Page) update(dt float64) {
	p.resize.Update(dt)
	p.runTimers(dt)

	p.root.SetPosition(0, -p.scene.Scroll().Offset())

	if p.timeline != nil && p.mounted {
		target := p.scene.Scroll().Progress(p.tlStart, p.tlEnd)
		scrubTau := p.opts.Scrub
		if p.reduced {
			scrubTau = -1
		}
		p.progress = scrub(p.progress, target, dt, scrubTau)
		p.traversal = p.timeline.update(p.progress)
		for _, id := range p.traversal.Passed {
			if _, ok := p.timeline.mounted[id]; !ok {
				p.mountPanel(id)
			}
		}
	}
	p.anim.Update(float32(dt))
}

// scrub moves cur toward target with time constant tau seconds. A
// non-positive tau jumps straight to target.
func scrub(cur, target, dt, tau float64) float64 {
	if tau <= 0 {
		return target
	}
	if dt <= 0 {
		return cur
	}
	next := cur + (target-cur)*(1-math.Exp(-dt/tau))
	if math.Abs(target-next) < 1e-4 {
		return target
	}
	return next
}

func (p *Page) after(delay float64, fn func()) {
	if delay <= 0 {
		fn()
		return
	}
	p.timers = append(p.timers, delayed{wait: delay, fn: fn})
}

func (p *Page) runTimers(dt float64) {
	if len(p.timers) == 0 {
		return
	}
	var due []func()
	live := p.timers[:0]
	for _, t := range p.timers {
		t.wait -= dt
		if t.wait <= 0 {
			due = append(due, t.fn)
			continue
		}
		live = append(live, t)
	}
	p.timers = live
	for _, fn := range due {
		fn()
	}
}

func (p *Page) revealBlock(b *blockView) {
	root := b.view.root
	var plan reveal.Plan
	var ok bool
	if b.block.Fast {
		plan, ok = p.sched.TriggerFast(root, b.block.Delay)
	} else {
		plan, ok = p.sched.Trigger(root, b.block.Delay, 0)
	}
	if !ok {
		return
	}
	p.revealed++
	p.present(b.view, plan)
}

func (p *Page) mountPanel(id int) {
	m, ok := p.doc.Marker(id)
	if !ok {
		return
	}
	th := p.opts.Theme
	v := newTextView(fmt.Sprintf("panel/%d", id), m.Fragments(), p.fonts(bodySize*0.75), folio.TextAlignLeft, th.Text, th.Accent)
	p.views[v.root] = v
	p.timeline.mount(id, v)
	if plan, ok := p.sched.Trigger(v.root, 0, 0); ok {
		p.present(v, plan)
	}
	folio.Logger().Debug("panel mounted", slog.Int("marker", id))
}

// present shows a triggered plan: per-unit entrances when it has units, the
// plain text when it is revealed without them.
func (p *Page) present(v *textView, plan reveal.Plan) {
	switch {
	case len(plan.Units) > 0:
		v.build(plan)
		opts := p.sched.Options()
		reveal.Play(plan, p.anim, v.target, opts)
		for i, f := range plan.Flourishes {
			node := v.behind[i].node
			p.after(f.Delay, func() {
				p.scene.Play(folio.TweenScale(node, 1, 1, float32(opts.FlourishDuration), ease.OutCubic))
			})
		}
	case plan.Revealed:
		v.showPlain()
	}
}

// ScrollToSection animates the scroll to the section with the given ID. It
// reports whether the section exists.
func (p *Page) ScrollToSection(id string) bool {
	for _, s := range p.sections {
		if s.sec.ID != id {
			continue
		}
		y := math.Max(0, s.top-navOffset)
		if p.reduced {
			p.scene.Scroll().Jump(y)
		} else {
			p.scene.Scroll().ScrollTo(y, navDuration, ease.InOutCubic)
		}
		return true
	}
	return false
}

// NavVisible reports whether the floating navigation should show: once the
// reader is 40% down the page or 40% of a viewport past the top.
func (p *Page) NavVisible() bool {
	sc := p.scene.Scroll()
	return sc.Fraction() >= navThreshold || sc.Offset() >= navThreshold*sc.ViewportHeight()
}

// State returns a snapshot of the page.
func (p *Page) State() State {
	st := State{
		Scroll:         p.scene.Scroll().Offset(),
		ScrollFraction: p.scene.Scroll().Fraction(),
		Progress:       p.progress,
		Traversal:      p.traversal,
		Panels:         []int{},
		Revealed:       p.revealed,
		ReducedMotion:  p.reduced,
		NavVisible:     p.NavVisible(),
	}
	if p.timeline != nil {
		st.Panels = append(st.Panels, p.timeline.order...)
		st.Doodles = len(p.timeline.items)
	}
	return st
}

// Close removes the page from its scene and releases the ticker callback,
// the resize hook, pending reveals and observed nodes. It is safe to call
// more than once.
func (p *Page) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.scene.Ticker().Remove(p.tick)
	p.removeHook()
	p.resize.Cancel()
	p.timers = nil
	p.anim.Clear()
	for _, s := range p.sections {
		for _, b := range s.blocks {
			p.scene.Observer().Unobserve(b.view.plain)
		}
	}
	p.root.Dispose()
	folio.Logger().Info("page closed", slog.String("title", p.doc.Title))
}
