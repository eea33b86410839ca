package portfolio

import (
	"fmt"
	"math"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/content"
	"github.com/phanxgames/folio/motionpath"
	"github.com/phanxgames/folio/scatter"
)

// pathTolerance is the flattening tolerance for drawn curves, in pixels.
const pathTolerance = 0.5

// timelineView is the qualifications scene: doodles behind a path that a
// traveling icon follows, with a panel mounted for each marker it passes.
type timelineView struct {
	section *sectionView
	tl      *content.Timeline
	theme   Theme

	node    *folio.Node
	doodles *folio.Node
	guide   *folio.Node
	trail   *folio.Node
	dots    *folio.Node
	panels  *folio.Node
	icon    *folio.Node

	ctrl          *motionpath.Controller
	width, height float64
	items         []scatter.PlacedItem
	mounted       map[int]*textView
	order         []int
	drawn         float64
}

func newTimelineView(section *sectionView, tl *content.Timeline, theme Theme, opts motionpath.Options) *timelineView {
	t := &timelineView{
		section: section,
		tl:      tl,
		theme:   theme,
		node:    folio.NewContainer("timeline"),
		doodles: folio.NewContainer("timeline/doodles"),
		guide:   folio.NewPath("timeline/guide", 2, theme.Path.WithAlpha(0.15)),
		trail:   folio.NewPath("timeline/trail", 3, theme.Path),
		dots:    folio.NewContainer("timeline/markers"),
		panels:  folio.NewContainer("timeline/panels"),
		icon:    folio.NewRect("timeline/icon", iconSize, iconSize, theme.Accent),
		mounted: make(map[int]*textView),
		drawn:   -1,
	}
	for _, n := range []*folio.Node{t.doodles, t.guide, t.trail, t.dots, t.panels, t.icon} {
		t.node.AddChild(n)
	}
	t.icon.SetPivot(iconSize/2, iconSize/2)

	size := tl.MarkerSize
	for _, m := range tl.Markers {
		dot := folio.NewRect(fmt.Sprintf("marker/%d", m.ID), size, size, theme.Muted)
		dot.SetPivot(size/2, size/2)
		dot.UserData = m.ID
		t.dots.AddChild(dot)
	}
	t.ctrl = motionpath.NewController(motionpath.Size{}, motionpath.Point{}, nil, opts)
	return t
}

// rebuild lays the scene out for a w x h container: new doodles, a new curve
// and repositioned markers and panels. Traversal starts over; mounted panels
// stay.
func (t *timelineView) rebuild(w, h float64, items []scatter.PlacedItem, animate bool) {
	t.width, t.height = w, h
	origin, markers := t.tl.Resolve(w, h)
	t.ctrl.Rebuild(motionpath.Size{Width: w, Height: h}, origin, markers)

	t.placeDoodles(items, animate)
	t.guide.SetPolyline(toVec2(t.ctrl.Curve().Polyline(1, pathTolerance)))
	t.drawn = -1

	for i, dot := range t.dots.Children() {
		p := markers[i].Target
		dot.SetPosition(p.X, p.Y)
	}
	for _, id := range t.order {
		t.placePanel(id, t.mounted[id])
	}
}

func (t *timelineView) placeDoodles(items []scatter.PlacedItem, animate bool) {
	for _, c := range append([]*folio.Node(nil), t.doodles.Children()...) {
		c.Dispose()
	}
	t.items = items
	for _, it := range items {
		t.doodles.AddChild(newDoodle(it, t.theme.Doodle, animate))
	}
}

// update moves the traversal to progress and redraws the parts that follow
// it.
func (t *timelineView) update(progress float64) motionpath.TraversalState {
	st := t.ctrl.Update(progress)
	if st.Progress != t.drawn {
		t.drawn = st.Progress
		t.trail.SetPolyline(toVec2(t.ctrl.Curve().Polyline(st.Progress, pathTolerance)))
	}
	t.icon.SetPosition(st.Point.X, st.Point.Y)
	if st.Tangent.X != 0 || st.Tangent.Y != 0 {
		t.icon.SetRotation(math.Atan2(st.Tangent.Y, st.Tangent.X))
	}
	active, hasActive := st.ActiveID()
	for _, dot := range t.dots.Children() {
		id := dot.UserData.(int)
		switch {
		case hasActive && id == active:
			dot.Color = t.theme.Accent
			dot.SetScale(1.3, 1.3)
		case st.IsPassed(id):
			dot.Color = t.theme.Accent
			dot.SetScale(1, 1)
		default:
			dot.Color = t.theme.Muted
			dot.SetScale(1, 1)
		}
	}
	return st
}

// mount adds a marker panel and positions it.
func (t *timelineView) mount(id int, v *textView) {
	t.mounted[id] = v
	t.order = append(t.order, id)
	t.panels.AddChild(v.node)
	t.placePanel(id, v)
}

// placePanel puts a panel beside its marker, on the side with more room.
func (t *timelineView) placePanel(id int, v *textView) {
	var target motionpath.Point
	found := false
	for _, m := range t.ctrl.Markers() {
		if m.ID == id {
			target, found = m.Target, true
			break
		}
	}
	if !found {
		return
	}
	size := t.tl.MarkerSize
	pw := math.Min(panelMaxWidth, t.width*0.4)
	x := target.X + size
	if target.X >= t.width/2 {
		x = target.X - size - pw
	}
	x = math.Max(sectionPadding, math.Min(x, t.width-pw-sectionPadding))
	v.setWidth(pw)
	v.node.SetPosition(x, target.Y-size/2)
}

// newDoodle builds one decoration node centered on its box.
func newDoodle(it scatter.PlacedItem, c folio.Color, animate bool) *folio.Node {
	n := folio.NewRect(fmt.Sprintf("doodle/%d", it.ID), it.Width, it.Height, c)
	n.SetPivot(it.Width/2, it.Height/2)
	n.SetPosition(it.Left+it.Width/2, it.Top+it.Height/2)
	base := it.Rotation * math.Pi / 180
	n.SetRotation(base)
	n.SetAlpha(it.Opacity)
	n.UserData = it

	if a := it.Accent; a != nil {
		if ac, err := folio.ParseHexColor(a.Color); err == nil {
			dot := folio.NewRect(n.Name+"/accent", a.Size, a.Size, ac)
			dot.SetPosition(a.X*it.Width-a.Size/2, a.Y*it.Height-a.Size/2)
			n.AddChild(dot)
		} else {
			folio.Logger().Warn("bad accent color", "doodle", it.ID, "error", err)
		}
	}
	if animate {
		n.OnUpdate = idleMotion(n, it, base)
	}
	return n
}

// idleMotion returns the per-frame drift for a doodle.
func idleMotion(n *folio.Node, it scatter.PlacedItem, base float64) func(float64) {
	var t float64
	phase := float64(it.ID) * 0.7
	return func(dt float64) {
		t += dt
		if it.Motion == scatter.MotionWobble {
			n.SetRotation(base + 0.07*math.Sin(t*1.6+phase))
			s := 1 + 0.03*math.Sin(t*1.1+phase)
			n.SetScale(s, s)
			return
		}
		n.SetOffset(5*math.Sin(t*0.5+phase), 7*math.Cos(t*0.4+phase))
		n.SetRotation(base + 0.035*math.Sin(t*0.3+phase))
	}
}

func toVec2(pts []motionpath.Point) []folio.Vec2 {
	out := make([]folio.Vec2, len(pts))
	for i, p := range pts {
		out[i] = folio.Vec2{X: p.X, Y: p.Y}
	}
	return out
}
