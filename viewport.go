package folio

// Default intersection settings for text reveals.
const (
	DefaultVisibleThreshold = 0.35
	DefaultBottomMargin     = 60.0
)

type observation struct {
	node *Node
	fn   func(*Node)
}

// ViewportObserver fires a callback the first time a watched node becomes
// sufficiently visible, then stops watching it.
//
// A node counts as visible when at least Threshold of its world bounds lies
// inside the viewport shrunk by BottomMargin at the bottom edge. Nodes with
// empty bounds count as visible as soon as their origin is inside.
type ViewportObserver struct {
	Threshold    float64
	BottomMargin float64

	watched      []observation
	sweepPending bool
}

// NewViewportObserver creates an observer with the default settings.
func NewViewportObserver() *ViewportObserver {
	return &ViewportObserver{Threshold: DefaultVisibleThreshold, BottomMargin: DefaultBottomMargin}
}

// Observe watches n. Observing a watched node replaces its callback.
func (o *ViewportObserver) Observe(n *Node, fn func(*Node)) {
	if n == nil || fn == nil {
		panic("folio: cannot observe nil node or callback")
	}
	for i := range o.watched {
		if o.watched[i].node == n {
			o.watched[i].fn = fn
			return
		}
	}
	o.watched = append(o.watched, observation{node: n, fn: fn})
}

// Unobserve stops watching n.
func (o *ViewportObserver) Unobserve(n *Node) {
	for i := range o.watched {
		if o.watched[i].node == n {
			o.watched = append(o.watched[:i], o.watched[i+1:]...)
			return
		}
	}
}

// Len returns the number of watched nodes.
func (o *ViewportObserver) Len() int {
	return len(o.watched)
}

// Check tests every watched node against the viewport and fires the ones that
// cross the threshold. Disposed or detached nodes are dropped silently.
func (o *ViewportObserver) Check(viewport Rect) {
	if o.sweepPending {
		o.sweepPending = false
		o.Sweep(viewport)
	}
	area := viewport
	area.Height = max(0, area.Height-o.BottomMargin)
	o.check(func(b Rect) bool { return visibleFraction(b, area) >= o.Threshold })
}

// Sweep fires every watched node that intersects the viewport at all, with no
// margin or threshold. Use it once at mount so content already on screen
// reveals immediately.
func (o *ViewportObserver) Sweep(viewport Rect) {
	o.check(func(b Rect) bool {
		return b.Y < viewport.Y+viewport.Height && b.Y+b.Height > viewport.Y
	})
}

// RequestSweep makes the next Check start with a Sweep. Hosts call it after
// mounting content, before world transforms are known.
func (o *ViewportObserver) RequestSweep() {
	o.sweepPending = true
}

func (o *ViewportObserver) check(visible func(Rect) bool) {
	if len(o.watched) == 0 {
		return
	}
	var fired []observation
	live := o.watched[:0]
	for _, w := range o.watched {
		if !w.node.Attached() {
			continue
		}
		if visible(w.node.WorldBounds()) {
			fired = append(fired, w)
			continue
		}
		live = append(live, w)
	}
	for i := len(live); i < len(o.watched); i++ {
		o.watched[i] = observation{}
	}
	o.watched = live
	for _, w := range fired {
		w.fn(w.node)
	}
}

// visibleFraction returns how much of b lies inside area, in [0, 1].
func visibleFraction(b, area Rect) float64 {
	if b.Width <= 0 || b.Height <= 0 {
		if area.Contains(b.X, b.Y) {
			return 1
		}
		return 0
	}
	return b.Intersection(area).Area() / b.Area()
}
