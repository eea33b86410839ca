package motionpath

import "math"

// Options tune curve construction and proximity detection.
type Options struct {
	// Threshold is the distance under which a marker counts as in range.
	Threshold float64
	// LeadWidth and LeadHeight scale the horizontal and vertical control
	// offsets of the first segment (origin to first marker); LeadSkew scales
	// how far the vertical offset leans.
	LeadWidth, LeadHeight, LeadSkew float64
	// ControlFraction scales both control offsets of every later segment;
	// ControlSkew scales how far the vertical offset leans.
	ControlFraction, ControlSkew float64
	// EndProgress is the progress at or above which the last marker is
	// forced into the passed set.
	EndProgress float64
	// Samples is the arclength table resolution per segment.
	Samples int
	// Accuracy is handed to gg when measuring the total length.
	Accuracy float64
	// StrictOrder, when set, only lets a marker pass once every marker before
	// it in traversal order has passed.
	StrictOrder bool
}

// DefaultOptions returns the values used by the qualifications timeline.
func DefaultOptions() Options {
	return Options{
		Threshold:       100,
		LeadWidth:       0.6,
		LeadHeight:      0.4,
		LeadSkew:        0.3,
		ControlFraction: 0.5,
		ControlSkew:     0.4,
		EndProgress:     0.995,
		Samples:         64,
		Accuracy:        0.1,
	}
}

// withDefaults fills zero-valued numeric fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Threshold <= 0 {
		o.Threshold = d.Threshold
	}
	if o.LeadWidth == 0 && o.LeadHeight == 0 && o.LeadSkew == 0 {
		o.LeadWidth, o.LeadHeight, o.LeadSkew = d.LeadWidth, d.LeadHeight, d.LeadSkew
	}
	if o.ControlFraction == 0 && o.ControlSkew == 0 {
		o.ControlFraction, o.ControlSkew = d.ControlFraction, d.ControlSkew
	}
	if o.EndProgress <= 0 || o.EndProgress > 1 {
		o.EndProgress = d.EndProgress
	}
	if o.Samples <= 0 {
		o.Samples = d.Samples
	}
	if o.Accuracy <= 0 {
		o.Accuracy = d.Accuracy
	}
	return o
}

// Marker is a named target on the path, tied to a content panel.
type Marker struct {
	ID     int   `json:"id"`
	Target Point `json:"target"`
}

// Size is a container's pixel dimensions.
type Size struct {
	Width, Height float64
}

// TraversalState is a read-only snapshot of a traversal at one progress value.
type TraversalState struct {
	Progress float64 `json:"progress"`
	Point    Point   `json:"point"`
	Tangent  Vec     `json:"tangent"`
	// Passed holds marker IDs in traversal order. It only grows until the
	// controller is rebuilt.
	Passed []int `json:"passed"`
	// Active is the nearest in-range marker, or nil.
	Active *int `json:"active"`
}

// IsPassed reports whether the marker with the given ID has passed.
func (s TraversalState) IsPassed(id int) bool {
	for _, p := range s.Passed {
		if p == id {
			return true
		}
	}
	return false
}

// ActiveID returns the active marker ID and whether one is active.
func (s TraversalState) ActiveID() (int, bool) {
	if s.Active == nil {
		return 0, false
	}
	return *s.Active, true
}

// Controller drives a traveling point along a curve built from markers.
// It is single-threaded: call Update from the frame loop only.
type Controller struct {
	opts    Options
	size    Size
	origin  Point
	markers []Marker
	curve   *Curve
	passed  map[int]bool
	last    float64
	state   TraversalState
}

// NewController builds a controller for markers inside a container of the
// given size. A zero-size container or no markers yields an empty curve and a
// neutral state; call Rebuild once layout settles.
func NewController(size Size, origin Point, markers []Marker, opts Options) *Controller {
	c := &Controller{opts: opts.withDefaults()}
	c.Rebuild(size, origin, markers)
	return c
}

// Rebuild discards the curve and all traversal state and starts over from
// the new layout. There is no incremental patching.
func (c *Controller) Rebuild(size Size, origin Point, markers []Marker) {
	c.size = size
	c.origin = origin
	c.markers = append(c.markers[:0:0], markers...)
	c.passed = make(map[int]bool, len(markers))
	c.last = 0

	if size.Width <= 0 || size.Height <= 0 {
		c.curve = Build(origin, nil, c.opts)
	} else {
		points := make([]Point, len(markers))
		for i, m := range markers {
			points[i] = m.Target
		}
		c.curve = Build(origin, points, c.opts)
	}
	c.state = TraversalState{Point: origin, Passed: []int{}}
}

// Size returns the container size the curve was built for.
func (c *Controller) Size() Size {
	return c.size
}

// Curve returns the current curve.
func (c *Controller) Curve() *Curve {
	return c.curve
}

// Markers returns the markers in traversal order. The returned slice MUST NOT
// be mutated.
func (c *Controller) Markers() []Marker {
	return c.markers
}

// Options returns the effective options.
func (c *Controller) Options() Options {
	return c.opts
}

// State returns the most recent snapshot.
func (c *Controller) State() TraversalState {
	return c.state
}

// Update moves the traveling point to progress and returns the new snapshot.
// Progress is clamped to [0, 1].
//
// While progress is 0 the traversal has not started and no marker is tested.
// When progress moves forward, the stretch of curve between the previous and
// the new value is swept in steps shorter than the threshold, so a fast jump
// still registers every marker the point went by.
func (c *Controller) Update(progress float64) TraversalState {
	progress = Clamp01(progress)
	if c.curve.Empty() {
		c.state = TraversalState{Progress: progress, Point: c.curve.Origin(), Passed: []int{}}
		c.last = progress
		return c.state
	}

	if progress > c.last {
		c.sweep(c.last, progress)
	}
	c.last = progress

	pt, tan := c.curve.PointAt(progress)
	active := -1
	if progress > 0 {
		active = c.observe(pt)
	}

	if progress >= c.opts.EndProgress && len(c.markers) > 0 {
		last := len(c.markers) - 1
		if c.opts.StrictOrder {
			for _, m := range c.markers {
				c.passed[m.ID] = true
			}
		}
		c.passed[c.markers[last].ID] = true
		if active < 0 {
			active = last
		}
	}

	state := TraversalState{
		Progress: progress,
		Point:    pt,
		Tangent:  tan,
		Passed:   make([]int, 0, len(c.passed)),
	}
	for _, m := range c.markers {
		if c.passed[m.ID] {
			state.Passed = append(state.Passed, m.ID)
		}
	}
	if active >= 0 {
		id := c.markers[active].ID
		state.Active = &id
	}
	c.state = state
	return state
}

// maxSweepSteps caps the work a single Update spends on intermediate points.
const maxSweepSteps = 4096

// sweep marks markers in range at intermediate points in (from, to).
func (c *Controller) sweep(from, to float64) {
	length := c.curve.Length()
	if length <= 0 {
		return
	}
	step := (c.opts.Threshold / 2) / length
	n := int(math.Ceil((to - from) / step))
	if n > maxSweepSteps {
		n = maxSweepSteps
	}
	for k := 1; k < n; k++ {
		p := from + (to-from)*float64(k)/float64(n)
		pt, _ := c.curve.PointAt(p)
		c.observe(pt)
	}
}

// observe adds every in-range marker to the passed set and returns the index
// of the nearest one, or -1.
func (c *Controller) observe(pt Point) int {
	active := -1
	closest := math.Inf(1)
	for i, m := range c.markers {
		d := pt.Distance(m.Target)
		if d >= c.opts.Threshold {
			continue
		}
		if c.opts.StrictOrder && !c.precedingPassed(i) {
			continue
		}
		c.passed[m.ID] = true
		if d < closest {
			closest = d
			active = i
		}
	}
	return active
}

// precedingPassed reports whether every marker before index i has passed.
func (c *Controller) precedingPassed(i int) bool {
	for _, m := range c.markers[:i] {
		if !c.passed[m.ID] {
			return false
		}
	}
	return true
}
