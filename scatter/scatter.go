// Package scatter places decorative items inside a bounded region so that no
// two padded boxes overlap.
//
// Placement is rejection sampling with a bounded retry budget per item. When
// the budget runs out the item is skipped, so a layout pass may return fewer
// items than requested. Nothing in this package ever fails: decoration is
// best-effort and never blocks the page.
//
// The engine only computes geometry. Rendering the returned [PlacedItem]
// records is left to the caller.
package scatter

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Rect is an axis-aligned box in container-local pixels, origin top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Pad returns r grown by p on every side.
func (r Rect) Pad(p float64) Rect {
	return Rect{X: r.X - p, Y: r.Y - p, Width: r.Width + 2*p, Height: r.Height + 2*p}
}

// Intersects reports whether r and other share interior area.
// Boxes that only touch along an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Within reports whether r lies fully inside outer. Edges may coincide.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.X+r.Width <= outer.X+outer.Width &&
		r.Y+r.Height <= outer.Y+outer.Height
}

// Overlaps reports whether a and b come closer than gap to each other.
// Each box is padded by half the gap, so two accepted items always keep at
// least gap pixels of clear space between them.
func Overlaps(a, b Rect, gap float64) bool {
	return a.Pad(gap / 2).Intersects(b.Pad(gap / 2))
}

// Motion selects the idle animation a renderer applies to a placed item.
type Motion uint8

const (
	MotionFloat  Motion = iota // slow drift in x/y plus slight rotation
	MotionWobble               // rotation and scale breathing in place
)

// String returns the motion name used in serialized snapshots.
func (m Motion) String() string {
	if m == MotionWobble {
		return "wobble"
	}
	return "float"
}

// MarshalText implements encoding.TextMarshaler.
func (m Motion) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Motion) UnmarshalText(b []byte) error {
	switch string(b) {
	case "float":
		*m = MotionFloat
	case "wobble":
		*m = MotionWobble
	default:
		return fmt.Errorf("scatter: unknown motion %q", b)
	}
	return nil
}

// Accent is a small colored dot drawn inside an item.
type Accent struct {
	Color string `json:"color"`
	// X and Y are 0..1 relative to the item box.
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// PlacedItem is one decoration produced by a layout pass. Items are immutable
// once produced; a resize regenerates the whole set.
type PlacedItem struct {
	ID     int     `json:"id"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// LeftPct and TopPct repeat the position as percentages of the
	// container so a renderer can keep items anchored while it resizes.
	LeftPct float64 `json:"leftPct"`
	TopPct  float64 `json:"topPct"`
	// Rotation is in degrees.
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
	Variant  int     `json:"variant"`
	Motion   Motion  `json:"motion"`
	Accent   *Accent `json:"accent,omitempty"`
}

// Box returns the item's bounding box.
func (p PlacedItem) Box() Rect {
	return Rect{X: p.Left, Y: p.Top, Width: p.Width, Height: p.Height}
}

// Config controls a layout pass.
type Config struct {
	// Count is the number of items requested. Fewer may be placed. Counts
	// above MaxCount are treated as MaxCount.
	Count int
	// MinSize and MaxSize bound the sampled base width in pixels.
	MinSize, MaxSize float64
	// AspectMin and AspectSpan derive height as width*(AspectMin+rand*AspectSpan).
	AspectMin, AspectSpan float64
	// Padding is the minimum clear gap between two items.
	Padding float64
	// Margin is the minimum distance between an item and the container edge.
	Margin float64
	// MaxAttempts is the retry budget per item.
	MaxAttempts int
	// Variants is the size of the visual variant pool.
	Variants int
	// Palette lists accent colors. Empty disables accents.
	Palette []string
}

// DefaultConfig returns the settings used for the qualifications backdrop.
func DefaultConfig() Config {
	return Config{
		Count:       28,
		MinSize:     64,
		MaxSize:     148,
		AspectMin:   0.6,
		AspectSpan:  0.6,
		Padding:     12,
		Margin:      8,
		MaxAttempts: 120,
		Variants:    20,
		Palette:     []string{"#FF6B6B", "#FFD93D", "#6BCB77", "#4D96FF", "#9B5DE5"},
	}
}

// MaxCount bounds the items one layout pass will try to place.
const MaxCount = 512

// CountForWidth scales the requested item count down on narrow containers.
func CountForWidth(width float64, full int) int {
	switch {
	case width < 640:
		return min(full, 6)
	case width < 1024:
		return min(full, 12)
	}
	return full
}

// NewRand returns an unseeded generator for production layouts.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic generator for reproducible layouts.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Scatter lays out up to min(cfg.Count, MaxCount) items inside a w×h
// container. A nil rng uses an unseeded generator. Degenerate input
// (non-positive dimensions, count or size range) yields an empty slice.
func Scatter(w, h float64, cfg Config, rng *rand.Rand) []PlacedItem {
	if w <= 0 || h <= 0 || cfg.Count <= 0 || cfg.MaxSize <= 0 || cfg.MaxAttempts <= 0 {
		return nil
	}
	if rng == nil {
		rng = NewRand()
	}
	minSize := math.Max(1, math.Min(cfg.MinSize, cfg.MaxSize))
	maxSize := math.Max(cfg.MinSize, cfg.MaxSize)

	bounds := Rect{X: cfg.Margin, Y: cfg.Margin, Width: w - 2*cfg.Margin, Height: h - 2*cfg.Margin}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return nil
	}

	pool := NewVariantPool(cfg.Variants, rng)
	count := min(cfg.Count, MaxCount)
	boxes := make([]Rect, 0, count)
	out := make([]PlacedItem, 0, count)

	for i := 0; i < count; i++ {
		box, ok := sample(w, h, minSize, maxSize, cfg, bounds, boxes, rng)
		if !ok {
			continue
		}
		boxes = append(boxes, box)
		out = append(out, decorate(i, box, w, h, pool, cfg.Palette, rng))
	}
	return out
}

// sample draws candidates until one fits or the retry budget is spent.
func sample(w, h, minSize, maxSize float64, cfg Config, bounds Rect, placed []Rect, rng *rand.Rand) (Rect, bool) {
	for try := 0; try < cfg.MaxAttempts; try++ {
		bw := math.Floor(minSize + rng.Float64()*(maxSize-minSize+1))
		if bw > maxSize {
			bw = maxSize
		}
		bh := math.Floor(bw * (cfg.AspectMin + rng.Float64()*cfg.AspectSpan))
		if bh < 1 {
			bh = 1
		}
		x := math.Floor(rng.Float64() * math.Max(1, w-bw))
		y := math.Floor(rng.Float64() * math.Max(1, h-bh))
		box := Rect{X: x, Y: y, Width: bw, Height: bh}

		if !box.Within(bounds) {
			continue
		}
		if collides(box, placed, cfg.Padding) {
			continue
		}
		return box, true
	}
	return Rect{}, false
}

func collides(box Rect, placed []Rect, gap float64) bool {
	for _, other := range placed {
		if Overlaps(box, other, gap) {
			return true
		}
	}
	return false
}

// decorate fills in the visual attributes of an accepted box.
func decorate(id int, box Rect, w, h float64, pool *VariantPool, palette []string, rng *rand.Rand) PlacedItem {
	item := PlacedItem{
		ID:       id,
		Left:     box.X,
		Top:      box.Y,
		Width:    box.Width,
		Height:   box.Height,
		LeftPct:  math.Round(box.X/w*10000) / 100,
		TopPct:   math.Round(box.Y/h*10000) / 100,
		Variant:  pool.Next(),
		Rotation: math.Round((rng.Float64() - 0.5) * 20),
		Opacity:  math.Round((0.18+rng.Float64()*0.18)*1000) / 1000,
	}
	if id%3 == 0 {
		item.Motion = MotionWobble
	}
	if len(palette) > 0 {
		item.Accent = &Accent{
			Color: palette[rng.IntN(len(palette))],
			X:     math.Round((0.12+rng.Float64()*0.76)*1000) / 1000,
			Y:     math.Round((0.12+rng.Float64()*0.76)*1000) / 1000,
			Size:  math.Floor(6 + rng.Float64()*10),
		}
	}
	return item
}
