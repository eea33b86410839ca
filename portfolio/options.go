package portfolio

import (
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/motionpath"
	"github.com/phanxgames/folio/reveal"
)

// Layout constants in pixels.
const (
	sectionPadding = 48.0
	blockGap       = 28.0
	headingSize    = 14.0
	bodySize       = 22.0
	panelMaxWidth  = 360.0
	iconSize       = 22.0
	navOffset      = 20.0
	navThreshold   = 0.4
)

// Default timing, in seconds.
const (
	DefaultResizeDelay = 0.2
	DefaultScrub       = 1.5
)

// FontFunc returns the font for a text size in pixels.
type FontFunc func(size float64) folio.Font

// Theme holds the page colors.
type Theme struct {
	Background folio.Color
	Text       folio.Color
	Muted      folio.Color
	Accent     folio.Color
	Doodle     folio.Color
	Path       folio.Color
}

// DefaultTheme returns the dark page theme.
func DefaultTheme() Theme {
	return Theme{
		Background: folio.MustParseHexColor("#111014"),
		Text:       folio.MustParseHexColor("#f5f1e8"),
		Muted:      folio.MustParseHexColor("#9a968c"),
		Accent:     folio.MustParseHexColor("#e76f51"),
		Doodle:     folio.MustParseHexColor("#f5f1e8"),
		Path:       folio.MustParseHexColor("#e9c46a"),
	}
}

// Options configure a Page. The zero value is usable.
type Options struct {
	// Fonts maps a text size to a font. Nil uses the bundled Go Regular face.
	Fonts FontFunc
	// Theme colors. A zero Theme uses DefaultTheme.
	Theme Theme
	// Capability decides reduced motion. Nil probes the host.
	Capability *folio.Capability
	// Seed makes the doodle layout reproducible. Zero is unseeded.
	Seed uint64
	// Path tunes the traversal controller.
	Path motionpath.Options
	// Reveal tunes the text entrances.
	Reveal reveal.Options
	// ResizeDelay is the quiet period before a resize relayout.
	ResizeDelay float64
	// Scrub is the time constant with which traversal progress follows
	// scroll progress. Negative disables smoothing.
	Scrub float64
	// TimelineSection is the ID of the section that hosts the timeline.
	// Empty means "qualifications".
	TimelineSection string
}

func (o Options) withDefaults() Options {
	if o.Theme == (Theme{}) {
		o.Theme = DefaultTheme()
	}
	if o.ResizeDelay <= 0 {
		o.ResizeDelay = DefaultResizeDelay
	}
	if o.Scrub == 0 {
		o.Scrub = DefaultScrub
	}
	if o.TimelineSection == "" {
		o.TimelineSection = "qualifications"
	}
	return o
}

// defaultFonts returns a FontFunc over the bundled face, caching one font per
// size.
func defaultFonts() (FontFunc, error) {
	base, err := folio.DefaultFont(bodySize)
	if err != nil {
		return nil, err
	}
	cache := map[float64]*folio.TTFFont{bodySize: base}
	return func(size float64) folio.Font {
		if f, ok := cache[size]; ok {
			return f
		}
		f := base.WithSize(size)
		cache[size] = f
		return f
	}, nil
}
