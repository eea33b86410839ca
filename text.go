package folio

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content    string
	Font       Font
	Align      TextAlign
	WrapWidth  float64
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	layoutDirty bool
	measuredW   float64
	measuredH   float64
	lines       []textLine
	laidOut     string  // content the cache was built for
	laidWrap    float64 // wrap width the cache was built for
}

// textLine is one laid-out line.
type textLine struct {
	text  string
	width float64
}

// SetContent replaces the text and invalidates the layout.
func (tb *TextBlock) SetContent(s string) {
	tb.Content = s
	tb.layoutDirty = true
}

// Invalidate forces a relayout on the next measure or draw.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// Measure returns the laid-out width and height.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// Lines returns the number of laid-out lines.
func (tb *TextBlock) Lines() int {
	tb.layout()
	return len(tb.lines)
}

func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// layout recomputes line breaks when the content, wrap width or font changed.
// Explicit newlines always break; with WrapWidth > 0 words are wrapped
// greedily and a word wider than the wrap width sits alone on its line.
func (tb *TextBlock) layout() {
	if !tb.layoutDirty && tb.laidOut == tb.Content && tb.laidWrap == tb.WrapWidth {
		return
	}
	tb.layoutDirty = false
	tb.laidOut = tb.Content
	tb.laidWrap = tb.WrapWidth
	tb.lines = tb.lines[:0]
	tb.measuredW, tb.measuredH = 0, 0
	if tb.Font == nil || tb.Content == "" {
		return
	}

	for _, para := range strings.Split(tb.Content, "\n") {
		if tb.WrapWidth <= 0 {
			tb.addLine(para)
			continue
		}
		words := strings.Fields(para)
		if len(words) == 0 {
			tb.addLine("")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if nw, _ := tb.Font.MeasureString(next); nw > tb.WrapWidth {
				tb.addLine(cur)
				cur = w
				continue
			}
			cur = next
		}
		tb.addLine(cur)
	}
	tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
}

func (tb *TextBlock) addLine(s string) {
	w, _ := tb.Font.MeasureString(s)
	tb.lines = append(tb.lines, textLine{text: s, width: w})
	tb.measuredW = max(tb.measuredW, w)
}

// alignOffset returns the x offset of a line within the block.
func (tb *TextBlock) alignOffset(lineW float64) float64 {
	boxW := tb.measuredW
	if tb.WrapWidth > 0 {
		boxW = tb.WrapWidth
	}
	switch tb.Align {
	case TextAlignCenter:
		return (boxW - lineW) / 2
	case TextAlignRight:
		return boxW - lineW
	}
	return 0
}

// draw renders the block with the given world transform. Only TTF fonts
// draw; other Font implementations are measure-only.
func (tb *TextBlock) draw(dst *ebiten.Image, world [6]float64, tint Color, alpha float64) bool {
	f, ok := tb.Font.(*TTFFont)
	if !ok || alpha <= 0 {
		return false
	}
	tb.layout()
	if len(tb.lines) == 0 {
		return false
	}
	lh := tb.lineHeight()
	geo := worldGeoM(world)

	a := tb.Color.A * tint.A * alpha
	for i, line := range tb.lines {
		if line.text == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(tb.alignOffset(line.width), float64(i)*lh)
		op.GeoM.Concat(geo)
		op.ColorScale.Scale(
			float32(tb.Color.R*tint.R*a),
			float32(tb.Color.G*tint.G*a),
			float32(tb.Color.B*tint.B*a),
			float32(a),
		)
		text.Draw(dst, line.text, f.face, op)
	}
	return true
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("folio: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// WithSize returns a font sharing this font's source at another size.
func (f *TTFFont) WithSize(size float64) *TTFFont {
	return newTTFFont(f.source, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

var defaultSource *text.GoTextFaceSource

// DefaultFont returns the bundled Go Regular face at the given size.
func DefaultFont(size float64) (*TTFFont, error) {
	if defaultSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("folio: failed to load default font: %w", err)
		}
		defaultSource = src
	}
	return newTTFFont(defaultSource, size), nil
}
