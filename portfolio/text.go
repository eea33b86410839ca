package portfolio

import (
	"fmt"
	"math"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/reveal"
)

// textView renders one reveal root. Until the root reveals, its content sits
// in a transparent plain text node that the viewport observer measures. A
// revealed plan swaps that node for one node per unit.
type textView struct {
	root  *reveal.Fragment
	node  *folio.Node
	plain *folio.Node
	font  folio.Font
	align folio.TextAlign
	color folio.Color
	link  folio.Color
	width float64

	plan   reveal.Plan
	units  []*folio.Node
	widths []float64
	behind []flourishView
	unitsW float64
	unitsH float64
}

// flourishView is a highlight drawn behind some units of a block.
type flourishView struct {
	node    *folio.Node
	members []int
}

func newTextView(name string, root *reveal.Fragment, font folio.Font, align folio.TextAlign, color, link folio.Color) *textView {
	v := &textView{root: root, font: font, align: align, color: color, link: link}
	v.node = folio.NewContainer(name)
	v.plain = folio.NewText(name+"/plain", root.PlainText(), font)
	v.plain.TextBlock.Align = align
	v.plain.TextBlock.Color = color
	v.plain.Alpha = 0
	v.node.AddChild(v.plain)
	return v
}

func (v *textView) lineHeight() float64 {
	if v.font == nil {
		return 0
	}
	return v.font.LineHeight()
}

// setWidth sets the wrap width and lays the content out again.
func (v *textView) setWidth(w float64) {
	v.width = w
	v.plain.TextBlock.WrapWidth = w
	if len(v.units) > 0 {
		v.layoutUnits()
	}
}

// height returns the laid-out height.
func (v *textView) height() float64 {
	if len(v.units) > 0 {
		return v.unitsH
	}
	_, h := v.plain.TextBlock.Measure()
	return h
}

// showPlain reveals the content as is, with no per-unit motion.
func (v *textView) showPlain() {
	v.plain.SetAlpha(1)
}

// built reports whether the plain node has been replaced by units.
func (v *textView) built() bool {
	return len(v.units) > 0
}

// build replaces the plain text with one hidden node per unit of plan.
func (v *textView) build(plan reveal.Plan) {
	v.plan = plan
	v.units = make([]*folio.Node, len(plan.Units))
	v.widths = make([]float64, len(plan.Units))
	lh := v.lineHeight()

	for i, u := range plan.Units {
		c := v.color
		if u.Link != nil {
			c = v.link
		}
		name := fmt.Sprintf("%s/%d", v.node.Name, i)
		var n *folio.Node
		switch {
		case u.Text != "":
			n = folio.NewText(name, u.Text, v.font)
			n.TextBlock.Color = c
			v.widths[i], _ = v.font.MeasureString(u.Text)
		case u.Kind == reveal.KindImage || u.Kind == reveal.KindGraphic:
			n = folio.NewRect(name, lh*0.8, lh*0.8, c)
			v.widths[i] = lh * 0.8
		default:
			n = folio.NewContainer(name)
		}
		n.SetRevealState(reveal.Hidden)
		v.units[i] = n
		v.node.AddChild(n)
	}

	for i, f := range plan.Flourishes {
		rect := folio.NewRect(fmt.Sprintf("%s/flourish/%d", v.node.Name, i), 0, 0, v.link.WithAlpha(0.35))
		rect.SetZIndex(-1)
		rect.ScaleX = 0
		v.node.AddChild(rect)
		v.behind = append(v.behind, flourishView{node: rect, members: flourishMembers(plan, f.Fragment)})
	}

	v.plain.Visible = false
	v.layoutUnits()
}

// target resolves a unit to its node.
func (v *textView) target(u reveal.Unit) reveal.Target {
	if u.Index < 0 || u.Index >= len(v.units) {
		return nil
	}
	return v.units[u.Index]
}

type textLine struct {
	first, last int
	width       float64
}

// layoutUnits places unit nodes word by word. A word never breaks across
// lines; a word wider than the wrap width sits alone on its line.
func (v *textView) layoutUnits() {
	lh := v.lineHeight()
	space, _ := v.font.MeasureString(" ")

	var placed []int
	var lines []textLine
	x, y, end := 0.0, 0.0, 0.0
	start := 0
	toks := v.plan.Tokens
	for i := 0; i < len(toks); {
		if toks[i].Space() {
			if x > 0 {
				x += space
			}
			i++
			continue
		}
		j := i + 1
		for toks[i].Word >= 0 && j < len(toks) && !toks[j].Space() && toks[j].Word == toks[i].Word {
			j++
		}
		ww := 0.0
		for k := i; k < j; k++ {
			ww += v.widths[toks[k].Unit]
		}
		if end > 0 && v.width > 0 && x+ww > v.width {
			lines = append(lines, textLine{first: start, last: len(placed), width: end})
			start = len(placed)
			x, end = 0, 0
			y += lh
		}
		for k := i; k < j; k++ {
			u := toks[k].Unit
			v.units[u].SetPosition(x, y)
			x += v.widths[u]
			placed = append(placed, u)
		}
		end = x
		i = j
	}
	lines = append(lines, textLine{first: start, last: len(placed), width: end})

	v.unitsW = 0
	for _, l := range lines {
		v.unitsW = math.Max(v.unitsW, l.width)
	}
	v.unitsH = 0
	if len(placed) > 0 {
		v.unitsH = y + lh
	}

	box := v.width
	if box <= 0 {
		box = v.unitsW
	}
	for _, l := range lines {
		off := alignOffset(v.align, box, l.width)
		if off == 0 {
			continue
		}
		for _, u := range placed[l.first:l.last] {
			n := v.units[u]
			n.SetPosition(n.X+off, n.Y)
		}
	}
	v.layoutFlourishes(lh)
}

// layoutFlourishes sizes each highlight to the box around its units. A
// highlight with no visible units covers the whole block.
func (v *textView) layoutFlourishes(lh float64) {
	for _, f := range v.behind {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, u := range f.members {
			if v.widths[u] == 0 {
				continue
			}
			n := v.units[u]
			minX, minY = math.Min(minX, n.X), math.Min(minY, n.Y)
			maxX, maxY = math.Max(maxX, n.X+v.widths[u]), math.Max(maxY, n.Y+lh)
		}
		if math.IsInf(minX, 1) {
			minX, minY, maxX, maxY = 0, 0, v.unitsW, v.unitsH
		}
		pad := lh * 0.15
		f.node.SetPosition(minX-pad, minY+pad)
		f.node.SetSize(maxX-minX+2*pad, maxY-minY-pad)
	}
}

// flourishMembers returns the indices of the units that came from f or its
// descendants.
func flourishMembers(plan reveal.Plan, f *reveal.Fragment) []int {
	inside := make(map[*reveal.Fragment]bool)
	f.Walk(func(x *reveal.Fragment) bool {
		inside[x] = true
		return true
	})
	var out []int
	for _, u := range plan.Units {
		if inside[u.Source] {
			out = append(out, u.Index)
		}
	}
	return out
}

func alignOffset(a folio.TextAlign, box, w float64) float64 {
	switch a {
	case folio.TextAlignCenter:
		return (box - w) / 2
	case folio.TextAlignRight:
		return box - w
	}
	return 0
}
