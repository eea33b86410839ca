package reveal

import "unicode"

// State is the animated appearance of one unit.
type State struct {
	Opacity float64 `json:"opacity"`
	OffsetY float64 `json:"offsetY"`
}

// Hidden and Shown are the entrance endpoints: a unit starts transparent and
// 24 units below its resting position and rises into place.
var (
	Hidden = State{Opacity: 0, OffsetY: 24}
	Shown  = State{Opacity: 1, OffsetY: 0}
)

// Unit is the smallest independently animated piece of a block.
type Unit struct {
	// Index is the unit's position in emission order.
	Index int `json:"index"`
	// Kind is KindText for a character, or the kind of the atomic fragment.
	Kind Kind `json:"kind"`
	// Text is the character for text units and the fragment's text otherwise.
	Text string `json:"text"`
	// Word groups consecutive characters that must not be broken across
	// lines. It is -1 for atomic units.
	Word int `json:"word"`
	// Delay is baseDelay + Index*perUnitDelay, in seconds.
	Delay float64 `json:"delay"`
	From  State   `json:"from"`
	To    State   `json:"to"`

	// Source is the fragment the unit came from.
	Source *Fragment `json:"-"`
	// Link is the nearest enclosing link, or nil.
	Link *Fragment `json:"-"`
}

// Token is one laid-out item in emission order: either a unit or a plain
// space separating words.
type Token struct {
	Text string `json:"text"`
	// Unit indexes Plan.Units, or is -1 for a space.
	Unit int `json:"unit"`
	Word int `json:"word"`

	Link *Fragment `json:"-"`
}

// Space reports whether the token is a plain space with no unit.
func (t Token) Space() bool { return t.Unit < 0 }

// Flourish is a draw-behind highlight scheduled once the block reveals.
type Flourish struct {
	Fragment *Fragment `json:"-"`
	Delay    float64   `json:"delay"`
}

// Plan is the result of decomposing one block.
type Plan struct {
	Root       *Fragment  `json:"-"`
	Units      []Unit     `json:"units"`
	Tokens     []Token    `json:"tokens"`
	Flourishes []Flourish `json:"flourishes,omitempty"`
	// Revealed reports that the block should be shown. A reduced plan is
	// revealed with no units: the host shows the content as is.
	Revealed bool `json:"revealed"`
	Reduced  bool `json:"reduced"`
}

// Words returns the number of word groups in the plan.
func (p Plan) Words() int {
	n := 0
	for _, u := range p.Units {
		if u.Word >= n {
			n = u.Word + 1
		}
	}
	return n
}

// Span returns the time from trigger until the last unit has landed.
func (p Plan) Span(duration float64) float64 {
	if len(p.Units) == 0 {
		return 0
	}
	return p.Units[len(p.Units)-1].Delay + duration
}

// decomposer carries the running counters across the recursive walk.
type decomposer struct {
	base, per float64
	plan      Plan
	word      int
}

// Decompose walks root's children and emits units in document order with
// delay = baseDelay + index*perUnitDelay. Text runs split on whitespace;
// every character of a word becomes a unit and every whitespace run becomes
// one plain space token. Images, graphics, icons and other elements are
// single units. Links are kept as wrappers and their content is decomposed.
//
// Draw-behind highlights are reported as flourishes starting shortly after
// baseDelay. Decompose does not mark anything as played; see [Scheduler].
func Decompose(root *Fragment, baseDelay, perUnitDelay float64) Plan {
	d := &decomposer{base: baseDelay, per: perUnitDelay}
	d.plan.Root = root
	if root == nil {
		return d.plan
	}
	d.node(root, nil)
	root.Walk(func(f *Fragment) bool {
		if f.DrawBehind {
			d.plan.Flourishes = append(d.plan.Flourishes, Flourish{Fragment: f, Delay: baseDelay + flourishLag})
		}
		return true
	})
	d.plan.Revealed = len(d.plan.Units) > 0
	return d.plan
}

// flourishLag is how long after the base delay highlights start drawing.
const flourishLag = 0.03

func (d *decomposer) node(f *Fragment, link *Fragment) {
	if f == nil {
		return
	}
	switch {
	case f.Kind == KindText:
		d.text(f, link)
	case f.Kind == KindLink:
		for _, c := range f.Children {
			d.node(c, f)
		}
	case f.Kind == KindBlock:
		for _, c := range f.Children {
			d.node(c, link)
		}
	default:
		d.atomic(f, link)
	}
}

func (d *decomposer) text(f *Fragment, link *Fragment) {
	inWord, inSpace := false, false
	for _, r := range f.Text {
		if unicode.IsSpace(r) {
			if inWord {
				d.word++
				inWord = false
			}
			if !inSpace {
				d.plan.Tokens = append(d.plan.Tokens, Token{Text: " ", Unit: -1, Word: -1, Link: link})
				inSpace = true
			}
			continue
		}
		inSpace = false
		inWord = true
		d.emit(Unit{Kind: KindText, Text: string(r), Word: d.word, Source: f, Link: link})
	}
	if inWord {
		d.word++
	}
}

func (d *decomposer) atomic(f *Fragment, link *Fragment) {
	text := f.Text
	if len(f.Children) > 0 {
		text = f.PlainText()
	}
	d.emit(Unit{Kind: f.Kind, Text: text, Word: -1, Source: f, Link: link})
}

func (d *decomposer) emit(u Unit) {
	u.Index = len(d.plan.Units)
	u.Delay = d.base + float64(u.Index)*d.per
	u.From, u.To = Hidden, Shown
	d.plan.Tokens = append(d.plan.Tokens, Token{Text: u.Text, Unit: u.Index, Word: u.Word, Link: u.Link})
	d.plan.Units = append(d.plan.Units, u)
}
