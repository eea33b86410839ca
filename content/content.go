// Package content loads the page document: the sections and their reveal
// blocks, the qualifications timeline markers and the doodle settings.
//
// Documents are YAML. A built-in page is embedded and returned by [Default].
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/folio/motionpath"
	"github.com/phanxgames/folio/reveal"
	"github.com/phanxgames/folio/scatter"
)

//go:embed default.yaml
var defaultPage []byte

var (
	// ErrNoSections is returned for a document without sections.
	ErrNoSections = errors.New("content: document has no sections")
	// ErrDuplicateMarker is returned when two timeline markers share an ID.
	ErrDuplicateMarker = errors.New("content: duplicate marker id")
	// ErrDuplicateBlock is returned when two blocks share an ID.
	ErrDuplicateBlock = errors.New("content: duplicate block id")
	// ErrUnknownKind is returned for a content node with an unknown kind.
	ErrUnknownKind = errors.New("content: unknown node kind")
	// ErrMarkerPosition is returned for a marker anchored both left and right.
	ErrMarkerPosition = errors.New("content: marker position sets both left and right")
	// ErrDoodleCount is returned when doodles.count exceeds scatter.MaxCount.
	ErrDoodleCount = errors.New("content: doodle count out of range")
)

// Document is a whole page.
type Document struct {
	Title    string    `yaml:"title" json:"title"`
	Contact  Contact   `yaml:"contact" json:"contact"`
	Sections []Section `yaml:"sections" json:"sections"`
	Timeline Timeline  `yaml:"timeline" json:"timeline"`
	Doodles  Doodles   `yaml:"doodles" json:"doodles"`
}

// Contact is shown on the contact card.
type Contact struct {
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email" json:"email"`
	URL   string `yaml:"url" json:"url"`
}

// Section is a vertical band of the page.
type Section struct {
	ID      string `yaml:"id" json:"id"`
	Heading string `yaml:"heading" json:"heading"`
	// Height is the section height in viewport heights. Zero means one.
	Height float64 `yaml:"height" json:"height"`
	Blocks []Block `yaml:"blocks" json:"blocks"`
}

// Block is a unit of text revealed together.
type Block struct {
	ID string `yaml:"id" json:"id"`
	// Fast selects the quick per-unit stagger.
	Fast bool `yaml:"fast" json:"fast"`
	// Delay is the base delay in seconds.
	Delay float64 `yaml:"delay" json:"delay"`
	// Size is the font size in pixels. Zero uses the renderer default.
	Size    float64 `yaml:"size" json:"size"`
	Align   string  `yaml:"align" json:"align"`
	Content []Node  `yaml:"content" json:"content"`

	root *reveal.Fragment
}

// Fragments returns the block as a reveal tree. The same tree is returned on
// every call so the reveal scheduler's played set stays keyed correctly.
func (b *Block) Fragments() *reveal.Fragment {
	if b.root == nil {
		children := make([]*reveal.Fragment, 0, len(b.Content))
		for i := range b.Content {
			children = append(children, b.Content[i].fragment())
		}
		b.root = reveal.Block(children...)
	}
	return b.root
}

// Text returns the block's plain text.
func (b *Block) Text() string {
	return b.Fragments().PlainText()
}

// Node is one content node. In YAML a bare string is shorthand for a text
// node.
type Node struct {
	Kind       string `yaml:"kind" json:"kind"`
	Text       string `yaml:"text,omitempty" json:"text,omitempty"`
	Tag        string `yaml:"tag,omitempty" json:"tag,omitempty"`
	Href       string `yaml:"href,omitempty" json:"href,omitempty"`
	DrawBehind bool   `yaml:"drawBehind,omitempty" json:"drawBehind,omitempty"`
	Children   []Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// UnmarshalYAML accepts either a scalar (text) or a mapping.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*n = Node{Kind: reveal.KindText.String(), Text: value.Value}
		return nil
	}
	type plain Node
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = Node(p)
	if n.Kind == "" {
		if len(n.Children) > 0 {
			n.Kind = reveal.KindElement.String()
		} else {
			n.Kind = reveal.KindText.String()
		}
	}
	if n.Kind == "highlight" {
		n.Kind = reveal.KindElement.String()
		n.DrawBehind = true
	}
	if _, ok := reveal.ParseKind(n.Kind); !ok {
		return fmt.Errorf("%w %q at line %d", ErrUnknownKind, n.Kind, value.Line)
	}
	return nil
}

func (n *Node) fragment() *reveal.Fragment {
	kind, _ := reveal.ParseKind(n.Kind)
	f := &reveal.Fragment{
		Kind:       kind,
		Text:       n.Text,
		Tag:        n.Tag,
		Href:       n.Href,
		DrawBehind: n.DrawBehind,
	}
	for i := range n.Children {
		f.Children = append(f.Children, n.Children[i].fragment())
	}
	return f
}

// Timeline is the qualifications scene: a tall container with markers the
// traveling icon visits in order.
type Timeline struct {
	// Height is the container height in viewport heights.
	Height float64 `yaml:"height" json:"height"`
	// Origin is where the traveling icon starts.
	Origin Position `yaml:"origin" json:"origin"`
	// MarkerSize is the marker dot diameter in pixels.
	MarkerSize float64  `yaml:"markerSize" json:"markerSize"`
	Markers    []Marker `yaml:"markers" json:"markers"`
}

// Marker is one stop on the timeline and the panel it reveals.
type Marker struct {
	ID          int      `yaml:"id" json:"id"`
	Heading     string   `yaml:"heading" json:"heading"`
	Subheading  string   `yaml:"subheading" json:"subheading"`
	Description string   `yaml:"description" json:"description"`
	Skills      []string `yaml:"skills" json:"skills"`
	Chart       string   `yaml:"chart" json:"chart"`
	Position    Position `yaml:"position" json:"position"`

	root *reveal.Fragment
}

// Fragments returns the marker panel as a reveal tree. The same tree is
// returned on every call.
func (m *Marker) Fragments() *reveal.Fragment {
	if m.root == nil {
		children := []*reveal.Fragment{
			reveal.Element("h3", reveal.Text(m.Heading)),
			reveal.Text(" " + m.Subheading + " "),
			reveal.Text(m.Description),
		}
		for _, s := range m.Skills {
			children = append(children, reveal.Text(" "), reveal.Icon("•"), reveal.Text(" "+s))
		}
		m.root = reveal.Block(children...)
	}
	return m.root
}

// Position anchors an element by percentages of its container. Exactly one
// of Left and Right may be set; with neither the element is centered.
type Position struct {
	Left  *float64 `yaml:"left,omitempty" json:"left,omitempty"`
	Right *float64 `yaml:"right,omitempty" json:"right,omitempty"`
	Top   float64  `yaml:"top" json:"top"`
}

// Resolve returns the center of an element of the given size placed at p
// inside a container of width w and height h.
func (p Position) Resolve(w, h, size float64) motionpath.Point {
	x := w/2 - size/2
	switch {
	case p.Left != nil:
		x = *p.Left / 100 * w
	case p.Right != nil:
		x = w - *p.Right/100*w - size
	}
	y := p.Top / 100 * h
	return motionpath.Point{X: x + size/2, Y: y + size/2}
}

// Resolve returns the origin and the markers' target points for a container
// of width w and height h.
func (t Timeline) Resolve(w, h float64) (motionpath.Point, []motionpath.Marker) {
	origin := t.Origin.Resolve(w, h, t.MarkerSize)
	out := make([]motionpath.Marker, len(t.Markers))
	for i, m := range t.Markers {
		out[i] = motionpath.Marker{ID: m.ID, Target: m.Position.Resolve(w, h, t.MarkerSize)}
	}
	return origin, out
}

// Doodles overrides the scatter defaults for the timeline decoration.
type Doodles struct {
	Count    int      `yaml:"count" json:"count"`
	MinSize  float64  `yaml:"minSize" json:"minSize"`
	MaxSize  float64  `yaml:"maxSize" json:"maxSize"`
	Padding  float64  `yaml:"padding" json:"padding"`
	Variants int      `yaml:"variants" json:"variants"`
	Palette  []string `yaml:"palette" json:"palette"`
}

// Config merges the overrides onto scatter.DefaultConfig.
func (d Doodles) Config() scatter.Config {
	cfg := scatter.DefaultConfig()
	if d.Count > 0 {
		cfg.Count = d.Count
	}
	if d.MinSize > 0 {
		cfg.MinSize = d.MinSize
	}
	if d.MaxSize > 0 {
		cfg.MaxSize = d.MaxSize
	}
	if d.Padding > 0 {
		cfg.Padding = d.Padding
	}
	if d.Variants > 0 {
		cfg.Variants = d.Variants
	}
	if len(d.Palette) > 0 {
		cfg.Palette = append([]string(nil), d.Palette...)
	}
	return cfg
}

// Parse decodes and validates a document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("content: parse: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: load %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content: load %s: %w", path, err)
	}
	return doc, nil
}

// Default returns a fresh copy of the embedded page.
func Default() *Document {
	doc, err := Parse(defaultPage)
	if err != nil {
		panic("content: embedded page is invalid: " + err.Error())
	}
	return doc
}

// Validate checks document-level invariants.
func (d *Document) Validate() error {
	if len(d.Sections) == 0 {
		return ErrNoSections
	}
	if d.Doodles.Count > scatter.MaxCount {
		return fmt.Errorf("%w: %d > %d", ErrDoodleCount, d.Doodles.Count, scatter.MaxCount)
	}
	blocks := make(map[string]bool)
	for _, s := range d.Sections {
		for _, b := range s.Blocks {
			if b.ID == "" {
				continue
			}
			if blocks[b.ID] {
				return fmt.Errorf("%w %q", ErrDuplicateBlock, b.ID)
			}
			blocks[b.ID] = true
		}
	}
	markers := make(map[int]bool, len(d.Timeline.Markers))
	for _, m := range d.Timeline.Markers {
		if markers[m.ID] {
			return fmt.Errorf("%w %d", ErrDuplicateMarker, m.ID)
		}
		markers[m.ID] = true
		if m.Position.Left != nil && m.Position.Right != nil {
			return fmt.Errorf("%w (marker %d)", ErrMarkerPosition, m.ID)
		}
	}
	return nil
}

// Block returns the block with the given ID.
func (d *Document) Block(id string) (*Block, bool) {
	for i := range d.Sections {
		s := &d.Sections[i]
		for j := range s.Blocks {
			if s.Blocks[j].ID == id {
				return &s.Blocks[j], true
			}
		}
	}
	return nil, false
}

// Marker returns the timeline marker with the given ID.
func (d *Document) Marker(id int) (*Marker, bool) {
	for i := range d.Timeline.Markers {
		if d.Timeline.Markers[i].ID == id {
			return &d.Timeline.Markers[i], true
		}
	}
	return nil, false
}

// Section returns the section with the given ID.
func (d *Document) Section(id string) (*Section, bool) {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return &d.Sections[i], true
		}
	}
	return nil, false
}
