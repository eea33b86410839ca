// Package reveal decomposes a block of content into atomic animatable units
// and schedules a staggered, one-shot entrance for each.
//
// Content is described as a [Fragment] tree. [Decompose] walks it and emits
// a [Plan]: the ordered units with their delays, plus the plain space tokens
// that sit between words. A [Scheduler] adds the at-most-once guard and the
// reduced-motion fallback on top of Decompose. Nothing in this package touches
// a renderer; a host lays out the plan and drives an [Animator] such as
// [Timeline].
package reveal

import (
	"fmt"
	"strings"
)

// Kind classifies a fragment for decomposition.
type Kind uint8

const (
	// KindBlock is a root container. Its children are decomposed in order.
	KindBlock Kind = iota
	// KindText is a run of plain text, split into one unit per character.
	KindText
	// KindImage is a raster image, revealed as one unit.
	KindImage
	// KindGraphic is a vector graphic, revealed as one unit.
	KindGraphic
	// KindIcon is an element explicitly marked as an icon, revealed as one unit.
	KindIcon
	// KindLink is a hyperlink. The wrapper is kept and its children are
	// decomposed like any other content.
	KindLink
	// KindElement is any other element, revealed whole as one unit.
	KindElement
)

var kindNames = [...]string{
	KindBlock:   "block",
	KindText:    "text",
	KindImage:   "image",
	KindGraphic: "graphic",
	KindIcon:    "icon",
	KindLink:    "link",
	KindElement: "element",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind returns the kind with the given name.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("reveal: unknown kind %q", b)
	}
	*k = v
	return nil
}

// Atomic reports whether fragments of this kind reveal as a single unit.
func (k Kind) Atomic() bool {
	switch k {
	case KindImage, KindGraphic, KindIcon, KindElement:
		return true
	}
	return false
}

// Fragment is one node of revealable content.
type Fragment struct {
	Kind Kind
	// Text is the content of a text fragment, the alt text of an image, the
	// glyph of an icon or the label of an element with no children.
	Text string
	// Tag names the element for KindElement and KindGraphic (for example
	// "span" or "svg").
	Tag string
	// Href is the target of a link.
	Href string
	// DrawBehind marks a highlight element that scales in horizontally once
	// the block has revealed.
	DrawBehind bool
	Children   []*Fragment
}

// Block returns a root fragment holding children.
func Block(children ...*Fragment) *Fragment {
	return &Fragment{Kind: KindBlock, Children: children}
}

// Text returns a plain text fragment.
func Text(s string) *Fragment {
	return &Fragment{Kind: KindText, Text: s}
}

// Image returns an image fragment with alt text.
func Image(alt string) *Fragment {
	return &Fragment{Kind: KindImage, Tag: "img", Text: alt}
}

// Graphic returns a vector graphic fragment.
func Graphic(name string) *Fragment {
	return &Fragment{Kind: KindGraphic, Tag: "svg", Text: name}
}

// Icon returns an icon fragment drawn with glyph.
func Icon(glyph string) *Fragment {
	return &Fragment{Kind: KindIcon, Text: glyph}
}

// Link returns a hyperlink wrapping children.
func Link(href string, children ...*Fragment) *Fragment {
	return &Fragment{Kind: KindLink, Tag: "a", Href: href, Children: children}
}

// Element returns a generic element. It reveals as a single unit regardless
// of its children.
func Element(tag string, children ...*Fragment) *Fragment {
	return &Fragment{Kind: KindElement, Tag: tag, Children: children}
}

// Highlight returns a draw-behind element.
func Highlight(children ...*Fragment) *Fragment {
	return &Fragment{Kind: KindElement, Tag: "span", DrawBehind: true, Children: children}
}

// PlainText returns the fragment's text content with whitespace runs
// collapsed to single spaces.
func (f *Fragment) PlainText() string {
	var b strings.Builder
	f.appendText(&b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func (f *Fragment) appendText(b *strings.Builder) {
	if f == nil {
		return
	}
	switch f.Kind {
	case KindText, KindIcon:
		b.WriteString(f.Text)
		return
	}
	if len(f.Children) == 0 {
		b.WriteString(f.Text)
		return
	}
	for _, c := range f.Children {
		c.appendText(b)
	}
}

// Walk calls fn for f and every descendant in depth-first order. Returning
// false from fn skips that fragment's children.
func (f *Fragment) Walk(fn func(*Fragment) bool) {
	if f == nil || !fn(f) {
		return
	}
	for _, c := range f.Children {
		c.Walk(fn)
	}
}
