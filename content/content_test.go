package content

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/folio/reveal"
)

func TestDefaultDocument(t *testing.T) {
	doc := Default()
	if len(doc.Sections) == 0 {
		t.Fatal("default page has no sections")
	}
	if len(doc.Timeline.Markers) != 5 {
		t.Errorf("len(Markers) = %d, want 5", len(doc.Timeline.Markers))
	}
	if _, ok := doc.Section("qualifications"); !ok {
		t.Error("default page lacks the qualifications section")
	}
	b, ok := doc.Block("hero-cta")
	if !ok {
		t.Fatal("hero-cta block missing")
	}
	if !b.Fast {
		t.Error("hero-cta should use the fast stagger")
	}
	if got := b.Text(); got != "View My Work →" {
		t.Errorf("hero-cta text = %q", got)
	}
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a, b := Default(), Default()
	ba, _ := a.Block("hero-wow")
	bb, _ := b.Block("hero-wow")
	if ba.Fragments() == bb.Fragments() {
		t.Error("two documents share a fragment tree")
	}
}

func TestBlockFragmentsAreStable(t *testing.T) {
	doc := Default()
	b, _ := doc.Block("hero-debug")
	first := b.Fragments()
	if b.Fragments() != first {
		t.Fatal("Fragments returned a new tree on the second call")
	}
	again, _ := doc.Block("hero-debug")
	if again.Fragments() != first {
		t.Error("looking the block up again produced a new tree")
	}

	if len(first.Children) != 2 {
		t.Fatalf("hero-debug children = %d, want 2", len(first.Children))
	}
	if hl := first.Children[0]; !hl.DrawBehind || hl.Kind != reveal.KindElement {
		t.Errorf("first child = %+v, want a draw-behind element", hl)
	}
}

func TestParseNodes(t *testing.T) {
	data := []byte(`
sections:
  - id: s
    blocks:
      - id: b
        content:
          - "plain text"
          - kind: link
            href: "#x"
            children: ["go ", {kind: icon, text: "→"}]
          - kind: image
            text: portrait
          - tag: em
            children: ["nested"]
`)
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, _ := doc.Block("b")
	nodes := b.Content
	if len(nodes) != 4 {
		t.Fatalf("len(Content) = %d, want 4", len(nodes))
	}
	tests := []struct {
		i    int
		kind string
	}{
		{0, "text"}, {1, "link"}, {2, "image"}, {3, "element"},
	}
	for _, tt := range tests {
		if nodes[tt.i].Kind != tt.kind {
			t.Errorf("Content[%d].Kind = %q, want %q", tt.i, nodes[tt.i].Kind, tt.kind)
		}
	}
	if nodes[1].Children[1].Kind != "icon" {
		t.Errorf("link child kind = %q, want icon", nodes[1].Children[1].Kind)
	}

	plan := reveal.Decompose(b.Fragments(), 0, 0.035)
	// "plaintext" (9) + "go" (2) + icon + image + element
	if len(plan.Units) != 14 {
		t.Errorf("len(Units) = %d, want 14", len(plan.Units))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no sections", "title: x\n", ErrNoSections},
		{"unknown kind", "sections: [{id: s, blocks: [{id: b, content: [{kind: marquee}]}]}]\n", ErrUnknownKind},
		{"duplicate block", "sections: [{id: s, blocks: [{id: b}, {id: b}]}]\n", ErrDuplicateBlock},
		{"duplicate marker", "sections: [{id: s}]\ntimeline: {markers: [{id: 1}, {id: 1}]}\n", ErrDuplicateMarker},
		{"left and right", "sections: [{id: s}]\ntimeline: {markers: [{id: 1, position: {left: 1, right: 1}}]}\n", ErrMarkerPosition},
		{"too many doodles", "sections: [{id: s}]\ndoodles: {count: 1152921504606846976}\n", ErrDoodleCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("sections: [")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	if err := os.WriteFile(path, defaultPage, 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Title != "Portfolio" {
		t.Errorf("Title = %q", doc.Title)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}

func TestPositionResolve(t *testing.T) {
	left, right := 10.0, 10.0
	tests := []struct {
		name string
		pos  Position
		want [2]float64
	}{
		{"left", Position{Left: &left, Top: 25}, [2]float64{112, 262}},
		{"right", Position{Right: &right, Top: 50}, [2]float64{888, 512}},
		{"centered", Position{Top: 0}, [2]float64{500, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.pos.Resolve(1000, 1000, 24)
			if math.Abs(p.X-tt.want[0]) > 1e-9 || math.Abs(p.Y-tt.want[1]) > 1e-9 {
				t.Errorf("Resolve = %v, want %v", p, tt.want)
			}
		})
	}
}

func TestTimelineResolve(t *testing.T) {
	doc := Default()
	origin, markers := doc.Timeline.Resolve(1200, 3000)
	if len(markers) != 5 {
		t.Fatalf("len(markers) = %d", len(markers))
	}
	if math.Abs(origin.X-600) > 1e-9 {
		t.Errorf("origin.X = %v, want centered 600", origin.X)
	}
	for i := 1; i < len(markers); i++ {
		if markers[i].Target.Y <= markers[i-1].Target.Y {
			t.Errorf("marker %d is not below marker %d", markers[i].ID, markers[i-1].ID)
		}
	}
}

func TestDoodlesConfig(t *testing.T) {
	cfg := Doodles{Count: 5, Palette: []string{"#000"}}.Config()
	if cfg.Count != 5 || len(cfg.Palette) != 1 {
		t.Errorf("Config = %+v", cfg)
	}
	if cfg.MaxAttempts != 120 || cfg.MinSize != 64 {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestMarkerFragments(t *testing.T) {
	doc := Default()
	m, ok := doc.Marker(2)
	if !ok {
		t.Fatal("marker 2 missing")
	}
	root := m.Fragments()
	if m.Fragments() != root {
		t.Error("marker fragments not stable")
	}
	if root.Children[0].Kind != reveal.KindElement {
		t.Errorf("heading kind = %v, want element", root.Children[0].Kind)
	}
	if _, ok := doc.Marker(42); ok {
		t.Error("Marker(42) found")
	}
}
