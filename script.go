package folio

import (
	"fmt"
	"log/slog"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// ScriptStep is one action of a Script.
//
// Actions:
//
//	wheel       scroll by Delta wheel notches (positive scrolls down)
//	scroll      ease to Y over Duration seconds
//	jump        move to Y with no easing
//	section     call Script.OnSection with Section
//	resize      call Script.OnResize, or resize the scene, with Width×Height
//	wait        idle for Frames frames
//	screenshot  capture the next drawn frame as Label
type ScriptStep struct {
	Action   string  `yaml:"action" json:"action"`
	Label    string  `yaml:"label,omitempty" json:"label,omitempty"`
	Section  string  `yaml:"section,omitempty" json:"section,omitempty"`
	Y        float64 `yaml:"y,omitempty" json:"y,omitempty"`
	Delta    float64 `yaml:"delta,omitempty" json:"delta,omitempty"`
	Width    float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty" json:"height,omitempty"`
	Duration float32 `yaml:"duration,omitempty" json:"duration,omitempty"`
	Frames   int     `yaml:"frames,omitempty" json:"frames,omitempty"`
}

// Script plays a fixed sequence of scroll and capture actions, one step per
// frame, for unattended runs. Attach it with Scene.SetScript.
type Script struct {
	// OnSection resolves "section" steps. Nil skips them.
	OnSection func(id string) bool
	// OnResize applies "resize" steps. In a window the scene follows the
	// window size, so a host sets this to resize the window instead.
	OnResize func(w, h float64)

	steps  []ScriptStep
	cursor int
	wait   int
	done   bool
}

// LoadScript parses a YAML (or JSON) script of the form {steps: [...]}.
func LoadScript(data []byte) (*Script, error) {
	var doc struct {
		Steps []ScriptStep `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("folio: parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("folio: parse script: no steps")
	}
	for i, st := range doc.Steps {
		switch st.Action {
		case "wheel", "scroll", "jump", "section", "wait", "screenshot":
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("folio: parse script: step %d: resize needs a positive width and height", i)
			}
		default:
			return nil, fmt.Errorf("folio: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// SetScript attaches sc to the scene. Its steps run at the start of each
// Step. Nil detaches.
func (s *Scene) SetScript(sc *Script) {
	s.script = sc
}

// Done reports whether every step has run and the last wait has elapsed.
func (sc *Script) Done() bool {
	return sc.done
}

// advance runs at most one step.
func (sc *Script) advance(s *Scene) {
	if sc.done {
		return
	}
	if sc.wait > 0 {
		sc.wait--
		return
	}
	if sc.cursor >= len(sc.steps) {
		sc.done = true
		return
	}

	st := sc.steps[sc.cursor]
	sc.cursor++

	switch st.Action {
	case "wheel":
		s.scroll.ScrollBy(st.Delta * s.WheelStep)
	case "scroll":
		s.scroll.ScrollTo(st.Y, st.Duration, ease.InOutCubic)
	case "jump":
		s.scroll.Jump(st.Y)
	case "section":
		if sc.OnSection != nil && !sc.OnSection(st.Section) {
			Logger().Warn("script: unknown section", slog.String("section", st.Section))
		}
	case "resize":
		if sc.OnResize != nil {
			sc.OnResize(st.Width, st.Height)
		} else {
			s.Resize(st.Width, st.Height)
		}
	case "wait":
		if st.Frames > 0 {
			sc.wait = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if sc.cursor >= len(sc.steps) && sc.wait == 0 {
		sc.done = true
	}
}
