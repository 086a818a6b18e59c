package avg

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ScriptStep is one action of an InputScript.
type ScriptStep struct {
	// Action is one of click, press, move, hover, release, wait, screenshot
	// or cancel.
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// InputScript replays pointer input and screenshots across frames, for
// walking through a story without a player. Attach it with
// Scene.SetInputScript.
type InputScript struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadInputScript parses a YAML (or JSON) script of the form
//
//	steps:
//	  - {action: click, x: 640, y: 600}
//	  - {action: wait, frames: 30}
//	  - {action: screenshot, label: chapter-1}
func LoadInputScript(data []byte) (*InputScript, error) {
	var doc struct {
		Steps []ScriptStep `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	return NewInputScript(doc.Steps...), nil
}

// NewInputScript builds a script from steps.
func NewInputScript(steps ...ScriptStep) *InputScript {
	return &InputScript{steps: steps}
}

// SetInputScript attaches script; it advances once per Update before input
// is processed. Pass nil to detach.
func (s *Scene) SetInputScript(script *InputScript) {
	s.script = script
}

// Done reports whether every step has run.
func (r *InputScript) Done() bool {
	return r.done
}

// step runs at most one step per frame. Queued injections drain first.
func (r *InputScript) step(s *Scene) {
	if r.done || len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	switch st.Action {
	case "click":
		s.InjectClick(st.X, st.Y)
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "hover":
		s.InjectHover(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "cancel":
		s.CancelPointers()
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	default:
		if s.debug {
			debugLogf("input script: unknown action %q", st.Action)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
