package markerboard

import (
	"fmt"

	"github.com/goccy/go-json"
)

// scriptStep is one action in an input script.
//
//	{"action": "mode", "value": "RESIZE"}
//	{"action": "drag", "fromX": 100, "fromY": 100, "toX": 140, "toY": 120, "frames": 10}
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Value  string  `json:"value,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays input across frames: clicks and drags through the pointer
// tracker, control changes, waits and screenshots. Attach with
// Editor.SetScript.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"click": true, "drag": true, "wait": true, "screenshot": true,
	"mode": true, "label": true, "background": true,
}

// LoadScript parses a JSON input script.
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (r *Script) Done() bool {
	return r.done
}

// scriptHost is what a Script drives.
type scriptHost interface {
	tracker() *PointerTracker
	formControls() *FormControls
	Screenshot(label string)
	PushBackground(url string)
}

// step advances the script by one frame. Queued pointer input drains before
// the next step runs.
func (r *Script) step(h scriptHost) {
	if r.done {
		return
	}
	t := h.tracker()
	if t.Pending() > 0 {
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
	case "screenshot":
		h.Screenshot(st.Label)
	case "click":
		t.InjectClick(st.X, st.Y)
	case "drag":
		t.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "mode":
		h.formControls().SetMode(ParseMode(st.Value))
	case "label":
		h.formControls().SetLabelText(st.Value)
	case "background":
		h.formControls().SetBackgroundURL(st.Value)
		h.PushBackground(st.Value)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && t.Pending() == 0 {
		r.done = true
	}
}
