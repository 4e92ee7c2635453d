package scene

import (
	"fmt"

	"github.com/phanxgames/inkwell"
	"gopkg.in/yaml.v3"
)

// Step is a single action in a script.
type Step struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	Name   string  `yaml:"name,omitempty"`
	Value  float64 `yaml:"value,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// script is the top-level document structure.
type script struct {
	Steps []Step `yaml:"steps"`
}

var knownActions = map[string]bool{
	"toggle": true, // Scene.Toggle
	"wait":   true, // idle for Frames frames
	"set":    true, // Scene.Set(Name, Value)
	"layout": true, // Scene.Layout(Width, Height)
	"mark":   true, // record Channels under Label
}

// Mark is a snapshot of a scene's channels taken by a "mark" step.
type Mark struct {
	Label    string
	Frame    inkwell.Frame
	Channels map[string]float64
}

// Runner sequences scripted input across frames so a scene can be driven
// headlessly, from tests or the trace command.
type Runner struct {
	steps     []Step
	cursor    int
	waitCount int
	done      bool
	marks     []Mark
}

// LoadScript parses a YAML (or JSON) script.
func LoadScript(data []byte) (*Runner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "set" && st.Name == "" {
			return nil, fmt.Errorf("parse script: step %d: set needs a name", i)
		}
	}
	return &Runner{steps: s.Steps}, nil
}

// Done reports whether every step has run.
func (r *Runner) Done() bool { return r.done }

// Marks returns the snapshots recorded so far.
func (r *Runner) Marks() []Mark { return r.marks }

// Step runs at most one action; call it once per frame before the runtime
// update. f is the most recent frame, recorded by marks.
func (r *Runner) Step(sc Scene, f inkwell.Frame) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "toggle":
		sc.Toggle()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "set":
		if _, err := sc.Set(st.Name, st.Value); err != nil {
			return fmt.Errorf("script step %d: %w", r.cursor-1, err)
		}
	case "layout":
		sc.Layout(st.Width, st.Height)
	case "mark":
		r.marks = append(r.marks, Mark{Label: st.Label, Frame: f, Channels: sc.Channels()})
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}

// Play drives a mounted scene: it steps r and advances rt by dt until the
// script is done or maxFrames frames have run. onFrame, if non-nil, sees
// every frame.
func Play(sc Scene, rt *inkwell.Runtime, r *Runner, dt float64, maxFrames int, onFrame func(inkwell.Frame)) error {
	for i := 0; i < maxFrames && !r.Done(); i++ {
		if err := r.Step(sc, rt.LastFrame()); err != nil {
			return err
		}
		f := rt.Update(dt)
		if onFrame != nil {
			onFrame(f)
		}
	}
	if !r.Done() {
		return fmt.Errorf("script: not done after %d frames", maxFrames)
	}
	return nil
}
