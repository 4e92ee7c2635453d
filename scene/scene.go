// Package scene wires the inkwell building blocks into the demo
// compositions: a cycling word that bleeds in and out of ink, a static ink
// bleed, a panel that springs open to fill measured space, and a box that
// springs between layout slots.
//
// Scenes are headless. They own their timers and hooks, expose render state
// through typed accessors, and publish named scalars through Channels so
// tools can trace them without a window.
package scene

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"github.com/phanxgames/inkwell"
	"go.uber.org/zap"
)

// Scene is one composition driven by an inkwell.Runtime.
type Scene interface {
	// Name is the registry key, e.g. "word-cycle".
	Name() string

	// Mount registers the scene's animations, hooks and observations with rt.
	// A scene is mounted at most once.
	Mount(rt *inkwell.Runtime) error

	// Layout places the scene's host elements for a viewport of the given
	// size. Hosts call it on start and on every resize.
	Layout(width, height float64)

	// Toggle handles the scene's primary input (a click).
	Toggle()

	// Set changes one tunable and returns the stored (clamped) value.
	Set(name string, v float64) (float64, error)

	// Tunables returns a copy of the current control surface.
	Tunables() inkwell.Tunables

	// Channels returns the scene's animated scalars by name.
	Channels() map[string]float64

	// Close cancels timers and unregisters hooks. Nothing fires afterwards.
	Close()
}

// Factory builds a scene from resolved tunables.
type Factory func(t inkwell.Tunables) (Scene, error)

type entry struct {
	name    string
	title   string
	factory Factory
}

// catalog lists the scenes in menu order.
var catalog = []entry{
	{"word-cycle", "Word Cycle", func(t inkwell.Tunables) (Scene, error) { return NewWordCycleFromTunables(t) }},
	{"inkbleed", "Inkbleed", func(t inkwell.Tunables) (Scene, error) { return NewInkbleedFromTunables(t) }},
	{"use-measure", "Transcription Sheet", func(t inkwell.Tunables) (Scene, error) { return NewMeasurePanelFromTunables(t) }},
	{"layout-id", "Layout ID", func(t inkwell.Tunables) (Scene, error) { return NewLayoutIDFromTunables(t) }},
}

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Names returns the registered scene names in menu order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.name
	}
	return names
}

// Title returns the human-readable title of a scene, or "" if unknown.
func Title(name string) string {
	if e, ok := lookup(name); ok {
		return e.title
	}
	return ""
}

func lookup(name string) (entry, bool) {
	for _, e := range catalog {
		if e.name == name {
			return e, true
		}
	}
	return entry{}, false
}

// Defaults returns the embedded default tunables of a scene.
func Defaults(name string) (inkwell.Tunables, error) {
	if _, ok := lookup(name); !ok {
		return nil, fmt.Errorf("unknown scene %q (have %s)", name, strings.Join(Names(), ", "))
	}
	data, err := defaultsFS.ReadFile("defaults/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	t, err := inkwell.LoadTunables(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return t, nil
}

// New builds a scene from its defaults with overrides applied on top.
// Overrides naming unknown tunables are an error.
func New(name string, overrides inkwell.Tunables) (Scene, error) {
	t, err := Defaults(name)
	if err != nil {
		return nil, err
	}
	if unknown := t.Merge(overrides); len(unknown) > 0 {
		return nil, fmt.Errorf("scene %s: unknown tunables: %s", name, strings.Join(unknown, ", "))
	}
	e, _ := lookup(name)
	return e.factory(t)
}

// setTunable is the shared body of Scene.Set: constrain the value, let the
// scene build and validate its new configuration, then store the value.
// A rejected value leaves both the tunables and the scene untouched.
func setTunable(t inkwell.Tunables, name string, v float64, apply func(x float64) error) (float64, error) {
	next := t.Clone()
	stored, err := next.Set(name, v)
	if err != nil {
		return 0, err
	}
	if err := apply(stored); err != nil {
		return 0, err
	}
	t[name] = next[name]
	return stored, nil
}

// logAnimation reports an animation that failed to start. Scene configs are
// validated before they reach an animation, so this only fires on a bug.
func logAnimation(scene string, err error) {
	if err != nil {
		inkwell.Logger().Error(scene+": start animation", zap.Error(err))
	}
}

// tunableReader reads several tunables and remembers the first missing one.
type tunableReader struct {
	t     inkwell.Tunables
	scene string
	err   error
}

func (r *tunableReader) get(name string) float64 {
	if r.err != nil {
		return 0
	}
	tn, ok := r.t[name]
	if !ok {
		r.err = &inkwell.ConfigError{Component: r.scene, Field: name, Reason: "missing tunable"}
		return 0
	}
	return tn.Value
}
