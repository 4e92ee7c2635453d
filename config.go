package inkwell

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// RuntimeConfig holds process-level settings read from the environment.
type RuntimeConfig struct {
	FPS      int     `env:"INKWELL_FPS" envDefault:"60"`
	MaxDelta float64 `env:"INKWELL_MAX_DELTA" envDefault:"0.1"`
	Debug    bool    `env:"INKWELL_DEBUG" envDefault:"false"`
	LogLevel string  `env:"INKWELL_LOG_LEVEL" envDefault:"info"`
}

// LoadRuntimeConfig parses RuntimeConfig from the environment.
func LoadRuntimeConfig() (RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := env.Parse(&cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("load runtime config: %w", err)
	}
	if cfg.FPS <= 0 {
		return RuntimeConfig{}, fmt.Errorf("load runtime config: INKWELL_FPS must be > 0, got %d", cfg.FPS)
	}
	return cfg, nil
}

// FrameDelta returns the fixed step for the configured FPS.
func (c RuntimeConfig) FrameDelta() float64 {
	return 1 / float64(c.FPS)
}

// Tunable is one entry of the external control surface. Only Value is read
// by the runtime; the rest is for the editor.
type Tunable struct {
	Value float64 `yaml:"value"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Step  float64 `yaml:"step,omitempty"`
	Label string  `yaml:"label,omitempty"`
}

// Constrain clamps v into [Min, Max] and snaps it to the Step grid measured
// from Min. Values already on the grid are returned unchanged, so 0.6 on a
// 0.1 grid from 0.2 stays 0.6 rather than picking up rounding error.
func (t Tunable) Constrain(v float64) float64 {
	v = Clamp(v, t.Min, t.Max)
	if t.Step > 0 {
		snapped := t.Min + math.Round((v-t.Min)/t.Step)*t.Step
		if math.Abs(snapped-v) > 1e-9*t.Step {
			v = Clamp(snapped, t.Min, t.Max)
		}
	}
	return v
}

// Tunables is the named control surface of one scene.
type Tunables map[string]Tunable

// LoadTunables decodes a YAML mapping of name -> tunable.
func LoadTunables(r io.Reader) (Tunables, error) {
	var t Tunables
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("parse tunables: %w", err)
	}
	for name, tn := range t {
		if tn.Min > tn.Max {
			return nil, fmt.Errorf("parse tunables: %s: min %v > max %v", name, tn.Min, tn.Max)
		}
		tn.Value = tn.Constrain(tn.Value)
		t[name] = tn
	}
	return t, nil
}

// LoadTunablesFile reads tunables from path.
func LoadTunablesFile(path string) (Tunables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTunables(f)
}

// Encode writes the tunables as YAML.
func (t Tunables) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]Tunable(t)); err != nil {
		return err
	}
	return enc.Close()
}

// Float returns the value of name, or def when absent.
func (t Tunables) Float(name string, def float64) float64 {
	if tn, ok := t[name]; ok {
		return tn.Value
	}
	return def
}

// Set stores a constrained value and returns what was stored. Unknown names
// are an error.
func (t Tunables) Set(name string, v float64) (float64, error) {
	tn, ok := t[name]
	if !ok {
		return 0, fmt.Errorf("unknown tunable %q", name)
	}
	tn.Value = tn.Constrain(v)
	t[name] = tn
	return tn.Value, nil
}

// Merge overlays values from other onto t for names t already defines.
// Metadata in t wins; unknown names in other are returned.
func (t Tunables) Merge(other Tunables) (unknown []string) {
	for name, o := range other {
		if _, ok := t[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		_, _ = t.Set(name, o.Value)
	}
	sort.Strings(unknown)
	return unknown
}

// Names returns the tunable names in sorted order.
func (t Tunables) Names() []string {
	names := make([]string, 0, len(t))
	for n := range t {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy.
func (t Tunables) Clone() Tunables {
	c := make(Tunables, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}
