package scene

import "github.com/phanxgames/inkwell"

// InkbleedConfig configures the static ink bleed.
type InkbleedConfig struct {
	Text      string
	Blur      float64 // >=0
	Threshold float64 // [0,1]
	Fill      inkwell.Color
}

// DefaultInkbleedConfig returns the stock configuration.
func DefaultInkbleedConfig() InkbleedConfig {
	return InkbleedConfig{Text: "granola", Blur: 2, Threshold: 0.5, Fill: inkwell.ColorInk}
}

func (c InkbleedConfig) validate() error {
	if !(c.Blur >= 0) {
		return &inkwell.ConfigError{Component: "inkbleed", Field: "blur", Reason: "must be >= 0"}
	}
	if !(c.Threshold >= 0 && c.Threshold <= 1) {
		return &inkwell.ConfigError{Component: "inkbleed", Field: "threshold", Reason: "must be in [0, 1]"}
	}
	return nil
}

// Inkbleed renders one word through the blur, threshold and fill composite
// with fixed parameters. Threshold is measured from zero, so 0.5 keeps the
// half-covered blur edge.
type Inkbleed struct {
	cfg      InkbleedConfig
	tunables inkwell.Tunables
	filters  inkwell.FilterCache
	filter   inkwell.FilterParameters

	anchor     inkwell.Vec2
	removeHook func()
}

// NewInkbleed validates cfg and returns an unmounted scene.
func NewInkbleed(cfg InkbleedConfig) (*Inkbleed, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ib := &Inkbleed{cfg: cfg, tunables: inkwell.Tunables{}}
	ib.derive(inkwell.Frame{})
	return ib, nil
}

// NewInkbleedFromTunables builds the scene from the inkbleed control surface
// (blur, threshold).
func NewInkbleedFromTunables(t inkwell.Tunables) (*Inkbleed, error) {
	r := tunableReader{t: t, scene: "inkbleed"}
	cfg := DefaultInkbleedConfig()
	cfg.Blur = r.get("blur")
	cfg.Threshold = r.get("threshold")
	if r.err != nil {
		return nil, r.err
	}
	ib, err := NewInkbleed(cfg)
	if err != nil {
		return nil, err
	}
	ib.tunables = t.Clone()
	return ib, nil
}

// Name implements Scene.
func (ib *Inkbleed) Name() string { return "inkbleed" }

// Mount implements Scene.
func (ib *Inkbleed) Mount(rt *inkwell.Runtime) error {
	if ib.removeHook == nil {
		ib.removeHook = rt.After(ib.derive)
	}
	return nil
}

func (ib *Inkbleed) derive(inkwell.Frame) {
	ib.filter = ib.filters.Derive(ib.cfg.Blur, ib.cfg.Threshold, ib.cfg.Fill)
}

// Layout implements Scene.
func (ib *Inkbleed) Layout(width, height float64) {
	ib.anchor = inkwell.Vec2{X: width / 2, Y: height / 2}
}

// Anchor returns the point the text is centered on.
func (ib *Inkbleed) Anchor() inkwell.Vec2 { return ib.anchor }

// Text returns the rendered word.
func (ib *Inkbleed) Text() string { return ib.cfg.Text }

// Filter returns the parameters derived on the last frame.
func (ib *Inkbleed) Filter() inkwell.FilterParameters { return ib.filter }

// Toggle does nothing; the scene has no input.
func (ib *Inkbleed) Toggle() {}

// Set implements Scene.
func (ib *Inkbleed) Set(name string, v float64) (float64, error) {
	return setTunable(ib.tunables, name, v, func(x float64) error {
		cfg := ib.cfg
		switch name {
		case "blur":
			cfg.Blur = x
		case "threshold":
			cfg.Threshold = x
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		ib.cfg = cfg
		return nil
	})
}

// Tunables implements Scene.
func (ib *Inkbleed) Tunables() inkwell.Tunables { return ib.tunables.Clone() }

// Channels implements Scene.
func (ib *Inkbleed) Channels() map[string]float64 {
	return map[string]float64{
		"blur":      ib.filter.BlurRadius,
		"intercept": ib.filter.TransferIntercept,
	}
}

// Close implements Scene.
func (ib *Inkbleed) Close() {
	if ib.removeHook != nil {
		ib.removeHook()
		ib.removeHook = nil
	}
}
