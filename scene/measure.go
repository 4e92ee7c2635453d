package scene

import (
	"math"

	"github.com/phanxgames/inkwell"
)

// MeasureConfig holds the two spring configurations of the measured panel.
// Opening uses a slower, bouncier spring than closing.
type MeasureConfig struct {
	Open  inkwell.SpringConfig
	Close inkwell.SpringConfig
}

// DefaultMeasureConfig returns the stock configuration.
func DefaultMeasureConfig() MeasureConfig {
	return MeasureConfig{
		Open:  inkwell.SpringConfig{VisualDuration: 0.3, Bounce: 0.25, RestDelta: 0.05, RestSpeed: 0.5},
		Close: inkwell.SpringConfig{VisualDuration: 0.2, Bounce: 0.15, RestDelta: 0.05, RestSpeed: 0.5},
	}
}

func (c MeasureConfig) validate() error {
	if err := c.Open.Validate(); err != nil {
		return err
	}
	return c.Close.Validate()
}

// Layout constants of the bottom bar, in layout units.
const (
	barMaxWidth  = 672 // max-w-2xl
	barPadding   = 16
	barGap       = 8
	panelInset   = 8
	panelHeight  = 500
	buttonWidth  = 80
	buttonHeight = 48
	barHeight    = buttonHeight + 2*barPadding
)

// MeasurePanel is a pill-shaped button that springs open to cover a panel
// measured above it, and springs back to the button's own size on close.
//
// The pill is positioned relative to the button: Left is an x offset from
// the button's left edge and Bottom an upward offset from its bottom edge.
// Its open geometry is derived from the measured panel and button bounds.
type MeasurePanel struct {
	cfg      MeasureConfig
	tunables inkwell.Tunables

	panel   Box
	button  Box
	sibling Box

	open bool

	width, height, left, bottom *inkwell.Value

	// pill mirrors the four values; group writes it after every update.
	pill  struct{ width, height, left, bottom float64 }
	group *inkwell.Group

	rt             *inkwell.Runtime
	subs           []inkwell.SubscriptionID
	removeListener func()
	panelSize      inkwell.Vec2
	buttonSize     inkwell.Vec2
}

// NewMeasurePanel validates cfg and returns an unmounted, closed panel.
func NewMeasurePanel(cfg MeasureConfig) (*MeasurePanel, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	mp := &MeasurePanel{
		cfg:      cfg,
		tunables: inkwell.Tunables{},
		width:    inkwell.NewValue(0),
		height:   inkwell.NewValue(0),
		left:     inkwell.NewValue(0),
		bottom:   inkwell.NewValue(0),
	}
	mp.group = inkwell.NewGroup()
	mp.group.Bind(&mp.pill.width, mp.width)
	mp.group.Bind(&mp.pill.height, mp.height)
	mp.group.Bind(&mp.pill.left, mp.left)
	mp.group.Bind(&mp.pill.bottom, mp.bottom)
	return mp, nil
}

// NewMeasurePanelFromTunables builds the panel from its control surface
// (openDuration, openBounce, closeDuration, closeBounce).
func NewMeasurePanelFromTunables(t inkwell.Tunables) (*MeasurePanel, error) {
	r := tunableReader{t: t, scene: "use-measure"}
	cfg := DefaultMeasureConfig()
	cfg.Open.VisualDuration = r.get("openDuration")
	cfg.Open.Bounce = r.get("openBounce")
	cfg.Close.VisualDuration = r.get("closeDuration")
	cfg.Close.Bounce = r.get("closeBounce")
	if r.err != nil {
		return nil, r.err
	}
	mp, err := NewMeasurePanel(cfg)
	if err != nil {
		return nil, err
	}
	mp.tunables = t.Clone()
	return mp, nil
}

// Name implements Scene.
func (mp *MeasurePanel) Name() string { return "use-measure" }

// Mount observes the panel and button and registers the pill springs.
func (mp *MeasurePanel) Mount(rt *inkwell.Runtime) error {
	if mp.rt != nil {
		return nil
	}
	mp.rt = rt
	o := rt.Oracle()
	mp.subs = append(mp.subs, o.Observe(&mp.panel), o.Observe(&mp.button))
	mp.removeListener = o.OnBoundsChanged(mp.onBounds)
	rt.Add(mp.group)
	return nil
}

// onBounds snaps the pill to its resting geometry whenever the panel or
// button changes size, so a resize never animates. Moves without a size
// change are ignored.
func (mp *MeasurePanel) onBounds(el inkwell.Element, _ inkwell.Bounds) {
	if el != &mp.panel && el != &mp.button {
		return
	}
	o := mp.rt.Oracle()
	panel, button := o.CurrentBounds(&mp.panel), o.CurrentBounds(&mp.button)
	ps := inkwell.Vec2{X: panel.Width, Y: panel.Height}
	bs := inkwell.Vec2{X: button.Width, Y: button.Height}
	if ps == mp.panelSize && bs == mp.buttonSize {
		return
	}
	mp.panelSize, mp.buttonSize = ps, bs

	w, h, l, b := mp.targets()
	mp.width.Set(w)
	mp.height.Set(h)
	mp.left.Set(l)
	mp.bottom.Set(b)
	mp.group.Update(inkwell.Frame{})
}

// targets returns the pill geometry for the current open state.
func (mp *MeasurePanel) targets() (width, height, left, bottom float64) {
	o := mp.rt.Oracle()
	panel, button := o.CurrentBounds(&mp.panel), o.CurrentBounds(&mp.button)
	if !mp.open {
		return button.Width, button.Height, 0, 0
	}
	return panel.Width, panel.Height, panel.Left - button.Left, button.Bottom() - panel.Bottom()
}

// Toggle opens or closes the panel, springing from wherever the pill is.
func (mp *MeasurePanel) Toggle() {
	if mp.rt == nil {
		return
	}
	mp.open = !mp.open
	cfg := mp.cfg.Close
	if mp.open {
		cfg = mp.cfg.Open
	}
	w, h, l, b := mp.targets()
	for _, st := range []struct {
		v      *inkwell.Value
		target float64
	}{{mp.width, w}, {mp.height, h}, {mp.left, l}, {mp.bottom, b}} {
		logAnimation("use-measure", st.v.SpringTo(st.target, cfg))
	}
}

// IsOpen reports the open state.
func (mp *MeasurePanel) IsOpen() bool { return mp.open }

// Layout places the bottom bar for a viewport: a centered bar holding the
// button and a sibling that fills the remaining width, and the panel rising
// above the bar.
func (mp *MeasurePanel) Layout(width, height float64) {
	cw := math.Min(width, barMaxWidth)
	cl := (width - cw) / 2
	top := height - barHeight

	mp.panel.Place(inkwell.Bounds{
		Left:   cl + panelInset,
		Top:    height - panelInset - panelHeight,
		Width:  math.Max(cw-2*panelInset, 0),
		Height: panelHeight,
	})
	mp.button.Place(inkwell.Bounds{
		Left:   cl + barPadding,
		Top:    top + barPadding,
		Width:  buttonWidth,
		Height: buttonHeight,
	})
	mp.sibling.Place(inkwell.Bounds{
		Left:   cl + barPadding + buttonWidth + barGap,
		Top:    top + barPadding,
		Width:  math.Max(cw-2*barPadding-buttonWidth-barGap, 0),
		Height: buttonHeight,
	})
}

// PanelBox, ButtonBox and SiblingBox expose the host elements for drawing.
func (mp *MeasurePanel) PanelBox() *Box   { return &mp.panel }
func (mp *MeasurePanel) ButtonBox() *Box  { return &mp.button }
func (mp *MeasurePanel) SiblingBox() *Box { return &mp.sibling }

// Pill returns the pill's absolute bounds for the last frame.
func (mp *MeasurePanel) Pill() inkwell.Bounds {
	var button inkwell.Bounds
	if mp.rt != nil {
		button = mp.rt.Oracle().CurrentBounds(&mp.button)
	}
	bottomEdge := button.Bottom() - mp.pill.bottom
	return inkwell.Bounds{
		Left:   button.Left + mp.pill.left,
		Top:    bottomEdge - mp.pill.height,
		Width:  mp.pill.width,
		Height: mp.pill.height,
	}
}

// Set implements Scene. New spring settings apply from the next toggle; a
// value that makes either spring invalid is rejected.
func (mp *MeasurePanel) Set(name string, v float64) (float64, error) {
	return setTunable(mp.tunables, name, v, func(x float64) error {
		cfg := mp.cfg
		switch name {
		case "openDuration":
			cfg.Open.VisualDuration = x
		case "openBounce":
			cfg.Open.Bounce = x
		case "closeDuration":
			cfg.Close.VisualDuration = x
		case "closeBounce":
			cfg.Close.Bounce = x
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		mp.cfg = cfg
		return nil
	})
}

// Tunables implements Scene.
func (mp *MeasurePanel) Tunables() inkwell.Tunables { return mp.tunables.Clone() }

// Channels implements Scene.
func (mp *MeasurePanel) Channels() map[string]float64 {
	open := 0.0
	if mp.open {
		open = 1
	}
	return map[string]float64{
		"width":  mp.pill.width,
		"height": mp.pill.height,
		"left":   mp.pill.left,
		"bottom": mp.pill.bottom,
		"open":   open,
	}
}

// Close unobserves the elements and unregisters the springs.
func (mp *MeasurePanel) Close() {
	if mp.rt == nil {
		return
	}
	o := mp.rt.Oracle()
	for _, id := range mp.subs {
		o.Unobserve(id)
	}
	mp.subs = nil
	mp.removeListener()
	mp.rt.Remove(mp.group)
	mp.rt = nil
}
