package scene

import "github.com/phanxgames/inkwell"

// LayoutIDConfig configures the shared-element box.
type LayoutIDConfig struct {
	Spring inkwell.SpringConfig
	Size   float64 // box side, >0
	Slots  int     // number of layout slots, >=2
}

// DefaultLayoutIDConfig returns the stock configuration.
func DefaultLayoutIDConfig() LayoutIDConfig {
	return LayoutIDConfig{
		Spring: inkwell.SpringConfig{VisualDuration: 0.4, Bounce: 0.2, RestDelta: 0.05, RestSpeed: 0.5},
		Size:   40,
		Slots:  2,
	}
}

func (c LayoutIDConfig) validate() error {
	if err := c.Spring.Validate(); err != nil {
		return err
	}
	if !(c.Size > 0) {
		return &inkwell.ConfigError{Component: "layout id", Field: "size", Reason: "must be > 0"}
	}
	if c.Slots < 2 {
		return &inkwell.ConfigError{Component: "layout id", Field: "slots", Reason: "must be >= 2"}
	}
	return nil
}

// LayoutID is one box that belongs to a row of slots. Toggling moves it to
// the next slot: its position springs from where it was drawn to where the
// new slot is measured, the way a shared layout element animates between two
// places in a tree.
type LayoutID struct {
	cfg      LayoutIDConfig
	tunables inkwell.Tunables

	slots  []*Box
	active int
	x, y   *inkwell.Value
	pos    inkwell.Vec2
	group  *inkwell.Group

	rt             *inkwell.Runtime
	subs           []inkwell.SubscriptionID
	removeListener func()
	viewport       inkwell.Vec2
}

// NewLayoutID validates cfg and returns an unmounted scene.
func NewLayoutID(cfg LayoutIDConfig) (*LayoutID, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	l := &LayoutID{
		cfg:      cfg,
		tunables: inkwell.Tunables{},
		x:        inkwell.NewValue(0),
		y:        inkwell.NewValue(0),
	}
	for i := 0; i < cfg.Slots; i++ {
		l.slots = append(l.slots, &Box{})
	}
	l.group = inkwell.NewGroup()
	l.group.Bind(&l.pos.X, l.x)
	l.group.Bind(&l.pos.Y, l.y)
	return l, nil
}

// NewLayoutIDFromTunables builds the scene from its control surface
// (visualDuration, bounce, size).
func NewLayoutIDFromTunables(t inkwell.Tunables) (*LayoutID, error) {
	r := tunableReader{t: t, scene: "layout id"}
	cfg := DefaultLayoutIDConfig()
	cfg.Spring.VisualDuration = r.get("visualDuration")
	cfg.Spring.Bounce = r.get("bounce")
	cfg.Size = r.get("size")
	if r.err != nil {
		return nil, r.err
	}
	l, err := NewLayoutID(cfg)
	if err != nil {
		return nil, err
	}
	l.tunables = t.Clone()
	return l, nil
}

// Name implements Scene.
func (l *LayoutID) Name() string { return "layout-id" }

// Mount implements Scene.
func (l *LayoutID) Mount(rt *inkwell.Runtime) error {
	if l.rt != nil {
		return nil
	}
	l.rt = rt
	o := rt.Oracle()
	for _, s := range l.slots {
		l.subs = append(l.subs, o.Observe(s))
	}
	l.removeListener = o.OnBoundsChanged(l.onBounds)
	rt.Add(l.group)
	return nil
}

// onBounds keeps the box glued to its slot when the slot itself moves.
func (l *LayoutID) onBounds(el inkwell.Element, b inkwell.Bounds) {
	if el != l.slots[l.active] {
		return
	}
	l.x.Set(b.Left)
	l.y.Set(b.Top)
	l.group.Update(inkwell.Frame{})
}

// Toggle moves the box to the next slot.
func (l *LayoutID) Toggle() {
	if l.rt == nil {
		return
	}
	l.active = (l.active + 1) % len(l.slots)
	b := l.rt.Oracle().CurrentBounds(l.slots[l.active])
	logAnimation("layout id", l.x.SpringTo(b.Left, l.cfg.Spring))
	logAnimation("layout id", l.y.SpringTo(b.Top, l.cfg.Spring))
}

// Layout spaces the slots evenly across the middle of the viewport.
func (l *LayoutID) Layout(width, height float64) {
	l.viewport = inkwell.Vec2{X: width, Y: height}
	n := float64(len(l.slots))
	for i, s := range l.slots {
		cx := width * float64(i+1) / (n + 1)
		s.Place(inkwell.Bounds{
			Left:   cx - l.cfg.Size/2,
			Top:    height/2 - l.cfg.Size/2,
			Width:  l.cfg.Size,
			Height: l.cfg.Size,
		})
	}
}

// Slots exposes the slot elements for drawing.
func (l *LayoutID) Slots() []*Box { return l.slots }

// Active returns the index of the slot the box belongs to.
func (l *LayoutID) Active() int { return l.active }

// Box returns the box's drawn bounds for the last frame.
func (l *LayoutID) Box() inkwell.Bounds {
	return inkwell.Bounds{Left: l.pos.X, Top: l.pos.Y, Width: l.cfg.Size, Height: l.cfg.Size}
}

// Set implements Scene. A size change re-runs the last layout. A value that
// would leave the config invalid is rejected.
func (l *LayoutID) Set(name string, v float64) (float64, error) {
	return setTunable(l.tunables, name, v, func(x float64) error {
		cfg := l.cfg
		switch name {
		case "visualDuration":
			cfg.Spring.VisualDuration = x
		case "bounce":
			cfg.Spring.Bounce = x
		case "size":
			cfg.Size = x
		}
		if err := cfg.validate(); err != nil {
			return err
		}
		resized := cfg.Size != l.cfg.Size
		l.cfg = cfg
		if resized && l.viewport != (inkwell.Vec2{}) {
			l.Layout(l.viewport.X, l.viewport.Y)
		}
		return nil
	})
}

// Tunables implements Scene.
func (l *LayoutID) Tunables() inkwell.Tunables { return l.tunables.Clone() }

// Channels implements Scene.
func (l *LayoutID) Channels() map[string]float64 {
	return map[string]float64{
		"x":    l.pos.X,
		"y":    l.pos.Y,
		"slot": float64(l.active),
	}
}

// Close implements Scene.
func (l *LayoutID) Close() {
	if l.rt == nil {
		return
	}
	o := l.rt.Oracle()
	for _, id := range l.subs {
		o.Unobserve(id)
	}
	l.subs = nil
	l.removeListener()
	l.rt.Remove(l.group)
	l.rt = nil
}
