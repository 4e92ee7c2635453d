package inkwell

import "go.uber.org/zap"

// Value is a single animated scalar. At most one animation drives it at a
// time: starting a new one discards the old run's remaining schedule, and the
// new run starts from the current value and velocity.
//
// A Value is itself an Animation; whoever owns the entity updates it once per
// frame.
type Value struct {
	current  float64
	velocity float64

	run    Animation
	sample func() float64
	spring *Spring

	listeners []valueListener
	nextID    int
}

type valueListener struct {
	id int
	fn func(float64)
}

// NewValue returns a resting value.
func NewValue(v float64) *Value {
	return &Value{current: v}
}

// Get returns the current value.
func (v *Value) Get() float64 { return v.current }

// Velocity returns the rate of change observed over the last update, in units
// per second.
func (v *Value) Velocity() float64 { return v.velocity }

// IsAnimating reports whether a run is in progress.
func (v *Value) IsAnimating() bool { return v.run != nil }

// OnChange registers fn to be called with every new value. The returned func
// unsubscribes.
func (v *Value) OnChange(fn func(float64)) (unsubscribe func()) {
	v.nextID++
	id := v.nextID
	v.listeners = append(v.listeners, valueListener{id: id, fn: fn})
	return func() {
		for i, l := range v.listeners {
			if l.id == id {
				v.listeners = append(v.listeners[:i], v.listeners[i+1:]...)
				return
			}
		}
	}
}

func (v *Value) publish(x float64) {
	if x == v.current {
		return
	}
	v.current = x
	for _, l := range v.listeners {
		l.fn(x)
	}
}

// Set jumps to x, stopping any run.
func (v *Value) Set(x float64) {
	if !finite(x) {
		logger.Warn("value: ignoring non-finite set", zap.Float64("value", x))
		return
	}
	v.Stop()
	v.velocity = 0
	v.publish(x)
}

// Stop discards the active run, leaving the value where it is.
func (v *Value) Stop() {
	v.run = nil
	v.sample = nil
	v.spring = nil
}

// Animate plays track starting from the current value (see NewSequenceFrom).
func (v *Value) Animate(track Track) error {
	seq, err := NewSequenceFrom(v.current, track)
	if err != nil {
		return err
	}
	pb := NewPlayback(seq)
	v.spring = nil
	v.run = pb
	v.sample = pb.Value
	return nil
}

// AnimateTo is a single-segment Animate.
func (v *Value) AnimateTo(target, duration float64, e Easing) error {
	return v.Animate(To(target, duration, e))
}

// SpringTo drives the value toward target with spring physics. A spring
// already driving the value is retargeted in place; otherwise a new spring
// starts from the current value and velocity.
func (v *Value) SpringTo(target float64, cfg SpringConfig) error {
	if v.spring != nil {
		if err := v.spring.SetConfig(cfg); err != nil {
			return err
		}
		v.spring.SetTarget(target)
		return nil
	}
	s, err := NewSpring(cfg, v.current)
	if err != nil {
		return err
	}
	s.velocity = v.velocity
	s.SetTarget(target)
	v.spring = s
	v.run = s
	v.sample = s.Value
	return nil
}

// Update implements Animation.
func (v *Value) Update(f Frame) {
	if v.run == nil {
		return
	}
	v.run.Update(f)
	next := v.sample()
	if f.Delta > 0 {
		v.velocity = (next - v.current) / f.Delta
	}
	v.publish(next)
	if v.run.Done() {
		v.Stop()
		v.velocity = 0
	}
}

// Done implements Animation. A value with no run is done.
func (v *Value) Done() bool {
	return v.run == nil || v.run.Done()
}
