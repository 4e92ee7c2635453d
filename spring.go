package inkwell

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"
)

// SpringConfig describes spring dynamics in visual terms.
//
// VisualDuration is the time in seconds the motion should appear to take.
// Bounce in [-1, 1] controls overshoot: positive values oscillate, 0 is
// critically damped and negative values are overdamped. RestDelta and
// RestSpeed are the distance and speed (units per second) below which the
// spring counts as settled.
type SpringConfig struct {
	VisualDuration float64 `yaml:"visual_duration"`
	Bounce         float64 `yaml:"bounce"`
	RestDelta      float64 `yaml:"rest_delta"`
	RestSpeed      float64 `yaml:"rest_speed"`
}

// DefaultSpringConfig is a quick, lightly bouncy spring for layout motion.
var DefaultSpringConfig = SpringConfig{
	VisualDuration: 0.3,
	Bounce:         0.25,
	RestDelta:      0.05,
	RestSpeed:      0.5,
}

// minDampingRatio keeps bounce=1 from producing an undamped oscillator that
// never settles.
const minDampingRatio = 0.05

// Validate returns a *ConfigError describing the first invalid field.
func (c SpringConfig) Validate() error {
	switch {
	case !finite(c.VisualDuration) || c.VisualDuration <= 0:
		return configErr("spring", "visual_duration", "must be > 0, got %v", c.VisualDuration)
	case !finite(c.Bounce) || c.Bounce < -1 || c.Bounce > 1:
		return configErr("spring", "bounce", "must be in [-1, 1], got %v", c.Bounce)
	case !finite(c.RestDelta) || c.RestDelta <= 0:
		return configErr("spring", "rest_delta", "must be > 0, got %v", c.RestDelta)
	case !finite(c.RestSpeed) || c.RestSpeed <= 0:
		return configErr("spring", "rest_speed", "must be > 0, got %v", c.RestSpeed)
	}
	return nil
}

// AngularFrequency returns the undamped angular frequency in rad/s. One full
// undamped period equals VisualDuration.
func (c SpringConfig) AngularFrequency() float64 {
	return 2 * math.Pi / c.VisualDuration
}

// DampingRatio maps bounce to zeta: bounce 0 is critical damping (1),
// positive bounce lowers zeta toward oscillation, negative bounce raises it.
func (c SpringConfig) DampingRatio() float64 {
	return math.Max(1-c.Bounce, minDampingRatio)
}

// Spring advances a damped harmonic oscillator toward a target. State is
// owned by the Spring and changed only by Tick, SetTarget and Jump.
type Spring struct {
	cfg      SpringConfig
	value    float64
	velocity float64
	target   float64

	// harmonica coefficients depend on dt; most hosts tick at a fixed rate so
	// one cached entry is nearly always a hit.
	coeffs   harmonica.Spring
	coeffsDt float64
}

// NewSpring creates a spring at rest on initial. It fails with a *ConfigError
// when cfg is invalid.
func NewSpring(cfg SpringConfig, initial float64) (*Spring, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !finite(initial) {
		return nil, configErr("spring", "initial", "must be finite, got %v", initial)
	}
	return &Spring{cfg: cfg, value: initial, target: initial}, nil
}

// Config returns the active configuration.
func (s *Spring) Config() SpringConfig { return s.cfg }

// SetConfig swaps the dynamics without touching value, velocity or target, so
// a motion in flight continues smoothly under the new spring.
func (s *Spring) SetConfig(cfg SpringConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg != s.cfg {
		s.cfg = cfg
		s.coeffsDt = 0
	}
	return nil
}

// Value returns the current position.
func (s *Spring) Value() float64 { return s.value }

// Velocity returns the current velocity in units per second.
func (s *Spring) Velocity() float64 { return s.velocity }

// Target returns the point being approached.
func (s *Spring) Target() float64 { return s.target }

// SetTarget changes the point being approached. Value and velocity are kept
// as the initial conditions of the new trajectory. Non-finite targets are
// ignored.
func (s *Spring) SetTarget(v float64) {
	if !finite(v) {
		logger.Warn("spring: ignoring non-finite target", zap.Float64("target", v))
		return
	}
	s.target = v
}

// Jump moves the spring to v at rest, bypassing the dynamics. Use it when the
// first layout would otherwise animate from zero.
func (s *Spring) Jump(v float64) {
	if !finite(v) {
		logger.Warn("spring: ignoring non-finite jump", zap.Float64("value", v))
		return
	}
	s.value = v
	s.target = v
	s.velocity = 0
}

// IsSettled reports whether the spring is within RestDelta of its target and
// moving slower than RestSpeed.
func (s *Spring) IsSettled() bool {
	return math.Abs(s.value-s.target) <= s.cfg.RestDelta &&
		math.Abs(s.velocity) <= s.cfg.RestSpeed
}

// Tick advances the spring by dt seconds and returns the new value. Once
// settled the spring snaps onto its target. Non-positive or non-finite dt
// leaves the state untouched.
func (s *Spring) Tick(dt float64) float64 {
	if !finite(dt) || dt <= 0 {
		return s.value
	}
	if s.IsSettled() {
		s.value = s.target
		s.velocity = 0
		return s.value
	}
	if dt != s.coeffsDt {
		s.coeffs = harmonica.NewSpring(dt, s.cfg.AngularFrequency(), s.cfg.DampingRatio())
		s.coeffsDt = dt
	}
	s.value, s.velocity = s.coeffs.Update(s.value, s.velocity, s.target)
	if s.IsSettled() {
		s.value = s.target
		s.velocity = 0
	}
	return s.value
}

// Update implements Animation by ticking with the frame delta.
func (s *Spring) Update(f Frame) { s.Tick(f.Delta) }

// Done implements Animation.
func (s *Spring) Done() bool { return s.IsSettled() }
