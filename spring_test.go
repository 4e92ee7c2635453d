package inkwell

import (
	"errors"
	"math"
	"testing"
)

const frame60 = 1.0 / 60

func TestNewSpringRejectsInvalidConfig(t *testing.T) {
	valid := SpringConfig{VisualDuration: 0.3, Bounce: 0.25, RestDelta: 0.05, RestSpeed: 0.5}
	tests := []struct {
		name  string
		mut   func(*SpringConfig)
		field string
	}{
		{"zero duration", func(c *SpringConfig) { c.VisualDuration = 0 }, "visual_duration"},
		{"negative duration", func(c *SpringConfig) { c.VisualDuration = -1 }, "visual_duration"},
		{"NaN duration", func(c *SpringConfig) { c.VisualDuration = math.NaN() }, "visual_duration"},
		{"bounce above 1", func(c *SpringConfig) { c.Bounce = 1.5 }, "bounce"},
		{"bounce below -1", func(c *SpringConfig) { c.Bounce = -2 }, "bounce"},
		{"zero rest delta", func(c *SpringConfig) { c.RestDelta = 0 }, "rest_delta"},
		{"zero rest speed", func(c *SpringConfig) { c.RestSpeed = 0 }, "rest_speed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mut(&cfg)
			s, err := NewSpring(cfg, 0)
			if err == nil {
				t.Fatal("expected error")
			}
			if s != nil {
				t.Error("expected nil spring on error")
			}
			if !errors.Is(err, ErrConfig) {
				t.Errorf("error %v does not wrap ErrConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error %T is not *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestSpringDampingRatioFromBounce(t *testing.T) {
	tests := []struct {
		bounce float64
		want   float64
	}{
		{0, 1},
		{0.25, 0.75},
		{-0.5, 1.5},
		{-1, 2},
		{1, minDampingRatio},
	}
	for _, tt := range tests {
		cfg := SpringConfig{VisualDuration: 1, Bounce: tt.bounce, RestDelta: 1, RestSpeed: 1}
		if got := cfg.DampingRatio(); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("bounce %v: DampingRatio = %v, want %v", tt.bounce, got, tt.want)
		}
	}
}

func TestSpringSettlesWithinVisualDuration(t *testing.T) {
	s, err := NewSpring(SpringConfig{VisualDuration: 0.3, Bounce: 0.25, RestDelta: 0.05, RestSpeed: 0.5}, 0)
	if err != nil {
		t.Fatal(err)
	}
	s.SetTarget(100)

	elapsed := 0.0
	for i := 0; i < 600 && !s.IsSettled(); i++ {
		s.Tick(frame60)
		elapsed += frame60
	}
	if !s.IsSettled() {
		t.Fatal("spring never settled")
	}
	if elapsed < 0.3 || elapsed > 0.6 {
		t.Errorf("settled after %.3fs, want within [0.3, 0.6]", elapsed)
	}
	if s.Value() != 100 {
		t.Errorf("Value = %f, want 100 after settling", s.Value())
	}
}

func TestSpringOvershootsOnlyWithBounce(t *testing.T) {
	for _, bounce := range []float64{-0.5, 0, 0.25, 0.6} {
		s, _ := NewSpring(SpringConfig{VisualDuration: 0.4, Bounce: bounce, RestDelta: 0.01, RestSpeed: 0.01}, 0)
		s.SetTarget(1)
		peak := 0.0
		for i := 0; i < 600; i++ {
			peak = math.Max(peak, s.Tick(frame60))
		}
		overshoot := peak > 1+1e-9
		if overshoot != (bounce > 0) {
			t.Errorf("bounce %v: peak = %f, overshoot = %v", bounce, peak, overshoot)
		}
	}
}

func TestSpringConvergesForAllConfigs(t *testing.T) {
	durations := []float64{0.05, 0.3, 1, 2.5}
	bounces := []float64{-1, -0.5, 0, 0.3, 0.8, 1}
	dts := []float64{1.0 / 240, frame60, 0.05}
	for _, d := range durations {
		for _, b := range bounces {
			for _, dt := range dts {
				s, err := NewSpring(SpringConfig{VisualDuration: d, Bounce: b, RestDelta: 0.01, RestSpeed: 0.05}, -20)
				if err != nil {
					t.Fatal(err)
				}
				s.SetTarget(500)
				ticks := 0
				for ; ticks < 200000 && !s.IsSettled(); ticks++ {
					s.Tick(dt)
				}
				if !s.IsSettled() {
					t.Errorf("duration %v bounce %v dt %v: not settled after %d ticks (value %f)",
						d, b, dt, ticks, s.Value())
				}
			}
		}
	}
}

func TestSpringRetargetKeepsValueAndVelocity(t *testing.T) {
	s, _ := NewSpring(DefaultSpringConfig, 0)
	s.SetTarget(100)
	for i := 0; i < 6; i++ {
		s.Tick(frame60)
	}
	value, velocity := s.Value(), s.Velocity()
	if velocity <= 0 {
		t.Fatalf("expected motion toward target, velocity = %f", velocity)
	}

	s.SetTarget(-50)
	if s.Value() != value || s.Velocity() != velocity {
		t.Fatalf("retarget changed state: (%f, %f) -> (%f, %f)", value, velocity, s.Value(), s.Velocity())
	}

	// The next step moves no further than the current speed allows plus the
	// acceleration toward the new target over one tick.
	next := s.Tick(frame60)
	omega := DefaultSpringConfig.AngularFrequency()
	maxStep := math.Abs(velocity)*frame60 + omega*omega*math.Abs(value+50)*frame60*frame60
	if math.Abs(next-value) > maxStep {
		t.Errorf("step after retarget = %f, exceeds one tick of motion %f", math.Abs(next-value), maxStep)
	}
}

func TestSpringJumpIsDiscontinuousAndAtRest(t *testing.T) {
	s, _ := NewSpring(DefaultSpringConfig, 0)
	s.SetTarget(100)
	s.Tick(frame60)
	s.Jump(42)
	if s.Value() != 42 || s.Target() != 42 || s.Velocity() != 0 {
		t.Errorf("after Jump: value=%f target=%f velocity=%f", s.Value(), s.Target(), s.Velocity())
	}
	if !s.IsSettled() {
		t.Error("expected settled after Jump")
	}
	if got := s.Tick(frame60); got != 42 {
		t.Errorf("Tick after Jump = %f, want 42", got)
	}
}

func TestSpringIgnoresBadDeltaAndTarget(t *testing.T) {
	s, _ := NewSpring(DefaultSpringConfig, 5)
	s.SetTarget(10)
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if got := s.Tick(dt); got != 5 {
			t.Errorf("Tick(%v) = %f, want unchanged 5", dt, got)
		}
	}
	s.SetTarget(math.NaN())
	if s.Target() != 10 {
		t.Errorf("Target = %f, want 10 after NaN retarget", s.Target())
	}
}

func TestSpringSetConfigPreservesState(t *testing.T) {
	open := SpringConfig{VisualDuration: 0.3, Bounce: 0.25, RestDelta: 0.05, RestSpeed: 0.5}
	closed := SpringConfig{VisualDuration: 0.2, Bounce: 0.15, RestDelta: 0.05, RestSpeed: 0.5}
	s, _ := NewSpring(open, 0)
	s.SetTarget(80)
	s.Tick(frame60)
	s.Tick(frame60)
	v, vel := s.Value(), s.Velocity()

	if err := s.SetConfig(closed); err != nil {
		t.Fatal(err)
	}
	if s.Value() != v || s.Velocity() != vel || s.Target() != 80 {
		t.Error("SetConfig changed spring state")
	}
	if s.Config() != closed {
		t.Errorf("Config = %+v, want %+v", s.Config(), closed)
	}
	if err := s.SetConfig(SpringConfig{}); !errors.Is(err, ErrConfig) {
		t.Errorf("SetConfig(zero) error = %v, want ErrConfig", err)
	}
}

func TestSpringVariableDeltaMatchesFixed(t *testing.T) {
	// The analytic integrator is exact, so two half steps equal one full step.
	a, _ := NewSpring(DefaultSpringConfig, 0)
	b, _ := NewSpring(DefaultSpringConfig, 0)
	a.SetTarget(100)
	b.SetTarget(100)
	for i := 0; i < 10; i++ {
		a.Tick(frame60)
		b.Tick(frame60 / 2)
		b.Tick(frame60 / 2)
	}
	if math.Abs(a.Value()-b.Value()) > 1e-6 {
		t.Errorf("fixed %f vs split %f", a.Value(), b.Value())
	}
}
