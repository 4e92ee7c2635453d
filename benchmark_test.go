package inkwell

import (
	"testing"
)

const benchDelta = 1.0 / 60

// setupBenchRuntime creates a runtime with n values springing back and forth
// between 0 and 100, all bound into one group.
func setupBenchRuntime(n int) (*Runtime, []*Value) {
	rt := NewRuntime(RuntimeConfig{FPS: 60, MaxDelta: DefaultMaxDelta})
	fields := make([]float64, n)
	g := NewGroup()
	values := make([]*Value, n)
	for i := range values {
		values[i] = NewValue(0)
		g.Bind(&fields[i], values[i])
	}
	rt.Add(g)
	return rt, values
}

// --- Spring Benchmarks ---

func BenchmarkSpring_Tick(b *testing.B) {
	s, _ := NewSpring(DefaultSpringConfig, 0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if s.IsSettled() {
			s.SetTarget(100 - s.Target())
		}
		s.Tick(benchDelta)
	}
}

func BenchmarkSpring_TickVaryingDelta(b *testing.B) {
	s, _ := NewSpring(DefaultSpringConfig, 0)
	s.SetTarget(1e9) // never settles
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Coefficients are recomputed when dt changes.
		s.Tick(benchDelta + float64(i%3)*1e-4)
	}
}

// --- Keyframe Benchmarks ---

func BenchmarkSequence_ValueAt_8Keyframes(b *testing.B) {
	seq, _ := NewSequence(Track{
		Values:   []float64{0, 10, 5, 30, 20, 60, 40, 100},
		Duration: 2,
		Easing:   Ease,
	})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		seq.ValueAt(float64(i%120) / 60)
	}
}

func BenchmarkCubicBezier_At(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Ease.At(float64(i%100) / 100)
	}
}

// --- Runtime Benchmarks ---

func BenchmarkRuntime_1000Springs(b *testing.B) {
	rt, values := setupBenchRuntime(1000)
	cfg := DefaultSpringConfig

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if i%60 == 0 {
			target := float64((i / 60) % 2 * 100)
			for _, v := range values {
				_ = v.SpringTo(target, cfg)
			}
		}
		rt.Update(benchDelta)
	}
}

func BenchmarkRuntime_PresenceChurn(b *testing.B) {
	rt := NewRuntime(RuntimeConfig{FPS: 60, MaxDelta: DefaultMaxDelta})
	cfg := PresenceConfig{
		ExitDuration:   0.1,
		Enter:          func() []Animation { return nil },
		Exit:           func() []Animation { return nil },
		OnExitComplete: func() {},
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p, _ := rt.Mount(cfg)
		p.SetPresent(false)
		rt.Update(benchDelta)
	}
}

func BenchmarkOracle_Layout_100Elements(b *testing.B) {
	o := NewOracle()
	boxes := make([]*box, 100)
	for i := range boxes {
		boxes[i] = &box{b: Bounds{Left: float64(i), Width: 10, Height: 10}, ok: true}
		o.Observe(boxes[i])
	}
	notified := 0
	o.OnBoundsChanged(func(Element, Bounds) { notified++ })
	o.Layout()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// One element moves per pass.
		boxes[i%100].b.Top = float64(i)
		o.Layout()
	}
}

func BenchmarkFilterCache_Derive(b *testing.B) {
	var c FilterCache
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Derive(float64(i%4), 0.8, ColorInk)
	}
}
