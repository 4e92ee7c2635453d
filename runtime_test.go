package inkwell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frameRecorder records every frame it sees.
type frameRecorder struct {
	frames []Frame
	done   bool
}

func (r *frameRecorder) Update(f Frame) { r.frames = append(r.frames, f) }
func (r *frameRecorder) Done() bool     { return r.done }

func testRuntime() *Runtime {
	return NewRuntime(RuntimeConfig{FPS: 60, MaxDelta: DefaultMaxDelta})
}

func TestRuntimeSharesFrameAcrossAnimations(t *testing.T) {
	rt := testRuntime()
	a, b := &frameRecorder{}, &frameRecorder{}
	rt.Add(a)
	rt.Add(b)
	for i := 0; i < 5; i++ {
		rt.Update(frame60)
	}
	rt.Update(1) // clamped

	require.Len(t, a.frames, 6)
	assert.Equal(t, a.frames, b.frames)
	assert.InDelta(t, DefaultMaxDelta, a.frames[5].Delta, 1e-12)
	assert.Equal(t, uint64(6), rt.LastFrame().Index)
}

func TestRuntimeLayoutRunsBeforeAnimations(t *testing.T) {
	rt := testRuntime()
	el := &box{b: Bounds{0, 0, 10, 10}, ok: true}
	rt.Oracle().Observe(el)

	var order []string
	rt.Oracle().OnBoundsChanged(func(Element, Bounds) { order = append(order, "layout") })
	rt.Before(func(Frame) { order = append(order, "before") })
	rt.Add(animationFunc(func(Frame) { order = append(order, "animate") }))
	rt.After(func(Frame) { order = append(order, "after") })

	rt.Update(frame60)
	assert.Equal(t, []string{"layout", "before", "animate", "after"}, order)
}

func TestRuntimeHookRemoval(t *testing.T) {
	rt := testRuntime()
	n := 0
	remove := rt.After(func(Frame) { n++ })
	rt.Update(frame60)
	remove()
	remove()
	rt.Update(frame60)
	assert.Equal(t, 1, n)
}

func TestRuntimeMountDropsRemovedPresences(t *testing.T) {
	rt := testRuntime()
	removed := 0
	p1, err := rt.Mount(PresenceConfig{ExitDuration: 0.1, OnExitComplete: func() { removed++ }})
	require.NoError(t, err)
	p2, err := rt.Mount(PresenceConfig{ExitDuration: 0.1, OnExitComplete: func() { removed++ }})
	require.NoError(t, err)
	assert.NotEqual(t, p1.Handle(), p2.Handle())

	_, err = rt.Mount(PresenceConfig{})
	assert.ErrorIs(t, err, ErrConfig)

	rt.Update(frame60)
	p1.SetPresent(false)
	rt.Update(frame60) // no exit animations: removed on the first exiting frame

	assert.Equal(t, 1, removed)
	require.Len(t, rt.Presences(), 1)
	assert.Same(t, p2, rt.Presences()[0])
}

func TestRuntimeExitSignalledMidFrameWaitsFullDuration(t *testing.T) {
	exits := map[string]func() []Animation{
		"stalled": func() []Animation {
			return []Animation{&stuckAnimation{}}
		},
		"keyframes": func() []Animation {
			seq, _ := NewSequence(Track{Values: []float64{1, 0}, Duration: 1.0})
			return []Animation{NewPlayback(seq)}
		},
	}
	for name, exit := range exits {
		t.Run(name, func(t *testing.T) {
			rt := testRuntime()
			var signalAt, removedAt float64
			p, err := rt.Mount(PresenceConfig{
				ExitDuration:   1.0,
				Exit:           exit,
				OnExitComplete: func() { removedAt = rt.LastFrame().Time },
			})
			require.NoError(t, err)
			rt.Before(func(f Frame) {
				if f.Index == 30 {
					signalAt = f.Time
					p.SetPresent(false)
				}
			})

			for i := 0; i < 180 && p.State() != Removed; i++ {
				rt.Update(frame60)
			}
			require.Equal(t, Removed, p.State())
			lived := removedAt - signalAt
			assert.GreaterOrEqual(t, lived, 1.0-1e-9, "removed %.4fs after the signal", lived)
			assert.LessOrEqual(t, lived, 1.0+2*frame60)
		})
	}
}

func TestRuntimeExitSignalledFromScheduler(t *testing.T) {
	rt := testRuntime()
	sched := NewScheduler()
	rt.Add(sched)
	var removedAt float64
	p, err := rt.Mount(PresenceConfig{
		ExitDuration:   0.5,
		Exit:           func() []Animation { return []Animation{&stuckAnimation{}} },
		OnExitComplete: func() { removedAt = rt.LastFrame().Time },
	})
	require.NoError(t, err)
	sched.After(0.25, func() { p.SetPresent(false) })

	var signalAt float64
	for i := 0; i < 120 && p.State() != Removed; i++ {
		f := rt.Update(frame60)
		if signalAt == 0 && p.State() == Exiting {
			signalAt = f.Time
		}
	}
	require.Equal(t, Removed, p.State())
	assert.GreaterOrEqual(t, removedAt-signalAt, 0.5-1e-9)
}

func TestRuntimeAddDuringFrameWaitsForNextFrame(t *testing.T) {
	rt := testRuntime()
	late := &frameRecorder{}
	added := false
	rt.Add(animationFunc(func(Frame) {
		if !added {
			rt.Add(late)
			added = true
		}
	}))
	rt.Update(frame60)
	assert.Empty(t, late.frames)
	rt.Update(frame60)
	assert.Len(t, late.frames, 1)

	rt.Remove(late)
	rt.Update(frame60)
	assert.Len(t, late.frames, 1)
}

func TestRuntimeDebugModeLogs(t *testing.T) {
	rt := NewRuntime(RuntimeConfig{FPS: 60, MaxDelta: DefaultMaxDelta, Debug: true})
	rt.Add(&frameRecorder{})
	assert.NotPanics(t, func() { rt.Update(frame60) })
}

func TestHandleString(t *testing.T) {
	rt := testRuntime()
	assert.Equal(t, "ink-1", rt.NewHandle().String())
	assert.Equal(t, "ink-2", rt.NewHandle().String())
}

type animationFunc func(Frame)

func (fn animationFunc) Update(f Frame) { fn(f) }
func (animationFunc) Done() bool        { return false }
