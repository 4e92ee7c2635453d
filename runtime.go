package inkwell

import (
	"time"
)

// FrameHook is called once per frame with the frame being processed.
type FrameHook func(f Frame)

type hookEntry struct {
	id int
	fn FrameHook
}

// Runtime is the top-level object that owns the clock, the measurement
// oracle and every registered animation and presence. Hosts call Update once
// per tick; there is no goroutine behind it.
//
// Each Update runs, in order: the layout pass (bounds notifications), the
// before hooks, every animation and presence with one shared Frame, and the
// after hooks, where scenes derive render parameters from the settled values.
type Runtime struct {
	clock  *Clock
	oracle *Oracle
	debug  bool

	anims     []Animation
	presences []*Presence

	before []hookEntry
	after  []hookEntry
	hookID int

	handleCounter Handle
	last          Frame
}

// NewRuntime creates a runtime from cfg.
func NewRuntime(cfg RuntimeConfig) *Runtime {
	return &Runtime{
		clock:  NewClock(cfg.MaxDelta),
		oracle: NewOracle(),
		debug:  cfg.Debug,
	}
}

// Oracle returns the runtime's measurement oracle.
func (r *Runtime) Oracle() *Oracle { return r.oracle }

// LastFrame returns the most recently processed frame.
func (r *Runtime) LastFrame() Frame { return r.last }

// NewHandle issues a fresh entity handle. Handles are held for the entity's
// whole life, so anything keyed by them (filter instances, log fields) stays
// stable across frames.
func (r *Runtime) NewHandle() Handle {
	r.handleCounter++
	return r.handleCounter
}

// Add registers an animation to be updated every frame until removed. Unlike
// presences, plain animations stay registered after they finish so they can
// be retargeted.
func (r *Runtime) Add(a Animation) {
	r.anims = append(r.anims, a)
}

// Remove unregisters an animation.
func (r *Runtime) Remove(a Animation) {
	for i, x := range r.anims {
		if x == a {
			r.anims = append(r.anims[:i], r.anims[i+1:]...)
			return
		}
	}
}

// Mount creates a presence coordinator for a new entity and registers it.
// The coordinator is dropped automatically once Removed.
func (r *Runtime) Mount(cfg PresenceConfig) (*Presence, error) {
	p, err := NewPresence(r.NewHandle(), cfg)
	if err != nil {
		return nil, err
	}
	p.clock = r.clock
	r.presences = append(r.presences, p)
	if r.debug {
		r.debugCheckPresences()
	}
	return p, nil
}

// Presences returns the live coordinators in mount order. The returned slice
// must not be mutated.
func (r *Runtime) Presences() []*Presence { return r.presences }

// Before registers a hook that runs after the layout pass and before
// animations advance. The returned func unregisters it.
func (r *Runtime) Before(fn FrameHook) (remove func()) {
	return r.addHook(&r.before, fn)
}

// After registers a hook that runs after animations advance.
func (r *Runtime) After(fn FrameHook) (remove func()) {
	return r.addHook(&r.after, fn)
}

func (r *Runtime) addHook(list *[]hookEntry, fn FrameHook) func() {
	r.hookID++
	id := r.hookID
	*list = append(*list, hookEntry{id: id, fn: fn})
	return func() {
		for i, h := range *list {
			if h.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

// SetDebugMode enables per-frame stats logging at debug level.
func (r *Runtime) SetDebugMode(enabled bool) { r.debug = enabled }

// Update advances the runtime by dt seconds of host time.
func (r *Runtime) Update(dt float64) Frame {
	var stats debugStats
	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}

	f := r.clock.Advance(dt)
	r.last = f

	r.oracle.Layout()
	if r.debug {
		stats.layoutTime = time.Since(t0)
		t0 = time.Now()
	}

	runHooks(r.before, f)

	// Snapshot: hooks and callbacks may add or remove entries mid-frame.
	anims := append([]Animation(nil), r.anims...)
	for _, a := range anims {
		a.Update(f)
	}
	presences := append([]*Presence(nil), r.presences...)
	for _, p := range presences {
		p.Update(f)
	}
	r.dropRemoved()
	if r.debug {
		stats.animateTime = time.Since(t0)
		t0 = time.Now()
	}

	runHooks(r.after, f)

	if r.debug {
		stats.hookTime = time.Since(t0)
		stats.animations = len(r.anims)
		stats.presences = len(r.presences)
		stats.observed = r.oracle.Observed()
		r.debugLog(f, stats)
	}
	return f
}

func runHooks(hooks []hookEntry, f Frame) {
	snapshot := append([]hookEntry(nil), hooks...)
	for _, h := range snapshot {
		h.fn(f)
	}
}

func (r *Runtime) dropRemoved() {
	live := r.presences[:0]
	for _, p := range r.presences {
		if p.State() != Removed {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(r.presences); i++ {
		r.presences[i] = nil
	}
	r.presences = live
}
