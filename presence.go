package inkwell

import (
	"go.uber.org/zap"
)

// PresenceState is the mount lifecycle of one entity. States only move
// forward: Entering, Present, Exiting, Removed.
type PresenceState uint8

const (
	Entering PresenceState = iota // enter animations running
	Present                       // enter animations finished, entity shown
	Exiting                       // host removed the entity, exit animations running
	Removed                       // terminal; entity may be unmounted
)

func (s PresenceState) String() string {
	switch s {
	case Entering:
		return "entering"
	case Present:
		return "present"
	case Exiting:
		return "exiting"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// PresenceConfig declares an entity's animations and callbacks.
//
// Enter is called once at construction and Exit once when presence is lost;
// both return the animations to wait on. Exit runs at the moment of the
// signal, so it starts from whatever the values currently are, including
// part way through an interrupted enter.
type PresenceConfig struct {
	Enter func() []Animation
	Exit  func() []Animation

	// ExitDuration is the watchdog in seconds: the entity is removed this
	// long after the exit signal even if an exit animation never finishes.
	ExitDuration float64

	// OnExitComplete is required and is called exactly once, on Removed.
	OnExitComplete func()

	// OnStateChange, if set, observes every transition.
	OnStateChange func(from, to PresenceState)
}

// Presence gates removal of one entity until its exit animations finish.
type Presence struct {
	handle      Handle
	cfg         PresenceConfig
	state       PresenceState
	anims       []Animation
	exitElapsed float64

	// clock is the runtime clock when mounted through Runtime.Mount. The
	// exit signal is stamped with its time, or with the last frame seen
	// when the presence runs standalone.
	clock    *Clock
	lastTime float64
	exitAt   float64
}

// NewPresence validates cfg, starts the enter animations and returns a
// coordinator in the Entering state.
func NewPresence(h Handle, cfg PresenceConfig) (*Presence, error) {
	if cfg.OnExitComplete == nil {
		return nil, configErr("presence", "on_exit_complete", "is required")
	}
	if !finite(cfg.ExitDuration) || cfg.ExitDuration <= 0 {
		return nil, configErr("presence", "exit_duration", "must be > 0, got %v", cfg.ExitDuration)
	}
	p := &Presence{handle: h, cfg: cfg, state: Entering}
	if cfg.Enter != nil {
		p.anims = cfg.Enter()
	}
	return p, nil
}

// Handle returns the entity handle the coordinator was created with.
func (p *Presence) Handle() Handle { return p.handle }

// State returns the current lifecycle state.
func (p *Presence) State() PresenceState { return p.state }

// IsPresent reports whether the entity is still meant to be shown.
func (p *Presence) IsPresent() bool { return p.state == Entering || p.state == Present }

// SetPresent forwards the host's presence signal. Losing presence while
// Entering or Present starts the exit. Regaining presence once exiting is
// ignored; the host mounts a fresh entity instead.
func (p *Presence) SetPresent(present bool) {
	if present {
		if p.state >= Exiting {
			logger.Debug("presence: ignoring re-entry of exiting entity",
				zap.Stringer("handle", p.handle), zap.Stringer("state", p.state))
		}
		return
	}
	if p.state >= Exiting {
		return
	}
	p.anims = nil
	if p.cfg.Exit != nil {
		p.anims = p.cfg.Exit()
	}
	p.exitElapsed = 0
	p.exitAt = p.now()
	p.transition(Exiting)
}

func (p *Presence) now() float64 {
	if p.clock != nil {
		return p.clock.Now()
	}
	return p.lastTime
}

// Update advances the entity's animations by one frame and applies any
// completion transition. A frame that was already in progress when the exit
// signal arrived is skipped: none of its time counts toward the exit.
func (p *Presence) Update(f Frame) {
	if p.state == Removed {
		return
	}
	p.lastTime = f.Time
	if p.state == Exiting && f.Time <= p.exitAt {
		return
	}
	allDone := true
	for _, a := range p.anims {
		a.Update(f)
		if !a.Done() {
			allDone = false
		}
	}

	switch p.state {
	case Entering:
		if allDone {
			p.transition(Present)
		}
	case Exiting:
		p.exitElapsed = f.Time - p.exitAt
		if allDone || p.exitElapsed >= p.cfg.ExitDuration {
			if !allDone {
				logger.Debug("presence: exit watchdog fired",
					zap.Stringer("handle", p.handle), zap.Float64("elapsed", p.exitElapsed))
			}
			p.remove()
		}
	}
}

// Done implements Animation: a presence is done once Removed.
func (p *Presence) Done() bool { return p.state == Removed }

func (p *Presence) remove() {
	p.anims = nil
	p.transition(Removed)
	cb := p.cfg.OnExitComplete
	p.cfg = PresenceConfig{}
	cb()
}

func (p *Presence) transition(to PresenceState) {
	from := p.state
	p.state = to
	if p.cfg.OnStateChange != nil {
		p.cfg.OnStateChange(from, to)
	}
}
