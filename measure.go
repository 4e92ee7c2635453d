package inkwell

import (
	"go.uber.org/zap"
)

// Element is a host-side renderable whose layout box can be queried
// synchronously during a layout pass. ok is false while the element has no
// layout yet. Elements are used as map keys and must be comparable (pointer
// types are the norm).
type Element interface {
	Bounds() (b Bounds, ok bool)
}

// SubscriptionID identifies one observation. The zero ID is never issued.
type SubscriptionID uint32

// BoundsListener receives at most one call per element per layout pass.
type BoundsListener func(el Element, b Bounds)

type observation struct {
	id       SubscriptionID
	el       Element
	bounds   Bounds
	measured bool
	warned   bool
}

// Oracle tracks the layout boxes of observed elements. Bounds are read from
// the host only during Layout and kept in a snapshot that everything else
// reads, so two elements whose targets depend on each other never call back
// into one another mid-pass.
type Oracle struct {
	byElement map[Element]*observation
	byID      map[SubscriptionID]*observation
	order     []*observation // observation order, for deterministic notification
	nextID    SubscriptionID
	listeners []listenerEntry
	nextLID   int
}

type listenerEntry struct {
	id int
	fn BoundsListener
}

// NewOracle returns an oracle with no observations.
func NewOracle() *Oracle {
	return &Oracle{
		byElement: make(map[Element]*observation),
		byID:      make(map[SubscriptionID]*observation),
	}
}

// Observe starts tracking el. Observing an element twice returns the same
// subscription and does not duplicate notifications.
func (o *Oracle) Observe(el Element) SubscriptionID {
	if obs, ok := o.byElement[el]; ok {
		return obs.id
	}
	o.nextID++
	obs := &observation{id: o.nextID, el: el}
	o.byElement[el] = obs
	o.byID[obs.id] = obs
	o.order = append(o.order, obs)
	return obs.id
}

// Unobserve stops tracking and forgets the element's bounds. Unknown IDs are
// ignored.
func (o *Oracle) Unobserve(id SubscriptionID) {
	obs, ok := o.byID[id]
	if !ok {
		return
	}
	delete(o.byID, id)
	delete(o.byElement, obs.el)
	for i, x := range o.order {
		if x == obs {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Observed returns the number of tracked elements.
func (o *Oracle) Observed() int { return len(o.order) }

// OnBoundsChanged registers a listener for bounds changes. The returned func
// unregisters it.
func (o *Oracle) OnBoundsChanged(fn BoundsListener) (remove func()) {
	o.nextLID++
	id := o.nextLID
	o.listeners = append(o.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		for i, l := range o.listeners {
			if l.id == id {
				o.listeners = append(o.listeners[:i], o.listeners[i+1:]...)
				return
			}
		}
	}
}

// CurrentBounds returns the snapshot bounds of el. Unobserved elements and
// elements without layout yield zero Bounds; the layout pass warns about the
// latter, reads of the former are logged at debug level.
func (o *Oracle) CurrentBounds(el Element) Bounds {
	obs, ok := o.byElement[el]
	if !ok {
		logger.Debug("measure: reading unobserved element, using zero")
		return Bounds{}
	}
	return obs.bounds
}

// Measured reports whether el has produced real bounds at least once.
func (o *Oracle) Measured(el Element) bool {
	obs, ok := o.byElement[el]
	return ok && obs.measured
}

// Snapshot returns a copy of all current bounds keyed by subscription.
func (o *Oracle) Snapshot() map[SubscriptionID]Bounds {
	snap := make(map[SubscriptionID]Bounds, len(o.order))
	for _, obs := range o.order {
		snap[obs.id] = obs.bounds
	}
	return snap
}

// Layout runs one layout pass: every observed element is measured, the
// snapshot is updated, and then listeners are told about each element whose
// bounds changed. All reads finish before the first notification so listeners
// always see a consistent snapshot.
func (o *Oracle) Layout() {
	var changed []*observation
	for _, obs := range o.order {
		b, ok := obs.el.Bounds()
		if !ok || !finite(b.Left) || !finite(b.Top) || !finite(b.Width) || !finite(b.Height) {
			if !obs.warned {
				logger.Warn("measure: bounds unavailable, using zero",
					zap.Uint32("subscription", uint32(obs.id)))
				obs.warned = true
			}
			b = Bounds{}
		} else {
			obs.warned = false
			obs.measured = true
		}
		if b != obs.bounds {
			obs.bounds = b
			changed = append(changed, obs)
		}
	}
	for _, obs := range changed {
		// A listener may have unobserved a later element.
		if _, ok := o.byID[obs.id]; !ok {
			continue
		}
		for _, l := range append([]listenerEntry(nil), o.listeners...) {
			l.fn(obs.el, obs.bounds)
		}
	}
}
