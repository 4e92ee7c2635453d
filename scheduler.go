package inkwell

import "sort"

// TimerID identifies a scheduled callback. The zero ID is never issued.
type TimerID uint32

type timer struct {
	id       TimerID
	due      float64
	interval float64 // 0 for one-shot
	fn       func()
}

// Scheduler runs callbacks on frame time. It belongs to whoever created it
// (normally a scene) and is torn down with Close; nothing fires after that.
// Timers never fire mid-frame: Update checks them once per frame.
type Scheduler struct {
	now    float64
	timers []*timer
	nextID TimerID
	closed bool
}

// NewScheduler returns an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn once, delay seconds from now.
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	return s.add(delay, 0, fn)
}

// Every schedules fn every interval seconds, first after one interval.
// Non-positive intervals are rejected with a zero ID.
func (s *Scheduler) Every(interval float64, fn func()) TimerID {
	if !(interval > 0) {
		return 0
	}
	return s.add(interval, interval, fn)
}

func (s *Scheduler) add(delay, interval float64, fn func()) TimerID {
	if s.closed || fn == nil {
		return 0
	}
	if !finite(delay) || delay < 0 {
		delay = 0
	}
	s.nextID++
	s.timers = append(s.timers, &timer{id: s.nextID, due: s.now + delay, interval: interval, fn: fn})
	return s.nextID
}

// Cancel removes a timer. Unknown or already-fired IDs are ignored.
func (s *Scheduler) Cancel(id TimerID) {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// Pending returns the number of live timers.
func (s *Scheduler) Pending() int { return len(s.timers) }

// Close cancels every timer and rejects new ones.
func (s *Scheduler) Close() {
	s.timers = nil
	s.closed = true
}

// Update advances scheduler time by the frame delta and fires due timers in
// due order. A repeating timer fires at most once per frame, so a long frame
// does not replay missed ticks.
func (s *Scheduler) Update(f Frame) {
	if s.closed {
		return
	}
	s.now += f.Delta

	var due []*timer
	for _, t := range s.timers {
		if t.due <= s.now {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })

	for _, t := range due {
		if s.closed {
			return
		}
		if !s.live(t) {
			continue // cancelled by an earlier callback this frame
		}
		if t.interval > 0 {
			t.due += t.interval
			if t.due <= s.now {
				t.due = s.now + t.interval
			}
		} else {
			s.Cancel(t.id)
		}
		t.fn()
	}
}

func (s *Scheduler) live(t *timer) bool {
	for _, x := range s.timers {
		if x == t {
			return true
		}
	}
	return false
}

// Done implements Animation so a scheduler can ride along with a Runtime;
// it is done once closed.
func (s *Scheduler) Done() bool { return s.closed }
