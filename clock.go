package inkwell

import "go.uber.org/zap"

// Frame is one scheduling quantum. Every animation updated during a frame
// receives the same Frame value, which keeps parameters animated together in
// phase even though they are independent objects.
type Frame struct {
	Index uint64  // 1 for the first frame
	Time  float64 // seconds since the clock started
	Delta float64 // seconds since the previous frame
}

// Animation is anything that advances once per frame and can report when it
// has finished: springs, keyframe playbacks, groups.
type Animation interface {
	Update(f Frame)
	Done() bool
}

// DefaultMaxDelta caps a single frame step. Larger gaps (a window dragged, a
// debugger pause) are treated as this much time.
const DefaultMaxDelta = 0.1

// Clock turns raw host deltas into Frames. Negative and non-finite deltas
// become zero, deltas above MaxDelta are clamped.
type Clock struct {
	MaxDelta float64
	index    uint64
	time     float64
}

// NewClock returns a clock with the given clamp (DefaultMaxDelta if <= 0).
func NewClock(maxDelta float64) *Clock {
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &Clock{MaxDelta: maxDelta}
}

// Advance produces the next frame.
func (c *Clock) Advance(dt float64) Frame {
	switch {
	case !finite(dt) || dt < 0:
		logger.Debug("clock: dropping invalid delta", zap.Float64("dt", dt))
		dt = 0
	case dt > c.MaxDelta:
		logger.Debug("clock: clamping long frame",
			zap.Float64("dt", dt), zap.Float64("max", c.MaxDelta))
		dt = c.MaxDelta
	}
	c.index++
	c.time += dt
	return Frame{Index: c.index, Time: c.time, Delta: dt}
}

// Now returns the time of the last frame.
func (c *Clock) Now() float64 { return c.time }
