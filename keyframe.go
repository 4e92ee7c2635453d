package inkwell

import "sort"

// Track is an ordered list of keyframe values played once over Duration
// seconds.
//
// Offsets, when set, gives each value's position in [0, 1] of the duration;
// they must be strictly increasing and start at 0. When nil, values are spread
// evenly. Easings, when set, holds one curve per segment and overrides Easing.
// A nil curve plays linearly.
type Track struct {
	Values   []float64
	Offsets  []float64
	Duration float64
	Easing   Easing
	Easings  []Easing
}

// To is shorthand for a single-segment track toward target, used with
// NewSequenceFrom so the current value becomes the implicit start.
func To(target, duration float64, e Easing) Track {
	return Track{Values: []float64{target}, Duration: duration, Easing: e}
}

// Sequence evaluates a validated Track. The track is copied on construction
// so later edits to the caller's slices cannot change a running sequence.
type Sequence struct {
	values   []float64
	times    []float64 // absolute segment boundaries in seconds
	easings  []Easing  // one per segment
	duration float64
	elapsed  float64
}

// NewSequence validates track and returns a sequence positioned at t=0. It
// fails with a *ConfigError when the track has fewer than two keyframes,
// malformed offsets or a non-positive duration.
func NewSequence(track Track) (*Sequence, error) {
	if !finite(track.Duration) || track.Duration <= 0 {
		return nil, configErr("keyframes", "duration", "must be > 0, got %v", track.Duration)
	}
	n := len(track.Values)
	if n < 2 {
		return nil, configErr("keyframes", "values", "need at least 2 keyframes, got %d", n)
	}
	for i, v := range track.Values {
		if !finite(v) {
			return nil, configErr("keyframes", "values", "keyframe %d is not finite", i)
		}
	}

	offsets := track.Offsets
	if offsets == nil {
		offsets = make([]float64, n)
		for i := range offsets {
			offsets[i] = float64(i) / float64(n-1)
		}
	}
	if len(offsets) != n {
		return nil, configErr("keyframes", "offsets", "have %d offsets for %d values", len(offsets), n)
	}
	if offsets[0] != 0 {
		return nil, configErr("keyframes", "offsets", "first offset must be 0, got %v", offsets[0])
	}
	for i := 1; i < n; i++ {
		if !(offsets[i] > offsets[i-1]) {
			return nil, configErr("keyframes", "offsets", "offset %d (%v) does not increase", i, offsets[i])
		}
		if offsets[i] > 1 {
			return nil, configErr("keyframes", "offsets", "offset %d (%v) exceeds 1", i, offsets[i])
		}
	}

	segments := n - 1
	if track.Easings != nil && len(track.Easings) != segments {
		return nil, configErr("keyframes", "easings", "have %d curves for %d segments", len(track.Easings), segments)
	}
	easings := make([]Easing, segments)
	for i := range easings {
		if track.Easings != nil {
			easings[i] = track.Easings[i]
		} else {
			easings[i] = track.Easing
		}
		if bz, ok := easings[i].(CubicBezier); ok && !bz.Valid() {
			return nil, configErr("keyframes", "easing", "cubic bezier %v is not a function of time", bz)
		}
	}

	seq := &Sequence{
		values:   append([]float64(nil), track.Values...),
		times:    make([]float64, n),
		easings:  easings,
		duration: track.Duration,
	}
	for i, o := range offsets {
		seq.times[i] = o * track.Duration
	}
	return seq, nil
}

// NewSequenceFrom prepends from as the implicit first keyframe. With nil
// Offsets every value (from included) is spread evenly; otherwise Offsets
// lists the positions of the supplied values only, all greater than 0.
func NewSequenceFrom(from float64, track Track) (*Sequence, error) {
	t := track
	t.Values = append([]float64{from}, track.Values...)
	if track.Offsets != nil {
		t.Offsets = append([]float64{0}, track.Offsets...)
	}
	return NewSequence(t)
}

// Duration returns the total length in seconds.
func (s *Sequence) Duration() float64 { return s.duration }

// Times returns the absolute time of each keyframe. The slice must not be
// mutated.
func (s *Sequence) Times() []float64 { return s.times }

// Values returns the keyframe values. The slice must not be mutated.
func (s *Sequence) Values() []float64 { return s.values }

// ValueAt evaluates the sequence at elapsed seconds without changing state.
// Times before 0 give the first value, times past the last keyframe give the
// last value.
func (s *Sequence) ValueAt(elapsed float64) float64 {
	last := len(s.values) - 1
	if !(elapsed > 0) {
		return s.values[0]
	}
	if elapsed >= s.times[last] {
		return s.values[last]
	}
	// First boundary strictly after elapsed; segment starts one before it.
	i := sort.SearchFloat64s(s.times, elapsed)
	if i < len(s.times) && s.times[i] == elapsed {
		return s.values[i]
	}
	i--
	p := (elapsed - s.times[i]) / (s.times[i+1] - s.times[i])
	return Lerp(s.values[i], s.values[i+1], easeAt(s.easings[i], p))
}

// Tick records elapsed seconds since the start (clamped to [0, duration]) and
// returns the value there.
func (s *Sequence) Tick(elapsed float64) float64 {
	s.elapsed = Clamp(elapsed, 0, s.duration)
	return s.ValueAt(s.elapsed)
}

// Elapsed returns the clamped time of the last Tick.
func (s *Sequence) Elapsed() float64 { return s.elapsed }

// IsComplete reports whether the last Tick reached the end.
func (s *Sequence) IsComplete() bool { return s.elapsed >= s.duration }

// Playback runs a Sequence against frames. The first frame it sees counts as
// having started one delta earlier, so a playback started between frames
// advances on the very next frame like every other animation.
type Playback struct {
	seq     *Sequence
	start   float64
	started bool
	value   float64
}

// NewPlayback wraps seq. The playback's value is the sequence's first value
// until the first Update.
func NewPlayback(seq *Sequence) *Playback {
	return &Playback{seq: seq, value: seq.ValueAt(0)}
}

// Update implements Animation.
func (p *Playback) Update(f Frame) {
	if !p.started {
		p.start = f.Time - f.Delta
		p.started = true
	}
	p.value = p.seq.Tick(f.Time - p.start)
}

// Value returns the last sampled value.
func (p *Playback) Value() float64 { return p.value }

// Done implements Animation.
func (p *Playback) Done() bool { return p.seq.IsComplete() }

// Sequence returns the underlying sequence.
func (p *Playback) Sequence() *Sequence { return p.seq }
