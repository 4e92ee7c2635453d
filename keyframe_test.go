package inkwell

import (
	"errors"
	"math"
	"testing"
)

func TestNewSequenceRejectsMalformedTracks(t *testing.T) {
	tests := []struct {
		name  string
		track Track
	}{
		{"one keyframe", Track{Values: []float64{1}, Duration: 1}},
		{"no keyframes", Track{Duration: 1}},
		{"zero duration", Track{Values: []float64{0, 1}, Duration: 0}},
		{"negative duration", Track{Values: []float64{0, 1}, Duration: -0.5}},
		{"equal offsets", Track{Values: []float64{0, 1, 2}, Offsets: []float64{0, 0.5, 0.5}, Duration: 1}},
		{"decreasing offsets", Track{Values: []float64{0, 1, 2}, Offsets: []float64{0, 0.6, 0.4}, Duration: 1}},
		{"first offset not zero", Track{Values: []float64{0, 1}, Offsets: []float64{0.2, 1}, Duration: 1}},
		{"offset past one", Track{Values: []float64{0, 1}, Offsets: []float64{0, 1.2}, Duration: 1}},
		{"offset count", Track{Values: []float64{0, 1, 2}, Offsets: []float64{0, 1}, Duration: 1}},
		{"easing count", Track{Values: []float64{0, 1, 2}, Easings: []Easing{Linear}, Duration: 1}},
		{"non-finite value", Track{Values: []float64{0, math.Inf(1)}, Duration: 1}},
		{"bad bezier", Track{Values: []float64{0, 1}, Duration: 1, Easing: CubicBezier{1.5, 0, 0.5, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSequence(tt.track)
			if !errors.Is(err, ErrConfig) {
				t.Errorf("error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestSequenceHitsKeyframesExactly(t *testing.T) {
	curves := map[string]Easing{
		"nil":       nil,
		"linear":    Linear,
		"ease":      Ease,
		"easeInOut": EaseInOut,
		"outBack":   mustEasing(t, "out-back"),
		"inOutSine": mustEasing(t, "in-out-sine"),
	}
	for name, e := range curves {
		t.Run(name, func(t *testing.T) {
			seq, err := NewSequence(Track{
				Values:   []float64{3, -7.5, 0.1, 12, 12.5},
				Offsets:  []float64{0, 0.13, 0.5, 0.77, 1},
				Duration: 0.7,
				Easing:   e,
			})
			if err != nil {
				t.Fatal(err)
			}
			for i, at := range seq.Times() {
				got := seq.ValueAt(at)
				if math.Abs(got-seq.Values()[i]) > 1e-12 {
					t.Errorf("ValueAt(%v) = %v, want keyframe %d = %v", at, got, i, seq.Values()[i])
				}
			}
		})
	}
}

func TestSequenceClampsOutsideDuration(t *testing.T) {
	seq, _ := NewSequence(Track{Values: []float64{2, 5, 9}, Duration: 2, Easing: EaseInOut})
	tests := []struct {
		at   float64
		want float64
	}{
		{-1, 2},
		{math.Inf(-1), 2},
		{math.NaN(), 2},
		{2.0001, 9},
		{100, 9},
		{math.Inf(1), 9},
	}
	for _, tt := range tests {
		if got := seq.ValueAt(tt.at); got != tt.want {
			t.Errorf("ValueAt(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestSequenceUnevenOffsetsMidSample(t *testing.T) {
	for _, e := range []Easing{Linear, EaseInOut, Ease} {
		seq, err := NewSequence(Track{
			Values:   []float64{0, 0.1, 1},
			Offsets:  []float64{0, 0.43, 1},
			Duration: 0.7,
			Easing:   e,
		})
		if err != nil {
			t.Fatal(err)
		}
		v := seq.Tick(0.35)
		if !(v > 0 && v < 1) {
			t.Fatalf("%v: value %f not strictly inside (0, 1)", e, v)
		}
		toMid := math.Abs(v - 0.1)
		if toMid >= math.Abs(v-0) || toMid >= math.Abs(v-1) {
			t.Errorf("%v: value %f is not closest to 0.1", e, v)
		}
	}
}

func TestSequenceSymmetricEasingMidpoint(t *testing.T) {
	seq, _ := NewSequence(Track{Values: []float64{10, 20}, Duration: 1, Easing: EaseInOut})
	if got := seq.ValueAt(0.5); math.Abs(got-15) > 1e-6 {
		t.Errorf("ValueAt(0.5) = %f, want 15", got)
	}
}

func TestSequencePerSegmentEasing(t *testing.T) {
	seq, err := NewSequence(Track{
		Values:   []float64{0, 1, 2},
		Duration: 2,
		Easings:  []Easing{Linear, EaseIn},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := seq.ValueAt(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("linear segment ValueAt(0.5) = %f, want 0.5", got)
	}
	// ease-in lags linear in the first half of its segment.
	if got := seq.ValueAt(1.5); got >= 1.5 {
		t.Errorf("ease-in segment ValueAt(1.5) = %f, want < 1.5", got)
	}
}

func TestSequenceTickCompletes(t *testing.T) {
	seq, _ := NewSequence(Track{Values: []float64{0, 1}, Duration: 0.5})
	seq.Tick(0.25)
	if seq.IsComplete() {
		t.Fatal("complete at half time")
	}
	if got := seq.Tick(0.75); got != 1 {
		t.Errorf("Tick past end = %f, want 1", got)
	}
	if !seq.IsComplete() {
		t.Error("expected complete")
	}
	if seq.Elapsed() != 0.5 {
		t.Errorf("Elapsed = %f, want clamped 0.5", seq.Elapsed())
	}
}

func TestNewSequenceFromPrependsCurrent(t *testing.T) {
	seq, err := NewSequenceFrom(4, To(8, 1, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := seq.ValueAt(0); got != 4 {
		t.Errorf("start = %f, want 4", got)
	}
	if got := seq.ValueAt(0.25); math.Abs(got-5) > 1e-12 {
		t.Errorf("ValueAt(0.25) = %f, want 5", got)
	}

	seq, err = NewSequenceFrom(1, Track{Values: []float64{2, 3}, Offsets: []float64{0.8, 1}, Duration: 1})
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{0, 0.8, 1}; !floatsEqual(seq.Times(), want) {
		t.Errorf("Times = %v, want %v", seq.Times(), want)
	}

	if _, err := NewSequenceFrom(1, Track{Values: []float64{2}, Offsets: []float64{0}, Duration: 1}); !errors.Is(err, ErrConfig) {
		t.Errorf("offset 0 after implicit start: error = %v, want ErrConfig", err)
	}
}

func TestSequenceCopiesTrack(t *testing.T) {
	values := []float64{0, 10}
	seq, _ := NewSequence(Track{Values: values, Duration: 1})
	values[1] = 99
	if got := seq.ValueAt(1); got != 10 {
		t.Errorf("ValueAt(1) = %f after caller mutation, want 10", got)
	}
}

func TestPlaybackFollowsFrames(t *testing.T) {
	seq, _ := NewSequence(Track{Values: []float64{0, 1}, Duration: 0.1})
	pb := NewPlayback(seq)
	if pb.Value() != 0 {
		t.Errorf("initial Value = %f, want 0", pb.Value())
	}

	clock := NewClock(1)
	clock.Advance(0.5) // playback created mid-run: starts from the next frame

	pb.Update(clock.Advance(0.05))
	if math.Abs(pb.Value()-0.5) > 1e-9 {
		t.Errorf("after one 0.05 frame Value = %f, want 0.5", pb.Value())
	}
	if pb.Done() {
		t.Error("done too early")
	}
	pb.Update(clock.Advance(0.05))
	if !pb.Done() || pb.Value() != 1 {
		t.Errorf("after two frames Done=%v Value=%f", pb.Done(), pb.Value())
	}
}

func mustEasing(t *testing.T, name string) Easing {
	t.Helper()
	e, ok := EasingByName(name)
	if !ok {
		t.Fatalf("unknown easing %q", name)
	}
	return e
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			return false
		}
	}
	return true
}
