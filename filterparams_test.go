package inkwell

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeriveFilterParametersZeroCentered(t *testing.T) {
	fill := MustParseColor("#111")
	got := DeriveFilterParameters(5, 0.8, fill)
	want := FilterParameters{
		BlurRadius:        5,
		TransferSlope:     100,
		TransferIntercept: -80,
		FillColor:         fill,
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })); diff != "" {
		t.Errorf("DeriveFilterParameters mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveFilterParametersIsPure(t *testing.T) {
	inputs := []struct{ blur, threshold float64 }{
		{0, 0}, {2, 0.5}, {20, 1}, {7.3, 0.137}, {-1, 3}, {1e9, -1e9},
	}
	for _, in := range inputs {
		a := DeriveFilterParameters(in.blur, in.threshold, ColorInk)
		b := DeriveFilterParameters(in.blur, in.threshold, ColorInk)
		if a != b {
			t.Errorf("(%v, %v): %+v != %+v", in.blur, in.threshold, a, b)
		}
		if math.Float64bits(a.TransferIntercept) != math.Float64bits(b.TransferIntercept) {
			t.Errorf("(%v, %v): intercept bits differ", in.blur, in.threshold)
		}
	}
}

func TestDeriveFilterParametersClampsInputs(t *testing.T) {
	tests := []struct {
		threshold     float64
		wantIntercept float64
	}{
		{-0.5, 0},
		{1.7, -100},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		p := DeriveFilterParameters(1, tt.threshold, ColorInk)
		if p.TransferIntercept != tt.wantIntercept {
			t.Errorf("threshold %v: intercept = %v, want %v", tt.threshold, p.TransferIntercept, tt.wantIntercept)
		}
	}
	if p := DeriveFilterParameters(-3, 0.5, ColorInk); p.BlurRadius != 0 {
		t.Errorf("negative blur: BlurRadius = %v, want 0", p.BlurRadius)
	}
}

func TestFilterPipelineCentered(t *testing.T) {
	// Word scenes measure threshold from the midpoint: intercept = -(t*s) + 0.5*s.
	p := FilterPipeline{Center: 0.5}.Derive(8, 0.8, ColorInk)
	if math.Abs(p.TransferIntercept-(-30)) > 1e-9 {
		t.Errorf("centered intercept = %v, want -30", p.TransferIntercept)
	}
}

func TestFilterParametersTransfer(t *testing.T) {
	p := DeriveFilterParameters(0, 0.5, ColorInk)
	tests := []struct {
		alpha, want float64
	}{
		{0, 0},
		{0.49, 0},
		{0.505, 0.5},
		{0.51, 1},
		{1, 1},
	}
	for _, tt := range tests {
		if got := p.Transfer(tt.alpha); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Transfer(%v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
	if got := p.Threshold(); math.Abs(got-0.505) > 1e-12 {
		t.Errorf("Threshold = %v, want 0.505", got)
	}
}

func TestFilterCacheMemoizes(t *testing.T) {
	c := FilterCache{Pipeline: FilterPipeline{Center: 0.5}}
	a := c.Derive(4, 0.7, ColorInk)
	b := c.Derive(4, 0.7, ColorInk)
	if a != b || c.Hits() != 1 {
		t.Fatalf("second call: equal=%v hits=%d", a == b, c.Hits())
	}
	d := c.Derive(4.5, 0.7, ColorInk)
	if d.BlurRadius != 4.5 || c.Hits() != 1 {
		t.Errorf("changed input: BlurRadius=%v hits=%d", d.BlurRadius, c.Hits())
	}
	if d != c.Pipeline.Derive(4.5, 0.7, ColorInk) {
		t.Error("cached result differs from direct derivation")
	}
}
