package inkwell

import (
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", Color{1, 1, 1, 1}},
		{"#000000", Color{0, 0, 0, 1}},
		{"#ff000080", Color{1, 0, 0, 128.0 / 255}},
		{"#1c1917", ColorInk},
		{"  Ink ", ColorInk},
		{"transparent", Color{}},
		{"#0f08", Color{0, 1, 0, 0x88 / 255.0}},
		{"#FF8000", Color{1, 0x80 / 255.0, 0, 1}},
		{"#abcd", Color{0xaa / 255.0, 0xbb / 255.0, 0xcc / 255.0, 0xdd / 255.0}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if !colorNear(got, tt.want) {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#ggg", "#gg0000", "#fffz", "chartreuse"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) should fail", in)
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("MustParseColor should panic on bad input")
		}
	}()
	MustParseColor("#nope")
}

func TestColorPremultiplied(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.Premultiplied()
	want := [4]float32{0.5, 0.25, 0, 0.5}
	if got != want {
		t.Errorf("Premultiplied = %v, want %v", got, want)
	}
}

func TestBounds(t *testing.T) {
	b := Bounds{Left: 10, Top: 20, Width: 100, Height: 50}
	if b.Right() != 110 || b.Bottom() != 70 {
		t.Errorf("Right/Bottom = %f/%f, want 110/70", b.Right(), b.Bottom())
	}
	if c := b.Center(); c != (Vec2{60, 45}) {
		t.Errorf("Center = %+v, want {60 45}", c)
	}
	if !b.Contains(10, 20) || !b.Contains(110, 70) || b.Contains(9, 30) {
		t.Error("Contains edge handling wrong")
	}
	if b.IsZero() || !(Bounds{}).IsZero() {
		t.Error("IsZero wrong")
	}
}

func colorNear(a, b Color) bool {
	const eps = 1e-9
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}
