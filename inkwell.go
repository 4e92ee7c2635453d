package inkwell

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color reaches a shader.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorInk is the near-black stone color the word scenes flood their text with.
var ColorInk = Color{R: 0x1c / 255.0, G: 0x19 / 255.0, B: 0x17 / 255.0, A: 1}

// namedColors covers the handful of CSS names the scenes and tunables use.
var namedColors = map[string]Color{
	"black":       {0, 0, 0, 1},
	"white":       ColorWhite,
	"red":         {1, 0, 0, 1},
	"green":       {0, 128.0 / 255, 0, 1},
	"blue":        {0, 0, 1, 1},
	"transparent": {0, 0, 0, 0},
	"ink":         ColorInk,
}

// ParseColor accepts "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" or a named color.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("parse color %q: unknown name", s)
	}
	hex, alpha := s[1:], 1.0
	switch len(hex) {
	case 3, 6:
	case 4, 8:
		// The alpha digits follow the RGB ones; go-colorful only reads RGB.
		n := len(hex) / 4
		a, err := strconv.ParseUint(hex[3*n:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float64(a) / float64(uint64(1)<<(4*n) - 1)
		hex = hex[:3*n]
	default:
		return Color{}, fmt.Errorf("parse color %q: bad length", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// MustParseColor is like ParseColor but panics on error. Intended for
// package-level defaults.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic("inkwell: " + err.Error())
	}
	return c
}

// Premultiplied returns the color with RGB scaled by alpha, as float32s ready
// for a shader uniform.
func (c Color) Premultiplied() [4]float32 {
	return [4]float32{
		float32(c.R * c.A),
		float32(c.G * c.A),
		float32(c.B * c.A),
		float32(c.A),
	}
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Bounds is an axis-aligned layout box. The coordinate system has its origin
// at the top-left, with Y increasing downward.
type Bounds struct {
	Left, Top, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (b Bounds) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Bounds) Bottom() float64 { return b.Top + b.Height }

// IsZero reports whether b is the degraded default for unmeasured elements.
func (b Bounds) IsZero() bool { return b == Bounds{} }

// Contains reports whether the point (x, y) lies inside the box.
// Points on the edge are considered inside.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Right() &&
		y >= b.Top && y <= b.Bottom()
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Vec2 {
	return Vec2{X: b.Left + b.Width/2, Y: b.Top + b.Height/2}
}

// finite reports whether v is neither NaN nor an infinity.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Handle identifies one entity for its whole lifetime. Handles are issued by
// a Runtime and never reused within it. The zero Handle is invalid.
type Handle uint32

// String renders the handle as used in filter names and log fields.
func (h Handle) String() string {
	return "ink-" + strconv.FormatUint(uint64(h), 10)
}
