package inkwell

import (
	"math"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing maps linear progress p in [0, 1] to eased progress. Callers inside
// inkwell pin p=0 to 0 and p=1 to 1, so float32 curves cannot miss a keyframe.
type Easing interface {
	At(p float64) float64
}

// EasingFunc adapts a plain function to Easing.
type EasingFunc func(p float64) float64

// At implements Easing.
func (f EasingFunc) At(p float64) float64 { return f(p) }

// Linear is the identity curve.
var Linear Easing = EasingFunc(func(p float64) float64 { return p })

// Tween adapts a gween easing function. gween curves use the
// (t, begin, change, duration) convention in float32.
func Tween(fn ease.TweenFunc) Easing {
	return EasingFunc(func(p float64) float64 {
		return float64(fn(float32(p), 0, 1, 1))
	})
}

// CubicBezier is a CSS-style timing curve through (0,0), (X1,Y1), (X2,Y2),
// (1,1). X1 and X2 must lie in [0, 1] for the curve to be a function of time.
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// Well-known CSS timing curves.
var (
	Ease      = CubicBezier{0.25, 0.1, 0.25, 1}
	EaseIn    = CubicBezier{0.42, 0, 1, 1}
	EaseOut   = CubicBezier{0, 0, 0.58, 1}
	EaseInOut = CubicBezier{0.42, 0, 0.58, 1}
)

func (c CubicBezier) coeffs(p1, p2 float64) (a, b, cc float64) {
	cc = 3 * p1
	b = 3*(p2-p1) - cc
	a = 1 - cc - b
	return a, b, cc
}

func (c CubicBezier) sampleX(t float64) float64 {
	a, b, cc := c.coeffs(c.X1, c.X2)
	return ((a*t+b)*t + cc) * t
}

func (c CubicBezier) sampleY(t float64) float64 {
	a, b, cc := c.coeffs(c.Y1, c.Y2)
	return ((a*t+b)*t + cc) * t
}

func (c CubicBezier) sampleDX(t float64) float64 {
	a, b, cc := c.coeffs(c.X1, c.X2)
	return (3*a*t+2*b)*t + cc
}

const bezierEpsilon = 1e-7

// solveX finds the curve parameter t whose x equals x. Newton-Raphson first,
// bisection when the slope is too flat to trust.
func (c CubicBezier) solveX(x float64) float64 {
	t := x
	for i := 0; i < 8; i++ {
		d := c.sampleX(t) - x
		if math.Abs(d) < bezierEpsilon {
			return t
		}
		dx := c.sampleDX(t)
		if math.Abs(dx) < 1e-6 {
			break
		}
		t -= d / dx
	}

	lo, hi := 0.0, 1.0
	t = x
	for lo < hi {
		v := c.sampleX(t)
		if math.Abs(v-x) < bezierEpsilon {
			return t
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		next := (lo + hi) / 2
		if next == t {
			break
		}
		t = next
	}
	return t
}

// At implements Easing.
func (c CubicBezier) At(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	if c.X1 == c.Y1 && c.X2 == c.Y2 {
		return p
	}
	return c.sampleY(c.solveX(p))
}

// Valid reports whether the control points describe a function of time.
func (c CubicBezier) Valid() bool {
	return c.X1 >= 0 && c.X1 <= 1 && c.X2 >= 0 && c.X2 <= 1 &&
		finite(c.Y1) && finite(c.Y2)
}

// easeAt pins the endpoints of any curve so that keyframes are hit exactly.
func easeAt(e Easing, p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	if e == nil {
		return p
	}
	return e.At(p)
}

var namedEasings = map[string]Easing{
	"linear":         Linear,
	"ease":           Ease,
	"ease-in":        EaseIn,
	"ease-out":       EaseOut,
	"ease-in-out":    EaseInOut,
	"in-quad":        Tween(ease.InQuad),
	"out-quad":       Tween(ease.OutQuad),
	"in-out-quad":    Tween(ease.InOutQuad),
	"in-cubic":       Tween(ease.InCubic),
	"out-cubic":      Tween(ease.OutCubic),
	"in-out-cubic":   Tween(ease.InOutCubic),
	"in-sine":        Tween(ease.InSine),
	"out-sine":       Tween(ease.OutSine),
	"in-out-sine":    Tween(ease.InOutSine),
	"in-expo":        Tween(ease.InExpo),
	"out-expo":       Tween(ease.OutExpo),
	"in-out-expo":    Tween(ease.InOutExpo),
	"in-back":        Tween(ease.InBack),
	"out-back":       Tween(ease.OutBack),
	"in-out-back":    Tween(ease.InOutBack),
	"out-bounce":     Tween(ease.OutBounce),
	"out-elastic":    Tween(ease.OutElastic),
	"in-out-elastic": Tween(ease.InOutElastic),
}

// EasingByName resolves a named curve ("ease-in-out", "out-back", ...). The
// lookup is case-insensitive and accepts underscores for dashes.
func EasingByName(name string) (Easing, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	e, ok := namedEasings[key]
	return e, ok
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

// Clamp limits v to [lo, hi]. NaN becomes lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Progress returns where v lies between from and to, unclamped. A zero-width
// range yields 1.
func Progress(from, to, v float64) float64 {
	if to == from {
		return 1
	}
	return (v - from) / (to - from)
}
