package ebitenfx

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/inkwell"
)

// Filter is a visual effect applied to an offscreen layer.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to
	// accommodate the effect. Zero means no padding.
	Padding() int
}

// --- Kage shader sources ---
// Ebitengine uses premultiplied alpha. The threshold shader only reads the
// source alpha, so no un-premultiply step is needed.

const thresholdShaderSrc = `//kage:unit pixels
package main

var Slope float
var Intercept float
var FillColor vec4

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	a := imageSrc0At(src).a
	// Linear alpha transfer, then flood the fill through it.
	out := clamp(Slope*a + Intercept, 0, 1)
	return FillColor * out
}
`

// --- Lazy shader compilation (no sync.Once; rendering is single-threaded) ---

var thresholdShader *ebiten.Shader

func ensureThresholdShader() *ebiten.Shader {
	if thresholdShader == nil {
		s, err := ebiten.NewShader([]byte(thresholdShaderSrc))
		if err != nil {
			panic("inkwell: failed to compile threshold shader: " + err.Error())
		}
		thresholdShader = s
	}
	return thresholdShader
}

// --- BlurFilter ---

// BlurFilter approximates a Gaussian blur with iterative downscale/upscale
// (Kawase) passes. Bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius float64
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius in pixels.
func NewBlurFilter(radius float64) *BlurFilter {
	f := &BlurFilter{}
	f.SetRadius(radius)
	return f
}

// SetRadius changes the radius. Negative and non-finite radii mean no blur.
func (f *BlurFilter) SetRadius(r float64) {
	if !(r > 0) || math.IsInf(r, 0) {
		r = 0
	}
	f.Radius = r
}

// blurPasses returns the number of halvings for a radius: log2(radius),
// minimum 1, and 0 when there is nothing to blur.
func blurPasses(radius float64) int {
	if radius < 0.5 {
		return 0
	}
	n := int(math.Ceil(math.Log2(radius)))
	if n < 1 {
		n = 1
	}
	return n
}

// Apply renders a Kawase blur from src into dst.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	passes := blurPasses(f.Radius)
	if passes == 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	// Release temps left over from a larger radius.
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	// Down: each pass halves the size.
	current := src
	for i := 0; i < passes; i++ {
		w, h = max(w/2, 1), max(h/2, 1)
		if t := f.temps[i]; t == nil || t.Bounds().Dx() != w || t.Bounds().Dy() != h {
			if t != nil {
				t.Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			t.Clear()
		}
		scaleInto(f.temps[i], current, op)
		current = f.temps[i]
	}

	// Up: back through the chain, then into dst.
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		scaleInto(f.temps[i], current, op)
		current = f.temps[i]
	}
	scaleInto(dst, current, op)
}

// scaleInto draws src stretched over all of dst with linear filtering.
func scaleInto(dst, src *ebiten.Image, op *ebiten.DrawImageOptions) {
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw, sh := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	tw, th := float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy())
	op.GeoM.Scale(tw/sw, th/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// Padding returns the radius rounded up; the offscreen layer is expanded so
// the blur is not clipped.
func (f *BlurFilter) Padding() int { return int(math.Ceil(f.Radius)) }

// --- ThresholdFilter ---

// ThresholdFilter maps source alpha through the linear transfer of a
// FilterParameters and floods the fill color through the result.
type ThresholdFilter struct {
	Params    inkwell.FilterParameters
	uniforms  map[string]any
	fillF32   [4]float32 // persistent buffer
	fillSlice []float32  // persistent slice header
	shaderOp  ebiten.DrawRectShaderOptions
}

// NewThresholdFilter creates a threshold filter for p.
func NewThresholdFilter(p inkwell.FilterParameters) *ThresholdFilter {
	f := &ThresholdFilter{Params: p, uniforms: make(map[string]any, 3)}
	f.fillSlice = f.fillF32[:]
	f.uniforms["FillColor"] = f.fillSlice
	return f
}

// thresholdUniforms converts parameters into shader uniform values. The fill
// is premultiplied.
func thresholdUniforms(p inkwell.FilterParameters) (slope, intercept float32, fill [4]float32) {
	return float32(p.TransferSlope), float32(p.TransferIntercept), p.FillColor.Premultiplied()
}

// Apply runs the threshold shader with src as Images[0].
func (f *ThresholdFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureThresholdShader()
	slope, intercept, fill := thresholdUniforms(f.Params)
	f.fillF32 = fill
	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	f.uniforms["Slope"] = slope
	f.uniforms["Intercept"] = intercept
	b := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(b.Dx(), b.Dy(), shader, &f.shaderOp)
}

// Padding returns 0; thresholding does not spread.
func (f *ThresholdFilter) Padding() int { return 0 }

// --- InkFilter ---

// InkFilter is the full blur, alpha threshold and flood composite for one
// entity, driven by FilterParameters recomputed every frame.
type InkFilter struct {
	blur      *BlurFilter
	threshold *ThresholdFilter
	chain     []Filter
}

// NewInkFilter creates an ink filter for p.
func NewInkFilter(p inkwell.FilterParameters) *InkFilter {
	f := &InkFilter{
		blur:      NewBlurFilter(p.BlurRadius),
		threshold: NewThresholdFilter(p),
	}
	f.chain = []Filter{f.blur, f.threshold}
	return f
}

// SetParams updates the filter for this frame.
func (f *InkFilter) SetParams(p inkwell.FilterParameters) {
	f.blur.SetRadius(p.BlurRadius)
	f.threshold.Params = p
}

// Params returns the current parameters.
func (f *InkFilter) Params() inkwell.FilterParameters { return f.threshold.Params }

// Filters returns the two stages in order.
func (f *InkFilter) Filters() []Filter { return f.chain }

// Padding is the room the blur needs: three radii covers the visible tail
// of a Gaussian.
func (f *InkFilter) Padding() int { return 3 * f.blur.Padding() }

// --- Filter chain helpers ---

// chainPadding returns the cumulative padding required by a chain.
func chainPadding(filters []Filter) int {
	pad := 0
	for _, f := range filters {
		pad += f.Padding()
	}
	return pad
}

// applyFilters runs a filter chain on src, ping-ponging between src and a
// pooled scratch image. It returns the image holding the result and the one
// that should go back to the pool (nil when nothing was acquired).
func applyFilters(filters []Filter, src *ebiten.Image, pool *texturePool) (result, spare *ebiten.Image) {
	if len(filters) == 0 {
		return src, nil
	}
	b := src.Bounds()
	current := src
	var scratch *ebiten.Image
	for _, f := range filters {
		if scratch == nil {
			scratch = pool.Acquire(b.Dx(), b.Dy())
		} else {
			scratch.Clear()
		}
		f.Apply(current, scratch)
		current, scratch = scratch, current
	}
	return current, scratch
}
