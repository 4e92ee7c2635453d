package ebitenfx

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/inkwell"
	"github.com/phanxgames/inkwell/scene"
)

// Renderer draws one scene's current state.
type Renderer interface {
	Background() inkwell.Color
	Draw(dst *ebiten.Image)
	// Hit reports whether a click at (x, y) should toggle the scene.
	Hit(x, y float64) bool
	Dispose()
}

// NewRenderer returns the renderer for a scene built by package scene.
func NewRenderer(sc scene.Scene) (Renderer, error) {
	switch s := sc.(type) {
	case *scene.WordCycle:
		return &wordCycleRenderer{
			wc:      s,
			font:    BoldFont(64),
			pool:    newTexturePool(),
			filters: make(map[inkwell.Handle]*InkFilter),
		}, nil
	case *scene.Inkbleed:
		return &inkbleedRenderer{
			ib:     s,
			font:   BoldFont(96),
			pool:   newTexturePool(),
			filter: NewInkFilter(s.Filter()),
		}, nil
	case *scene.MeasurePanel:
		return &measureRenderer{mp: s, font: RegularFont(16)}, nil
	case *scene.LayoutID:
		return &layoutIDRenderer{l: s}, nil
	}
	return nil, fmt.Errorf("inkwell: no renderer for scene %q", sc.Name())
}

// inkLayer draws s centered on anchor through f: the text is rendered white
// into a padded offscreen layer, blurred, thresholded and flooded, then
// composited at the given opacity.
func inkLayer(dst *ebiten.Image, pool *texturePool, font *Font, f *InkFilter, s string, anchor inkwell.Vec2, opacity float64) {
	if s == "" || opacity <= 0 {
		return
	}
	tw, th := font.MeasureString(s)
	pad := f.Padding()
	w := int(math.Ceil(tw)) + 2*pad
	h := int(math.Ceil(th)) + 2*pad

	layer := pool.Acquire(w, h)
	font.Draw(layer, s, float64(pad), float64(pad), [4]float32{1, 1, 1, 1})
	result, spare := applyFilters(f.Filters(), layer, pool)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(anchor.X-tw/2-float64(pad), anchor.Y-th/2-float64(pad))
	op.ColorScale.ScaleAlpha(float32(opacity))
	dst.DrawImage(result, op)

	pool.Release(result)
	pool.Release(spare)
}

// --- word cycle ---

type wordCycleRenderer struct {
	wc      *scene.WordCycle
	font    *Font
	pool    *texturePool
	filters map[inkwell.Handle]*InkFilter
	seen    map[inkwell.Handle]bool
}

func (r *wordCycleRenderer) Background() inkwell.Color { return paperColor }

func (r *wordCycleRenderer) Draw(dst *ebiten.Image) {
	if r.seen == nil {
		r.seen = make(map[inkwell.Handle]bool)
	}
	clear(r.seen)
	// Exiting and entering words share the anchor and overlap.
	for _, w := range r.wc.Words() {
		f, ok := r.filters[w.Handle]
		if !ok {
			f = NewInkFilter(w.Filter)
			r.filters[w.Handle] = f
		}
		f.SetParams(w.Filter)
		r.seen[w.Handle] = true
		inkLayer(dst, r.pool, r.font, f, w.Text, r.wc.Anchor(), w.Opacity)
	}
	for h := range r.filters {
		if !r.seen[h] {
			delete(r.filters, h)
		}
	}
}

func (r *wordCycleRenderer) Hit(x, y float64) bool { return true }
func (r *wordCycleRenderer) Dispose()              { r.pool.Dispose() }

// --- inkbleed ---

type inkbleedRenderer struct {
	ib     *scene.Inkbleed
	font   *Font
	pool   *texturePool
	filter *InkFilter
}

func (r *inkbleedRenderer) Background() inkwell.Color { return paperColor }

func (r *inkbleedRenderer) Draw(dst *ebiten.Image) {
	r.filter.SetParams(r.ib.Filter())
	inkLayer(dst, r.pool, r.font, r.filter, r.ib.Text(), r.ib.Anchor(), 1)
}

func (r *inkbleedRenderer) Hit(x, y float64) bool { return false }
func (r *inkbleedRenderer) Dispose()              { r.pool.Dispose() }

// --- measured panel ---

type measureRenderer struct {
	mp   *scene.MeasurePanel
	font *Font
}

func (r *measureRenderer) Background() inkwell.Color { return slateColor }

func (r *measureRenderer) Draw(dst *ebiten.Image) {
	if b, ok := r.mp.PanelBox().Bounds(); ok {
		strokeRect(dst, b, 1, ruleColor)
	}
	if b, ok := r.mp.SiblingBox().Bounds(); ok {
		fillRect(dst, b, ruleColor)
	}
	if _, ok := r.mp.ButtonBox().Bounds(); !ok {
		return
	}
	pill := r.mp.Pill()
	fillRect(dst, pill, inkwell.ColorInk)

	label := "Open"
	if r.mp.IsOpen() {
		label = "Close"
	}
	button, _ := r.mp.ButtonBox().Bounds()
	tw, th := r.font.MeasureString(label)
	c := button.Center()
	r.font.Draw(dst, label, c.X-tw/2, c.Y-th/2, inkwell.ColorWhite.Premultiplied())
}

// Hit accepts clicks on the button or, while open, anywhere on the pill.
func (r *measureRenderer) Hit(x, y float64) bool {
	if b, ok := r.mp.ButtonBox().Bounds(); ok && b.Contains(x, y) {
		return true
	}
	return r.mp.IsOpen() && r.mp.Pill().Contains(x, y)
}

func (r *measureRenderer) Dispose() {}

// --- layout id ---

type layoutIDRenderer struct {
	l *scene.LayoutID
}

func (r *layoutIDRenderer) Background() inkwell.Color { return slateColor }

func (r *layoutIDRenderer) Draw(dst *ebiten.Image) {
	for i, s := range r.l.Slots() {
		b, ok := s.Bounds()
		if !ok {
			continue
		}
		c := ruleColor
		if i == r.l.Active() {
			c = mutedColor
		}
		strokeRect(dst, b, 2, c)
	}
	fillRect(dst, r.l.Box(), inkwell.ColorInk)
}

func (r *layoutIDRenderer) Hit(x, y float64) bool { return true }
func (r *layoutIDRenderer) Dispose()              {}
