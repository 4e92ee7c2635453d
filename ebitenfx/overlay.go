package ebitenfx

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayRefresh is how often the overlay text is rebuilt, in seconds.
const overlayRefresh = 0.5

// Overlay prints frame rate and a scene's channel values in the corner.
// It redraws its text only every half second so it stays readable.
type Overlay struct {
	img     *ebiten.Image
	since   float64
	text    string
	op      ebiten.DrawImageOptions
	visible bool
}

// NewOverlay creates a hidden overlay.
func NewOverlay() *Overlay {
	return &Overlay{since: overlayRefresh}
}

// SetVisible shows or hides the overlay.
func (o *Overlay) SetVisible(v bool) { o.visible = v }

// Visible reports whether the overlay draws.
func (o *Overlay) Visible() bool { return o.visible }

// Update accumulates dt and rebuilds the text when due.
func (o *Overlay) Update(dt float64, channels map[string]float64) {
	if !o.visible {
		return
	}
	o.since += dt
	if o.since < overlayRefresh {
		return
	}
	o.since = 0
	o.text = overlayText(ebiten.ActualFPS(), ebiten.ActualTPS(), channels)

	lines := strings.Count(o.text, "\n") + 1
	w, h := 180, 16*lines+4
	if o.img == nil || o.img.Bounds().Dx() != w || o.img.Bounds().Dy() != h {
		if o.img != nil {
			o.img.Deallocate()
		}
		o.img = ebiten.NewImage(w, h)
	}
	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

// Draw paints the overlay at the top-left of dst.
func (o *Overlay) Draw(dst *ebiten.Image) {
	if !o.visible || o.img == nil {
		return
	}
	o.op.GeoM.Reset()
	o.op.GeoM.Translate(8, 8)
	dst.DrawImage(o.img, &o.op)
}

// overlayText formats the rates followed by channels in name order.
func overlayText(fps, tps float64, channels map[string]float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\nTPS: %.1f", fps, tps)
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\n%s: %.2f", name, channels[name])
	}
	return b.String()
}
