package ebitenfx

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/inkwell"
)

// Page backgrounds.
var (
	paperColor = inkwell.MustParseColor("#fafafa")
	slateColor = inkwell.MustParseColor("#f3f4f6")
	ruleColor  = inkwell.MustParseColor("#e5e7eb")
	mutedColor = inkwell.MustParseColor("#9ca3af")
)

// whitePixel is a 1x1 white image stretched into solid rectangles.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

func rectOf(w, h int) image.Rectangle { return image.Rect(0, 0, w, h) }

// toRGBA converts c for image.Fill.
func toRGBA(c inkwell.Color) color.RGBA {
	p := c.Premultiplied()
	return color.RGBA{
		R: uint8(p[0]*255 + 0.5),
		G: uint8(p[1]*255 + 0.5),
		B: uint8(p[2]*255 + 0.5),
		A: uint8(p[3]*255 + 0.5),
	}
}

// fillRect draws b filled with c.
func fillRect(dst *ebiten.Image, b inkwell.Bounds, c inkwell.Color) {
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(b.Width, b.Height)
	op.GeoM.Translate(b.Left, b.Top)
	p := c.Premultiplied()
	op.ColorScale.Scale(p[0], p[1], p[2], p[3])
	dst.DrawImage(ensureWhitePixel(), op)
}

// strokeRect outlines b with a line of width w drawn inside it.
func strokeRect(dst *ebiten.Image, b inkwell.Bounds, w float64, c inkwell.Color) {
	fillRect(dst, inkwell.Bounds{Left: b.Left, Top: b.Top, Width: b.Width, Height: w}, c)
	fillRect(dst, inkwell.Bounds{Left: b.Left, Top: b.Bottom() - w, Width: b.Width, Height: w}, c)
	fillRect(dst, inkwell.Bounds{Left: b.Left, Top: b.Top, Width: w, Height: b.Height}, c)
	fillRect(dst, inkwell.Bounds{Left: b.Right() - w, Top: b.Top, Width: w, Height: b.Height}, c)
}
