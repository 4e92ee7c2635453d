package ebitenfx

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps a text/v2 face with a cached line height.
type Font struct {
	face *text.GoTextFace
	lh   float64
}

// LoadFont parses TrueType data at the given pixel size.
func LoadFont(ttf []byte, size float64) (*Font, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("inkwell: parse font: %w", err)
	}
	face := &text.GoTextFace{Source: src, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// RegularFont returns Go Regular at size. The embedded font always parses.
func RegularFont(size float64) *Font { return mustFont(goregular.TTF, size) }

// BoldFont returns Go Bold at size.
func BoldFont(size float64) *Font { return mustFont(gobold.TTF, size) }

func mustFont(ttf []byte, size float64) *Font {
	f, err := LoadFont(ttf, size)
	if err != nil {
		panic(err)
	}
	return f
}

// MeasureString returns the rendered size of s.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// Draw renders s with its top-left corner at (x, y).
func (f *Font) Draw(dst *ebiten.Image, s string, x, y float64, c [4]float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(c[0], c[1], c[2], c[3])
	op.LineSpacing = f.lh
	text.Draw(dst, s, f.face, op)
}
