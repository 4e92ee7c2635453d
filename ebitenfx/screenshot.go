package ebitenfx

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/inkwell"
	"go.uber.org/zap"
)

// capturer writes the drawn frame to PNG files for every queued label.
type capturer struct {
	dir   string
	queue []string
	pix   []byte
}

// Queue asks for the current frame to be captured at the end of Draw.
func (c *capturer) Queue(label string) {
	c.queue = append(c.queue, label)
}

// flush captures screen once for all queued labels.
func (c *capturer) flush(screen *ebiten.Image) {
	if len(c.queue) == 0 {
		return
	}
	defer func() { c.queue = c.queue[:0] }()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		inkwell.Logger().Warn("screenshot: mkdir", zap.String("dir", c.dir), zap.Error(err))
		return
	}
	b := screen.Bounds()
	if need := 4 * b.Dx() * b.Dy(); cap(c.pix) < need {
		c.pix = make([]byte, need)
	} else {
		c.pix = c.pix[:need]
	}
	screen.ReadPixels(c.pix)
	img := straightAlpha(c.pix, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range c.queue {
		path := filepath.Join(c.dir, fmt.Sprintf("%s_%s.png", stamp, safeLabel(label)))
		if err := writePNG(path, img); err != nil {
			inkwell.Logger().Warn("screenshot", zap.Error(err))
			continue
		}
		inkwell.Logger().Info("screenshot", zap.String("path", path))
	}
}

// straightAlpha converts premultiplied RGBA pixels to an NRGBA image.
func straightAlpha(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pix) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pix[i], pix[i+1], pix[i+2], pix[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// safeLabel keeps letters, digits, '-' and '.'; anything else becomes '_'.
func safeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
