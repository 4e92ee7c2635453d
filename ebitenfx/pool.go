package ebitenfx

import (
	"math/bits"

	"github.com/hajimehoshi/ebiten/v2"
)

// texturePool recycles offscreen layers between frames. Sizes are rounded up
// to powers of two so a word that grows by a pixel reuses its old layer.
type texturePool struct {
	buckets map[uint64][]*ebiten.Image
	live    int
}

func newTexturePool() *texturePool {
	return &texturePool{buckets: make(map[uint64][]*ebiten.Image)}
}

func sizeKey(w, h int) uint64 { return uint64(w)<<32 | uint64(uint32(h)) }

// Acquire returns a cleared image at least w x h.
func (p *texturePool) Acquire(w, h int) *ebiten.Image {
	pw, ph := ceilPow2(w), ceilPow2(h)
	key := sizeKey(pw, ph)
	if imgs := p.buckets[key]; len(imgs) > 0 {
		img := imgs[len(imgs)-1]
		p.buckets[key] = imgs[:len(imgs)-1]
		img.Clear()
		return img
	}
	p.live++
	return ebiten.NewImageWithOptions(rectOf(pw, ph), &ebiten.NewImageOptions{Unmanaged: true})
}

// Release hands img back. Nil is ignored.
func (p *texturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := sizeKey(b.Dx(), b.Dy())
	p.buckets[key] = append(p.buckets[key], img)
}

// Dispose deallocates every pooled image.
func (p *texturePool) Dispose() {
	for key, imgs := range p.buckets {
		for _, img := range imgs {
			img.Deallocate()
			p.live--
		}
		delete(p.buckets, key)
	}
}

// ceilPow2 returns the smallest power of two >= n, minimum 1.
func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
