//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter updates a single RGBA image based on binary cell data.
type GridPainter struct {
	n   int
	img *ebiten.Image
	buf []byte
}

// NewGridPainter allocates a painter for an n×n board.
func NewGridPainter(n int) *GridPainter {
	gp := &GridPainter{n: n, buf: make([]byte, 4*n*n)}
	gp.img = ebiten.NewImage(n, n)
	return gp
}

// Blit uploads the provided cells into the painter image and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, on, off color.Color, scale int) {
	if len(cells) != gp.n*gp.n {
		return
	}
	fillBinaryRGBA(gp.buf, cells, on, off)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the board dimension the painter was built for.
func (gp *GridPainter) Size() int { return gp.n }
