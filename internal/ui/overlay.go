//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws grid lines and a transient notification banner on top of the
// board.
type Overlay struct {
	n, scale   int
	showGrid   bool
	message    string
	framesLeft int
	pixel      *ebiten.Image
}

// NewOverlay constructs an overlay for an n×n board drawn at scale.
func NewOverlay(n, scale int) *Overlay {
	o := &Overlay{n: n, scale: scale, showGrid: scale >= 8}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Show displays message for the given number of frames.
func (o *Overlay) Show(message string, frames int) {
	o.message = message
	o.framesLeft = frames
}

// Update handles the grid toggle and ages the banner.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
	if o.framesLeft > 0 {
		o.framesLeft--
	}
}

// Draw paints the overlay.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showGrid {
		o.drawGrid(screen)
	}
	if o.framesLeft > 0 && o.message != "" {
		o.drawBanner(screen)
	}
}

func (o *Overlay) drawGrid(screen *ebiten.Image) {
	span := float64(o.n * o.scale)
	for i := 1; i < o.n; i++ {
		pos := float64(i * o.scale)
		o.rect(screen, pos, 0, 1, span, color.RGBA{R: 40, G: 40, B: 48, A: 255})
		o.rect(screen, 0, pos, span, 1, color.RGBA{R: 40, G: 40, B: 48, A: 255})
	}
}

func (o *Overlay) drawBanner(screen *ebiten.Image) {
	face := basicfont.Face7x13
	bounds := text.BoundString(face, o.message)
	width := float64(bounds.Dx() + 16)
	height := float64(bounds.Dy() + 12)
	span := float64(o.n * o.scale)
	x := (span - width) / 2
	y := span - height - 8
	o.rect(screen, x, y, width, height, color.RGBA{R: 20, G: 20, B: 28, A: 230})
	text.Draw(screen, o.message, face, int(x)+8, int(y)+6+bounds.Dy(), color.RGBA{R: 255, G: 220, B: 120, A: 255})
}

func (o *Overlay) rect(screen *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(o.pixel, op)
}
