package canvas

import (
	"image/color"

	"lumen/gfx/render3d"
	"lumen/hal"
)

// Overlay draws vector shapes straight into the canvas for hosts without a
// separate compositing layer.
func (c *Canvas) Overlay() hal.Overlay { return canvasOverlay{c: c} }

type canvasOverlay struct {
	c *Canvas
}

// Clear is a no-op: the frame under the overlay is repainted every step.
func (o canvasOverlay) Clear() {}

func (o canvasOverlay) FillCircle(x, y, r float64, c color.NRGBA) {
	o.c.FillCircle(x, y, r, fromNRGBA(c))
}

func (o canvasOverlay) StrokeCircle(x, y, r, width float64, c color.NRGBA) {
	o.c.StrokeCircle(x, y, r, width, fromNRGBA(c))
}

func fromNRGBA(c color.NRGBA) render3d.Color {
	return render3d.RGBA(c.R, c.G, c.B, c.A)
}
