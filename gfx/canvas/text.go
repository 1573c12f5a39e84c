package canvas

import (
	"image/color"

	"lumen/gfx/render3d"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Font is the bitmap font used for labels and diagnostics.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// LineHeight is the advance between text rows in pixels.
const LineHeight = 10

// Text returns a tinyfont displayer that blends into the canvas.
func (c *Canvas) Text() drivers.Displayer { return textDisplayer{c: c} }

type textDisplayer struct {
	c *Canvas
}

func (d textDisplayer) Size() (x, y int16) {
	return int16(d.c.w), int16(d.c.h)
}

func (d textDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.c.BlendPixel(int(x), int(y), render3d.RGBA(c.R, c.G, c.B, c.A))
}

func (d textDisplayer) Display() error { return nil }

// TextWidth is the rendered width of s in pixels.
func TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(Font, s)
	return int(outbox)
}

// DrawText writes s with its top-left corner at (x, y).
func (c *Canvas) DrawText(x, y int, s string, col render3d.Color) {
	if s == "" {
		return
	}
	tinyfont.WriteLine(c.Text(), Font, int16(x), int16(y+LineHeight-2), s, color.RGBA{R: col.R, G: col.G, B: col.B, A: col.A})
}

// DrawTextCentered centres s horizontally on cx.
func (c *Canvas) DrawTextCentered(cx, y int, s string, col render3d.Color) {
	c.DrawText(cx-TextWidth(s)/2, y, s, col)
}
