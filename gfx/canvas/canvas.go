// Package canvas draws into an RGB565 framebuffer: 3D render target,
// blended 2D shapes and bitmap text.
package canvas

import (
	"errors"
	"math"

	"lumen/gfx/render3d"
	"lumen/hal"
)

var ErrUnsupportedFormat = errors.New("canvas: unsupported pixel format")

// Canvas wraps a framebuffer. Call Sync once per frame in case the host resized it.
type Canvas struct {
	fb     hal.Framebuffer
	w, h   int
	stride int
	buf    []byte
}

func New(fb hal.Framebuffer) (*Canvas, error) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil, ErrUnsupportedFormat
	}
	c := &Canvas{fb: fb}
	c.Sync()
	return c, nil
}

// Sync picks up the framebuffer's current geometry.
func (c *Canvas) Sync() {
	c.w, c.h = c.fb.Width(), c.fb.Height()
	c.stride = c.fb.StrideBytes()
	c.buf = c.fb.Buffer()
}

func (c *Canvas) Size() (w, h int) { return c.w, c.h }

// Present hands the frame to the host.
func (c *Canvas) Present() error { return c.fb.Present() }

func (c *Canvas) offset(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0, false
	}
	off := y*c.stride + x*2
	if off+1 >= len(c.buf) {
		return 0, false
	}
	return off, true
}

// SetPixel writes c as an opaque pixel.
func (c *Canvas) SetPixel(x, y int, col render3d.Color) {
	off, ok := c.offset(x, y)
	if !ok {
		return
	}
	p := hal.RGB565(col.R, col.G, col.B)
	c.buf[off] = byte(p)
	c.buf[off+1] = byte(p >> 8)
}

func (c *Canvas) Pixel(x, y int) render3d.Color {
	off, ok := c.offset(x, y)
	if !ok {
		return render3d.Color{}
	}
	r, g, b := hal.RGB888From565(uint16(c.buf[off]) | uint16(c.buf[off+1])<<8)
	return render3d.RGB(r, g, b)
}

func (c *Canvas) Clear(col render3d.Color) {
	c.fb.ClearRGB(col.R, col.G, col.B)
}

// BlendPixel mixes col over the existing pixel using col.A.
func (c *Canvas) BlendPixel(x, y int, col render3d.Color) {
	switch col.A {
	case 0:
		return
	case 0xFF:
		c.SetPixel(x, y, col)
	default:
		if _, ok := c.offset(x, y); ok {
			c.SetPixel(x, y, render3d.Blend(c.Pixel(x, y), col))
		}
	}
}

// FillRect blends a rectangle.
func (c *Canvas) FillRect(x, y, w, h int, col render3d.Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, c.w), min(y+h, c.h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.BlendPixel(px, py, col)
		}
	}
}

// FillCircle blends a disc centred on (cx, cy), with a one pixel soft edge.
func (c *Canvas) FillCircle(cx, cy, r float64, col render3d.Color) {
	c.ring(cx, cy, -1, r, col)
}

// StrokeCircle blends a ring of the given width centred on radius r.
func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col render3d.Color) {
	if width <= 0 {
		return
	}
	c.ring(cx, cy, r-width/2, r+width/2, col)
}

// ring covers pixels whose centre lies between inner and outer radius.
func (c *Canvas) ring(cx, cy, inner, outer float64, col render3d.Color) {
	if outer <= 0 || col.A == 0 {
		return
	}
	x0 := max(int(math.Floor(cx-outer-1)), 0)
	x1 := min(int(math.Ceil(cx+outer+1)), c.w-1)
	y0 := max(int(math.Floor(cy-outer-1)), 0)
	y1 := min(int(math.Ceil(cy+outer+1)), c.h-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			cov := coverage(d, inner, outer)
			if cov <= 0 {
				continue
			}
			a := uint8(math.Round(float64(col.A) * cov))
			c.BlendPixel(x, y, col.WithAlpha(a))
		}
	}
}

func coverage(d, inner, outer float64) float64 {
	cov := render3d.Clamp01(outer - d + 0.5)
	if inner > 0 {
		cov = math.Min(cov, render3d.Clamp01(d-inner+0.5))
	}
	return cov
}
