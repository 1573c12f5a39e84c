package render3d

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// MulScalar scales the RGB channels by s, saturating at 255. Alpha is kept.
func (c Color) MulScalar(s float64) Color {
	if s < 0 {
		s = 0
	}
	mul := func(ch uint8) uint8 {
		v := float64(ch) * s
		if v > 255 {
			return 255
		}
		return uint8(v + 0.5)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// AddScaled returns c + o*s per channel, saturating.
func (c Color) AddScaled(o Color, s float64) Color {
	add := func(a, b uint8) uint8 {
		v := float64(a) + float64(b)*s
		if v > 255 {
			return 255
		}
		if v < 0 {
			return 0
		}
		return uint8(v + 0.5)
	}
	return Color{R: add(c.R, o.R), G: add(c.G, o.G), B: add(c.B, o.B), A: c.A}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// Blend mixes src over dst using src alpha.
func Blend(dst, src Color) Color {
	if src.A == 0xFF {
		return src
	}
	if src.A == 0 {
		return dst
	}
	a := uint32(src.A)
	ia := 255 - a
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*ia) / 255)
	}
	return Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xFF}
}
