package cursor

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	normalPalette = mustPalette("#38bdf8", "#22d3ee", "#818cf8")
	hoverPalette  = mustPalette("#f472b6", "#c084fc", "#818cf8")
)

func mustPalette(hexes ...string) []color.NRGBA {
	out := make([]color.NRGBA, len(hexes))
	for i, h := range hexes {
		out[i] = hexColor(h)
	}
	return out
}

// hexColor parses a constant palette entry and panics on a malformed one.
func hexColor(h string) color.NRGBA {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	switch {
	case a <= 0:
		c.A = 0
	case a >= 1:
		c.A = 0xFF
	default:
		c.A = uint8(a*255 + 0.5)
	}
	return c
}
