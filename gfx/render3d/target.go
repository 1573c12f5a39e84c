package render3d

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// BlendTarget is implemented by targets that can read back a pixel, which the
// renderer uses for translucent lines and points.
type BlendTarget interface {
	Target
	Pixel(x, y int) Color
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderWireframe RenderMode = iota
	RenderSolidFlat
)

// MemTarget is an in-memory RGBA target. It is mostly useful for tests and for
// hosts that upload whole frames.
type MemTarget struct {
	W, H int
	Pix  []Color
}

func NewMemTarget(w, h int) *MemTarget {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &MemTarget{W: w, H: h, Pix: make([]Color, w*h)}
}

func (t *MemTarget) Size() (w, h int) { return t.W, t.H }

func (t *MemTarget) Clear(c Color) {
	for i := range t.Pix {
		t.Pix[i] = c
	}
}

func (t *MemTarget) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	t.Pix[y*t.W+x] = c
}

func (t *MemTarget) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return Color{}
	}
	return t.Pix[y*t.W+x]
}
