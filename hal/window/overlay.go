//go:build cgo

package window

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type shape struct {
	x, y, r float32
	stroke  float32
	c       color.NRGBA
}

// overlay records vector shapes during Update and replays them in Draw.
type overlay struct {
	mu     sync.Mutex
	shapes []shape
}

func (o *overlay) Clear() {
	o.mu.Lock()
	o.shapes = o.shapes[:0]
	o.mu.Unlock()
}

func (o *overlay) FillCircle(x, y, r float64, c color.NRGBA) {
	o.add(shape{x: float32(x), y: float32(y), r: float32(r), c: c})
}

func (o *overlay) StrokeCircle(x, y, r, width float64, c color.NRGBA) {
	if width <= 0 {
		return
	}
	o.add(shape{x: float32(x), y: float32(y), r: float32(r), stroke: float32(width), c: c})
}

func (o *overlay) add(s shape) {
	if s.r <= 0 || s.c.A == 0 {
		return
	}
	o.mu.Lock()
	o.shapes = append(o.shapes, s)
	o.mu.Unlock()
}

func (o *overlay) draw(screen *ebiten.Image) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, s := range o.shapes {
		if s.stroke > 0 {
			vector.StrokeCircle(screen, s.x, s.y, s.r, s.stroke, s.c, true)
			continue
		}
		vector.DrawFilledCircle(screen, s.x, s.y, s.r, s.c, true)
	}
}
