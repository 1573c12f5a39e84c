//go:build cgo

package window

import (
	"lumen/hal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var buttons = [...]struct {
	eb  ebiten.MouseButton
	hal hal.PointerButton
}{
	{ebiten.MouseButtonLeft, hal.ButtonPrimary},
	{ebiten.MouseButtonRight, hal.ButtonSecondary},
	{ebiten.MouseButtonMiddle, hal.ButtonMiddle},
}

// pointerPoller turns ebiten's polled mouse and touch state into pointer events.
type pointerPoller struct {
	h      *hal.Host
	width  int
	height int
	lastX  int
	lastY  int
	inside bool
	seen   bool
	touch  []ebiten.TouchID
}

func newPointerPoller(h *hal.Host, w, hgt int) *pointerPoller {
	return &pointerPoller{h: h, width: w, height: hgt}
}

func (p *pointerPoller) poll() {
	p.touch = inpututil.AppendJustPressedTouchIDs(p.touch[:0])
	if len(p.touch) > 0 {
		// A touch screen has no hover; report a coarse pointer.
		p.h.SetPointerFine(false)
		return
	}

	x, y := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && x >= 0 && y >= 0 && x < p.width && y < p.height
	if !inside {
		if p.inside {
			p.h.PushPointer(hal.PointerEvent{Kind: hal.PointerLeave, X: float64(x), Y: float64(y)})
		}
		p.inside = false
		return
	}

	fx, fy := float64(x), float64(y)
	if !p.seen || !p.inside || x != p.lastX || y != p.lastY {
		p.h.SetPointerFine(true)
		p.h.PushPointer(hal.PointerEvent{Kind: hal.PointerMove, X: fx, Y: fy})
	}
	p.seen = true
	p.inside = true
	p.lastX, p.lastY = x, y

	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			p.h.PushPointer(hal.PointerEvent{Kind: hal.PointerDown, X: fx, Y: fy, Button: b.hal})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			p.h.PushPointer(hal.PointerEvent{Kind: hal.PointerUp, X: fx, Y: fy, Button: b.hal})
		}
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		p.h.PushPointer(hal.PointerEvent{Kind: hal.PointerWheel, X: fx, Y: fy, WheelY: wy})
	}
}
