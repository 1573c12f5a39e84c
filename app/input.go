package app

import (
	"math"

	"lumen/fx/scene"
	"lumen/hal"
)

const (
	// dragThreshold is how far a press must travel before it orbits
	// instead of clicking.
	dragThreshold = 4.0
	// orbitPerPixel converts drag distance to orbit angle.
	orbitPerPixel = 0.01
	// dollyPerNotch scales the orbit radius per wheel notch.
	dollyPerNotch = 0.9
)

type pointerState struct {
	x, y     float64
	inside   bool
	down     bool
	downX    float64
	downY    float64
	dragging bool
	// interactive mirrors whether the cursor layer was told it is over a node.
	interactive bool
}

func (a *App) drainPointer() {
	if a.events == nil {
		return
	}
	for {
		select {
		case ev := <-a.events:
			a.handlePointer(ev)
		default:
			return
		}
	}
}

func (a *App) handlePointer(ev hal.PointerEvent) {
	p := &a.ptr
	switch ev.Kind {
	case hal.PointerMove:
		if p.down {
			a.drag(ev.X, ev.Y)
		}
		p.x, p.y, p.inside = ev.X, ev.Y, true
		a.cursor.PointerMove(ev.X, ev.Y)

	case hal.PointerDown:
		p.x, p.y, p.inside = ev.X, ev.Y, true
		a.cursor.Press()
		if ev.Button == hal.ButtonPrimary {
			p.down, p.dragging = true, false
			p.downX, p.downY = ev.X, ev.Y
		}

	case hal.PointerUp:
		a.cursor.Release()
		if ev.Button != hal.ButtonPrimary || !p.down {
			return
		}
		p.down = false
		if !p.dragging {
			a.click(ev.X, ev.Y)
		}
		p.dragging = false

	case hal.PointerWheel:
		if a.skills != nil && ev.WheelY != 0 {
			a.skills.sc.Orbit().Dolly(math.Pow(dollyPerNotch, ev.WheelY))
		}

	case hal.PointerLeave:
		if p.down {
			a.cursor.Release()
		}
		p.inside, p.down, p.dragging = false, false, false
		a.cursor.PointerLeave()
		if a.skills != nil {
			a.skills.view.HideLight()
		}

	case hal.PointerCapability:
		a.cursor.SetPointerFine(ev.Fine)
		a.log.Info("pointer capability", "fine", ev.Fine)
	}
}

// drag orbits the camera once the press has travelled past the threshold.
func (a *App) drag(x, y float64) {
	p := &a.ptr
	if !p.dragging && math.Hypot(x-p.downX, y-p.downY) < dragThreshold {
		return
	}
	p.dragging = true
	if a.skills == nil {
		return
	}
	a.skills.sc.Orbit().Rotate(-(x-p.x)*orbitPerPixel, -(y-p.y)*orbitPerPixel)
}

func (a *App) click(x, y float64) {
	if a.skills == nil {
		return
	}
	id, hit := a.pick(x, y)
	if !hit {
		return
	}
	sc := a.skills.sc
	sc.Click(id)
	sel, ok := sc.Selected()
	a.log.Debug("click", "node", id, "selected", sel, "has_selection", ok)
}

func (a *App) pick(x, y float64) (scene.NodeID, bool) {
	w, h := a.canvas.Size()
	if w <= 0 || h <= 0 {
		return "", false
	}
	ray := a.skills.view.Camera().Ray(x, y, w, h)
	return a.skills.sc.Pick(ray)
}

// updateHover re-picks under the pointer every frame, since nodes move
// beneath a still pointer.
func (a *App) updateHover() {
	if a.skills == nil {
		return
	}
	var (
		id  scene.NodeID
		hit bool
	)
	if a.ptr.inside {
		w, h := a.canvas.Size()
		if w > 0 && h > 0 {
			ray := a.skills.view.Camera().Ray(a.ptr.x, a.ptr.y, w, h)
			a.skills.view.PointAt(ray)
			id, hit = a.skills.sc.Pick(ray)
		}
	}
	scene.UpdateHover(a.skills.sc, id, hit)

	_, hovering := a.skills.sc.Hovered()
	switch {
	case hovering && !a.ptr.interactive:
		a.cursor.EnterInteractive()
	case !hovering && a.ptr.interactive:
		a.cursor.LeaveInteractive()
	}
	a.ptr.interactive = hovering
}
