package app

import (
	"time"

	"lumen/fx/hero"
	"lumen/fx/scene"
	"lumen/gfx/canvas"
)

// stage is what draws beneath the cursor layer.
type stage interface {
	Tick(dt time.Duration)
	Render(c *canvas.Canvas)
}

type skillsStage struct {
	sc   scene.Scene
	view *scene.View
}

func (s *skillsStage) Tick(dt time.Duration)   { s.sc.Tick(dt) }
func (s *skillsStage) Render(c *canvas.Canvas) { s.view.Render(c) }

type heroStage struct {
	*hero.Hero
}
