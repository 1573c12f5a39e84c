package scene

import "math"

// Approach moves cur toward target by the fraction 1-exp(-rate*dt), which
// gives the same trajectory at any frame rate.
func Approach(cur, target, rate, dt float64) float64 {
	if dt <= 0 || rate <= 0 {
		return cur
	}
	return cur + (target-cur)*(1-math.Exp(-rate*dt))
}

// Motion holds the emphasis constants shared by both variants.
type Motion struct {
	Rate      float64 `mapstructure:"rate" validate:"gt=0"`
	Elevation float64 `mapstructure:"elevation"`
	Scale     float64 `mapstructure:"scale" validate:"gt=0"`
}

func DefaultMotion() Motion {
	return Motion{Rate: 8, Elevation: 0.1, Scale: 1.1}
}

// Emphasis is a node's animated lift and scale.
type Emphasis struct {
	Elevation float64
	Scale     float64
}

func restingEmphasis() Emphasis { return Emphasis{Scale: 1} }

// Step eases e toward the raised pose when on, the resting pose otherwise.
func (e *Emphasis) Step(on bool, dt float64, m Motion) {
	ty, ts := 0.0, 1.0
	if on {
		ty, ts = m.Elevation, m.Scale
	}
	e.Elevation = Approach(e.Elevation, ty, m.Rate, dt)
	e.Scale = Approach(e.Scale, ts, m.Rate, dt)
}
