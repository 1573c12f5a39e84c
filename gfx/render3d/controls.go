package render3d

import "math"

// OrbitController provides orbit and zoom interactions for a camera. It has no
// pan: the orbit target is fixed at construction.
//
// Angles follow the usual spherical convention: Polar is measured from the +Y
// axis (0 looks straight down), Azimuth rotates about +Y starting at +Z.
//
// It is intentionally simple and does not depend on any input system.
type OrbitController struct {
	Target  Vec3
	Azimuth float64
	Polar   float64
	Radius  float64

	// Zero bounds mean unrestricted.
	MinRadius float64
	MaxRadius float64
	MinPolar  float64
	MaxPolar  float64
}

// NewOrbitFromPosition derives azimuth/polar/radius from an eye position.
func NewOrbitFromPosition(eye, target Vec3) OrbitController {
	d := eye.Sub(target)
	r := Len(d)
	c := OrbitController{Target: target, Radius: r}
	if r == 0 {
		return c
	}
	c.Polar = math.Acos(clampF64(d.Y/r, -1, 1))
	c.Azimuth = math.Atan2(d.X, d.Z)
	return c
}

// Position returns the eye position for the current (clamped) state.
func (c *OrbitController) Position() Vec3 {
	r := c.clampRadius(c.Radius)
	if r == 0 {
		r = 3
	}
	polar := c.clampPolar(c.Polar)
	sp := math.Sin(polar)
	return c.Target.Add(V3(
		r*sp*math.Sin(c.Azimuth),
		r*math.Cos(polar),
		r*sp*math.Cos(c.Azimuth),
	))
}

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	cam.Position = c.Position()
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

func (c *OrbitController) Rotate(deltaAzimuth, deltaPolar float64) {
	c.Azimuth += deltaAzimuth
	c.Polar = c.clampPolar(c.Polar + deltaPolar)
}

// Dolly scales the radius by factor (factor < 1 moves closer).
func (c *OrbitController) Dolly(factor float64) {
	if factor <= 0 {
		return
	}
	c.Radius = c.clampRadius(c.Radius * factor)
}

func (c *OrbitController) clampRadius(r float64) float64 {
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}
	return r
}

func (c *OrbitController) clampPolar(p float64) float64 {
	lo, hi := c.MinPolar, c.MaxPolar
	if hi == 0 {
		hi = math.Pi
	}
	// Keep off the poles so lookAt has a defined up vector.
	const eps = 1e-4
	if lo < eps {
		lo = eps
	}
	if hi > math.Pi-eps {
		hi = math.Pi - eps
	}
	return clampF64(p, lo, hi)
}

func clampF64(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
