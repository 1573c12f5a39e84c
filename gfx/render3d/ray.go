package render3d

import "math"

// Ray is a half-line. Dir is expected to be normalized.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

// Transform returns the ray expressed in the space m maps into.
func (r Ray) Transform(m Mat4) Ray {
	return Ray{Origin: TransformPoint(m, r.Origin), Dir: TransformDir(m, r.Dir)}
}

// IntersectAABB returns the entry distance into an axis-aligned box.
func (r Ray) IntersectAABB(min, max Vec3) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	axes := [3][3]float64{
		{r.Origin.X, r.Dir.X, 0},
		{r.Origin.Y, r.Dir.Y, 0},
		{r.Origin.Z, r.Dir.Z, 0},
	}
	lo := [3]float64{min.X, min.Y, min.Z}
	hi := [3]float64{max.X, max.Y, max.Z}
	for i, a := range axes {
		o, d := a[0], a[1]
		if d == 0 {
			if o < lo[i] || o > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o) / d
		t2 := (hi[i] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

// IntersectSphere returns the nearest non-negative hit distance.
func (r Ray) IntersectSphere(center Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := Dot(oc, r.Dir)
	c := Dot(oc, oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectPlaneY returns the hit with the horizontal plane y = height.
func (r Ray) IntersectPlaneY(height float64) (Vec3, bool) {
	if math.Abs(r.Dir.Y) < 1e-9 {
		return Vec3{}, false
	}
	t := (height - r.Origin.Y) / r.Dir.Y
	if t < 0 {
		return Vec3{}, false
	}
	return r.At(t), true
}
