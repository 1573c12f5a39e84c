package render3d

import "math"

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depthBuf []float32
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render renders a scene into the target: meshes first, then points, then lines.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	view := s.Camera.View()
	proj := s.Camera.Projection(aspectOf(w, h))
	viewProj := Mat4Mul(proj, view)

	s.eachMesh(func(m *Mesh) {
		if m == nil || !m.Enabled {
			return
		}
		r.renderMesh(t, w, h, viewProj, *m, s.Light)
	})

	pointsMVP := viewProj
	if s.PointsTransform != (Mat4{}) {
		pointsMVP = Mat4Mul(viewProj, s.PointsTransform)
	}
	for _, p := range s.points {
		r.renderPoint(t, w, h, pointsMVP, p)
	}
	for _, l := range s.lines {
		r.renderLine(t, w, h, viewProj, l)
	}
}

func (r *Renderer) renderMesh(t Target, w, h int, viewProj Mat4, m Mesh, light Light) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	if m.Transform == (Mat4{}) {
		m.Transform = Mat4Identity()
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}

		v0 := m.Vertices[i0]
		v1 := m.Vertices[i1]
		v2 := m.Vertices[i2]

		w0 := TransformPoint(m.Transform, v0.Pos)
		w1 := TransformPoint(m.Transform, v1.Pos)
		w2 := TransformPoint(m.Transform, v2.Pos)

		p0 := Mat4MulV4(viewProj, Vec4{X: w0.X, Y: w0.Y, Z: w0.Z, W: 1})
		p1 := Mat4MulV4(viewProj, Vec4{X: w1.X, Y: w1.Y, Z: w1.Z, W: 1})
		p2 := Mat4MulV4(viewProj, Vec4{X: w2.X, Y: w2.Y, Z: w2.Z, W: 1})

		ndc0, ok0 := clipToNDC(p0)
		ndc1, ok1 := clipToNDC(p1)
		ndc2, ok2 := clipToNDC(p2)
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		x0, y0 := ndcToScreen(ndc0, w, h)
		x1, y1 := ndcToScreen(ndc1, w, h)
		x2, y2 := ndcToScreen(ndc2, w, h)

		base := m.Material.BaseColor
		if light.Mode == LightAmbientDirectional {
			n := triangleNormal(w0, w1, w2)
			centroid := w0.Add(w1).Add(w2).Mul(1.0 / 3)
			base = shade(m.Material, light, n, centroid)
		}

		switch r.Mode {
		case RenderWireframe:
			r.drawLine(t, w, x0, y0, ndc0.Z, x1, y1, ndc1.Z, base, 1)
			r.drawLine(t, w, x1, y1, ndc1.Z, x2, y2, ndc2.Z, base, 1)
			r.drawLine(t, w, x2, y2, ndc2.Z, x0, y0, ndc0.Z, base, 1)
		default:
			r.fillTriangleFlat(t, w, h, x0, y0, ndc0.Z, x1, y1, ndc1.Z, x2, y2, ndc2.Z, base)
		}
	}
}

func (r *Renderer) renderLine(t Target, w, h int, viewProj Mat4, l Line) {
	a := Mat4MulV4(viewProj, Vec4{X: l.A.X, Y: l.A.Y, Z: l.A.Z, W: 1})
	b := Mat4MulV4(viewProj, Vec4{X: l.B.X, Y: l.B.Y, Z: l.B.Z, W: 1})
	na, okA := clipToNDC(a)
	nb, okB := clipToNDC(b)
	if !okA || !okB {
		return
	}
	x0, y0 := ndcToScreen(na, w, h)
	x1, y1 := ndcToScreen(nb, w, h)
	width := l.Width
	if width <= 0 {
		width = 1
	}
	r.drawLine(t, w, x0, y0, na.Z, x1, y1, nb.Z, l.Color, width)
}

func (r *Renderer) renderPoint(t Target, w, h int, mvp Mat4, p Point) {
	clip := Mat4MulV4(mvp, Vec4{X: p.Pos.X, Y: p.Pos.Y, Z: p.Pos.Z, W: 1})
	ndc, ok := clipToNDC(clip)
	if !ok || ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 {
		return
	}
	x, y := ndcToScreen(ndc, w, h)
	size := p.Size
	if size <= 0 {
		size = 1
	}
	r.plot(t, w, x, y, ndc.Z, p.Color, size)
}

type ndcPoint struct {
	X, Y, Z float32
}

// maxNDC bounds projected coordinates so near-plane grazing vertices do not
// produce absurd raster loops.
const maxNDC = 64

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W <= 1e-6 {
		return ndcPoint{}, false
	}
	invW := 1.0 / p.W
	n := ndcPoint{
		X: float32(p.X * invW),
		Y: float32(p.Y * invW),
		Z: float32(p.Z * invW),
	}
	if n.Z < -1 || n.Z > 1 {
		return ndcPoint{}, false
	}
	if n.X < -maxNDC || n.X > maxNDC || n.Y < -maxNDC || n.Y > maxNDC {
		return ndcPoint{}, false
	}
	return n, true
}

func ndcToScreenF(p ndcPoint, w, h int) (x, y float64) {
	sx := (float64(p.X)*0.5 + 0.5) * float64(w-1)
	sy := (1 - (float64(p.Y)*0.5 + 0.5)) * float64(h-1)
	return sx, sy
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx, sy := ndcToScreenF(p, w, h)
	return int(math.Floor(sx + 0.5)), int(math.Floor(sy + 0.5))
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

func lightIntensity(l Light, n Vec3) float64 {
	amb := Clamp01(l.Ambient)
	dir := Clamp01(l.DirAmount)
	ld := Normalize(l.Dir)
	if ld == (Vec3{}) {
		return amb
	}
	d := Dot(n, ld.Mul(-1))
	if d < 0 {
		d = -d * 0.35 // dim fill for faces turned away
	}
	return Clamp01(amb + d*dir)
}

func shade(mat Material, l Light, n, at Vec3) Color {
	base := mat.BaseColor
	lit := base.MulScalar(lightIntensity(l, n))
	if e := Clamp01(mat.Emissive); e > 0 {
		lit = lit.MulScalar(1 - e).AddScaled(base, e)
	}
	if p := l.Point; p.Enabled && p.Reach > 0 {
		d := Len(at.Sub(p.Pos))
		if fall := 1 - d/p.Reach; fall > 0 {
			lit = lit.AddScaled(p.Color, fall*p.Intensity*0.5)
		}
	}
	return lit.WithAlpha(base.A)
}

func (r *Renderer) depthAt(w, x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= w {
		return 0, false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return 0, false
	}
	return idx, true
}

func depthOf(z float32) float32 {
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := z*0.5 + 0.5
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	return d
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	idx, ok := r.depthAt(w, x, y)
	if !ok {
		return false
	}
	d := depthOf(z)
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

// depthVisible tests without writing, so overlays never occlude each other.
func (r *Renderer) depthVisible(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	idx, ok := r.depthAt(w, x, y)
	if !ok {
		return false
	}
	return depthOf(z) <= r.depthBuf[idx]+1e-4
}

func (r *Renderer) plot(t Target, w int, x, y int, z float32, c Color, size int) {
	half := size / 2
	bt, canBlend := t.(BlendTarget)
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			px, py := x+dx-half, y+dy-half
			if !r.depthVisible(w, px, py, z) {
				continue
			}
			if c.A < 0xFF && canBlend {
				t.SetPixel(px, py, Blend(bt.Pixel(px, py), c))
				continue
			}
			t.SetPixel(px, py, c)
		}
	}
}

func (r *Renderer) drawLine(t Target, w int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, c Color, width int) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := dx
	if -dy > steps {
		steps = -dy
	}
	if steps == 0 {
		steps = 1
	}
	var i int
	err := dx + dy
	for {
		z := z0 + (z1-z0)*float32(i)/float32(steps)
		r.plot(t, w, x0, y0, z, c, width)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
		i++
	}
}

func (r *Renderer) fillTriangleFlat(t Target, w, h int, x0, y0 int, z0 float32, x1, y1 int, z1 float32, x2, y2 int, z2 float32, c Color) {
	minX, maxX := min3(x0, x1, x2), max3(x0, x1, x2)
	minY, maxY := min3(y0, y1, y2), max3(y0, y1, y2)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	if area < 0 {
		// Accept both windings.
		x1, y1, z1, x2, y2, z2 = x2, y2, z2, x1, y1, z1
		area = -area
	}
	invArea := 1.0 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*z0 + a1*z1 + a2*z2
			if !r.depthTest(w, x, y, z) {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
