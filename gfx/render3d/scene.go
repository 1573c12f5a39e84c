package render3d

import "math"

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
	Emissive  float64 // 0..1, portion of BaseColor that ignores lighting.
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// PointLight adds a tinted contribution that falls off linearly to zero at Reach.
type PointLight struct {
	Enabled   bool
	Pos       Vec3
	Color     Color
	Intensity float64
	Reach     float64
}

// Light is a minimal light setup.
type Light struct {
	Mode      LightMode
	Ambient   float64 // 0..1
	Dir       Vec3    // direction *towards* the scene
	DirAmount float64 // 0..1
	Point     PointLight
}

// Camera is a perspective camera.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad float64

	Near float64
	Far  float64
}

func (c Camera) up() Vec3 {
	if c.Up == (Vec3{}) {
		return V3(0, 1, 0)
	}
	return c.Up
}

func (c Camera) fov() float64 {
	if c.FOVYRad == 0 {
		return 1.0
	}
	return c.FOVYRad
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	return Mat4LookAt(c.Position, c.Target, c.up())
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect float64) Mat4 {
	return Mat4Perspective(c.fov(), aspect, c.Near, c.Far)
}

// Project maps a world-space point to pixel coordinates on a w×h target.
// ok is false when the point is behind the camera or outside the depth range.
func (c Camera) Project(p Vec3, w, h int) (x, y, depth float64, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, false
	}
	mvp := Mat4Mul(c.Projection(aspectOf(w, h)), c.View())
	clip := Mat4MulV4(mvp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	ndc, inside := clipToNDC(clip)
	if !inside {
		return 0, 0, 0, false
	}
	sx, sy := ndcToScreenF(ndc, w, h)
	return sx, sy, float64(ndc.Z), true
}

// Ray returns the pick ray through pixel (x, y) of a w×h target.
func (c Camera) Ray(x, y float64, w, h int) Ray {
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	ndcX := 2*x/float64(w-1) - 1
	ndcY := 1 - 2*y/float64(h-1)
	aspect := aspectOf(w, h)

	f := Normalize(c.Target.Sub(c.Position))
	s := Normalize(Cross(f, c.up()))
	u := Cross(s, f)

	t := math.Tan(c.fov() / 2)
	dir := f.Add(s.Mul(ndcX * t * aspect)).Add(u.Mul(ndcY * t))
	return Ray{Origin: c.Position, Dir: Normalize(dir)}
}

func aspectOf(w, h int) float64 {
	if h == 0 {
		return 1
	}
	return float64(w) / float64(h)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos Vec3
}

// Mesh is a triangle mesh with an object transform.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint16 // triangle list

	Transform Mat4
	Material  Material
}

// Line is a world-space segment drawn after meshes.
type Line struct {
	A, B  Vec3
	Color Color // alpha < 255 blends on BlendTarget
	Width int   // pixels, 1 if zero
}

// Point is a world-space dot drawn after meshes.
type Point struct {
	Pos   Vec3
	Color Color
	Size  int // pixels, 1 if zero
}

// Scene is a collection of objects to render.
type Scene struct {
	Camera Camera
	Light  Light

	// PointsTransform is applied to Points before projection.
	PointsTransform Mat4

	meshes []Mesh
	alive  []bool
	lines  []Line
	points []Point
}

// CreateScene allocates a scene with a fixed mesh capacity.
func CreateScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Target:   V3(0, 0, 0),
			Up:       V3(0, 1, 0),
			FOVYRad:  1.0,
			Near:     0.05,
			Far:      100,
		},
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   0.25,
			Dir:       Normalize(V3(1, 1, 1)),
			DirAmount: 0.75,
		},
		PointsTransform: Mat4Identity(),
		meshes:          make([]Mesh, maxMeshes),
		alive:           make([]bool, maxMeshes),
	}
}

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.meshes {
		if s.alive[i] {
			continue
		}
		if m.Transform == (Mat4{}) {
			m.Transform = Mat4Identity()
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		m.Enabled = true
		s.meshes[i] = m
		s.alive[i] = true
		return i
	}
	return -1
}

// RemoveMesh removes a mesh by id.
func (s *Scene) RemoveMesh(id int) {
	if !s.valid(id) {
		return
	}
	s.alive[id] = false
	s.meshes[id] = Mesh{}
}

// SetMeshEnabled enables/disables a mesh by id.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if !s.valid(id) {
		return
	}
	s.meshes[id].Enabled = enabled
}

// UpdateMeshTransform updates a mesh transform by id.
func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if !s.valid(id) {
		return
	}
	s.meshes[id].Transform = m
}

// UpdateMeshMaterial replaces a mesh material by id.
func (s *Scene) UpdateMeshMaterial(id int, mat Material) {
	if !s.valid(id) {
		return
	}
	s.meshes[id].Material = mat
}

// SetLines replaces the line list. The slice is retained, not copied.
func (s *Scene) SetLines(lines []Line) {
	if s == nil {
		return
	}
	s.lines = lines
}

// SetPoints replaces the point list. The slice is retained, not copied.
func (s *Scene) SetPoints(points []Point) {
	if s == nil {
		return
	}
	s.points = points
}

func (s *Scene) valid(id int) bool {
	return s != nil && id >= 0 && id < len(s.meshes) && s.alive[id]
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if !s.alive[i] {
			continue
		}
		fn(&s.meshes[i])
	}
}
