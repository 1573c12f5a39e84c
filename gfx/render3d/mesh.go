package render3d

import "math"

// NewBoxMesh returns an axis-aligned box of the given full extents centred on
// the origin.
func NewBoxMesh(sx, sy, sz float64) Mesh {
	x, y, z := sx/2, sy/2, sz/2
	verts := []Vertex{
		{Pos: V3(-x, -y, -z)}, {Pos: V3(x, -y, -z)}, {Pos: V3(x, y, -z)}, {Pos: V3(-x, y, -z)},
		{Pos: V3(-x, -y, z)}, {Pos: V3(x, -y, z)}, {Pos: V3(x, y, z)}, {Pos: V3(-x, y, z)},
	}
	indices := []uint16{
		4, 5, 6, 4, 6, 7, // +z
		1, 0, 3, 1, 3, 2, // -z
		5, 1, 2, 5, 2, 6, // +x
		0, 4, 7, 0, 7, 3, // -x
		7, 6, 2, 7, 2, 3, // +y
		0, 1, 5, 0, 5, 4, // -y
	}
	return Mesh{Vertices: verts, Indices: indices}
}

// NewTorusMesh returns a torus lying in the XZ plane.
func NewTorusMesh(major, minor float64, segU, segV int) Mesh {
	if segU < 3 {
		segU = 3
	}
	if segV < 3 {
		segV = 3
	}

	verts := make([]Vertex, 0, segU*segV)
	indices := make([]uint16, 0, segU*segV*6)

	twoPi := 2 * math.Pi
	for u := 0; u < segU; u++ {
		theta := twoPi * float64(u) / float64(segU)
		ct, st := math.Cos(theta), math.Sin(theta)
		for v := 0; v < segV; v++ {
			phi := twoPi * float64(v) / float64(segV)
			cp, sp := math.Cos(phi), math.Sin(phi)

			r := major + minor*cp
			verts = append(verts, Vertex{Pos: V3(r*ct, minor*sp, r*st)})
		}
	}

	idx := func(u, v int) uint16 {
		return uint16((u%segU)*segV + v%segV)
	}

	for u := 0; u < segU; u++ {
		for v := 0; v < segV; v++ {
			i0 := idx(u, v)
			i1 := idx(u+1, v)
			i2 := idx(u+1, v+1)
			i3 := idx(u, v+1)

			indices = append(indices, i0, i1, i2)
			indices = append(indices, i0, i2, i3)
		}
	}

	return Mesh{Vertices: verts, Indices: indices}
}

// NewSphereMesh returns a UV sphere.
func NewSphereMesh(radius float64, rings, sectors int) Mesh {
	if rings < 2 {
		rings = 2
	}
	if sectors < 3 {
		sectors = 3
	}
	verts := make([]Vertex, 0, (rings+1)*sectors)
	for i := 0; i <= rings; i++ {
		polar := math.Pi * float64(i) / float64(rings)
		sp, cp := math.Sin(polar), math.Cos(polar)
		for j := 0; j < sectors; j++ {
			az := 2 * math.Pi * float64(j) / float64(sectors)
			verts = append(verts, Vertex{Pos: V3(radius*sp*math.Cos(az), radius*cp, radius*sp*math.Sin(az))})
		}
	}
	idx := func(i, j int) uint16 { return uint16(i*sectors + j%sectors) }
	indices := make([]uint16, 0, rings*sectors*6)
	for i := 0; i < rings; i++ {
		for j := 0; j < sectors; j++ {
			a, b := idx(i, j), idx(i, j+1)
			c, d := idx(i+1, j), idx(i+1, j+1)
			indices = append(indices, a, c, b, b, c, d)
		}
	}
	return Mesh{Vertices: verts, Indices: indices}
}

// NewOctahedronMesh returns a regular octahedron with the given circumradius.
func NewOctahedronMesh(radius float64) Mesh {
	r := radius
	verts := []Vertex{
		{Pos: V3(r, 0, 0)}, {Pos: V3(-r, 0, 0)},
		{Pos: V3(0, r, 0)}, {Pos: V3(0, -r, 0)},
		{Pos: V3(0, 0, r)}, {Pos: V3(0, 0, -r)},
	}
	indices := []uint16{
		2, 4, 0, 2, 0, 5, 2, 5, 1, 2, 1, 4,
		3, 0, 4, 3, 5, 0, 3, 1, 5, 3, 4, 1,
	}
	return Mesh{Vertices: verts, Indices: indices}
}
