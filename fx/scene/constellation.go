package scene

import (
	"math"
	"time"

	"lumen/gfx/render3d"
)

const (
	nodeRadius   = 0.35
	spinRate     = 0.05 // rad/s about +Y
	bobAmplitude = 0.08
	bobRate      = 1.2
	bobPhase     = 0.7
)

// NodeState is the derived highlight of a constellation node.
type NodeState uint8

const (
	StateIdle NodeState = iota
	StateHovered
	StateNeighbor
)

func (s NodeState) String() string {
	switch s {
	case StateHovered:
		return "hovered"
	case StateNeighbor:
		return "neighbor"
	default:
		return "idle"
	}
}

// Constellation is a free-floating graph that slowly spins. It has no
// selection; hovering a node highlights it, its neighbours and their edges.
type Constellation struct {
	hoverState
	cfg   Config
	emph  []Emphasis
	orbit render3d.OrbitController
	spin  float64
	clock float64
}

func NewConstellation(g *Graph, cfg Config) *Constellation {
	c := &Constellation{
		hoverState: hoverState{graph: g},
		cfg:        cfg,
		emph:       make([]Emphasis, g.Len()),
		orbit:      render3d.NewOrbitFromPosition(render3d.V3(0, 2, 10), render3d.V3(0, 0, 0)),
	}
	c.orbit.MinPolar, c.orbit.MaxPolar = math.Pi/4, math.Pi/1.8
	for i := range c.emph {
		c.emph[i] = restingEmphasis()
	}
	return c
}

func (c *Constellation) Variant() string { return VariantConstellation }

func (c *Constellation) Click(NodeID) {}

func (c *Constellation) Selected() (NodeID, bool) { return "", false }

// State derives a node's highlight from the hovered node's adjacency.
func (c *Constellation) State(id NodeID) NodeState {
	switch {
	case c.hovered == "":
		return StateIdle
	case id == c.hovered:
		return StateHovered
	case c.graph.Adjacent(c.hovered, id):
		return StateNeighbor
	default:
		return StateIdle
	}
}

func (c *Constellation) Emphasized(id NodeID) bool { return c.State(id) != StateIdle }

// EdgeActive reports whether e touches the hovered node.
func (c *Constellation) EdgeActive(e Edge) bool {
	return c.hovered != "" && e.Has(c.hovered)
}

func (c *Constellation) Tick(dt time.Duration) {
	sec := dt.Seconds()
	if sec < 0 {
		sec = 0
	}
	c.spin = math.Mod(c.spin+spinRate*sec, 2*math.Pi)
	c.clock += sec
	for i, n := range c.graph.nodes {
		c.emph[i].Step(c.Emphasized(n.ID), sec, c.cfg.Motion)
	}
}

// Spin is the group's current rotation about +Y.
func (c *Constellation) Spin() float64 { return c.spin }

func (c *Constellation) Orbit() *render3d.OrbitController { return &c.orbit }

func (c *Constellation) group() render3d.Mat4 { return render3d.Mat4RotateY(c.spin) }

// localPos is node i's position inside the spinning group.
func (c *Constellation) localPos(i int) render3d.Vec3 {
	bob := math.Sin(c.clock*bobRate+float64(i)*bobPhase) * bobAmplitude
	return c.graph.nodes[i].Pos().Add(render3d.V3(0, bob+c.emph[i].Elevation, 0))
}

func (c *Constellation) Pick(r render3d.Ray) (NodeID, bool) {
	local := r.Transform(render3d.Mat4Transpose(c.group()))
	best, hit := math.Inf(1), NodeID("")
	for i, n := range c.graph.nodes {
		if d, ok := local.IntersectSphere(c.localPos(i), nodeRadius*c.emph[i].Scale); ok && d < best {
			best, hit = d, n.ID
		}
	}
	return hit, hit != ""
}

func (c *Constellation) nodeMesh(int) render3d.Mesh {
	return render3d.NewOctahedronMesh(nodeRadius)
}

func (c *Constellation) frame(f *frame) {
	g := c.group()
	for i, n := range c.graph.nodes {
		base := c.graph.Color(i)
		state := c.State(n.ID)
		mat := render3d.Material{BaseColor: toColor(base), Emissive: 0.35}
		switch state {
		case StateHovered:
			mat.BaseColor, mat.Emissive = toColor(scaleColor(base, 1.2)), 0.8
		case StateNeighbor:
			mat.Emissive = 0.6
		default:
			if c.hovered != "" {
				mat.BaseColor = toColor(scaleColor(base, 0.5))
			}
		}
		s := c.emph[i].Scale
		f.nodes = append(f.nodes, nodeDraw{
			Transform: render3d.Mat4Chain(g, render3d.Mat4Translate(c.localPos(i)), render3d.Mat4Scale(render3d.V3(s, s, s))),
			Material:  mat,
		})

		lc := render3d.RGBA(180, 190, 210, 160)
		if state != StateIdle {
			lc = render3d.RGB(255, 255, 255)
		}
		f.labels = append(f.labels, Label{
			Pos:   render3d.TransformPoint(g, c.localPos(i).Add(render3d.V3(0, nodeRadius*s+0.25, 0))),
			Text:  n.Name,
			Color: lc,
			Scale: s,
		})
	}

	for _, e := range c.graph.edges {
		a := render3d.TransformPoint(g, c.localPos(c.graph.IndexOf(e.A)))
		b := render3d.TransformPoint(g, c.localPos(c.graph.IndexOf(e.B)))
		l := render3d.Line{A: a, B: b, Color: render3d.RGBA(120, 140, 180, 70), Width: 1}
		if c.EdgeActive(e) {
			l.Color, l.Width = render3d.RGBA(34, 211, 238, 230), 2
		}
		f.lines = append(f.lines, l)
	}
}
