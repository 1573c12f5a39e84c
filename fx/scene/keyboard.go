package scene

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"lumen/gfx/render3d"
)

const (
	keyDepth    = 0.5
	keyGap      = 0.1
	keyTilt     = 0.3
	popupHeight = 1.5
)

var defaultKeySize = [3]float64{1.5, 1, 1.5}

// Keyboard lays nodes out as raised keys. Hover and selection are
// independent; a key is emphasized while either holds.
type Keyboard struct {
	hoverState
	cfg      Config
	selected NodeID
	emph     []Emphasis
	orbit    render3d.OrbitController
	group    render3d.Mat4
}

func NewKeyboard(g *Graph, cfg Config) *Keyboard {
	k := &Keyboard{
		hoverState: hoverState{graph: g},
		cfg:        cfg,
		emph:       make([]Emphasis, g.Len()),
		orbit:      render3d.NewOrbitFromPosition(render3d.V3(0, 5, 9), render3d.V3(0, 0, 0)),
		group:      render3d.Mat4RotateX(keyTilt),
	}
	k.orbit.MinRadius, k.orbit.MaxRadius = 4, 20
	k.orbit.MinPolar, k.orbit.MaxPolar = math.Pi/4, math.Pi/1.8
	for i := range k.emph {
		k.emph[i] = restingEmphasis()
	}
	return k
}

func (k *Keyboard) Variant() string { return VariantKeyboard }

// Click selects id, or clears the selection when id is already selected.
func (k *Keyboard) Click(id NodeID) {
	if k.graph.IndexOf(id) < 0 {
		return
	}
	if k.selected == id {
		k.selected = ""
	} else {
		k.selected = id
	}
	k.stats.SelectionChanges++
}

func (k *Keyboard) Selected() (NodeID, bool) { return k.selected, k.selected != "" }

func (k *Keyboard) Emphasized(id NodeID) bool {
	return id != "" && (id == k.selected || id == k.hovered)
}

func (k *Keyboard) Tick(dt time.Duration) {
	sec := dt.Seconds()
	for i, n := range k.graph.nodes {
		k.emph[i].Step(k.Emphasized(n.ID), sec, k.cfg.Motion)
	}
}

func (k *Keyboard) Orbit() *render3d.OrbitController { return &k.orbit }

// Emphasis returns the animated pose of node id.
func (k *Keyboard) Emphasis(id NodeID) Emphasis {
	if i := k.graph.IndexOf(id); i >= 0 {
		return k.emph[i]
	}
	return restingEmphasis()
}

// KeyColor is the base color when selected, brightened by 1.2 when hovered
// and dimmed to 0.7 otherwise.
func (k *Keyboard) KeyColor(id NodeID) render3d.Color {
	i := k.graph.IndexOf(id)
	if i < 0 {
		return render3d.Color{}
	}
	c := k.graph.Color(i)
	switch {
	case id == k.selected:
	case id == k.hovered:
		c = scaleColor(c, 1.2)
	default:
		c = scaleColor(c, 0.7)
	}
	return toColor(c)
}

// IconScale grows with the key's lift: 1 at rest, 1.1 fully raised.
func (k *Keyboard) IconScale(id NodeID) float64 {
	if k.cfg.Motion.Elevation == 0 {
		return 1
	}
	return 1 + (k.Emphasis(id).Elevation/k.cfg.Motion.Elevation)*0.1
}

func keySize(n Node) [3]float64 {
	if n.Size == ([3]float64{}) {
		return defaultKeySize
	}
	return n.Size
}

func (k *Keyboard) keyCentre(i int) render3d.Vec3 {
	return k.graph.nodes[i].Pos().Add(render3d.V3(0, k.emph[i].Elevation, 0))
}

func (k *Keyboard) Pick(r render3d.Ray) (NodeID, bool) {
	local := r.Transform(render3d.Mat4Transpose(k.group))
	best, hit := math.Inf(1), NodeID("")
	for i, n := range k.graph.nodes {
		sz := keySize(n)
		s := k.emph[i].Scale
		half := render3d.V3((sz[0]-keyGap)/2*s, keyDepth/2*s, (sz[2]-keyGap)/2*s)
		c := k.keyCentre(i)
		if d, ok := local.IntersectAABB(c.Sub(half), c.Add(half)); ok && d < best {
			best, hit = d, n.ID
		}
	}
	return hit, hit != ""
}

func (k *Keyboard) nodeMesh(i int) render3d.Mesh {
	sz := keySize(k.graph.nodes[i])
	return render3d.NewBoxMesh(sz[0]-keyGap, keyDepth, sz[2]-keyGap)
}

func (k *Keyboard) frame(f *frame) {
	for i, n := range k.graph.nodes {
		e := k.emph[i]
		on := k.Emphasized(n.ID)
		mat := render3d.Material{BaseColor: k.KeyColor(n.ID)}
		if on {
			mat.Emissive = 0.2
		}
		f.nodes = append(f.nodes, nodeDraw{
			Transform: render3d.Mat4Chain(
				k.group,
				render3d.Mat4Translate(k.keyCentre(i)),
				render3d.Mat4Scale(render3d.V3(e.Scale, e.Scale, e.Scale)),
			),
			Material: mat,
		})

		iconColor := toColor(k.graph.Color(i))
		if on {
			iconColor = render3d.RGB(255, 255, 255)
		}
		top := k.keyCentre(i).Add(render3d.V3(0, keyDepth/2*e.Scale+0.01, 0))
		f.labels = append(f.labels, Label{
			Pos:   render3d.TransformPoint(k.group, top),
			Text:  n.Name,
			Color: iconColor,
			Scale: k.IconScale(n.ID),
		})
		if n.ID == k.selected {
			f.labels = append(f.labels, Label{
				Pos:   render3d.TransformPoint(k.group, k.keyCentre(i).Add(render3d.V3(0, popupHeight, 0))),
				Text:  n.Name,
				Sub:   n.Description,
				Color: render3d.RGB(255, 255, 255),
				Popup: true,
				Scale: 1,
			})
		}
	}
}

func scaleColor(c colorful.Color, s float64) colorful.Color {
	return colorful.Color{R: c.R * s, G: c.G * s, B: c.B * s}.Clamped()
}

func toColor(c colorful.Color) render3d.Color {
	r, g, b := c.Clamped().RGB255()
	return render3d.RGB(r, g, b)
}
