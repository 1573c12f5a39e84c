package scene

import (
	"math"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"

	"lumen/gfx/canvas"
	"lumen/gfx/render3d"
)

// Label is text anchored to a world position.
type Label struct {
	Pos   render3d.Vec3
	Text  string
	Sub   string
	Color render3d.Color
	Popup bool
	Scale float64
}

type nodeDraw struct {
	Transform render3d.Mat4
	Material  render3d.Material
}

type frame struct {
	nodes  []nodeDraw
	lines  []render3d.Line
	labels []Label
}

func (f *frame) reset() {
	f.nodes = f.nodes[:0]
	f.lines = f.lines[:0]
	f.labels = f.labels[:0]
}

// CursorLight is the point light that follows the pointer over the floor.
type CursorLight struct {
	Height    float64
	Color     render3d.Color
	Intensity float64
	Reach     float64
}

func DefaultCursorLight() CursorLight {
	return CursorLight{Height: 0.5, Color: mustHex("#06B6D4"), Intensity: 2, Reach: 5}
}

// mustHex parses a constant colour and panics on a malformed one.
func mustHex(s string) render3d.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return render3d.RGB(r, g, b)
}

const starRadius = 100

// ViewConfig tunes how a View draws its scene.
type ViewConfig struct {
	Stars     int
	Wireframe bool
	Light     CursorLight
}

func DefaultViewConfig() ViewConfig {
	return ViewConfig{Stars: 5000, Light: DefaultCursorLight()}
}

// View renders a Scene onto a canvas. It owns the render3d scene, the star
// backdrop and the cursor light.
type View struct {
	sc     Scene
	rs     *render3d.Scene
	r      *render3d.Renderer
	meshes []int
	stars  []render3d.Point
	light  CursorLight
	fr     frame
}

func NewView(sc Scene, cfg ViewConfig, rnd *rand.Rand) *View {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(1, 2))
	}
	n := sc.Graph().Len()
	v := &View{
		sc:     sc,
		rs:     render3d.CreateScene(n),
		r:      render3d.NewRenderer(0, 0, true),
		meshes: make([]int, n),
		light:  cfg.Light,
	}
	if v.light == (CursorLight{}) {
		v.light = DefaultCursorLight()
	}
	if cfg.Wireframe {
		v.r.SetRenderMode(render3d.RenderWireframe)
	}
	v.r.ClearColor = render3d.RGB(2, 6, 23)
	v.rs.Camera.FOVYRad = 60 * math.Pi / 180
	v.rs.Camera.Far = 2 * starRadius
	v.rs.Light = render3d.Light{
		Mode:      render3d.LightAmbientDirectional,
		Ambient:   0.3,
		Dir:       render3d.Normalize(render3d.V3(-10, -10, -10)),
		DirAmount: 0.7,
		Point: render3d.PointLight{
			Color:     v.light.Color,
			Intensity: v.light.Intensity,
			Reach:     v.light.Reach,
		},
	}
	for i := 0; i < n; i++ {
		m := sc.nodeMesh(i)
		m.Enabled = true
		m.Transform = render3d.Mat4Identity()
		v.meshes[i] = v.rs.AddMesh(m)
	}
	v.stars = starField(rnd, max(cfg.Stars, 0), starRadius)
	return v
}

// starField scatters dim points over a sphere shell.
func starField(rnd *rand.Rand, n int, radius float64) []render3d.Point {
	pts := make([]render3d.Point, n)
	for i := range pts {
		z := rnd.Float64()*2 - 1
		az := rnd.Float64() * 2 * math.Pi
		s := math.Sqrt(1 - z*z)
		r := radius * (0.5 + 0.5*rnd.Float64())
		lum := uint8(90 + rnd.IntN(140))
		pts[i] = render3d.Point{
			Pos:   render3d.V3(r*s*math.Cos(az), r*z, r*s*math.Sin(az)),
			Color: render3d.RGB(lum, lum, lum),
			Size:  1,
		}
	}
	return pts
}

// Camera returns the camera for the current orbit.
func (v *View) Camera() render3d.Camera {
	cam := v.rs.Camera
	v.sc.Orbit().Apply(&cam)
	return cam
}

// PointAt moves the cursor light to where ray meets the floor plane.
// A ray that misses the plane leaves the light where it was.
func (v *View) PointAt(ray render3d.Ray) {
	p, ok := ray.IntersectPlaneY(0)
	if !ok {
		return
	}
	p.Y = v.light.Height
	v.rs.Light.Point.Pos = p
	v.rs.Light.Point.Enabled = true
}

// HideLight turns the cursor light off, e.g. when the pointer leaves.
func (v *View) HideLight() { v.rs.Light.Point.Enabled = false }

// LightPos reports the cursor light position and whether it is on.
func (v *View) LightPos() (render3d.Vec3, bool) {
	return v.rs.Light.Point.Pos, v.rs.Light.Point.Enabled
}

// Render draws the scene, its edges and labels.
func (v *View) Render(c *canvas.Canvas) {
	v.fr.reset()
	v.sc.frame(&v.fr)
	for i, nd := range v.fr.nodes {
		v.rs.UpdateMeshTransform(v.meshes[i], nd.Transform)
		v.rs.UpdateMeshMaterial(v.meshes[i], nd.Material)
	}
	v.rs.SetLines(v.fr.lines)
	v.rs.SetPoints(v.stars)
	v.sc.Orbit().Apply(&v.rs.Camera)

	v.r.Render(c, v.rs)
	v.drawLabels(c)
}

func (v *View) drawLabels(c *canvas.Canvas) {
	w, h := c.Size()
	cam := v.rs.Camera
	for _, l := range v.fr.labels {
		x, y, _, ok := cam.Project(l.Pos, w, h)
		if !ok {
			continue
		}
		ix, iy := int(math.Round(x)), int(math.Round(y))
		if l.Popup {
			drawPopup(c, ix, iy, l)
			continue
		}
		if l.Scale > 1.05 {
			// Raised keys get a soft backing so the name stands out.
			tw := canvas.TextWidth(l.Text)
			c.FillRect(ix-tw/2-2, iy-1, tw+4, canvas.LineHeight+1, render3d.RGBA(0, 0, 0, 96))
		}
		c.DrawTextCentered(ix, iy, l.Text, l.Color)
	}
}

func drawPopup(c *canvas.Canvas, x, y int, l Label) {
	tw := max(canvas.TextWidth(l.Text), canvas.TextWidth(l.Sub))
	pw, ph := tw+12, 2*canvas.LineHeight+8
	left, top := x-pw/2, y-ph/2
	c.FillRect(left, top, pw, ph, render3d.RGBA(15, 23, 42, 128))
	border := render3d.RGBA(34, 211, 238, 77)
	c.FillRect(left, top, pw, 1, border)
	c.FillRect(left, top+ph-1, pw, 1, border)
	c.FillRect(left, top, 1, ph, border)
	c.FillRect(left+pw-1, top, 1, ph, border)
	c.DrawTextCentered(x, top+4, l.Text, l.Color)
	c.DrawTextCentered(x, top+4+canvas.LineHeight, l.Sub, render3d.RGB(165, 243, 252))
}
