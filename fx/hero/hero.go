// Package hero renders the landing backdrop: a glowing sphere, a tilted
// torus ribbon and a halo of points, seen from a slowly swaying camera.
package hero

import (
	"math"
	"math/rand/v2"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"lumen/gfx/canvas"
	"lumen/gfx/render3d"
)

const (
	sphereRadius = 1.35
	ribbonMajor  = 1.9
	ribbonMinor  = 0.12
	haloCount    = 900
	haloInner    = 2.3
	haloSpread   = 0.4
)

var (
	primary = hex("#38bdf8")
	accent  = hex("#f472b6")
	neutral = hex("#0f172a")
	caption = hex("#cbd5f5")
)

func hex(s string) render3d.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return render3d.RGB(r, g, b)
}

// Hero is the backdrop stage. Title is drawn under the scene when set.
type Hero struct {
	Title string

	r *render3d.Renderer
	s *render3d.Scene

	sphereID int
	ribbonID int

	t float64
}

func New(rnd *rand.Rand) *Hero {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(3, 4))
	}
	h := &Hero{Title: "lumen · portfolio"}

	h.r = render3d.NewRenderer(0, 0, true)
	h.r.ClearColor = neutral
	h.r.Mode = render3d.RenderSolidFlat

	h.s = render3d.CreateScene(2)
	h.s.Camera.Position = render3d.V3(0, 0, 6)
	h.s.Camera.FOVYRad = 40 * math.Pi / 180
	h.s.Camera.Far = 30

	h.s.Light = render3d.Light{
		Mode:      render3d.LightAmbientDirectional,
		Ambient:   0.4,
		Dir:       render3d.Normalize(render3d.V3(-5, -6, -6)),
		DirAmount: 0.6,
	}

	sphere := render3d.NewSphereMesh(sphereRadius, 10, 16)
	sphere.Material = render3d.Material{BaseColor: primary, Emissive: 0.6}
	h.sphereID = h.s.AddMesh(sphere)

	ribbon := render3d.NewTorusMesh(ribbonMajor, ribbonMinor, 48, 8)
	ribbon.Material = render3d.Material{BaseColor: accent}
	h.ribbonID = h.s.AddMesh(ribbon)

	h.s.SetPoints(halo(rnd))
	h.Tick(0)
	return h
}

// halo scatters points on a ring around the sphere.
func halo(rnd *rand.Rand) []render3d.Point {
	pts := make([]render3d.Point, haloCount)
	c := primary.WithAlpha(153)
	for i := range pts {
		radius := haloInner + rnd.Float64()*haloSpread
		angle := float64(i) / haloCount * 2 * math.Pi
		pts[i] = render3d.Point{
			Pos: render3d.V3(
				math.Cos(angle)*radius+(rnd.Float64()-0.5)*0.3,
				(rnd.Float64()-0.5)*0.6,
				math.Sin(angle)*radius+(rnd.Float64()-0.5)*0.3,
			),
			Color: c,
			Size:  1,
		}
	}
	return pts
}

// CameraAt is the swaying camera position at time t seconds.
func CameraAt(t float64) render3d.Vec3 {
	return render3d.V3(math.Sin(t*0.4)*0.6, math.Cos(t*0.6)*0.4, 6+math.Sin(t*0.25)*0.3)
}

// bob is the vertical float applied to the meshes.
func bob(t, speed, amount float64) float64 {
	return math.Sin(t*speed) * 0.1 * amount
}

func (h *Hero) Tick(dt time.Duration) {
	h.t += dt.Seconds()
	t := h.t

	h.s.Camera.Position = CameraAt(t)
	h.s.Camera.Target = render3d.V3(0, 0, 0)

	h.s.UpdateMeshTransform(h.sphereID, render3d.Mat4Chain(
		render3d.Mat4Translate(render3d.V3(0, bob(t, 2, 1.3), 0)),
		render3d.Mat4RotateY(math.Sin(t*0.5)*0.3),
	))
	h.s.UpdateMeshTransform(h.ribbonID, render3d.Mat4Chain(
		render3d.Mat4Translate(render3d.V3(0, -0.6+bob(t, 1.6, 0.6), -0.4)),
		render3d.Mat4RotateX(math.Pi/3),
		render3d.Mat4RotateY(math.Pi/4),
		render3d.Mat4RotateZ(math.Sin(t*0.8)*0.1),
	))
}

// Elapsed is the stage clock in seconds.
func (h *Hero) Elapsed() float64 { return h.t }

func (h *Hero) Camera() render3d.Camera { return h.s.Camera }

func (h *Hero) Render(c *canvas.Canvas) {
	h.r.Render(c, h.s)
	if h.Title == "" {
		return
	}
	w, hgt := c.Size()
	c.DrawTextCentered(w/2, hgt-2*canvas.LineHeight, h.Title, caption)
}
