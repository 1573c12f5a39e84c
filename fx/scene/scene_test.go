package scene

import (
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"lumen/gfx/canvas"
	"lumen/gfx/render3d"
	"lumen/hal"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinScene(t *testing.T, variant string) Scene {
	t.Helper()
	def, err := Builtin(variant)
	require.NoError(t, err)
	sc, err := New(variant, def, DefaultConfig())
	require.NoError(t, err)
	return sc
}

func TestBuiltinDefinitions(t *testing.T) {
	kb := builtinScene(t, VariantKeyboard)
	assert.Equal(t, 11, kb.Graph().Len())
	assert.Empty(t, kb.Graph().Edges())

	cs := builtinScene(t, VariantConstellation)
	assert.Equal(t, 10, cs.Graph().Len())
	// nodejs lists javascript and javascript lists nodejs; that is one edge.
	n := 0
	for _, e := range cs.Graph().Edges() {
		if e == (Edge{A: "javascript", B: "nodejs"}) {
			n++
		}
	}
	assert.Equal(t, 1, n)

	_, err := Builtin("galaxy")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse(strings.NewReader("nodes:\n  - id: a\n    name: A\n    color: '#fff'\n    colour: red\n"))
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = Parse(strings.NewReader("nodes:\n  - id: a\n    name: A\n    color: blue\n"))
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = Parse(strings.NewReader("nodes: []\n"))
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	def, err := Parse(strings.NewReader("variant: constellation\nnodes:\n  - id: a\n    name: A\n    color: '#fff'\n    connections: [b]\n"))
	require.NoError(t, err)
	_, err = New(VariantConstellation, def, DefaultConfig())
	assert.ErrorIs(t, err, ErrUnknownConnection)
}

func TestLoadPicksVariant(t *testing.T) {
	_, v, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, VariantKeyboard, v)

	_, v, err = Load("", VariantConstellation)
	require.NoError(t, err)
	assert.Equal(t, VariantConstellation, v)
}

func TestKeyboardSelectionToggle(t *testing.T) {
	k := builtinScene(t, VariantKeyboard)

	k.Click("react")
	id, ok := k.Selected()
	assert.True(t, ok)
	assert.Equal(t, NodeID("react"), id)

	k.Click("redis")
	id, _ = k.Selected()
	assert.Equal(t, NodeID("redis"), id)

	k.Click("redis")
	_, ok = k.Selected()
	assert.False(t, ok)

	k.Click("nope")
	_, ok = k.Selected()
	assert.False(t, ok)
	assert.Equal(t, uint64(3), k.Stats().SelectionChanges)
}

func TestSelectionToggleProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	def, err := Builtin(VariantKeyboard)
	require.NoError(t, err)
	ids := make([]NodeID, len(def.Nodes))
	for i, n := range def.Nodes {
		ids[i] = n.ID
	}

	properties.Property("click sets, replaces or clears the selection", prop.ForAll(
		func(clicks []int) bool {
			g, _ := NewGraph(def.Nodes)
			k := NewKeyboard(g, DefaultConfig())
			for _, c := range clicks {
				id := ids[c%len(ids)]
				before, had := k.Selected()
				k.Click(id)
				after, has := k.Selected()
				switch {
				case had && before == id:
					if has {
						return false
					}
				default:
					if !has || after != id {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))
	properties.TestingRun(t)
}

func TestHoverEndOnlyClearsMatchingNode(t *testing.T) {
	k := builtinScene(t, VariantKeyboard)
	k.HoverStart("react")
	k.HoverStart("redux")
	k.HoverEnd("react")
	id, ok := k.Hovered()
	assert.True(t, ok)
	assert.Equal(t, NodeID("redux"), id)

	k.HoverEnd("redux")
	_, ok = k.Hovered()
	assert.False(t, ok)
}

func TestUpdateHover(t *testing.T) {
	k := builtinScene(t, VariantKeyboard)
	UpdateHover(k, "react", true)
	UpdateHover(k, "react", true)
	UpdateHover(k, "redux", true)
	id, _ := k.Hovered()
	assert.Equal(t, NodeID("redux"), id)
	UpdateHover(k, "", false)
	_, ok := k.Hovered()
	assert.False(t, ok)
	// start react, end react + start redux, end redux
	assert.Equal(t, uint64(4), k.Stats().HoverChanges)
}

func assertColorNear(t *testing.T, want, got render3d.Color) {
	t.Helper()
	assert.InDelta(t, int(want.R), int(got.R), 1)
	assert.InDelta(t, int(want.G), int(got.G), 1)
	assert.InDelta(t, int(want.B), int(got.B), 1)
}

func TestKeyColors(t *testing.T) {
	k := builtinScene(t, VariantKeyboard).(*Keyboard)
	// python is #4169E1
	assertColorNear(t, render3d.RGB(46, 74, 158), k.KeyColor("python"))
	k.HoverStart("python")
	assertColorNear(t, render3d.RGB(78, 126, 255), k.KeyColor("python"))
	k.Click("python")
	assertColorNear(t, render3d.RGB(65, 105, 225), k.KeyColor("python"))
}

func TestApproachFrameRateIndependent(t *testing.T) {
	a, b := 0.0, 0.0
	for i := 0; i < 60; i++ {
		a = Approach(a, 1, 8, 1.0/60)
	}
	for i := 0; i < 144; i++ {
		b = Approach(b, 1, 8, 1.0/144)
	}
	assert.InDelta(t, a, b, 1e-9)
	assert.InDelta(t, 1-math.Exp(-8), a, 1e-9)
	assert.Equal(t, 0.5, Approach(0.5, 1, 8, 0))
}

func TestEmphasisConverges(t *testing.T) {
	k := builtinScene(t, VariantKeyboard).(*Keyboard)
	k.HoverStart("redis")
	for i := 0; i < 120; i++ {
		k.Tick(16 * time.Millisecond)
	}
	e := k.Emphasis("redis")
	assert.InDelta(t, 0.1, e.Elevation, 1e-4)
	assert.InDelta(t, 1.1, e.Scale, 1e-4)
	assert.InDelta(t, 1.1, k.IconScale("redis"), 1e-3)

	k.HoverEnd("redis")
	for i := 0; i < 120; i++ {
		k.Tick(16 * time.Millisecond)
	}
	e = k.Emphasis("redis")
	assert.InDelta(t, 0, e.Elevation, 1e-4)
	assert.InDelta(t, 1, e.Scale, 1e-4)
}

func cameraFor(sc Scene) render3d.Camera {
	cam := render3d.Camera{FOVYRad: math.Pi / 3, Near: 0.05, Far: 200}
	sc.Orbit().Apply(&cam)
	return cam
}

func TestKeyboardPickFrontKey(t *testing.T) {
	k := builtinScene(t, VariantKeyboard).(*Keyboard)
	cam := cameraFor(k)
	i := k.graph.IndexOf("redis")
	centre := render3d.TransformPoint(k.group, k.keyCentre(i))
	x, y, _, ok := cam.Project(centre, 320, 240)
	require.True(t, ok)

	id, hit := k.Pick(cam.Ray(x, y, 320, 240))
	require.True(t, hit)
	assert.Equal(t, NodeID("redis"), id)

	_, hit = k.Pick(cam.Ray(0, 0, 320, 240))
	assert.False(t, hit)
}

func TestConstellationPickFollowsSpin(t *testing.T) {
	g, err := NewGraph([]Node{
		{ID: "left", Name: "L", Color: "#ff0000", Position: [3]float64{-2, 0, 0}},
		{ID: "right", Name: "R", Color: "#00ff00", Position: [3]float64{2, 0, 0}, Connections: []NodeID{"left"}},
	})
	require.NoError(t, err)
	c := NewConstellation(g, DefaultConfig())
	c.Tick(10 * time.Second)
	assert.InDelta(t, 0.5, c.Spin(), 1e-9)

	cam := cameraFor(c)
	world := render3d.TransformPoint(c.group(), c.localPos(g.IndexOf("right")))
	x, y, _, ok := cam.Project(world, 320, 240)
	require.True(t, ok)
	id, hit := c.Pick(cam.Ray(x, y, 320, 240))
	require.True(t, hit)
	assert.Equal(t, NodeID("right"), id)

	c.HoverStart("right")
	assert.Equal(t, StateHovered, c.State("right"))
	assert.Equal(t, StateNeighbor, c.State("left"))
	assert.True(t, c.EdgeActive(Edge{A: "left", B: "right"}))
	c.Click("left")
	_, sel := c.Selected()
	assert.False(t, sel)
}

func TestViewRendersAndTracksCursorLight(t *testing.T) {
	host := hal.NewHost(hal.HostConfig{Width: 160, Height: 120, Log: io.Discard})
	cv, err := canvas.New(host.Display().Framebuffer())
	require.NoError(t, err)

	for _, variant := range []string{VariantKeyboard, VariantConstellation} {
		sc := builtinScene(t, variant)
		v := NewView(sc, DefaultViewConfig(), nil)
		cam := v.Camera()
		v.PointAt(cam.Ray(80, 90, 160, 120))
		p, on := v.LightPos()
		require.True(t, on, variant)
		assert.Equal(t, 0.5, p.Y)

		first := sc.Graph().Nodes()[0].ID
		sc.HoverStart(first)
		sc.Click(first)
		sc.Tick(16 * time.Millisecond)
		v.Render(cv)

		buf := host.Display().Framebuffer().Buffer()
		clear := hal.RGB565(2, 6, 23)
		painted := 0
		for i := 0; i+1 < len(buf); i += 2 {
			if uint16(buf[i])|uint16(buf[i+1])<<8 != clear {
				painted++
			}
		}
		assert.Greater(t, painted, 200, variant)

		v.HideLight()
		_, on = v.LightPos()
		assert.False(t, on)
	}
}

func TestCursorLightColour(t *testing.T) {
	assert.Equal(t, render3d.RGB(0x06, 0xb6, 0xd4), DefaultCursorLight().Color)
	assert.Panics(t, func() { mustHex("#zzzzzz") })
}

func TestViewConfig(t *testing.T) {
	sc := builtinScene(t, VariantConstellation)
	assert.Len(t, NewView(sc, DefaultViewConfig(), nil).stars, 5000)

	cfg := DefaultViewConfig()
	cfg.Stars = 0
	cfg.Wireframe = true
	v := NewView(sc, cfg, nil)
	assert.Empty(t, v.stars)
	assert.Equal(t, render3d.RenderWireframe, v.r.Mode)
	assert.Equal(t, DefaultCursorLight(), v.light)

	host := hal.NewHost(hal.HostConfig{Width: 160, Height: 120, Log: io.Discard})
	cv, err := canvas.New(host.Display().Framebuffer())
	require.NoError(t, err)
	v.Render(cv)
	buf := host.Display().Framebuffer().Buffer()
	clear := hal.RGB565(2, 6, 23)
	painted := 0
	for i := 0; i+1 < len(buf); i += 2 {
		if uint16(buf[i])|uint16(buf[i+1])<<8 != clear {
			painted++
		}
	}
	assert.Greater(t, painted, 50, "wireframe edges")
}
