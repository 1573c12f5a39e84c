package app

import (
	"bytes"
	"context"
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"lumen/fx/cursor"
	"lumen/fx/scene"
	"lumen/gfx/canvas"
	"lumen/hal"
	"lumen/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testW = 160
	testH = 120
)

func newTestApp(t *testing.T, mutate func(*config.Config)) (*App, *hal.Host) {
	t.Helper()
	h := hal.NewHost(hal.HostConfig{Width: testW, Height: testH, Fine: true, Log: io.Discard})
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	a, err := New(h, cfg, Options{Rand: rand.New(rand.NewPCG(7, 9)), HostName: "test"})
	require.NoError(t, err)
	return a, h
}

func step(t *testing.T, a *App, h *hal.Host, evs ...hal.PointerEvent) {
	t.Helper()
	for _, ev := range evs {
		require.True(t, h.PushPointer(ev))
	}
	h.Advance(time.Second / 60)
	require.NoError(t, a.Step())
}

// nodeTarget returns a screen point inside some node's projection.
func nodeTarget(t *testing.T, a *App) (scene.NodeID, float64, float64) {
	t.Helper()
	var (
		first  scene.NodeID
		sx, sy float64
		n      int
	)
	for y := 0; y < testH; y += 2 {
		for x := 0; x < testW; x += 2 {
			id, ok := a.pick(float64(x), float64(y))
			if !ok || (first != "" && id != first) {
				continue
			}
			first = id
			sx += float64(x)
			sy += float64(y)
			n++
		}
	}
	require.NotZero(t, n, "no node under any pixel")
	return first, sx / float64(n), sy / float64(n)
}

func TestStepRendersAndEmits(t *testing.T) {
	a, h := newTestApp(t, nil)
	step(t, a, h, hal.PointerEvent{Kind: hal.PointerMove, X: 5, Y: 5})

	st := a.Cursor().Stats()
	assert.True(t, st.Enabled)
	assert.Equal(t, uint64(1), st.Steady)
	assert.Equal(t, 1, st.Live)

	fb := h.Display().Framebuffer()
	painted := 0
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			if hal.PixelAt(fb.Buffer(), fb.StrideBytes(), x, y) != 0 {
				painted++
			}
		}
	}
	assert.Greater(t, painted, testW*testH/2)
}

func TestHoverSwitchesCursorToInteractive(t *testing.T) {
	a, h := newTestApp(t, nil)
	id, x, y := nodeTarget(t, a)

	step(t, a, h, hal.PointerEvent{Kind: hal.PointerMove, X: x, Y: y})

	got, ok := a.Scene().Hovered()
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, uint64(4), a.Cursor().Stats().Steady, "hover emission rate")

	step(t, a, h, hal.PointerEvent{Kind: hal.PointerLeave, X: -1, Y: -1})
	_, ok = a.Scene().Hovered()
	assert.False(t, ok)

	before := a.Cursor().Stats().Steady
	step(t, a, h)
	assert.Equal(t, before, a.Cursor().Stats().Steady, "no emission after leave")
}

func TestClickSelectsAndBursts(t *testing.T) {
	a, h := newTestApp(t, nil)
	id, x, y := nodeTarget(t, a)

	step(t, a, h,
		hal.PointerEvent{Kind: hal.PointerMove, X: x, Y: y},
		hal.PointerEvent{Kind: hal.PointerDown, X: x, Y: y, Button: hal.ButtonPrimary},
		hal.PointerEvent{Kind: hal.PointerUp, X: x, Y: y, Button: hal.ButtonPrimary},
	)

	sel, ok := a.Scene().Selected()
	require.True(t, ok)
	assert.Equal(t, id, sel)
	assert.Equal(t, uint64(20), a.Cursor().Stats().Burst)
}

func TestDragOrbitsWithoutClicking(t *testing.T) {
	a, h := newTestApp(t, nil)
	orbit := a.Scene().Orbit()
	az := orbit.Azimuth

	step(t, a, h,
		hal.PointerEvent{Kind: hal.PointerDown, X: 20, Y: 20, Button: hal.ButtonPrimary},
		hal.PointerEvent{Kind: hal.PointerMove, X: 40, Y: 20},
		hal.PointerEvent{Kind: hal.PointerMove, X: 80, Y: 20},
		hal.PointerEvent{Kind: hal.PointerUp, X: 80, Y: 20, Button: hal.ButtonPrimary},
	)

	assert.NotEqual(t, az, orbit.Azimuth)
	_, ok := a.Scene().Selected()
	assert.False(t, ok)
}

func TestWheelDollies(t *testing.T) {
	a, h := newTestApp(t, nil)
	r := a.Scene().Orbit().Radius
	step(t, a, h, hal.PointerEvent{Kind: hal.PointerWheel, X: 10, Y: 10, WheelY: 1})
	assert.Less(t, a.Scene().Orbit().Radius, r)
}

func TestCoarsePointerDisablesCursor(t *testing.T) {
	a, h := newTestApp(t, nil)
	step(t, a, h, hal.PointerEvent{Kind: hal.PointerMove, X: 5, Y: 5})
	h.SetPointerFine(false)
	step(t, a, h, hal.PointerEvent{Kind: hal.PointerMove, X: 6, Y: 6})

	st := a.Cursor().Stats()
	assert.False(t, st.Enabled)
	assert.Zero(t, st.Live)
}

func TestHeroStage(t *testing.T) {
	a, h := newTestApp(t, func(c *config.Config) {
		c.Scene.Stage = config.StageHero
		c.Cursor.Variant = "follower"
	})
	assert.Nil(t, a.Scene())
	step(t, a, h,
		hal.PointerEvent{Kind: hal.PointerMove, X: 30, Y: 30},
		hal.PointerEvent{Kind: hal.PointerWheel, X: 30, Y: 30, WheelY: 1},
	)
	require.NoError(t, a.Close())
}

func TestCloseOnce(t *testing.T) {
	a, h := newTestApp(t, nil)
	step(t, a, h)
	require.NoError(t, a.Close())
	assert.ErrorIs(t, a.Close(), ErrClosed)
	assert.ErrorIs(t, a.Step(), ErrClosed)
}

func TestCloseDumpsMetrics(t *testing.T) {
	var log bytes.Buffer
	h := hal.NewHost(hal.HostConfig{Width: testW, Height: testH, Fine: true, Log: &log})
	cfg := config.Default()
	cfg.Metrics.Dump = true
	a, err := New(h, cfg, Options{Rand: rand.New(rand.NewPCG(1, 1))})
	require.NoError(t, err)

	step(t, a, h)
	require.NoError(t, a.Close())

	out := log.String()
	assert.Contains(t, out, "session start")
	assert.Contains(t, out, "session close")
	assert.Contains(t, out, "lumen_frames_total 1")
}

type noDisplay struct {
	*hal.Host
}

func (noDisplay) Display() hal.Display { return nil }

func TestNewWithoutFramebuffer(t *testing.T) {
	h := hal.NewHost(hal.HostConfig{Width: testW, Height: testH, Log: io.Discard})
	_, err := New(noDisplay{h}, config.Default(), Options{})
	assert.ErrorIs(t, err, ErrNoFramebuffer)
}

func TestNewRejectsBadConfig(t *testing.T) {
	h := hal.NewHost(hal.HostConfig{Width: testW, Height: testH, Log: io.Discard})
	cfg := config.Default()
	cfg.Scene.Variant = "grid"
	_, err := New(h, cfg, Options{})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

type panicStage struct{}

func (panicStage) Tick(time.Duration)     { panic("boom") }
func (panicStage) Render(*canvas.Canvas) {}

func TestPanicPaintsScreen(t *testing.T) {
	a, h := newTestApp(t, nil)
	a.stage = panicStage{}

	h.Advance(time.Second / 60)
	err := a.Step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	fb := h.Display().Framebuffer()
	white := 0
	for y := 0; y < testH; y++ {
		for x := 0; x < testW; x++ {
			if hal.PixelAt(fb.Buffer(), fb.StrideBytes(), x, y) == 0xFFFF {
				white++
			}
		}
	}
	assert.Greater(t, white, testW*testH/2)
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo", 2)
	assert.Equal(t, "hé", p)
	assert.Equal(t, "llo", r)

	p, r = takeRunes("ab", 5)
	assert.Equal(t, "ab", p)
	assert.Empty(t, r)
}

func TestRunHeadlessScripted(t *testing.T) {
	cfg := config.Default()
	cfg.Cursor.Variant = "particles"
	var last uint64
	err := hal.RunHeadless(context.Background(), NewFunc(cfg, Options{Rand: rand.New(rand.NewPCG(3, 3))}), hal.HeadlessConfig{
		Width:  testW,
		Height: testH,
		Ticks:  100,
		Fast:   true,
		Script: true,
		Fine:   true,
		Log:    io.Discard,
		OnFrame: func(_ *hal.Host, frame uint64) {
			last = frame
		},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(99), last)
}

func TestLeaveWhilePressedReleases(t *testing.T) {
	a, h := newTestApp(t, func(c *config.Config) { c.Cursor.Variant = "follower" })

	step(t, a, h,
		hal.PointerEvent{Kind: hal.PointerMove, X: 20, Y: 20},
		hal.PointerEvent{Kind: hal.PointerDown, X: 20, Y: 20, Button: hal.ButtonPrimary},
		hal.PointerEvent{Kind: hal.PointerLeave, X: -1, Y: -1},
	)
	step(t, a, h, hal.PointerEvent{Kind: hal.PointerMove, X: 30, Y: 30})

	f, ok := a.Cursor().(*cursor.SpringFollower)
	require.True(t, ok)
	assert.False(t, f.State().Pressed)
	assert.True(t, f.State().Active)
}
