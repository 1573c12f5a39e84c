package cursor

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFollowerStateFlags(t *testing.T) {
	f := NewSpringFollower(DefaultFollowerConfig(), true)
	assert.Equal(t, FollowerState{}, f.State())

	f.PointerMove(10, 10)
	f.EnterInteractive()
	f.Press()
	assert.Equal(t, FollowerState{Active: true, Hover: true, Pressed: true}, f.State())

	f.Release()
	f.LeaveInteractive()
	f.PointerLeave()
	assert.Equal(t, FollowerState{}, f.State())
}

func TestFollowerSpringsConverge(t *testing.T) {
	f := NewSpringFollower(DefaultFollowerConfig(), true)
	f.PointerMove(0, 0)
	f.PointerMove(200, 100)

	f.Tick(16 * time.Millisecond)
	dx, _, rx, _ := f.Positions()
	assert.Greater(t, dx, rx, "dot is stiffer than the ring")

	for i := 0; i < 300; i++ {
		f.Tick(16 * time.Millisecond)
	}
	dx, dy, rx, ry := f.Positions()
	assert.Less(t, math.Hypot(dx-200, dy-100), 0.5)
	assert.Less(t, math.Hypot(rx-200, ry-100), 0.5)
}

func TestFollowerDrawsRingAndDot(t *testing.T) {
	f := NewSpringFollower(DefaultFollowerConfig(), true)
	var s recordSurface
	f.Draw(&s)
	assert.Zero(t, s.strokes, "nothing before the pointer shows up")

	f.PointerMove(5, 5)
	f.Draw(&s)
	assert.Equal(t, 1, s.strokes)
	assert.Len(t, s.fills, 1)

	f.EnterInteractive()
	f.Draw(&s)
	assert.Empty(t, s.fills, "hover hides the dot")

	f.SetPointerFine(false)
	f.Draw(&s)
	assert.Zero(t, s.strokes)
}

func TestPaletteParsesHex(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff}, normalPalette[0])
	assert.Equal(t, color.NRGBA{R: 0xf4, G: 0x72, B: 0xb6, A: 0xff}, hoverPalette[0])
	assert.Panics(t, func() { hexColor("#38bdzz") })
}

func TestNewFollowerUsesConfiguredSprings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Follower.Ring = Spring{Stiffness: 90, Damping: 12}
	l, err := New(VariantFollower, cfg, nil)
	assert.NoError(t, err)
	f := l.(*SpringFollower)
	assert.Equal(t, Spring{Stiffness: 90, Damping: 12}, f.cfg.Ring)
	assert.Equal(t, DefaultFollowerConfig().Dot, f.cfg.Dot)

	cfg.Follower = FollowerSprings{}
	l, err = New(VariantFollower, cfg, nil)
	assert.NoError(t, err)
	assert.Equal(t, DefaultFollowerConfig().Ring, l.(*SpringFollower).cfg.Ring, "unset springs keep the defaults")
}
