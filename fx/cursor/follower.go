package cursor

import (
	"image/color"
	"time"
)

// Spring is a damped spring per unit mass.
type Spring struct {
	Stiffness float64 `mapstructure:"stiffness" validate:"gt=0"`
	Damping   float64 `mapstructure:"damping" validate:"gte=0"`
}

type FollowerConfig struct {
	Dot  Spring
	Ring Spring

	DotRadius  float64
	RingRadius float64
	RingWidth  float64
	// HoverScale and PressScale multiply the ring radius.
	HoverScale float64
	PressScale float64

	DotColor  color.NRGBA
	RingColor color.NRGBA
	HoverTint color.NRGBA
}

func DefaultFollowerConfig() FollowerConfig {
	return FollowerConfig{
		Dot:        DefaultConfig().Follower.Dot,
		Ring:       DefaultConfig().Follower.Ring,
		DotRadius:  4,
		RingRadius: 16,
		RingWidth:  1.5,
		HoverScale: 1.5,
		PressScale: 0.8,
		DotColor:   hexColor("#22d3ee"),
		RingColor:  hexColor("#818cf8"),
		HoverTint:  hexColor("#f472b6"),
	}
}

// FollowerState are the flags the follower exposes to the renderer.
type FollowerState struct {
	Active  bool
	Hover   bool
	Pressed bool
}

type body struct {
	x, y   float64
	vx, vy float64
}

// springSubstep keeps the stiff dot spring stable at low frame rates.
const springSubstep = time.Second / 240

func (b *body) step(s Spring, tx, ty float64, dt time.Duration) {
	for dt > 0 {
		h := min(dt, springSubstep)
		dt -= h
		sec := h.Seconds()
		b.vx += (s.Stiffness*(tx-b.x) - s.Damping*b.vx) * sec
		b.vy += (s.Stiffness*(ty-b.y) - s.Damping*b.vy) * sec
		b.x += b.vx * sec
		b.y += b.vy * sec
	}
}

// SpringFollower draws a tight dot and a loose ring that chase the pointer.
type SpringFollower struct {
	cfg      FollowerConfig
	dot      body
	ring     body
	target   Pointer
	state    FollowerState
	fine     bool
	snapNext bool
}

func NewSpringFollower(cfg FollowerConfig, fine bool) *SpringFollower {
	f := &SpringFollower{cfg: cfg, fine: fine, snapNext: true}
	f.target = Pointer{X: -100, Y: -100}
	return f
}

func (f *SpringFollower) PointerMove(x, y float64) {
	f.target = Pointer{X: x, Y: y, Active: true}
	f.state.Active = true
	if f.snapNext {
		// First sighting: start on the pointer instead of flying in from the corner.
		f.dot = body{x: x, y: y}
		f.ring = body{x: x, y: y}
		f.snapNext = false
	}
}

func (f *SpringFollower) PointerLeave() {
	f.target.Active = false
	f.state.Active = false
	f.snapNext = true
}

func (f *SpringFollower) EnterInteractive() { f.state.Hover = true }
func (f *SpringFollower) LeaveInteractive() { f.state.Hover = false }
func (f *SpringFollower) Press()            { f.state.Pressed = true }
func (f *SpringFollower) Release()          { f.state.Pressed = false }

func (f *SpringFollower) SetPointerFine(fine bool) { f.fine = fine }

func (f *SpringFollower) State() FollowerState { return f.state }

// Positions returns the dot and ring centres.
func (f *SpringFollower) Positions() (dotX, dotY, ringX, ringY float64) {
	return f.dot.x, f.dot.y, f.ring.x, f.ring.y
}

func (f *SpringFollower) Stats() Stats { return Stats{Enabled: f.fine} }

func (f *SpringFollower) Tick(dt time.Duration) {
	if !f.fine || !f.target.Active {
		return
	}
	f.dot.step(f.cfg.Dot, f.target.X, f.target.Y, dt)
	f.ring.step(f.cfg.Ring, f.target.X, f.target.Y, dt)
}

func (f *SpringFollower) ringRadius() float64 {
	r := f.cfg.RingRadius
	if f.state.Hover {
		r *= f.cfg.HoverScale
	}
	if f.state.Pressed {
		r *= f.cfg.PressScale
	}
	return r
}

func (f *SpringFollower) Draw(s Surface) {
	s.Clear()
	if !f.fine || !f.state.Active {
		return
	}
	ring := f.cfg.RingColor
	if f.state.Hover {
		ring = f.cfg.HoverTint
	}
	s.StrokeCircle(f.ring.x, f.ring.y, f.ringRadius(), f.cfg.RingWidth, ring)
	if !f.state.Hover {
		s.FillCircle(f.dot.x, f.dot.y, f.cfg.DotRadius, f.cfg.DotColor)
	}
}
