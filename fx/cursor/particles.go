package cursor

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"
)

// lifeEpsilon absorbs float error in 1 - age*DecayStep.
const lifeEpsilon = 1e-9

// Particle is one trail particle. Life runs from 1 down to 0.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Color   color.NRGBA
	Life    float64
	MaxLife float64

	age int
}

// Pointer is the latest pointer snapshot.
type Pointer struct {
	X, Y   float64
	Active bool
}

// ParticleEngine emits particles at the pointer and lets them fade.
//
// Decay is coupled to the frame count: every Tick removes DecayStep of life
// regardless of dt, so particles live 1/DecayStep frames.
type ParticleEngine struct {
	cfg       Config
	rnd       *rand.Rand
	particles []Particle
	pointer   Pointer
	hover     bool
	fine      bool

	steady uint64
	burst  uint64
}

func NewParticleEngine(cfg Config, rnd *rand.Rand) *ParticleEngine {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &ParticleEngine{
		cfg:     cfg,
		rnd:     rnd,
		pointer: Pointer{X: -100, Y: -100},
		fine:    cfg.PointerFine,
	}
}

func (e *ParticleEngine) PointerMove(x, y float64) {
	e.pointer = Pointer{X: x, Y: y, Active: true}
}

func (e *ParticleEngine) PointerLeave()     { e.pointer.Active = false }
func (e *ParticleEngine) EnterInteractive() { e.hover = true }
func (e *ParticleEngine) LeaveInteractive() { e.hover = false }
func (e *ParticleEngine) Release()          {}

// Press adds a burst at the pointer immediately.
func (e *ParticleEngine) Press() {
	if !e.fine {
		return
	}
	for i := 0; i < e.cfg.BurstSize; i++ {
		e.emit(e.pointer.X, e.pointer.Y, true)
	}
	e.burst += uint64(e.cfg.BurstSize)
}

func (e *ParticleEngine) SetPointerFine(fine bool) {
	e.fine = fine
	if !fine {
		e.particles = e.particles[:0]
		e.pointer.Active = false
	}
}

// Hovering reports whether the engine is in hover mode.
func (e *ParticleEngine) Hovering() bool { return e.hover }

func (e *ParticleEngine) Pointer() Pointer { return e.pointer }

// Particles returns the live particles. The slice is reused by Tick.
func (e *ParticleEngine) Particles() []Particle { return e.particles }

func (e *ParticleEngine) Len() int { return len(e.particles) }

func (e *ParticleEngine) Stats() Stats {
	return Stats{Live: len(e.particles), Steady: e.steady, Burst: e.burst, Enabled: e.fine}
}

// Tick emits this frame's particles, advances every particle one step and
// drops the dead ones. dt is ignored.
func (e *ParticleEngine) Tick(time.Duration) {
	if !e.fine {
		return
	}
	if e.pointer.Active {
		n := e.cfg.SteadyEmission
		if e.hover {
			n = e.cfg.HoverEmission
		}
		for i := 0; i < n; i++ {
			e.emit(
				e.pointer.X+(e.rnd.Float64()-0.5)*2*e.cfg.Jitter,
				e.pointer.Y+(e.rnd.Float64()-0.5)*2*e.cfg.Jitter,
				false,
			)
		}
		e.steady += uint64(n)
	}

	attract := e.hover && e.pointer.Active
	r2 := e.cfg.AttractRadius * e.cfg.AttractRadius
	live := e.particles[:0]
	for _, p := range e.particles {
		p.age++
		p.Life = 1 - float64(p.age)*e.cfg.DecayStep
		p.X += p.VX
		p.Y += p.VY
		p.VX *= e.cfg.Drag
		p.VY *= e.cfg.Drag
		if attract {
			dx, dy := e.pointer.X-p.X, e.pointer.Y-p.Y
			if dx*dx+dy*dy < r2 {
				p.VX += dx * e.cfg.AttractCoeff
				p.VY += dy * e.cfg.AttractCoeff
			}
		}
		if p.Life <= lifeEpsilon {
			continue
		}
		live = append(live, p)
	}
	clear(e.particles[len(live):])
	e.particles = live
}

// Draw clears s and paints each particle with alpha equal to its life.
func (e *ParticleEngine) Draw(s Surface) {
	s.Clear()
	if !e.fine {
		return
	}
	for _, p := range e.particles {
		s.FillCircle(p.X, p.Y, p.Size, withAlpha(p.Color, p.Life))
	}
}

func (e *ParticleEngine) emit(x, y float64, burst bool) {
	palette := normalPalette
	if e.hover {
		palette = hoverPalette
	}
	speed, kick := 1.0, 0.0
	if burst {
		speed, kick = 4, 2
	}
	angle := e.rnd.Float64() * 2 * math.Pi
	e.particles = append(e.particles, Particle{
		X:       x,
		Y:       y,
		VX:      (e.rnd.Float64()-0.5)*speed + math.Cos(angle)*kick,
		VY:      (e.rnd.Float64()-0.5)*speed + math.Sin(angle)*kick,
		Size:    e.rnd.Float64()*3 + 1,
		Color:   palette[e.rnd.IntN(len(palette))],
		Life:    1,
		MaxLife: e.rnd.Float64()*0.5 + 0.5,
	})
}
