// Package cursor implements pointer feedback layers drawn above the stage:
// a particle trail (the default) and a spring-follower dot and ring.
package cursor

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"
)

var ErrUnknownVariant = errors.New("cursor: unknown variant")

// Variant names accepted by New.
const (
	VariantParticles = "particles"
	VariantFollower  = "follower"
)

// Surface is what a layer draws on. hal.Overlay satisfies it.
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, c color.NRGBA)
	StrokeCircle(x, y, r, width float64, c color.NRGBA)
}

// Layer is a pointer feedback layer. Input methods record state; Tick
// advances it by one display frame; Draw paints the current state.
type Layer interface {
	PointerMove(x, y float64)
	PointerLeave()
	EnterInteractive()
	LeaveInteractive()
	Press()
	Release()
	// SetPointerFine gates the layer: a coarse pointer disables it entirely.
	SetPointerFine(fine bool)
	Tick(dt time.Duration)
	Draw(s Surface)
	Stats() Stats
}

// Stats is a snapshot for logging and metrics.
type Stats struct {
	Live    int
	Steady  uint64
	Burst   uint64
	Enabled bool
}

// New builds the named layer.
func New(variant string, cfg Config, rnd *rand.Rand) (Layer, error) {
	switch variant {
	case "", VariantParticles:
		return NewParticleEngine(cfg, rnd), nil
	case VariantFollower:
		fc := DefaultFollowerConfig()
		if cfg.Follower.Dot.Stiffness > 0 {
			fc.Dot = cfg.Follower.Dot
		}
		if cfg.Follower.Ring.Stiffness > 0 {
			fc.Ring = cfg.Follower.Ring
		}
		return NewSpringFollower(fc, cfg.PointerFine), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}
