// Package app binds a cursor layer and a stage onto a HAL and steps them
// once per display frame.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"lumen/fx/cursor"
	"lumen/fx/hero"
	"lumen/fx/scene"
	"lumen/gfx/canvas"
	"lumen/hal"
	"lumen/internal/config"
	"lumen/internal/logging"
	"lumen/internal/metrics"
)

var (
	ErrNoFramebuffer = errors.New("app: no framebuffer")
	ErrClosed        = errors.New("app: closed")
)

// Options carries the collaborators New would otherwise build itself.
type Options struct {
	// Logger defaults to a text logger over the HAL's line sink.
	Logger  *slog.Logger
	Metrics *metrics.Registry
	// Rand seeds particle scatter and the backdrops.
	Rand *rand.Rand
	// HostName is logged with the session start.
	HostName string
}

// App is one visualization session.
type App struct {
	h       hal.HAL
	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Registry

	canvas  *canvas.Canvas
	overlay hal.Overlay
	events  <-chan hal.PointerEvent

	cursor cursor.Layer
	stage  stage
	skills *skillsStage

	ptr    pointerState
	closed bool
	frames uint64
}

// NewFunc adapts New to the host runners.
func NewFunc(cfg config.Config, opts Options) hal.NewAppFunc {
	return func(h hal.HAL) (hal.App, error) {
		return New(h, cfg, opts)
	}
}

// New builds the session. It fails with ErrNoFramebuffer when the host has
// nothing to draw on.
func New(h hal.HAL, cfg config.Config, opts Options) (*App, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	disp := h.Display()
	if disp == nil {
		return nil, ErrNoFramebuffer
	}
	cv, err := canvas.New(disp.Framebuffer())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFramebuffer, err)
	}

	a := &App{h: h, cfg: cfg, canvas: cv, log: opts.Logger, metrics: opts.Metrics}
	if a.log == nil {
		lvl, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		a.log, _ = logging.Session(logging.New(h.Logger(), lvl))
	}
	if a.metrics == nil {
		a.metrics = metrics.NewRegistry()
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6c756d656e))
	}

	fine := cfg.Cursor.PointerFine
	if in := h.Input(); in != nil {
		if p := in.Pointer(); p != nil {
			a.events = p.Events()
			fine = fine && p.Fine()
		}
	}
	ccfg := cfg.Cursor.Config
	ccfg.PointerFine = fine
	if a.cursor, err = cursor.New(cfg.Cursor.Variant, ccfg, rnd); err != nil {
		return nil, err
	}

	a.overlay = disp.Overlay()
	if a.overlay == nil {
		a.overlay = cv.Overlay()
	}

	switch cfg.Scene.Stage {
	case config.StageHero:
		a.stage = heroStage{hero.New(rnd)}
	default:
		def, variant, err := scene.Load(cfg.Scene.File, cfg.Scene.Variant)
		if err != nil {
			return nil, fmt.Errorf("load scene: %w", err)
		}
		sc, err := scene.New(variant, def, scene.DefaultConfig())
		if err != nil {
			return nil, err
		}
		vc := scene.DefaultViewConfig()
		vc.Stars = cfg.Scene.Stars
		vc.Wireframe = cfg.Scene.Wireframe
		a.skills = &skillsStage{sc: sc, view: scene.NewView(sc, vc, rnd)}
		a.stage = a.skills
		a.log.Info("scene loaded", "variant", variant, "nodes", sc.Graph().Len(), "edges", len(sc.Graph().Edges()))
	}

	w, hgt := cv.Size()
	a.log.Info("session start",
		"host", opts.HostName,
		"stage", cfg.Scene.Stage,
		"cursor", cfg.Cursor.Variant,
		"width", w,
		"height", hgt,
		"pointer_fine", fine,
	)
	return a, nil
}

// Step advances one frame: input, hover, simulation, render, present.
func (a *App) Step() (err error) {
	if a.closed {
		return ErrClosed
	}
	defer func() {
		if r := recover(); r != nil {
			err = a.panicked(r)
		}
	}()

	start := time.Now()
	frame := a.h.Clock().Frame()

	a.canvas.Sync()
	a.drainPointer()
	a.updateHover()

	a.cursor.Tick(frame.Delta)
	a.stage.Tick(frame.Delta)

	a.stage.Render(a.canvas)
	a.cursor.Draw(a.overlay)
	if err := a.canvas.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	a.frames++
	a.record(time.Since(start))
	return nil
}

func (a *App) record(d time.Duration) {
	a.metrics.RecordFrame(d)
	st := a.cursor.Stats()
	a.metrics.RecordCursor(st.Live, st.Steady, st.Burst)
	if a.skills != nil {
		ss := a.skills.sc.Stats()
		a.metrics.RecordScene(a.skills.sc.Variant(), ss.HoverChanges, ss.SelectionChanges)
	}
}

// Close logs the session totals. Calls after the first return ErrClosed.
func (a *App) Close() error {
	if a.closed {
		return ErrClosed
	}
	a.closed = true

	st := a.cursor.Stats()
	attrs := []any{
		"frames", a.frames,
		"particles_live", st.Live,
		"emitted_steady", st.Steady,
		"emitted_burst", st.Burst,
	}
	if a.skills != nil {
		ss := a.skills.sc.Stats()
		attrs = append(attrs, "hover_changes", ss.HoverChanges, "selection_changes", ss.SelectionChanges)
	}
	a.log.Info("session close", attrs...)

	if a.cfg.Metrics.Dump {
		if err := a.metrics.WriteText(logging.Writer(a.h.Logger())); err != nil {
			return fmt.Errorf("dump metrics: %w", err)
		}
	}
	return nil
}

// Cursor exposes the pointer layer, e.g. for tests and diagnostics.
func (a *App) Cursor() cursor.Layer { return a.cursor }

// Scene returns the node scene, or nil on the hero stage.
func (a *App) Scene() scene.Scene {
	if a.skills == nil {
		return nil
	}
	return a.skills.sc
}

// Metrics returns the session registry.
func (a *App) Metrics() *metrics.Registry { return a.metrics }
