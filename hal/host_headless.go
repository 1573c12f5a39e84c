package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Width  int
	Height int
	Hz     int
	// Ticks stops the run after this many frames; zero runs until ctx is done.
	Ticks uint64
	// Fast skips the real-time ticker and steps back to back with a fixed delta.
	Fast bool
	// Script drives a synthetic pointer so the effects have something to follow.
	Script bool
	Fine   bool
	Log    io.Writer
	// OnFrame is called after every successful step.
	OnFrame func(h *Host, frame uint64)
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp NewAppFunc, cfg HeadlessConfig) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 240
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := NewHost(HostConfig{Width: cfg.Width, Height: cfg.Height, Fine: cfg.Fine, Log: cfg.Log})
	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close())
	}()

	var tickC <-chan time.Time
	if !cfg.Fast {
		t := time.NewTicker(d)
		defer t.Stop()
		tickC = t.C
	}

	var tick uint64
	for {
		if cfg.Fast {
			if err := ctx.Err(); err != nil {
				return err
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tickC:
			}
		}

		if cfg.Script {
			for _, ev := range ScriptedPointer(tick, cfg.Width, cfg.Height) {
				h.PushPointer(ev)
			}
		}
		h.Advance(d)
		if err := app.Step(); err != nil {
			return err
		}
		if cfg.OnFrame != nil {
			cfg.OnFrame(h, tick)
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return nil
		}
	}
}

const (
	scriptPressEvery = 90
	scriptPressHold  = 10
)

// ScriptedPointer returns the synthetic events for frame tick: a Lissajous
// sweep over the surface with a short press every few seconds.
func ScriptedPointer(tick uint64, width, height int) []PointerEvent {
	t := float64(tick) / 60
	x := float64(width) * (0.5 + 0.35*math.Sin(t*1.3))
	y := float64(height) * (0.5 + 0.35*math.Sin(t*1.7+math.Pi/4))
	evs := []PointerEvent{{Kind: PointerMove, X: x, Y: y}}
	switch tick % scriptPressEvery {
	case scriptPressEvery - scriptPressHold:
		evs = append(evs, PointerEvent{Kind: PointerDown, X: x, Y: y, Button: ButtonPrimary})
	case 0:
		if tick > 0 {
			evs = append(evs, PointerEvent{Kind: PointerUp, X: x, Y: y, Button: ButtonPrimary})
		}
	}
	return evs
}
