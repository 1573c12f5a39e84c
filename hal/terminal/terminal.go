// Package terminal hosts the app in a terminal, two framebuffer rows per cell.
package terminal

import (
	"context"
	"errors"
	"io"
	"time"

	"lumen/hal"

	"github.com/gdamore/tcell/v2"
)

// halfBlock paints the top pixel as foreground and the bottom pixel as background.
const halfBlock = '▀'

// Config controls the terminal host.
type Config struct {
	Hz int
	// Ticks stops the run after this many frames; zero runs until quit.
	Ticks uint64
	// Screen overrides the terminal screen, e.g. with a simulation screen.
	Screen tcell.Screen
	// Log receives log lines. The screen owns stdout, so it defaults to io.Discard.
	Log io.Writer
}

// Run draws the framebuffer into the terminal until ctx is done, the user
// quits (Esc, Ctrl-C, q) or the app fails.
func Run(ctx context.Context, newApp hal.NewAppFunc, cfg Config) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 30
	}
	if cfg.Log == nil {
		cfg.Log = io.Discard
	}
	screen := cfg.Screen
	if screen == nil {
		if screen, err = tcell.NewScreen(); err != nil {
			return err
		}
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	cols, rows := screen.Size()
	h := hal.NewHost(hal.HostConfig{Width: cols, Height: rows * 2, Fine: screen.HasMouse(), Log: cfg.Log})

	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close())
	}()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	d := time.Second / time.Duration(cfg.Hz)
	ticker := time.NewTicker(d)
	defer ticker.Stop()

	var (
		mouse   mouseState
		scratch []byte
		tick    uint64
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				c, r := screen.Size()
				h.Resize(c, r*2)
			case *tcell.EventMouse:
				for _, pe := range mouse.translate(ev) {
					h.PushPointer(pe)
				}
			}
		case <-ticker.C:
			h.Advance(d)
			if err := app.Step(); err != nil {
				return err
			}
			scratch = blit(screen, h, scratch)
			screen.Show()
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func blit(screen tcell.Screen, h *hal.Host, scratch []byte) []byte {
	w, hgt := h.Size()
	if cap(scratch) < w*hgt*2 {
		scratch = make([]byte, w*hgt*2)
	}
	scratch = scratch[:w*hgt*2]
	h.SnapshotRGB565(scratch)

	stride := w * 2
	for cy := 0; cy*2 < hgt; cy++ {
		for x := 0; x < w; x++ {
			top := cellColor(hal.PixelAt(scratch, stride, x, cy*2))
			bottom := tcell.ColorBlack
			if cy*2+1 < hgt {
				bottom = cellColor(hal.PixelAt(scratch, stride, x, cy*2+1))
			}
			screen.SetContent(x, cy, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	return scratch
}

func cellColor(p uint16) tcell.Color {
	r, g, b := hal.RGB888From565(p)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// mouseState turns tcell's button masks into edge-triggered pointer events.
type mouseState struct {
	buttons tcell.ButtonMask
}

var buttonMap = [...]struct {
	mask tcell.ButtonMask
	btn  hal.PointerButton
}{
	{tcell.Button1, hal.ButtonPrimary},
	{tcell.Button2, hal.ButtonSecondary},
	{tcell.Button3, hal.ButtonMiddle},
}

func (m *mouseState) translate(ev *tcell.EventMouse) []hal.PointerEvent {
	cx, cy := ev.Position()
	// Cell centre in framebuffer pixels.
	x, y := float64(cx)+0.5, float64(cy)*2+1
	out := []hal.PointerEvent{{Kind: hal.PointerMove, X: x, Y: y}}

	mask := ev.Buttons()
	switch {
	case mask&tcell.WheelUp != 0:
		out = append(out, hal.PointerEvent{Kind: hal.PointerWheel, X: x, Y: y, WheelY: 1})
	case mask&tcell.WheelDown != 0:
		out = append(out, hal.PointerEvent{Kind: hal.PointerWheel, X: x, Y: y, WheelY: -1})
	}

	for _, b := range buttonMap {
		was, now := m.buttons&b.mask != 0, mask&b.mask != 0
		switch {
		case now && !was:
			out = append(out, hal.PointerEvent{Kind: hal.PointerDown, X: x, Y: y, Button: b.btn})
		case was && !now:
			out = append(out, hal.PointerEvent{Kind: hal.PointerUp, X: x, Y: y, Button: b.btn})
		}
	}
	m.buttons = mask & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	return out
}
