package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"lumen/gfx/canvas"
	"lumen/gfx/render3d"
)

var (
	panicBg = render3d.RGB(255, 255, 255)
	panicFg = render3d.RGB(0, 0, 0)
)

// panicked logs a recovered frame panic with its stack, paints the panic
// screen and returns the error that ends the run.
func (a *App) panicked(v any) error {
	stack := debug.Stack()
	a.log.Error("frame panic", "panic", fmt.Sprint(v), "frame", a.frames)
	if l := a.h.Logger(); l != nil {
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	paintPanic(a.canvas, v, stack)
	_ = a.canvas.Present()
	return fmt.Errorf("panic in frame %d: %v", a.frames, v)
}

// paintPanic fills c with the panic value and as much of the stack as fits.
func paintPanic(c *canvas.Canvas, v any, stack []byte) {
	c.Sync()
	c.Clear(panicBg)

	w, h := c.Size()
	fontWidth := canvas.TextWidth("0")
	if fontWidth <= 0 || w <= 0 || h <= 0 {
		return
	}
	cols := w / fontWidth
	if cols <= 0 {
		cols = 1
	}

	lines := []string{
		"lumen panic:",
		fmt.Sprintf("panic: %v", v),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.TrimSpace(line))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+canvas.LineHeight > h {
				return
			}
			chunk, rest := takeRunes(line, cols)
			c.DrawText(0, y, chunk, panicFg)
			y += canvas.LineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
