package hal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRGB565RoundTripExtremes(t *testing.T) {
	if got := RGB565(255, 255, 255); got != 0xFFFF {
		t.Fatalf("white = %#x", got)
	}
	r, g, b := RGB888From565(0xFFFF)
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("expand white = %d,%d,%d", r, g, b)
	}
	r, g, b = RGB888From565(RGB565(255, 0, 0))
	if r != 255 || g != 0 || b != 0 {
		t.Fatalf("expand red = %d,%d,%d", r, g, b)
	}
}

func TestFramebufferClearAndResize(t *testing.T) {
	h := NewHost(HostConfig{Width: 4, Height: 3, Log: &bytes.Buffer{}})
	fb := h.Display().Framebuffer()
	if fb.StrideBytes() != 8 || len(fb.Buffer()) != 24 {
		t.Fatalf("stride=%d len=%d", fb.StrideBytes(), len(fb.Buffer()))
	}
	fb.ClearRGB(255, 0, 0)
	if p := PixelAt(fb.Buffer(), fb.StrideBytes(), 3, 2); p != RGB565(255, 0, 0) {
		t.Fatalf("pixel = %#x", p)
	}

	h.Resize(10, 2)
	if w, hh := h.Size(); w != 10 || hh != 2 {
		t.Fatalf("size = %dx%d", w, hh)
	}
	dst := make([]byte, 100)
	if n := h.SnapshotRGB565(dst); n != 40 {
		t.Fatalf("snapshot copied %d", n)
	}
}

func TestClockAdvanceClampsDelta(t *testing.T) {
	h := NewHost(HostConfig{Width: 1, Height: 1, Log: &bytes.Buffer{}})
	h.Advance(16 * time.Millisecond)
	h.Advance(time.Hour)
	f := h.Clock().Frame()
	if f.Seq != 2 {
		t.Fatalf("seq = %d", f.Seq)
	}
	if f.Delta != maxFrameDelta {
		t.Fatalf("delta = %v", f.Delta)
	}
}

func TestPointerCapabilityEventOnlyOnChange(t *testing.T) {
	h := NewHost(HostConfig{Width: 1, Height: 1, Fine: true, Log: &bytes.Buffer{}})
	p := h.Input().Pointer()
	h.SetPointerFine(true)
	if len(p.Events()) != 0 {
		t.Fatal("unexpected event for unchanged capability")
	}
	h.SetPointerFine(false)
	ev := <-p.Events()
	if ev.Kind != PointerCapability || ev.Fine {
		t.Fatalf("event = %+v", ev)
	}
	if p.Fine() {
		t.Fatal("expected coarse pointer")
	}
}

func TestLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	h := NewHost(HostConfig{Width: 1, Height: 1, Log: &buf})
	h.Logger().WriteLineString("a")
	h.Logger().WriteLineBytes([]byte("b"))
	if buf.String() != "a\nb\n" {
		t.Fatalf("log = %q", buf.String())
	}
}

type countingApp struct {
	h      HAL
	steps  int
	closed int
	events int
	failAt int
}

func (a *countingApp) Step() error {
	a.steps++
	for {
		select {
		case <-a.h.Input().Pointer().Events():
			a.events++
			continue
		default:
		}
		break
	}
	if a.failAt > 0 && a.steps == a.failAt {
		return errors.New("boom")
	}
	return nil
}

func (a *countingApp) Close() error {
	a.closed++
	return nil
}

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	app := &countingApp{}
	err := RunHeadless(context.Background(), func(h HAL) (App, error) {
		app.h = h
		return app, nil
	}, HeadlessConfig{Width: 32, Height: 16, Ticks: 5, Fast: true, Script: true, Log: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if app.steps != 5 || app.closed != 1 {
		t.Fatalf("steps=%d closed=%d", app.steps, app.closed)
	}
	if app.events < 5 {
		t.Fatalf("scripted pointer produced %d events", app.events)
	}
}

func TestRunHeadlessClosesOnStepError(t *testing.T) {
	app := &countingApp{failAt: 2}
	err := RunHeadless(context.Background(), func(h HAL) (App, error) {
		app.h = h
		return app, nil
	}, HeadlessConfig{Ticks: 10, Fast: true, Log: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("err = %v", err)
	}
	if app.closed != 1 {
		t.Fatalf("closed = %d", app.closed)
	}
}

func TestRunHeadlessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app := &countingApp{}
	err := RunHeadless(ctx, func(h HAL) (App, error) {
		app.h = h
		return app, nil
	}, HeadlessConfig{Fast: true, Log: &bytes.Buffer{}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if app.closed != 1 {
		t.Fatalf("closed = %d", app.closed)
	}
}

func TestScriptedPointerPressCycle(t *testing.T) {
	down := ScriptedPointer(scriptPressEvery-scriptPressHold, 100, 100)
	if len(down) != 2 || down[1].Kind != PointerDown {
		t.Fatalf("expected press, got %+v", down)
	}
	up := ScriptedPointer(scriptPressEvery, 100, 100)
	if len(up) != 2 || up[1].Kind != PointerUp {
		t.Fatalf("expected release, got %+v", up)
	}
	first := ScriptedPointer(0, 100, 100)
	if len(first) != 1 {
		t.Fatalf("no release before the first press, got %+v", first)
	}
}

func TestWallLap(t *testing.T) {
	var w Wall
	if d := w.Lap(); d != 0 {
		t.Fatalf("first lap = %v, want 0", d)
	}
	time.Sleep(5 * time.Millisecond)
	if d := w.Lap(); d < 5*time.Millisecond {
		t.Fatalf("second lap = %v, want >= 5ms", d)
	}
}
