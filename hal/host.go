package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// HostConfig sizes a Host.
type HostConfig struct {
	Width  int
	Height int
	// Fine is the initial pointer precision.
	Fine bool
	// Log receives log lines; defaults to stdout.
	Log io.Writer
}

// Host is the reusable HAL implementation shared by the window, terminal and
// headless runners. Runners feed it pointer events and frame ticks.
type Host struct {
	logger  *hostLogger
	fb      *hostFramebuffer
	pointer *hostPointer
	clock   *hostClock
	overlay Overlay
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) *Host {
	w := cfg.Log
	if w == nil {
		w = os.Stdout
	}
	return &Host{
		logger:  &hostLogger{w: w},
		fb:      newHostFramebuffer(cfg.Width, cfg.Height),
		pointer: newHostPointer(cfg.Fine),
		clock:   &hostClock{},
	}
}

func (h *Host) Logger() Logger    { return h.logger }
func (h *Host) Display() Display  { return hostDisplay{fb: h.fb, overlay: h.overlay} }
func (h *Host) Input() Input      { return hostInput{p: h.pointer} }
func (h *Host) Clock() FrameClock { return h.clock }

// SetOverlay installs the host's vector layer. Call before building the app.
func (h *Host) SetOverlay(o Overlay) { h.overlay = o }

// Resize reallocates the framebuffer, e.g. on a terminal resize.
func (h *Host) Resize(width, height int) { h.fb.resize(width, height) }

// SnapshotRGB565 copies the framebuffer into dst.
func (h *Host) SnapshotRGB565(dst []byte) int { return h.fb.snapshotRGB565(dst) }

// Size returns the framebuffer dimensions.
func (h *Host) Size() (w, hgt int) { return h.fb.Width(), h.fb.Height() }

// PushPointer queues a pointer event. Events are dropped when the app falls behind.
func (h *Host) PushPointer(ev PointerEvent) bool { return h.pointer.push(ev) }

// SetPointerFine records a precision change and notifies the app.
func (h *Host) SetPointerFine(fine bool) { h.pointer.setFine(fine) }

// Advance starts a new frame that lasted d.
func (h *Host) Advance(d time.Duration) { h.clock.advance(d) }

type hostDisplay struct {
	fb      *hostFramebuffer
	overlay Overlay
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }
func (d hostDisplay) Overlay() Overlay         { return d.overlay }

type hostInput struct {
	p *hostPointer
}

func (in hostInput) Pointer() Pointer { return in.p }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostPointer struct {
	mu   sync.Mutex
	ch   chan PointerEvent
	fine bool
}

func newHostPointer(fine bool) *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 256), fine: fine}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) Fine() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fine
}

func (p *hostPointer) push(ev PointerEvent) bool {
	select {
	case p.ch <- ev:
		return true
	default:
		return false
	}
}

func (p *hostPointer) setFine(fine bool) {
	p.mu.Lock()
	changed := p.fine != fine
	p.fine = fine
	p.mu.Unlock()
	if changed {
		p.push(PointerEvent{Kind: PointerCapability, Fine: fine})
	}
}
