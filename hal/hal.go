package hal

import (
	"errors"
	"image/color"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Overlay is a vector layer composited by the host above the framebuffer.
// Colors are non-premultiplied; A is the opacity.
type Overlay interface {
	Clear()
	FillCircle(x, y, r float64, c color.NRGBA)
	StrokeCircle(x, y, r, width float64, c color.NRGBA)
}

// Display provides access to the framebuffer and, if the host has one, an overlay.
type Display interface {
	Framebuffer() Framebuffer
	// Overlay returns nil when the host composites everything through the framebuffer.
	Overlay() Overlay
}

// PointerKind identifies a pointer event.
type PointerKind uint8

const (
	PointerMove PointerKind = iota + 1
	PointerDown
	PointerUp
	PointerWheel
	// PointerLeave reports the pointer left the drawable surface.
	PointerLeave
	// PointerCapability reports a change of pointer precision (see PointerEvent.Fine).
	PointerCapability
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "move"
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerWheel:
		return "wheel"
	case PointerLeave:
		return "leave"
	case PointerCapability:
		return "capability"
	default:
		return "unknown"
	}
}

// PointerButton is a pointer button.
type PointerButton uint8

const (
	ButtonPrimary PointerButton = iota
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is a pointer event in framebuffer pixel coordinates.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   float64
	Button PointerButton
	// WheelY is positive when scrolling away from the user.
	WheelY float64
	// Fine is meaningful for PointerCapability.
	Fine bool
}

// Pointer provides pointer events (best-effort on each platform).
type Pointer interface {
	Events() <-chan PointerEvent
	// Fine reports whether the pointing device is precise (mouse, pen).
	Fine() bool
}

// Input provides access to input devices (if available).
type Input interface {
	Pointer() Pointer
}

// Frame describes the current display frame.
type Frame struct {
	Seq   uint64
	Delta time.Duration
}

// FrameClock is advanced by the host once per display frame.
type FrameClock interface {
	Frame() Frame
}

// HAL provides the only contact point between the visualization and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Clock() FrameClock
}

// App is what hosts drive: Step once per frame, Close exactly once on exit.
type App interface {
	Step() error
	Close() error
}

// NewAppFunc builds an App bound to a HAL.
type NewAppFunc func(HAL) (App, error)
