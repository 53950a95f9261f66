// Package hal is the boundary between the scene and the host: a framebuffer,
// input event streams, a 1 ms tick stream, audio and a logger.
//
// Runners (window, terminal, headless) build a HAL, hand it to an app
// constructor and call the returned step function once per frame.
package hal

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ErrQuit is returned by a step function to end a runner without error.
var ErrQuit = errors.New("quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb, little-endian.
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

// KeyCode identifies non-text keys.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyF1
)

func (k KeyCode) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyF1:
		return "f1"
	default:
		return "unknown"
	}
}

// KeyEvent is a keyboard event. Text keys carry Rune and KeyUnknown.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// PointerKind tells drag motion from wheel steps.
type PointerKind uint8

const (
	PointerDrag PointerKind = iota + 1
	PointerWheel
)

// PointerEvent is a mouse drag delta in framebuffer pixels or a wheel step.
type PointerEvent struct {
	Kind   PointerKind
	DX, DY int
	Wheel  float64
}

// Pointer provides mouse events.
type Pointer interface {
	Events() <-chan PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices.
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time provides a monotonically increasing 1 ms tick stream.
type Time interface {
	Ticks() <-chan uint64
}

// Audio plays short notification tones. Implementations never block.
type Audio interface {
	Tone(freqHz float64, d time.Duration)
}

// HAL provides the only contact point between the scene and the outside world.
type HAL interface {
	Logger() zerolog.Logger
	Display() Display
	Input() Input
	Time() Time
	Audio() Audio
}

// Config sizes and paces a runner.
type Config struct {
	Width, Height int
	Scale         int
	Title         string
	Hz            int
	Ticks         uint64 // headless: stop after this many steps; 0 runs until cancelled
	Audio         bool
	Log           zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 650
	}
	if c.Height <= 0 {
		c.Height = 500
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Hz <= 0 {
		c.Hz = 60
	}
	if c.Title == "" {
		c.Title = "Submarine"
	}
	return c
}
