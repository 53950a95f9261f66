package hal

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

type hostHAL struct {
	log zerolog.Logger
	fb  *hostFramebuffer
	kbd *hostKeyboard
	ptr *hostPointer
	t   *hostTime
	aud Audio
}

// newHost returns a host HAL with a width x height framebuffer.
func newHost(cfg Config, width, height int) *hostHAL {
	var aud Audio = silentAudio{}
	if cfg.Audio {
		aud = newHostAudio(cfg.Log)
	}
	return &hostHAL{
		log: cfg.Log,
		fb:  newHostFramebuffer(width, height),
		kbd: newHostKeyboard(),
		ptr: newHostPointer(),
		t:   newHostTime(),
		aud: aud,
	}
}

// frame publishes the current tick and runs one step. done reports that the
// runner should stop; err is nil when the step asked to quit.
func (h *hostHAL) frame(step func() error) (done bool, err error) {
	h.t.advance()
	if step == nil {
		return false, nil
	}
	if err := step(); err != nil {
		if errors.Is(err, ErrQuit) {
			h.log.Info().Msg("quit requested")
			return true, nil
		}
		return true, err
	}
	return false, nil
}

func (h *hostHAL) Logger() zerolog.Logger { return h.log }
func (h *hostHAL) Display() Display       { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input           { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time             { return h.t }
func (h *hostHAL) Audio() Audio           { return h.aud }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type silentAudio struct{}

func (silentAudio) Tone(float64, time.Duration) {}
