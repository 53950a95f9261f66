// Package app wires the HAL, the event loop and the submarine scene into a
// single step function for the host runners.
package app

import (
	"runtime/debug"

	"subscene/hal"
	"subscene/kernel"
	"subscene/tasks/submarine"
)

type Config struct {
	Scene submarine.Config
}

// New builds the scene on h and returns the per-frame step. Each step feeds
// elapsed ticks to the loop, then lets the scene handle input and redraw.
//
// A panic inside a step is logged and painted as a panic screen; later steps
// only watch for q or Esc to quit.
func New(h hal.HAL, cfg Config) func() error {
	log := h.Logger()
	loop := kernel.New(log)
	task, err := submarine.New(h, loop, cfg.Scene)
	if err != nil {
		log.Error().Err(err).Msg("scene setup failed")
		return func() error { return err }
	}

	var ticks <-chan uint64
	if ht := h.Time(); ht != nil {
		ticks = ht.Ticks()
	}

	panicked := false
	return func() (err error) {
		if panicked {
			return waitQuit(h)
		}
		defer func() {
			if v := recover(); v != nil {
				panicked = true
				showPanic(h, v, debug.Stack())
				err = nil
			}
		}()
		loop.Drain(ticks)
		return task.Step()
	}
}

func waitQuit(h hal.HAL) error {
	kbd := h.Input().Keyboard()
	if kbd == nil {
		return nil
	}
	for {
		select {
		case ev := <-kbd.Events():
			if ev.Press && (ev.Code == hal.KeyEscape || ev.Rune == 'q') {
				return hal.ErrQuit
			}
		default:
			return nil
		}
	}
}
