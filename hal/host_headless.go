package hal

import (
	"context"
	"fmt"
	"time"
)

// RunHeadless runs the app without any display. Each ticker period advances
// time and calls step once; cfg.Ticks bounds the number of steps.
func RunHeadless(ctx context.Context, cfg Config, newApp func(HAL) func() error) error {
	cfg = cfg.withDefaults()
	h := newHost(cfg, cfg.Width, cfg.Height)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	h.log.Info().Int("hz", cfg.Hz).Uint64("ticks", cfg.Ticks).Msg("headless runner started")

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if done, err := h.frame(step); done {
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
