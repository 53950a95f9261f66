package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"subscene/app"
	"subscene/hal"
	"subscene/internal/buildinfo"
	"subscene/internal/config"
	"subscene/internal/logging"
	"subscene/motion"
	"subscene/tasks/submarine"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		headless   bool
		term       bool
		hz         int
		ticks      uint64
		logLevel   string
	)
	flag.StringVar(&configPath, "config", "", "Path to a config file (json, yaml or toml).")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.BoolVar(&term, "term", false, "Render into the terminal.")
	flag.IntVar(&hz, "hz", 0, "Frame rate (overrides tick.hz).")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&logLevel, "log-level", "", "Log level (overrides log.level).")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if hz > 0 {
		cfg.Tick.Hz = hz
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	// tcell owns the tty in terminal mode; only log.file receives output there.
	var fallback io.Writer = os.Stderr
	if term {
		fallback = io.Discard
	}
	log, closer, err := logging.Open(cfg.Log.File, fallback, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info().Dict("build", buildinfo.Dict()).Msg("starting")

	hcfg := hal.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Scale:  cfg.Window.Scale,
		Title:  cfg.Window.Title,
		Hz:     cfg.Tick.Hz,
		Ticks:  ticks,
		Audio:  cfg.Audio.Enabled,
		Log:    log,
	}
	acfg := app.Config{Scene: submarine.Config{
		Motion: motion.Config{
			TickInterval:  cfg.Motion.TickInterval,
			SpeedStep:     cfg.Motion.SpeedStep,
			MaxSpeed:      cfg.Motion.MaxSpeed,
			TurnStep:      cfg.Motion.TurnStep,
			RiseStep:      cfg.Motion.RiseStep,
			SpinGain:      cfg.Motion.SpinGain,
			SpinThreshold: cfg.Motion.SpinThreshold,
		},
		GroundSubdivisions: cfg.Ground.Subdivisions,
		GroundSize:         cfg.Ground.Size,
		Wireframe:          cfg.Render.Wireframe,
	}}
	newApp := func(h hal.HAL) func() error { return app.New(h, acfg) }

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case headless:
		err = hal.RunHeadless(ctx, hcfg, newApp)
	case term:
		err = hal.RunTerminal(ctx, hcfg, newApp)
	default:
		err = hal.RunWindow(hcfg, newApp)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		log.Error().Err(err).Msg("runner stopped")
		return err
	}
	log.Info().Msg("bye")
	return nil
}
