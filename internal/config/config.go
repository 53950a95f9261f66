// Package config loads runtime settings from defaults, an optional config
// file and SUBSCENE_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SUBSCENE_TICK_HZ.
const EnvPrefix = "SUBSCENE"

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type Window struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	Scale  int    `mapstructure:"scale"`
}

type Tick struct {
	Hz int `mapstructure:"hz"`
}

type Motion struct {
	TickInterval  time.Duration `mapstructure:"tickInterval"`
	SpeedStep     float64       `mapstructure:"speedStep"`
	MaxSpeed      float64       `mapstructure:"maxSpeed"`
	TurnStep      float64       `mapstructure:"turnStep"`
	RiseStep      float64       `mapstructure:"riseStep"`
	SpinGain      float64       `mapstructure:"spinGain"`
	SpinThreshold float64       `mapstructure:"spinThreshold"`
}

type Ground struct {
	Subdivisions int     `mapstructure:"subdivisions"`
	Size         float64 `mapstructure:"size"`
}

type Render struct {
	Wireframe bool `mapstructure:"wireframe"`
}

type Audio struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config is the decoded settings tree.
type Config struct {
	Log    Log    `mapstructure:"log"`
	Window Window `mapstructure:"window"`
	Tick   Tick   `mapstructure:"tick"`
	Motion Motion `mapstructure:"motion"`
	Ground Ground `mapstructure:"ground"`
	Render Render `mapstructure:"render"`
	Audio  Audio  `mapstructure:"audio"`
}

// New returns a viper instance carrying every default and environment
// binding, without reading any file.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("window.width", 650)
	v.SetDefault("window.height", 500)
	v.SetDefault("window.title", "Submarine")
	v.SetDefault("window.scale", 1)

	v.SetDefault("tick.hz", 60)

	v.SetDefault("motion.tickInterval", "100ms")
	v.SetDefault("motion.speedStep", 0.02)
	v.SetDefault("motion.maxSpeed", 0.2)
	v.SetDefault("motion.turnStep", 10.0)
	v.SetDefault("motion.riseStep", 0.1)
	v.SetDefault("motion.spinGain", 210.0)
	v.SetDefault("motion.spinThreshold", 0.01)

	v.SetDefault("ground.subdivisions", 16)
	v.SetDefault("ground.size", 16.0)

	v.SetDefault("render.wireframe", false)
	v.SetDefault("audio.enabled", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load builds the settings. An empty path uses defaults and environment only;
// otherwise the file must exist and parse.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Decode(v)
}

// Decode unmarshals v into a Config and rejects unusable values.
func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values no component can recover from.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d: must be positive", c.Window.Width, c.Window.Height)
	case c.Window.Scale <= 0:
		return fmt.Errorf("window scale %d: must be positive", c.Window.Scale)
	case c.Tick.Hz <= 0:
		return fmt.Errorf("tick.hz %d: must be positive", c.Tick.Hz)
	case c.Motion.TickInterval <= 0:
		return fmt.Errorf("motion.tickInterval %s: must be positive", c.Motion.TickInterval)
	case c.Motion.SpeedStep <= 0 || c.Motion.MaxSpeed <= 0:
		return fmt.Errorf("motion speed step %v max %v: must be positive", c.Motion.SpeedStep, c.Motion.MaxSpeed)
	case c.Ground.Size <= 0:
		return fmt.Errorf("ground.size %v: must be positive", c.Ground.Size)
	}
	return nil
}
