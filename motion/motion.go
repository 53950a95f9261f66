// Package motion integrates the submarine's position, heading and propeller
// spin on a fixed-period timer.
//
// The controller is a two-state machine. It is Stationary while no tick is
// armed and Moving while a tick is armed; a tick re-arms itself every
// TickInterval until it observes zero speed or Halt is called.
package motion

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"subscene/internal/metrics"
	"subscene/kernel"
)

// Scheduler is the part of the event loop the controller needs.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) *kernel.Timer
	PostRedisplay()
}

// Config holds the tunable constants of the integrator.
type Config struct {
	TickInterval  time.Duration
	SpeedStep     float64
	MaxSpeed      float64
	TurnStep      float64 // degrees
	RiseStep      float64
	SpinGain      float64 // degrees of propeller spin per unit of speed per tick
	SpinThreshold float64
}

// DefaultConfig returns the classic tuning: 100 ms ticks, 0.02 speed steps
// up to 0.2, 10 degree turns and 0.1 rises.
func DefaultConfig() Config {
	return Config{
		TickInterval:  100 * time.Millisecond,
		SpeedStep:     0.02,
		MaxSpeed:      0.2,
		TurnStep:      10,
		RiseStep:      0.1,
		SpinGain:      30 * 7,
		SpinThreshold: 0.01,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TickInterval <= 0 {
		c.TickInterval = d.TickInterval
	}
	if c.SpeedStep <= 0 {
		c.SpeedStep = d.SpeedStep
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = d.MaxSpeed
	}
	if c.TurnStep == 0 {
		c.TurnStep = d.TurnStep
	}
	if c.RiseStep == 0 {
		c.RiseStep = d.RiseStep
	}
	if c.SpinGain == 0 {
		c.SpinGain = d.SpinGain
	}
	if c.SpinThreshold <= 0 {
		c.SpinThreshold = d.SpinThreshold
	}
	return c
}

// State is a snapshot of the submarine's kinematic state.
type State struct {
	X, Y, Z float64
	Heading float64 // degrees in [0, 360)
	Spin    float64 // propeller angle, degrees in [0, 360)
	Speed   float64
}

// Mode is the controller's timer state.
type Mode uint8

const (
	Stationary Mode = iota
	Moving
)

func (m Mode) String() string {
	switch m {
	case Stationary:
		return "stationary"
	case Moving:
		return "moving"
	default:
		return "unknown"
	}
}

// Controller owns the motion state and its tick timer.
type Controller struct {
	cfg   Config
	sched Scheduler
	log   zerolog.Logger

	st    State
	speed float64
	timer *kernel.Timer

	onThrottle func(speed float64)

	ticks metric.Int64Counter
}

// New creates a stationary controller at the origin.
func New(cfg Config, sched Scheduler, log zerolog.Logger) *Controller {
	cfg = cfg.withDefaults()
	return &Controller{
		cfg:   cfg,
		sched: sched,
		log:   log.With().Str("component", "motion").Logger(),
		ticks: metrics.Counter(metrics.Meter("motion"), "motion.ticks", "Motion integration ticks"),
	}
}

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.st
	s.Speed = c.speed
	return s
}

// Speed returns the signed speed, always within [-MaxSpeed, MaxSpeed].
func (c *Controller) Speed() float64 { return c.speed }

// Mode reports whether a tick is armed.
func (c *Controller) Mode() Mode {
	if c.timer.Pending() {
		return Moving
	}
	return Stationary
}

// OnThrottle registers fn to run after every speed change.
func (c *Controller) OnThrottle(fn func(speed float64)) { c.onThrottle = fn }

// Forward raises speed by one step, up to MaxSpeed, and starts ticking. The
// position first changes one TickInterval later.
func (c *Controller) Forward() { c.setSpeed(c.speed + c.cfg.SpeedStep) }

// Backward lowers speed by one step, down to -MaxSpeed, and starts ticking.
func (c *Controller) Backward() { c.setSpeed(c.speed - c.cfg.SpeedStep) }

// zeroSpeed absorbs rounding left by adding and removing equal steps.
const zeroSpeed = 1e-9

func (c *Controller) setSpeed(v float64) {
	v = math.Max(-c.cfg.MaxSpeed, math.Min(c.cfg.MaxSpeed, v))
	if math.Abs(v) < zeroSpeed {
		v = 0
	}
	changed := v != c.speed
	c.speed = v
	c.arm()
	c.sched.PostRedisplay()
	if changed && c.onThrottle != nil {
		c.onThrottle(c.speed)
	}
}

// TurnLeft increases heading by TurnStep.
func (c *Controller) TurnLeft() { c.turn(c.cfg.TurnStep) }

// TurnRight decreases heading by TurnStep.
func (c *Controller) TurnRight() { c.turn(-c.cfg.TurnStep) }

func (c *Controller) turn(deg float64) {
	c.st.Heading = WrapDegrees(c.st.Heading + deg)
	c.sched.PostRedisplay()
}

// Rise moves the submarine up by RiseStep.
func (c *Controller) Rise() {
	c.st.Y += c.cfg.RiseStep
	c.sched.PostRedisplay()
}

// Dive moves the submarine down by RiseStep.
func (c *Controller) Dive() {
	c.st.Y -= c.cfg.RiseStep
	c.sched.PostRedisplay()
}

// Halt zeroes speed and cancels the pending tick.
func (c *Controller) Halt() {
	changed := c.speed != 0
	c.speed = 0
	if c.timer.Stop() {
		c.log.Debug().Msg("halted")
	}
	c.timer = nil
	c.sched.PostRedisplay()
	if changed && c.onThrottle != nil {
		c.onThrottle(0)
	}
}

// arm schedules the next tick unless one is already pending.
func (c *Controller) arm() {
	if c.timer.Pending() {
		return
	}
	c.timer = c.sched.AfterFunc(c.cfg.TickInterval, c.tick)
	c.log.Debug().Float64("speed", c.Speed()).Msg("moving")
}

func (c *Controller) tick() {
	c.timer = nil
	c.Step()
	c.ticks.Add(context.Background(), 1)
	if c.speed != 0 {
		c.timer = c.sched.AfterFunc(c.cfg.TickInterval, c.tick)
	} else {
		c.log.Debug().Msg("stationary")
	}
	c.sched.PostRedisplay()
}

// Step applies one tick of kinematics without touching the timer.
func (c *Controller) Step() {
	v := c.Speed()
	if math.Abs(v) >= c.cfg.SpinThreshold {
		c.st.Spin = WrapDegrees(c.st.Spin + v*c.cfg.SpinGain)
	}
	h := -c.st.Heading * math.Pi / 180
	c.st.X += v * math.Cos(h)
	c.st.Z += v * math.Sin(h)
	c.st.Heading = WrapDegrees(c.st.Heading)
}

// WrapDegrees maps any angle into [0, 360).
func WrapDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
