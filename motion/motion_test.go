package motion

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"subscene/kernel"
)

const eps = 1e-9

func newController(t *testing.T) (*Controller, *kernel.Loop) {
	t.Helper()
	l := kernel.New(zerolog.Nop())
	return New(DefaultConfig(), l, zerolog.Nop()), l
}

func TestForwardOnceOneTick(t *testing.T) {
	c, l := newController(t)
	c.Forward()
	if c.Mode() != Moving {
		t.Fatalf("mode=%s want moving", c.Mode())
	}

	l.Advance(99 * time.Millisecond)
	if s := c.State(); s.X != 0 {
		t.Fatalf("moved before first tick: %+v", s)
	}
	l.Advance(time.Millisecond)

	s := c.State()
	if math.Abs(s.X-0.02) > eps || math.Abs(s.Z) > eps {
		t.Fatalf("after one tick got x=%v z=%v", s.X, s.Z)
	}
	if math.Abs(s.Spin-4.2) > eps {
		t.Fatalf("spin=%v want 4.2", s.Spin)
	}
	if !l.TakeRedisplay() {
		t.Fatal("tick did not request a redraw")
	}
}

func TestForwardClampsAtMax(t *testing.T) {
	c, _ := newController(t)
	for i := 0; i < 11; i++ {
		c.Forward()
	}
	if math.Abs(c.Speed()-0.2) > eps {
		t.Fatalf("speed=%v want 0.2", c.Speed())
	}
	for i := 0; i < 25; i++ {
		c.Backward()
	}
	if math.Abs(c.Speed()+0.2) > eps {
		t.Fatalf("speed=%v want -0.2", c.Speed())
	}
}

func TestClampWithUnevenStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpeedStep = 0.03
	c := New(cfg, kernel.New(zerolog.Nop()), zerolog.Nop())
	for i := 0; i < 10; i++ {
		c.Forward()
	}
	if c.Speed() != 0.2 {
		t.Fatalf("speed=%v want 0.2", c.Speed())
	}
}

func TestBackwardAfterClampMovesOneStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpeedStep = 0.03
	c := New(cfg, kernel.New(zerolog.Nop()), zerolog.Nop())
	for i := 0; i < 10; i++ {
		c.Forward()
	}
	c.Backward()
	if math.Abs(c.Speed()-0.17) > eps {
		t.Fatalf("speed=%v after clamp and one backward, want 0.17", c.Speed())
	}
	for i := 0; i < 20; i++ {
		c.Backward()
	}
	c.Forward()
	if math.Abs(c.Speed()+0.17) > eps {
		t.Fatalf("speed=%v after clamp and one forward, want -0.17", c.Speed())
	}
}

func TestRepeatedStepsReturnToExactZero(t *testing.T) {
	c, l := newController(t)
	for i := 0; i < 7; i++ {
		c.Forward()
	}
	for i := 0; i < 7; i++ {
		c.Backward()
	}
	if c.Speed() != 0 {
		t.Fatalf("speed=%v want exactly 0", c.Speed())
	}
	l.Advance(100 * time.Millisecond)
	if c.Mode() != Stationary {
		t.Fatalf("mode=%s want stationary", c.Mode())
	}
}

func TestZeroSpeedStopsTicking(t *testing.T) {
	c, l := newController(t)
	c.Forward()
	c.Backward()
	if c.Speed() != 0 {
		t.Fatalf("speed=%v want exactly 0", c.Speed())
	}

	l.Advance(100 * time.Millisecond)
	if c.Mode() != Stationary {
		t.Fatalf("mode=%s want stationary", c.Mode())
	}
	if l.Pending() != 0 {
		t.Fatalf("timer re-armed at zero speed: pending=%d", l.Pending())
	}
	if s := c.State(); s.X != 0 || s.Z != 0 {
		t.Fatalf("moved at zero speed: %+v", s)
	}
}

func TestKeepsTickingWhileMoving(t *testing.T) {
	c, l := newController(t)
	c.Forward()
	l.Advance(time.Second)

	if c.Mode() != Moving || l.Pending() != 1 {
		t.Fatalf("mode=%s pending=%d", c.Mode(), l.Pending())
	}
	if s := c.State(); math.Abs(s.X-0.2) > 1e-9 {
		t.Fatalf("x=%v after 10 ticks want 0.2", s.X)
	}
}

func TestSingleTimerChain(t *testing.T) {
	c, l := newController(t)
	c.Forward()
	c.Forward()
	c.Backward()
	if l.Pending() != 1 {
		t.Fatalf("pending=%d want one chain", l.Pending())
	}
}

func TestHalt(t *testing.T) {
	c, l := newController(t)
	var got []float64
	c.OnThrottle(func(v float64) { got = append(got, v) })

	c.Forward()
	c.Forward()
	c.Halt()
	if c.Mode() != Stationary || l.Pending() != 0 {
		t.Fatalf("mode=%s pending=%d", c.Mode(), l.Pending())
	}
	if c.Speed() != 0 {
		t.Fatalf("speed=%v", c.Speed())
	}
	l.Advance(time.Second)
	if s := c.State(); s.X != 0 {
		t.Fatalf("moved after halt: %+v", s)
	}
	if len(got) != 3 || got[2] != 0 {
		t.Fatalf("throttle notifications %v", got)
	}

	c.Halt()
	if len(got) != 3 {
		t.Fatalf("halt at rest notified: %v", got)
	}
}

func TestTurnAndRise(t *testing.T) {
	c, l := newController(t)
	c.TurnLeft()
	if h := c.State().Heading; h != 10 {
		t.Fatalf("heading=%v want 10", h)
	}
	c.TurnRight()
	c.TurnRight()
	if h := c.State().Heading; h != 350 {
		t.Fatalf("heading=%v want 350", h)
	}
	c.Rise()
	c.Rise()
	c.Dive()
	if y := c.State().Y; math.Abs(y-0.1) > eps {
		t.Fatalf("y=%v want 0.1", y)
	}
	if c.Mode() != Stationary {
		t.Fatal("turning must not start the timer")
	}
	if !l.TakeRedisplay() {
		t.Fatal("input did not request a redraw")
	}
}

func TestHeadingConvention(t *testing.T) {
	c, l := newController(t)
	for i := 0; i < 9; i++ {
		c.TurnLeft()
	}
	c.Forward()
	l.Advance(100 * time.Millisecond)

	s := c.State()
	if math.Abs(s.X) > eps || math.Abs(s.Z+0.02) > eps {
		t.Fatalf("heading 90 moved to x=%v z=%v, want z=-0.02", s.X, s.Z)
	}
}

func TestInvariantsUnderRandomInput(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	c, l := newController(t)
	ops := []func(){c.Forward, c.Backward, c.TurnLeft, c.TurnRight, c.Rise, c.Dive, c.Halt}
	for i := 0; i < 5000; i++ {
		ops[r.Intn(len(ops))]()
		l.Advance(time.Duration(r.Intn(250)) * time.Millisecond)

		s := c.State()
		if s.Heading < 0 || s.Heading >= 360 {
			t.Fatalf("step %d: heading %v out of range", i, s.Heading)
		}
		if s.Spin < 0 || s.Spin >= 360 {
			t.Fatalf("step %d: spin %v out of range", i, s.Spin)
		}
		if s.Speed < -0.2 || s.Speed > 0.2 {
			t.Fatalf("step %d: speed %v out of range", i, s.Speed)
		}
		if s.Speed == 0 && l.Pending() > 1 {
			t.Fatalf("step %d: %d timers armed", i, l.Pending())
		}
	}
}

func TestWrapDegrees(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-720, 0},
		{719.5, 359.5},
		{-1e-15, 0},
	}
	for _, tc := range cases {
		if got := WrapDegrees(tc.in); math.Abs(got-tc.want) > eps {
			t.Fatalf("WrapDegrees(%v)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestDefaultsFillZeroConfig(t *testing.T) {
	c := New(Config{}, kernel.New(zerolog.Nop()), zerolog.Nop())
	if c.Config() != DefaultConfig() {
		t.Fatalf("config=%+v", c.Config())
	}
}

func TestModeString(t *testing.T) {
	if Stationary.String() != "stationary" || Moving.String() != "moving" || Mode(9).String() != "unknown" {
		t.Fatal("unexpected mode names")
	}
}
