// Package kernel is the cooperative event loop that drives the scene.
//
// A Loop owns a fixed table of one-shot timers and a redraw request flag. It is
// advanced by a monotonically increasing 1 ms tick count fed from the HAL and
// must only be touched from the goroutine that advances it.
package kernel

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"subscene/internal/metrics"
)

const maxTimers = 64

type timerSlot struct {
	inUse bool
	due   uint64
	seq   uint64
	fn    func()
}

// Loop is a single-threaded timer and redraw scheduler.
type Loop struct {
	log zerolog.Logger

	now       uint64
	seq       uint64
	timers    [maxTimers]timerSlot
	redisplay bool

	fired   metric.Int64Counter
	redraws metric.Int64Counter
}

// New creates an idle loop at tick 0.
func New(log zerolog.Logger) *Loop {
	m := metrics.Meter("kernel")
	return &Loop{
		log:     log.With().Str("component", "kernel").Logger(),
		fired:   metrics.Counter(m, "kernel.timers.fired", "One-shot timer callbacks run"),
		redraws: metrics.Counter(m, "kernel.redisplay.requests", "Redraw requests posted"),
	}
}

// Now returns the current tick in milliseconds.
func (l *Loop) Now() uint64 { return l.now }

// AfterFunc arranges for fn to run once, d after the current tick.
//
// d is rounded up to whole milliseconds with a minimum of one, so a timer
// scheduled from inside a callback never fires in the same tick. When the
// table is full the returned timer is already stopped.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	if fn == nil {
		return &Timer{}
	}
	due := l.now + durationTicks(d)
	for i := range l.timers {
		if l.timers[i].inUse {
			continue
		}
		l.seq++
		l.timers[i] = timerSlot{inUse: true, due: due, seq: l.seq, fn: fn}
		return &Timer{l: l, slot: i, seq: l.seq}
	}
	l.log.Warn().Int("capacity", maxTimers).Msg("timer table full; dropping timer")
	return &Timer{}
}

func durationTicks(d time.Duration) uint64 {
	if d <= time.Millisecond {
		return 1
	}
	ms := uint64(d / time.Millisecond)
	if d%time.Millisecond != 0 {
		ms++
	}
	return ms
}

// TickTo advances the clock to now, running every timer due at or before it.
//
// Timers run in due order, ties in scheduling order. While a callback runs the
// clock reads the callback's due tick, so a callback that re-arms itself with a
// fixed delay keeps a fixed period even when TickTo jumps several periods.
func (l *Loop) TickTo(now uint64) {
	for {
		i, ok := l.nextDue(now)
		if !ok {
			break
		}
		t := l.timers[i]
		l.timers[i] = timerSlot{}
		if t.due > l.now {
			l.now = t.due
		}
		t.fn()
		l.fired.Add(context.Background(), 1)
	}
	if now > l.now {
		l.now = now
	}
}

// Advance moves the clock forward by d, truncated to whole milliseconds.
func (l *Loop) Advance(d time.Duration) {
	l.TickTo(l.now + uint64(d/time.Millisecond))
}

// Drain consumes every tick already queued on ch and advances to the latest.
func (l *Loop) Drain(ch <-chan uint64) {
	if ch == nil {
		return
	}
	latest, got := l.now, false
	for {
		select {
		case seq := <-ch:
			latest, got = seq, true
		default:
			if got {
				l.TickTo(latest)
			}
			return
		}
	}
}

func (l *Loop) nextDue(now uint64) (int, bool) {
	best := -1
	for i := range l.timers {
		t := &l.timers[i]
		if !t.inUse || t.due > now {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := &l.timers[best]
		if t.due < b.due || (t.due == b.due && t.seq < b.seq) {
			best = i
		}
	}
	return best, best >= 0
}

// Pending returns the number of armed timers.
func (l *Loop) Pending() int {
	n := 0
	for i := range l.timers {
		if l.timers[i].inUse {
			n++
		}
	}
	return n
}

// PostRedisplay asks the host to render a frame on its next step.
func (l *Loop) PostRedisplay() {
	l.redisplay = true
	l.redraws.Add(context.Background(), 1)
}

// TakeRedisplay reports whether a redraw was requested and clears the request.
func (l *Loop) TakeRedisplay() bool {
	r := l.redisplay
	l.redisplay = false
	return r
}
