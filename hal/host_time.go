package hal

import "time"

// hostTime publishes the current millisecond tick. The channel holds only the
// newest sequence; an unread value is replaced, so a slow consumer skips ahead
// instead of replaying stale ticks.
type hostTime struct {
	ch    chan uint64
	now   func() time.Time
	start time.Time
	seq   uint64
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// advance publishes 1 + whole milliseconds since the first call, if that
// moved forward.
func (t *hostTime) advance() {
	now := t.now()
	if t.start.IsZero() {
		t.start = now
	}
	seq := 1 + uint64(now.Sub(t.start)/time.Millisecond)
	if seq <= t.seq {
		return
	}
	t.seq = seq
	for {
		select {
		case t.ch <- seq:
			return
		default:
		}
		select {
		case <-t.ch:
		default:
		}
	}
}
