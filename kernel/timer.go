package kernel

// Timer is a handle to a one-shot callback scheduled with Loop.AfterFunc.
//
// The zero Timer is a stopped timer.
type Timer struct {
	l    *Loop
	slot int
	seq  uint64
}

func (t *Timer) armed() *timerSlot {
	if t == nil || t.l == nil {
		return nil
	}
	s := &t.l.timers[t.slot]
	if !s.inUse || s.seq != t.seq {
		return nil
	}
	return s
}

// Stop cancels the timer. It returns false if the timer already fired or was
// stopped.
func (t *Timer) Stop() bool {
	s := t.armed()
	if s == nil {
		return false
	}
	*s = timerSlot{}
	return true
}

// Pending reports whether the callback is still waiting to run.
func (t *Timer) Pending() bool { return t.armed() != nil }
