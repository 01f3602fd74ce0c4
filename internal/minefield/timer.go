package minefield

import "time"

// Timer tracks wall-clock play time. It starts once and freezes once.
type Timer struct {
	now     func() time.Time
	start   time.Time
	started bool
	frozen  bool
	elapsed time.Duration
}

// NewTimer returns a stopped timer reading from now.
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Start records the start instant. Later calls are ignored.
func (t *Timer) Start() {
	if t.started {
		return
	}
	t.start = t.now()
	t.started = true
}

// Freeze stops the clock at the current elapsed time. Later calls are ignored.
func (t *Timer) Freeze() {
	if t.frozen {
		return
	}
	t.elapsed = t.Elapsed()
	t.frozen = true
}

// Elapsed returns the frozen duration, or the live one while running.
// A timer that never started reads zero.
func (t *Timer) Elapsed() time.Duration {
	switch {
	case t.frozen:
		return t.elapsed
	case !t.started:
		return 0
	default:
		return t.now().Sub(t.start)
	}
}

// Frozen reports whether Freeze has been called.
func (t *Timer) Frozen() bool {
	return t.frozen
}
