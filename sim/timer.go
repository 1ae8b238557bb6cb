package sim

import "time"

type TimerMode int

const (
	// TimerOnce finishes once and stays finished.
	TimerOnce TimerMode = iota
	// TimerRepeating wraps around each time it finishes.
	TimerRepeating
)

// Timer counts elapsed time towards a duration.
type Timer struct {
	Duration time.Duration
	Elapsed  time.Duration
	Mode     TimerMode

	finished     bool
	justFinished bool
	timesDone    int
}

// NewTimer returns a stopped-at-zero timer.
func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{Duration: d, Mode: mode}
}

// Tick advances the timer by delta and reports whether it finished during
// this tick. A once-timer reports true on exactly one tick.
func (t *Timer) Tick(delta time.Duration) bool {
	t.justFinished = false
	t.timesDone = 0
	if t.Mode == TimerOnce && t.finished {
		return false
	}

	t.Elapsed += delta
	if t.Elapsed < t.Duration {
		if t.Mode == TimerRepeating {
			t.finished = false
		}
		return false
	}

	t.finished = true
	t.justFinished = true
	if t.Mode == TimerRepeating && t.Duration > 0 {
		t.timesDone = int(t.Elapsed / t.Duration)
		t.Elapsed %= t.Duration
	} else {
		t.timesDone = 1
		t.Elapsed = t.Duration
	}
	return true
}

// Finished reports whether the timer has reached its duration. For a
// repeating timer this only holds on the tick it wrapped.
func (t *Timer) Finished() bool {
	return t.finished
}

// JustFinished reports whether the last Tick finished the timer.
func (t *Timer) JustFinished() bool {
	return t.justFinished
}

// TimesFinished is how many times the last Tick wrapped the timer.
func (t *Timer) TimesFinished() int {
	return t.timesDone
}

// Fraction is elapsed/duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return min(1, float64(t.Elapsed)/float64(t.Duration))
}

// Remaining is the time left before the timer finishes.
func (t *Timer) Remaining() time.Duration {
	return max(0, t.Duration-t.Elapsed)
}

// Reset rewinds the timer to zero.
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.finished = false
	t.justFinished = false
	t.timesDone = 0
}
