package loop

import "time"

// Interval is a repeating schedule evaluated against a clock reading.
// It replaces a detached timer: the owner polls Due once per frame, so
// disarming it is synchronous and nothing fires after Disarm returns.
type Interval struct {
	period time.Duration
	next   time.Time
	armed  bool
}

// Arm schedules the first firing one period after now.
func (iv *Interval) Arm(now time.Time, period time.Duration) {
	iv.period = period
	iv.next = now.Add(period)
	iv.armed = true
}

// Disarm cancels the schedule.
func (iv *Interval) Disarm() {
	iv.armed = false
}

// Armed reports whether the schedule is active.
func (iv *Interval) Armed() bool {
	return iv.armed
}

// Due returns how many firings have come due by now and advances the
// schedule past them. A long frame yields several firings.
func (iv *Interval) Due(now time.Time) int {
	if !iv.armed || iv.period <= 0 {
		return 0
	}
	n := 0
	for !now.Before(iv.next) {
		n++
		iv.next = iv.next.Add(iv.period)
	}
	return n
}
