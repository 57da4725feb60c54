package input

import (
	"sync"
	"time"
)

// DefaultHoldWindow is how long a key is considered held after its last press
// on hosts that only report presses. It spans the gap between terminal
// auto-repeat events.
const DefaultHoldWindow = 120 * time.Millisecond

// Holder synthesises key releases for hosts without key-up events: a key
// stays pressed until no press has been seen for the hold window.
type Holder struct {
	tracker *Tracker
	window  time.Duration

	mu   sync.Mutex
	last map[string]time.Time
}

// NewHolder creates a Holder feeding tracker.
func NewHolder(tracker *Tracker, window time.Duration) *Holder {
	return &Holder{
		tracker: tracker,
		window:  window,
		last:    make(map[string]time.Time),
	}
}

// Touch records a press of id at now.
func (h *Holder) Touch(id string, now time.Time) {
	h.mu.Lock()
	h.last[id] = now
	h.mu.Unlock()
	h.tracker.Press(id)
}

// Expire releases keys whose last press is at least one hold window old.
func (h *Holder) Expire(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, at := range h.last {
		if now.Sub(at) >= h.window {
			delete(h.last, id)
			h.tracker.Release(id)
		}
	}
}
