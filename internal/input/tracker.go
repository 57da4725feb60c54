package input

import "sync"

// Tracker is a key-state table safe for concurrent press/release signals.
type Tracker struct {
	mu      sync.Mutex
	down    map[string]bool
	presses []string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{down: make(map[string]bool)}
}

// Press marks a key held. A press of a key that was up is also queued for
// TakePresses.
func (t *Tracker) Press(name string) {
	id := Normalize(name)
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.down[id] {
		t.presses = append(t.presses, id)
	}
	t.down[id] = true
}

// Release marks a key up.
func (t *Tracker) Release(name string) {
	id := Normalize(name)
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.down, id)
}

// Snapshot returns a copy of the held keys.
func (t *Tracker) Snapshot() Keys {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make(Keys, len(t.down))
	for id := range t.down {
		keys[id] = true
	}
	return keys
}

// TakePresses returns the keys pressed since the last call, in order.
func (t *Tracker) TakePresses() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.presses
	t.presses = nil
	return p
}

// Reset releases every key and drops queued presses.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.down)
	t.presses = nil
}
