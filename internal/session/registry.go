// Package session tracks the live games of the multi-session hosts and keeps
// an in-memory leaderboard of finished runs.
package session

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/loop"
)

// shutdownPoll is how often Shutdown checks for remaining sessions.
const shutdownPoll = 200 * time.Millisecond

// Handle is one registered game session.
type Handle struct {
	ID       int
	Username string
	Started  time.Time
	cancel   context.CancelFunc
}

// ScoreEntry is a single entry on the leaderboard.
type ScoreEntry struct {
	Username string        `json:"username"`
	Score    int           `json:"score"`
	Wave     int           `json:"wave"`
	Survived time.Duration `json:"survived_ns"`
	seq      int           // Record order, the tie-break for equal scores
}

// Registry tracks live sessions. It is safe for concurrent use.
type Registry struct {
	log  *zap.SugaredLogger
	topN int

	mu       sync.RWMutex
	sessions map[int]*Handle
	nextID   int
	top      []ScoreEntry
	seq      int
	games    int // Finished runs recorded
}

// NewRegistry creates a registry keeping the best topN results. A nil log
// discards output.
func NewRegistry(topN int, log *zap.SugaredLogger) *Registry {
	if topN <= 0 {
		topN = config.LeaderboardSize
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Registry{
		log:      log,
		topN:     topN,
		sessions: make(map[int]*Handle),
		nextID:   1,
	}
}

// Register adds a session. cancel is called by Shutdown to end it.
func (r *Registry) Register(username string, cancel context.CancelFunc) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := &Handle{
		ID:       r.nextID,
		Username: SanitizeUsername(username),
		Started:  time.Now(),
		cancel:   cancel,
	}
	r.nextID++
	r.sessions[h.ID] = h
	r.log.Infow("session registered", "id", h.ID, "user", h.Username, "active", len(r.sessions))
	return h
}

// Unregister removes a session. Unknown ids are ignored.
func (r *Registry) Unregister(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.sessions[id]
	if !ok {
		return
	}
	delete(r.sessions, id)
	r.log.Infow("session ended", "id", id, "user", h.Username,
		"duration", time.Since(h.Started).Round(time.Second), "active", len(r.sessions))
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Record adds a finished run to the leaderboard. Equal scores keep the
// earlier run ahead.
func (r *Registry) Record(username string, res loop.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games++
	r.seq++
	r.top = append(r.top, ScoreEntry{
		Username: SanitizeUsername(username),
		Score:    res.Score,
		Wave:     res.Wave,
		Survived: res.Survived,
		seq:      r.seq,
	})
	sort.Slice(r.top, func(i, j int) bool {
		if r.top[i].Score != r.top[j].Score {
			return r.top[i].Score > r.top[j].Score
		}
		return r.top[i].seq < r.top[j].seq
	})
	if len(r.top) > r.topN {
		r.top = r.top[:r.topN]
	}
}

// TopScores returns a copy of the leaderboard, best first.
func (r *Registry) TopScores() []ScoreEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ScoreEntry(nil), r.top...)
}

// Shutdown cancels every session and waits up to timeout for them to
// unregister. It reports whether all sessions ended in time.
func (r *Registry) Shutdown(timeout time.Duration) bool {
	r.mu.RLock()
	for _, h := range r.sessions {
		if h.cancel != nil {
			h.cancel()
		}
	}
	r.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(shutdownPoll)
	defer ticker.Stop()

	for {
		if r.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			r.log.Warnw("shutdown timed out", "remaining", r.Count())
			return false
		case <-ticker.C:
		}
	}
}

// Snapshot returns registry statistics for the metrics endpoint.
func (r *Registry) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return map[string]any{
		"sessions":       len(r.sessions),
		"games_recorded": r.games,
		"top_scores":     append([]ScoreEntry(nil), r.top...),
	}
}

// SanitizeUsername trims the name, drops control characters and limits its
// length. An empty result becomes "anonymous".
func SanitizeUsername(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if runes := []rune(name); len(runes) > config.MaxUsernameLength {
		name = string(runes[:config.MaxUsernameLength])
	}
	if name == "" {
		return "anonymous"
	}
	return name
}
