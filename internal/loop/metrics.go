package loop

import (
	"sync/atomic"
	"time"
)

// Metrics records gameplay counters for monitoring. One Metrics may be shared
// by every game a host runs; all methods are safe for concurrent use.
type Metrics struct {
	ticks             atomic.Int64
	totalTickNs       atomic.Int64
	gamesStarted      atomic.Int64
	gamesOver         atomic.Int64
	enemiesSpawned    atomic.Int64
	powerUpsSpawned   atomic.Int64
	kills             atomic.Int64
	powerUpsCollected atomic.Int64
}

// AddTick records one simulated tick and how long it took.
func (m *Metrics) AddTick(d time.Duration) {
	m.ticks.Add(1)
	m.totalTickNs.Add(int64(d))
}

func (m *Metrics) incGamesStarted()         { m.gamesStarted.Add(1) }
func (m *Metrics) incGamesOver()            { m.gamesOver.Add(1) }
func (m *Metrics) addEnemiesSpawned(n int)  { m.enemiesSpawned.Add(int64(n)) }
func (m *Metrics) addPowerUpsSpawned(n int) { m.powerUpsSpawned.Add(int64(n)) }
func (m *Metrics) addKills(n int)           { m.kills.Add(int64(n)) }
func (m *Metrics) addCollected(n int)       { m.powerUpsCollected.Add(int64(n)) }

// Snapshot returns a read-only copy for HTTP output.
func (m *Metrics) Snapshot() map[string]any {
	ticks := m.ticks.Load()
	total := m.totalTickNs.Load()
	var avgMs float64
	if ticks > 0 {
		avgMs = float64(total) / float64(ticks) / 1e6
	}
	return map[string]any{
		"tick_count":         ticks,
		"avg_tick_ms":        avgMs,
		"games_started":      m.gamesStarted.Load(),
		"games_over":         m.gamesOver.Load(),
		"enemies_spawned":    m.enemiesSpawned.Load(),
		"powerups_spawned":   m.powerUpsSpawned.Load(),
		"kills":              m.kills.Load(),
		"powerups_collected": m.powerUpsCollected.Load(),
	}
}
