// Package loop runs the survival game: the per-tick simulation, rendering,
// the lifecycle controller and the host frame loop.
package loop

import (
	"time"

	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/object"
	"github.com/tomz197/survival/internal/physics"
)

// gridCellSize is the broad-phase cell edge in playfield units.
const gridCellSize = 100

// State is everything one game owns. It is mutated only by Step and the
// Controller's spawn schedules, both on the frame goroutine.
type State struct {
	Player       *object.Player
	Enemies      []*object.Enemy
	EnemyBullets []*object.Bullet
	PowerUps     []*object.PowerUp

	StartedAt time.Time // Game time the run began
	Now       time.Time // Game time of the latest tick
	Wave      int

	Paused bool
	Over   bool

	// Per-run counters.
	Kills     int
	Collected int

	grid *physics.SpatialGrid
}

// NewState creates the initial state of a run starting at now.
func NewState(r *config.Rules, now time.Time) *State {
	return &State{
		Player:    object.NewPlayer(r),
		StartedAt: now,
		Now:       now,
		Wave:      1,
		grid:      physics.NewSpatialGrid(r.Field.Width, r.Field.Height, gridCellSize),
	}
}

// Elapsed returns game time survived so far.
func (s *State) Elapsed() time.Duration {
	return s.Now.Sub(s.StartedAt)
}
