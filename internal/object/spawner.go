package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/survival/internal/config"
)

// Spawner creates enemies and power-ups at random positions. Randomness comes
// from the injected source so games can be replayed from a seed.
type Spawner struct {
	rng   *rand.Rand
	rules *config.Rules
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand, rules *config.Rules) *Spawner {
	return &Spawner{rng: rng, rules: rules}
}

// SpawnEnemy creates an enemy just above the top edge, scaled by wave.
func (s *Spawner) SpawnEnemy(now time.Time, wave int) *Enemy {
	er := s.rules.Enemy
	return &Enemy{
		X:        s.rng.Float64() * (s.rules.Field.Width - er.Size),
		Y:        -er.Size,
		Size:     er.Size,
		Speed:    er.MinSpeed + s.rng.Float64()*er.SpeedSpread + float64(wave)*er.SpeedPerWave,
		Health:   er.BaseHealth + wave*er.HealthPerWave,
		LastShot: now,
	}
}

// SpawnPowerUp creates a power-up of a random kind fully inside the playfield.
func (s *Spawner) SpawnPowerUp(now time.Time) *PowerUp {
	pr := s.rules.PowerUp
	return &PowerUp{
		X:         s.rng.Float64() * (s.rules.Field.Width - pr.Size),
		Y:         s.rng.Float64() * (s.rules.Field.Height - pr.Size),
		Size:      pr.Size,
		Kind:      PowerUpKinds[s.rng.Intn(len(PowerUpKinds))],
		Remaining: pr.Lifetime,
		SpawnedAt: now,
	}
}

// WaveAt returns the difficulty wave after elapsed game time: one plus the
// number of whole periods elapsed.
func WaveAt(elapsed, period time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed/period) + 1
}
