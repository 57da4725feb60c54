package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Rules holds every tunable gameplay parameter. The zero value is not usable;
// start from Default and override.
type Rules struct {
	Field   FieldRules   `yaml:"field"`
	Player  PlayerRules  `yaml:"player"`
	Enemy   EnemyRules   `yaml:"enemy"`
	PowerUp PowerUpRules `yaml:"powerup"`
	Wave    WaveRules    `yaml:"wave"`
}

// FieldRules describes the logical playfield.
type FieldRules struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerRules configures the player ship, its weapon and abilities.
type PlayerRules struct {
	Size           float64       `yaml:"size"`
	BottomOffset   float64       `yaml:"bottom_offset"` // Spawn distance from the bottom edge
	Speed          float64       `yaml:"speed"`         // Pixels per tick
	MaxHealth      int           `yaml:"max_health"`
	FireInterval   time.Duration `yaml:"fire_interval"`
	BulletSize     float64       `yaml:"bullet_size"`
	BulletSpeed    float64       `yaml:"bullet_speed"`
	DashMultiplier float64       `yaml:"dash_multiplier"`
	DashDuration   time.Duration `yaml:"dash_duration"`
	DashCooldown   time.Duration `yaml:"dash_cooldown"`
	TickDuration   time.Duration `yaml:"tick_duration"` // Nominal tick used for cooldowns
}

// EnemyRules configures enemy spawning, scaling and combat.
type EnemyRules struct {
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	Size          float64       `yaml:"size"`
	MinSpeed      float64       `yaml:"min_speed"`
	SpeedSpread   float64       `yaml:"speed_spread"` // Speed is uniform in [MinSpeed, MinSpeed+SpeedSpread)
	SpeedPerWave  float64       `yaml:"speed_per_wave"`
	BaseHealth    int           `yaml:"base_health"`
	HealthPerWave int           `yaml:"health_per_wave"`
	FireInterval  time.Duration `yaml:"fire_interval"`
	BulletSize    float64       `yaml:"bullet_size"`
	BulletSpeed   float64       `yaml:"bullet_speed"`
	ContactDamage int           `yaml:"contact_damage"`
	BulletDamage  int           `yaml:"bullet_damage"` // Damage an enemy bullet deals to the player
	HitDamage     int           `yaml:"hit_damage"`    // Damage a player bullet deals to an enemy
	KillScore     int           `yaml:"kill_score"`
}

// PowerUpRules configures power-up spawning and effects.
type PowerUpRules struct {
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	Lifetime      time.Duration `yaml:"lifetime"`
	Size          float64       `yaml:"size"`
	HealAmount    int           `yaml:"heal_amount"`
	SpeedBoost    float64       `yaml:"speed_boost"`
	BulletBoost   float64       `yaml:"bullet_boost"`
}

// WaveRules configures difficulty progression.
type WaveRules struct {
	Period time.Duration `yaml:"period"`
}

// Default returns the standard survival rules.
func Default() *Rules {
	return &Rules{
		Field: FieldRules{
			Width:  800,
			Height: 600,
		},
		Player: PlayerRules{
			Size:           50,
			BottomOffset:   100,
			Speed:          5,
			MaxHealth:      100,
			FireInterval:   300 * time.Millisecond,
			BulletSize:     10,
			BulletSpeed:    6,
			DashMultiplier: 3,
			DashDuration:   300 * time.Millisecond,
			DashCooldown:   2000 * time.Millisecond,
			TickDuration:   16 * time.Millisecond,
		},
		Enemy: EnemyRules{
			SpawnInterval: 2000 * time.Millisecond,
			Size:          50,
			MinSpeed:      1,
			SpeedSpread:   2,
			SpeedPerWave:  0.2,
			BaseHealth:    30,
			HealthPerWave: 5,
			FireInterval:  2000 * time.Millisecond,
			BulletSize:    10,
			BulletSpeed:   4,
			ContactDamage: 10,
			BulletDamage:  10,
			HitDamage:     20,
			KillScore:     10,
		},
		PowerUp: PowerUpRules{
			SpawnInterval: 10 * time.Second,
			Lifetime:      10 * time.Second,
			Size:          30,
			HealAmount:    20,
			SpeedBoost:    2,
			BulletBoost:   2,
		},
		Wave: WaveRules{
			Period: 30 * time.Second,
		},
	}
}

// LoadRules reads a YAML rules file layered over Default. Keys missing from
// the file keep their default values. Durations use Go syntax ("300ms", "2s").
func LoadRules(path string) (*Rules, error) {
	rules := Default()
	if path == "" {
		return rules, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(b, rules); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules %s: %w", path, err)
	}
	return rules, nil
}

// Validate checks that the rules describe a playable game.
func (r *Rules) Validate() error {
	var errs []error
	if r.Field.Width <= 0 || r.Field.Height <= 0 {
		errs = append(errs, errors.New("field dimensions must be positive"))
	}
	if r.Player.Size <= 0 || r.Player.Size > r.Field.Width || r.Player.Size > r.Field.Height {
		errs = append(errs, errors.New("player size must fit inside the field"))
	}
	if r.Player.MaxHealth <= 0 {
		errs = append(errs, errors.New("player max_health must be positive"))
	}
	if r.Player.TickDuration <= 0 {
		errs = append(errs, errors.New("player tick_duration must be positive"))
	}
	if r.Enemy.SpawnInterval <= 0 || r.PowerUp.SpawnInterval <= 0 {
		errs = append(errs, errors.New("spawn intervals must be positive"))
	}
	if r.Enemy.Size <= 0 || r.Enemy.Size > r.Field.Width {
		errs = append(errs, errors.New("enemy size must fit inside the field"))
	}
	if r.PowerUp.Size <= 0 || r.PowerUp.Size > r.Field.Width || r.PowerUp.Size > r.Field.Height {
		errs = append(errs, errors.New("power-up size must fit inside the field"))
	}
	if r.Wave.Period <= 0 {
		errs = append(errs, errors.New("wave period must be positive"))
	}
	return errors.Join(errs...)
}
