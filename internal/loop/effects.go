package loop

import (
	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/object"
)

// powerUpEffect applies one kind of power-up to the player.
type powerUpEffect func(p *object.Player, r *config.Rules)

// powerUpEffects has an entry for every object.PowerUpKind.
var powerUpEffects = map[object.PowerUpKind]powerUpEffect{
	object.PowerUpHealth: func(p *object.Player, r *config.Rules) {
		p.Heal(r.PowerUp.HealAmount, r.Player.MaxHealth)
	},
	// Shield is recomputed from the shield key at the start of every tick,
	// so this grant only lasts until then.
	object.PowerUpShield: func(p *object.Player, _ *config.Rules) {
		p.Shield = true
	},
	object.PowerUpSpeed: func(p *object.Player, r *config.Rules) {
		p.Speed += r.PowerUp.SpeedBoost
	},
	// Only bullets already in flight speed up.
	object.PowerUpBullet: func(p *object.Player, r *config.Rules) {
		for _, b := range p.Bullets {
			b.Speed += r.PowerUp.BulletBoost
		}
	},
}

// applyPowerUp applies the effect for kind. Unknown kinds are ignored.
func applyPowerUp(p *object.Player, kind object.PowerUpKind, r *config.Rules) {
	if effect, ok := powerUpEffects[kind]; ok {
		effect(p, r)
	}
}
