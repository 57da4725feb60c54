package loop

import (
	"time"

	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/input"
	"github.com/tomz197/survival/internal/object"
	"github.com/tomz197/survival/internal/physics"
)

// Step advances the game one tick at game time now and reports whether the
// player has died. A paused or finished game is left untouched.
func Step(s *State, keys input.Keys, now time.Time, r *config.Rules) (dead bool) {
	if s.Paused || s.Over {
		return false
	}
	s.Now = now
	s.Wave = object.WaveAt(now.Sub(s.StartedAt), r.Wave.Period)

	p := s.Player
	movePlayer(p, keys, r)

	if keys.Down(input.KeyFire) && now.Sub(p.LastShot) >= r.Player.FireInterval {
		size := r.Player.BulletSize
		p.Bullets = append(p.Bullets, object.NewBullet(p.X+p.Size/2-size/2, p.Y, size, r.Player.BulletSpeed, object.DirUp))
		p.LastShot = now
	}

	p.Shield = keys.Down(input.KeyShield)

	updateDash(p, keys, r)
	updatePlayerBullets(p)
	updateEnemies(s, now, r)
	updateEnemyBullets(s, r)
	updatePowerUps(s, now, r)

	return p.Dead()
}

// movePlayer applies held direction keys and keeps the ship inside the field.
func movePlayer(p *object.Player, keys input.Keys, r *config.Rules) {
	speed := p.MoveSpeed(r.Player.DashMultiplier)
	if keys.Down(input.KeyLeft) {
		p.X -= speed
	}
	if keys.Down(input.KeyRight) {
		p.X += speed
	}
	if keys.Down(input.KeyUp) {
		p.Y -= speed
	}
	if keys.Down(input.KeyDown) {
		p.Y += speed
	}
	p.X = physics.Clamp(p.X, 0, r.Field.Width-p.Size)
	p.Y = physics.Clamp(p.Y, 0, r.Field.Height-p.Size)
}

// updateDash starts a dash when allowed and counts both timers down by one
// nominal tick.
func updateDash(p *object.Player, keys input.Keys, r *config.Rules) {
	if keys.Down(input.KeyDash) && p.DashCooldown <= 0 {
		p.DashRemaining = r.Player.DashDuration
		p.DashCooldown = r.Player.DashCooldown
	}
	if p.DashCooldown > 0 {
		p.DashCooldown -= r.Player.TickDuration
	}
	if p.DashRemaining > 0 {
		p.DashRemaining = max(0, p.DashRemaining-r.Player.TickDuration)
	}
}

// updatePlayerBullets moves player bullets up and drops those past the top.
func updatePlayerBullets(p *object.Player) {
	for _, b := range p.Bullets {
		b.Advance()
		if b.Y < 0 {
			b.MarkDestroyed()
		}
	}
	p.Bullets = object.Compact(p.Bullets)
}

// updateEnemies moves enemies, lets them fire and resolves their collisions.
func updateEnemies(s *State, now time.Time, r *config.Rules) {
	p := s.Player
	indexBullets(s.grid, p.Bullets)

	for _, e := range s.Enemies {
		e.Advance()
		if e.Y > r.Field.Height {
			e.MarkDestroyed()
			continue
		}

		if e.ReadyToFire(now, r.Enemy.FireInterval) {
			e.LastShot = now
			size := r.Enemy.BulletSize
			s.EnemyBullets = append(s.EnemyBullets,
				object.NewBullet(e.X+e.Size/2-size/2, e.Y+e.Size, size, r.Enemy.BulletSpeed, object.DirDown))
		}

		// Player contact wins over bullet hits in the same tick.
		if physics.Overlaps(p.Bounds(), e.Bounds()) {
			p.Damage(r.Enemy.ContactDamage)
			e.MarkDestroyed()
			continue
		}

		if resolveBulletHits(s.grid, p.Bullets, e, r.Enemy.HitDamage) {
			p.Score += r.Enemy.KillScore
			s.Kills++
		}
	}

	s.Enemies = object.Compact(s.Enemies)
	p.Bullets = object.Compact(p.Bullets)
}

// updateEnemyBullets moves enemy bullets down and applies hits on the player.
func updateEnemyBullets(s *State, r *config.Rules) {
	p := s.Player
	for _, b := range s.EnemyBullets {
		b.Advance()
		if b.Y > r.Field.Height {
			b.MarkDestroyed()
			continue
		}
		if physics.Overlaps(b.Bounds(), p.Bounds()) {
			p.Damage(r.Enemy.BulletDamage)
			b.MarkDestroyed()
		}
	}
	s.EnemyBullets = object.Compact(s.EnemyBullets)
}

// updatePowerUps ages power-ups and applies the ones the player touches.
func updatePowerUps(s *State, now time.Time, r *config.Rules) {
	p := s.Player
	for _, pu := range s.PowerUps {
		if !pu.Age(now, r.PowerUp.Lifetime) {
			pu.MarkDestroyed()
			continue
		}
		if physics.Overlaps(p.Bounds(), pu.Bounds()) {
			applyPowerUp(p, pu.Kind, r)
			pu.MarkDestroyed()
			s.Collected++
		}
	}
	s.PowerUps = object.Compact(s.PowerUps)
}
