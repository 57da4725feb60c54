package loop

import (
	"testing"
	"time"

	"github.com/tomz197/survival/internal/input"
	"github.com/tomz197/survival/internal/object"
)

func TestStepTwoHitKillScoresOnce(t *testing.T) {
	s, r := newTestState(t)
	now := epoch.Add(time.Second)
	e := stillEnemy(100, 100, 30, now)
	s.Enemies = []*object.Enemy{e}

	// Each bullet lands inside the enemy after moving up 6.
	s.Player.Bullets = []*object.Bullet{object.NewBullet(120, 130, 10, 6, object.DirUp)}
	Step(s, nil, now, r)
	if e.Health != 10 || len(s.Enemies) != 1 {
		t.Fatalf("after first hit: health=%d enemies=%d, want 10 and 1", e.Health, len(s.Enemies))
	}
	if len(s.Player.Bullets) != 0 {
		t.Fatalf("hitting bullet not consumed")
	}
	if s.Player.Score != 0 {
		t.Fatalf("score = %d after first hit, want 0", s.Player.Score)
	}

	s.Player.Bullets = []*object.Bullet{object.NewBullet(120, 130, 10, 6, object.DirUp)}
	Step(s, nil, now, r)
	if len(s.Enemies) != 0 {
		t.Fatal("enemy survived second hit")
	}
	if s.Player.Score != 10 {
		t.Errorf("score = %d, want 10", s.Player.Score)
	}
	if s.Kills != 1 {
		t.Errorf("kills = %d, want 1", s.Kills)
	}
}

func TestStepDeadEnemyAbsorbsNoExtraBullets(t *testing.T) {
	s, r := newTestState(t)
	now := epoch.Add(time.Second)
	s.Enemies = []*object.Enemy{stillEnemy(100, 100, 30, now)}
	s.Player.Bullets = []*object.Bullet{
		object.NewBullet(105, 130, 10, 6, object.DirUp),
		object.NewBullet(120, 130, 10, 6, object.DirUp),
		object.NewBullet(135, 130, 10, 6, object.DirUp),
	}

	Step(s, nil, now, r)

	if s.Player.Score != 10 {
		t.Errorf("score = %d, want 10", s.Player.Score)
	}
	if len(s.Player.Bullets) != 1 || s.Player.Bullets[0].X != 135 {
		t.Errorf("surviving bullets = %d, want only the third", len(s.Player.Bullets))
	}
}

func TestStepEnemyBulletShield(t *testing.T) {
	tests := []struct {
		name string
		keys input.Keys
		want int
	}{
		{"unshielded", nil, 20},
		{"shielded", input.Keys{input.KeyShield: true}, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, r := newTestState(t)
			s.Player.Health = 30
			s.EnemyBullets = []*object.Bullet{object.NewBullet(390, 490, 10, 4, object.DirDown)}

			Step(s, tt.keys, epoch.Add(time.Second), r)

			if s.Player.Health != tt.want {
				t.Errorf("health = %d, want %d", s.Player.Health, tt.want)
			}
			if len(s.EnemyBullets) != 0 {
				t.Error("bullet not removed on contact")
			}
		})
	}
}

func TestStepContactPrecedesBullets(t *testing.T) {
	s, r := newTestState(t)
	now := epoch.Add(time.Second)
	// Overlaps the player and would die to the bullet.
	s.Enemies = []*object.Enemy{stillEnemy(375, 480, 10, now)}
	s.Player.Bullets = []*object.Bullet{object.NewBullet(380, 505, 10, 6, object.DirUp)}

	Step(s, nil, now, r)

	if len(s.Enemies) != 0 {
		t.Fatal("enemy not removed on contact")
	}
	if s.Player.Score != 0 {
		t.Errorf("score = %d, want 0", s.Player.Score)
	}
	if s.Player.Health != 90 {
		t.Errorf("health = %d, want 90", s.Player.Health)
	}
	if len(s.Player.Bullets) != 1 {
		t.Errorf("bullet consumed by an enemy already removed by contact")
	}
}

func TestStepShieldBlocksContact(t *testing.T) {
	s, r := newTestState(t)
	now := epoch.Add(time.Second)
	s.Enemies = []*object.Enemy{stillEnemy(375, 480, 10, now)}

	Step(s, input.Keys{input.KeyShield: true}, now, r)

	if len(s.Enemies) != 0 || s.Player.Health != 100 {
		t.Errorf("enemies=%d health=%d, want 0 and 100", len(s.Enemies), s.Player.Health)
	}
}

func TestStepSpeedPowerUpCumulative(t *testing.T) {
	s, r := newTestState(t)
	now := epoch.Add(time.Second)

	for want := 7.0; want <= 9; want += 2 {
		s.PowerUps = []*object.PowerUp{{X: 380, Y: 510, Size: 30, Kind: object.PowerUpSpeed, SpawnedAt: now}}
		Step(s, nil, now, r)
		if s.Player.Speed != want {
			t.Fatalf("speed = %v, want %v", s.Player.Speed, want)
		}
		if len(s.PowerUps) != 0 {
			t.Fatal("power-up not removed after collection")
		}
	}
	if s.Player.BaseSpeed != 5 {
		t.Errorf("base speed changed to %v", s.Player.BaseSpeed)
	}
	if s.Collected != 2 {
		t.Errorf("collected = %d, want 2", s.Collected)
	}
}

func TestStepHealCapped(t *testing.T) {
	for _, start := range []int{90, 100} {
		s, r := newTestState(t)
		now := epoch.Add(time.Second)
		s.Player.Health = start
		s.PowerUps = []*object.PowerUp{{X: 380, Y: 510, Size: 30, Kind: object.PowerUpHealth, SpawnedAt: now}}

		Step(s, nil, now, r)

		if s.Player.Health != 100 {
			t.Errorf("from %d: health = %d, want 100", start, s.Player.Health)
		}
	}
}

func TestStepShieldPowerUpLastsOneTick(t *testing.T) {
	s, r := newTestState(t)
	now := epoch.Add(time.Second)
	s.PowerUps = []*object.PowerUp{{X: 380, Y: 510, Size: 30, Kind: object.PowerUpShield, SpawnedAt: now}}

	Step(s, nil, now, r)
	if !s.Player.Shield {
		t.Fatal("shield not granted on collection")
	}

	Step(s, nil, now.Add(16*time.Millisecond), r)
	if s.Player.Shield {
		t.Error("shield outlived the tick without the shield key")
	}
}

func TestStepBulletPowerUpOnlyLiveBullets(t *testing.T) {
	s, r := newTestState(t)
	now := epoch.Add(time.Second)
	s.Player.Bullets = []*object.Bullet{object.NewBullet(100, 300, 10, 6, object.DirUp)}
	s.PowerUps = []*object.PowerUp{{X: 380, Y: 510, Size: 30, Kind: object.PowerUpBullet, SpawnedAt: now}}

	Step(s, nil, now, r)
	if got := s.Player.Bullets[0].Speed; got != 8 {
		t.Fatalf("live bullet speed = %v, want 8", got)
	}

	Step(s, input.Keys{input.KeyFire: true}, now.Add(time.Second), r)
	last := s.Player.Bullets[len(s.Player.Bullets)-1]
	if last.Speed != 6 {
		t.Errorf("new bullet speed = %v, want 6", last.Speed)
	}
}

func TestStepPowerUpLifetime(t *testing.T) {
	s, r := newTestState(t)
	pu := &object.PowerUp{X: 10, Y: 10, Size: 30, Kind: object.PowerUpHealth, Remaining: 10 * time.Second, SpawnedAt: epoch}
	s.PowerUps = []*object.PowerUp{pu}

	prev := pu.Remaining
	for _, at := range []time.Duration{time.Second, 4 * time.Second, 9999 * time.Millisecond} {
		Step(s, nil, epoch.Add(at), r)
		if len(s.PowerUps) != 1 {
			t.Fatalf("expired at %v", at)
		}
		if pu.Remaining >= prev {
			t.Fatalf("remaining did not decrease at %v: %v >= %v", at, pu.Remaining, prev)
		}
		prev = pu.Remaining
	}

	Step(s, nil, epoch.Add(10*time.Second), r)
	if len(s.PowerUps) != 0 {
		t.Error("power-up alive at lifetime")
	}
}

func TestStepWaveBoundaries(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 1},
		{29999 * time.Millisecond, 1},
		{30000 * time.Millisecond, 2},
	}
	for _, tt := range tests {
		s, r := newTestState(t)
		Step(s, nil, epoch.Add(tt.elapsed), r)
		if s.Wave != tt.want {
			t.Errorf("elapsed %v: wave = %d, want %d", tt.elapsed, s.Wave, tt.want)
		}
	}
}

func TestStepFireRate(t *testing.T) {
	s, r := newTestState(t)
	fire := input.Keys{input.KeyFire: true}

	for _, at := range []time.Duration{0, 100, 299, 300, 450, 600} {
		Step(s, fire, epoch.Add(at*time.Millisecond), r)
	}
	// Shots at 0, 300 and 600.
	if got := len(s.Player.Bullets); got != 3 {
		t.Fatalf("bullets = %d, want 3", got)
	}
	b := s.Player.Bullets[0]
	if b.X != 395 || b.Dir != object.DirUp {
		t.Errorf("first bullet x=%v dir=%v, want 395 and up", b.X, b.Dir)
	}
}

func TestStepEnemyFiresEveryInterval(t *testing.T) {
	s, r := newTestState(t)
	now := epoch.Add(5 * time.Second)
	e := stillEnemy(100, 100, 30, now.Add(-2*time.Second))
	s.Enemies = []*object.Enemy{e}

	Step(s, nil, now, r)
	if len(s.EnemyBullets) != 1 {
		t.Fatalf("enemy bullets = %d, want 1", len(s.EnemyBullets))
	}
	b := s.EnemyBullets[0]
	if b.X != 120 || b.Y != 154 {
		t.Errorf("bullet at (%v, %v), want (120, 154)", b.X, b.Y)
	}

	Step(s, nil, now.Add(1999*time.Millisecond), r)
	if len(s.EnemyBullets) != 1 {
		t.Errorf("enemy fired early: %d bullets", len(s.EnemyBullets))
	}
}

func TestStepRemovesOffField(t *testing.T) {
	s, r := newTestState(t)
	now := epoch.Add(time.Second)
	s.Enemies = []*object.Enemy{{X: 0, Y: 599, Size: 50, Speed: 2, Health: 30, LastShot: now}}
	s.Player.Bullets = []*object.Bullet{object.NewBullet(0, 5, 10, 6, object.DirUp)}
	s.EnemyBullets = []*object.Bullet{object.NewBullet(0, 598, 10, 4, object.DirDown)}

	Step(s, nil, now, r)

	if len(s.Enemies) != 0 || len(s.Player.Bullets) != 0 || len(s.EnemyBullets) != 0 {
		t.Errorf("left on field: enemies=%d bullets=%d enemyBullets=%d",
			len(s.Enemies), len(s.Player.Bullets), len(s.EnemyBullets))
	}
	if s.Player.Score != 0 || s.Player.Health != 100 {
		t.Error("leaving the field changed score or health")
	}
}

func TestStepMovementClamped(t *testing.T) {
	s, r := newTestState(t)
	s.Player.X = 2

	Step(s, input.Keys{input.KeyLeft: true}, epoch, r)
	if s.Player.X != 0 {
		t.Errorf("x = %v, want 0", s.Player.X)
	}

	s.Player.Y = 548
	Step(s, input.Keys{input.KeyDown: true}, epoch, r)
	if s.Player.Y != 550 {
		t.Errorf("y = %v, want 550", s.Player.Y)
	}
}

func TestStepDash(t *testing.T) {
	s, r := newTestState(t)
	dash := input.Keys{input.KeyDash: true, input.KeyRight: true}

	Step(s, dash, epoch, r)
	if s.Player.DashRemaining != 284*time.Millisecond || s.Player.DashCooldown != 1984*time.Millisecond {
		t.Fatalf("dash=%v cooldown=%v after trigger", s.Player.DashRemaining, s.Player.DashCooldown)
	}

	x := s.Player.X
	Step(s, dash, epoch, r)
	if got := s.Player.X - x; got != 15 {
		t.Errorf("dash move = %v, want 15", got)
	}
	if s.Player.DashCooldown != 1968*time.Millisecond {
		t.Errorf("cooldown = %v, dash re-triggered", s.Player.DashCooldown)
	}

	// Run the dash out.
	for i := 0; i < 20; i++ {
		Step(s, nil, epoch, r)
	}
	if s.Player.Dashing() {
		t.Fatal("dash never ended")
	}
	x = s.Player.X
	Step(s, input.Keys{input.KeyRight: true}, epoch, r)
	if got := s.Player.X - x; got != 5 {
		t.Errorf("post-dash move = %v, want 5", got)
	}
}

func TestStepDashKeepsSpeedPowerUp(t *testing.T) {
	s, r := newTestState(t)
	s.Player.Speed = 7
	s.Player.X = 100

	Step(s, input.Keys{input.KeyDash: true}, epoch, r)
	for s.Player.Dashing() {
		Step(s, nil, epoch, r)
	}
	if s.Player.Speed != 7 {
		t.Errorf("speed after dash = %v, want 7", s.Player.Speed)
	}
}

func TestStepPausedOrOverIsNoop(t *testing.T) {
	for _, set := range []func(*State){
		func(s *State) { s.Paused = true },
		func(s *State) { s.Over = true },
	} {
		s, r := newTestState(t)
		set(s)
		x := s.Player.X
		if Step(s, input.Keys{input.KeyLeft: true}, epoch.Add(time.Minute), r) {
			t.Error("reported dead")
		}
		if s.Player.X != x || s.Wave != 1 {
			t.Error("simulation advanced")
		}
	}
}

func TestStepReportsDeath(t *testing.T) {
	s, r := newTestState(t)
	s.Player.Health = 10
	s.EnemyBullets = []*object.Bullet{
		object.NewBullet(390, 490, 10, 4, object.DirDown),
		object.NewBullet(400, 490, 10, 4, object.DirDown),
	}
	if !Step(s, nil, epoch, r) {
		t.Fatal("death not reported")
	}
	if s.Player.Health != -10 {
		t.Errorf("health = %d, want -10 (damage is not floored)", s.Player.Health)
	}
}

func TestPowerUpEffectsExhaustive(t *testing.T) {
	for _, k := range object.PowerUpKinds {
		if _, ok := powerUpEffects[k]; !ok {
			t.Errorf("no effect for %v", k)
		}
	}
	if len(powerUpEffects) != len(object.PowerUpKinds) {
		t.Errorf("effects = %d, kinds = %d", len(powerUpEffects), len(object.PowerUpKinds))
	}
}
