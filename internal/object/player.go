package object

import (
	"time"

	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/physics"
)

// Player is the user-controlled ship.
type Player struct {
	X, Y      float64
	Size      float64
	BaseSpeed float64
	Speed     float64 // Current speed, raised permanently by speed power-ups
	Health    int
	Score     int
	Bullets   []*Bullet
	Shield    bool

	DashCooldown  time.Duration
	DashRemaining time.Duration
	LastShot      time.Time
}

// NewPlayer creates a player at the spawn position near the bottom centre.
func NewPlayer(r *config.Rules) *Player {
	return &Player{
		X:         r.Field.Width/2 - r.Player.Size/2,
		Y:         r.Field.Height - r.Player.BottomOffset,
		Size:      r.Player.Size,
		BaseSpeed: r.Player.Speed,
		Speed:     r.Player.Speed,
		Health:    r.Player.MaxHealth,
	}
}

// Bounds returns the player's collision box.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

// Dashing reports whether a dash is in progress.
func (p *Player) Dashing() bool {
	return p.DashRemaining > 0
}

// MoveSpeed returns the distance moved per tick, including any dash boost.
func (p *Player) MoveSpeed(dashMultiplier float64) float64 {
	if p.Dashing() {
		return p.Speed * dashMultiplier
	}
	return p.Speed
}

// Heal adds n health, capped at limit. Health already above limit is left alone.
func (p *Player) Heal(n, limit int) {
	if p.Health >= limit {
		return
	}
	p.Health = min(limit, p.Health+n)
}

// Damage subtracts n health unless the shield is up. Reports whether damage applied.
func (p *Player) Damage(n int) bool {
	if p.Shield {
		return false
	}
	p.Health -= n
	return true
}

// Dead reports whether health has reached zero.
func (p *Player) Dead() bool {
	return p.Health <= 0
}

// Draw renders the ship and, when shielded, a ring around it.
func (p *Player) Draw(ctx DrawContext) {
	ctx.Surface.FillRect(p.X, p.Y, p.Size, p.Size, draw.ColorBlue)
	if p.Shield {
		ctx.Surface.StrokeCircle(p.X+p.Size/2, p.Y+p.Size/2, p.Size, draw.ColorCyan)
	}
}
