package object

import (
	"fmt"
	"time"

	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/physics"
)

// PowerUpKind identifies a power-up's effect.
type PowerUpKind int

const (
	PowerUpHealth PowerUpKind = iota
	PowerUpShield
	PowerUpSpeed
	PowerUpBullet

	numPowerUpKinds
)

// PowerUpKinds lists every kind in declaration order.
var PowerUpKinds = [numPowerUpKinds]PowerUpKind{PowerUpHealth, PowerUpShield, PowerUpSpeed, PowerUpBullet}

var powerUpNames = [numPowerUpKinds]string{"health", "shield", "speed", "bullet"}

// String returns the lower-case kind name.
func (k PowerUpKind) String() string {
	if k < 0 || k >= numPowerUpKinds {
		return fmt.Sprintf("PowerUpKind(%d)", int(k))
	}
	return powerUpNames[k]
}

// PowerUp is a collectible that expires after its lifetime.
type PowerUp struct {
	X, Y      float64
	Size      float64
	Kind      PowerUpKind
	Remaining time.Duration
	SpawnedAt time.Time
	destroyed bool
}

// Age recomputes the remaining lifetime from the game time elapsed since spawn
// and reports whether the power-up is still alive.
func (p *PowerUp) Age(now time.Time, lifetime time.Duration) bool {
	p.Remaining = max(0, lifetime-now.Sub(p.SpawnedAt))
	return p.Remaining > 0
}

// MarkDestroyed marks the power-up for removal.
func (p *PowerUp) MarkDestroyed() { p.destroyed = true }

// IsDestroyed returns true if the power-up is marked for destruction.
func (p *PowerUp) IsDestroyed() bool { return p.destroyed }

// Bounds returns the power-up's collision box.
func (p *PowerUp) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

// Label returns the countdown text shown on the power-up.
func (p *PowerUp) Label() string {
	return fmt.Sprintf("%.1fs", p.Remaining.Seconds())
}

// Draw renders a yellow square with the remaining lifetime in seconds.
func (p *PowerUp) Draw(ctx DrawContext) {
	ctx.Surface.FillRect(p.X, p.Y, p.Size, p.Size, draw.ColorYellow)
	ctx.Surface.Text(p.X+2, p.Y+p.Size/2, 12, p.Label(), draw.ColorBlack)
}
