package object

import (
	"time"

	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/physics"
)

// Enemy falls from the top of the playfield and fires downward.
// Speed and health are fixed at spawn from the wave in effect then.
type Enemy struct {
	X, Y      float64
	Size      float64
	Speed     float64
	Health    int
	LastShot  time.Time
	destroyed bool
}

// Advance moves the enemy one tick downward.
func (e *Enemy) Advance() {
	e.Y += e.Speed
}

// ReadyToFire reports whether at least interval has passed since the last shot.
func (e *Enemy) ReadyToFire(now time.Time, interval time.Duration) bool {
	return now.Sub(e.LastShot) >= interval
}

// Hit subtracts damage and reports whether the enemy died.
func (e *Enemy) Hit(damage int) bool {
	e.Health -= damage
	return e.Health <= 0
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() { e.destroyed = true }

// IsDestroyed returns true if the enemy is marked for destruction.
func (e *Enemy) IsDestroyed() bool { return e.destroyed }

// Bounds returns the enemy's collision box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.Size, H: e.Size}
}

// Draw renders the enemy as a green square.
func (e *Enemy) Draw(ctx DrawContext) {
	ctx.Surface.FillRect(e.X, e.Y, e.Size, e.Size, draw.ColorGreen)
}
