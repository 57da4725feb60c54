package object

import (
	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/physics"
)

// Bullet directions along the y axis.
const (
	DirUp   = -1.0 // Player bullets
	DirDown = 1.0  // Enemy bullets
)

// Bullet is a square projectile travelling vertically.
type Bullet struct {
	X, Y      float64
	Size      float64
	Speed     float64 // Pixels per tick
	Dir       float64 // DirUp or DirDown
	destroyed bool
}

// NewBullet creates a bullet with its top-left corner at (x, y).
func NewBullet(x, y, size, speed, dir float64) *Bullet {
	return &Bullet{X: x, Y: y, Size: size, Speed: speed, Dir: dir}
}

// Advance moves the bullet one tick along its direction.
func (b *Bullet) Advance() {
	b.Y += b.Speed * b.Dir
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() { b.destroyed = true }

// IsDestroyed returns true if the bullet is marked for destruction.
func (b *Bullet) IsDestroyed() bool { return b.destroyed }

// Bounds returns the bullet's collision box.
func (b *Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: b.Size, H: b.Size}
}

// Draw renders player bullets red and enemy bullets orange.
func (b *Bullet) Draw(ctx DrawContext) {
	c := draw.ColorRed
	if b.Dir == DirDown {
		c = draw.ColorOrange
	}
	ctx.Surface.FillRect(b.X, b.Y, b.Size, b.Size, c)
}
