package loop

import (
	"github.com/tomz197/survival/internal/object"
	"github.com/tomz197/survival/internal/physics"
)

// indexBullets rebuilds the broad-phase grid from the live player bullets.
// Grid indices are positions in bullets.
func indexBullets(grid *physics.SpatialGrid, bullets []*object.Bullet) {
	grid.Clear()
	for i, b := range bullets {
		grid.Insert(b.Bounds(), i)
	}
}

// resolveBulletHits applies every live player bullet overlapping e, oldest
// first. Each hit consumes its bullet. Reports whether e died; a dead enemy
// absorbs no further bullets so it is scored once.
func resolveBulletHits(grid *physics.SpatialGrid, bullets []*object.Bullet, e *object.Enemy, damage int) (killed bool) {
	eb := e.Bounds()
	for _, i := range grid.Query(eb) {
		b := bullets[i]
		if b.IsDestroyed() || !physics.Overlaps(b.Bounds(), eb) {
			continue
		}
		b.MarkDestroyed()
		if e.Hit(damage) {
			e.MarkDestroyed()
			return true
		}
	}
	return false
}
