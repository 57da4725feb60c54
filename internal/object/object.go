// Package object defines the survival game's entities: the player ship,
// falling enemies, bullets and collectible power-ups.
package object

import (
	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/physics"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
}

// Object is a drawable entity with an axis-aligned collision box.
type Object interface {
	// Bounds returns the collision rectangle in playfield coordinates.
	Bounds() physics.Rect

	// Draw paints the object onto ctx.Surface.
	Draw(ctx DrawContext)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on the next compaction pass.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Compact removes destroyed objects in place, preserving the order of the
// survivors. The tail of the backing array is cleared so removed objects can
// be collected.
func Compact[T Destructible](objs []T) []T {
	kept := objs[:0]
	for _, o := range objs {
		if !o.IsDestroyed() {
			kept = append(kept, o)
		}
	}
	clear(objs[len(kept):])
	return kept
}
