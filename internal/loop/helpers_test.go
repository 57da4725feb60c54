package loop

import (
	"fmt"
	"testing"
	"time"

	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/object"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestState returns a fresh state started at epoch with default rules.
// The player sits at (375, 500) with a 50x50 box.
func newTestState(t *testing.T) (*State, *config.Rules) {
	t.Helper()
	r := config.Default()
	return NewState(r, epoch), r
}

// stillEnemy returns an enemy that does not move or fire during the test.
func stillEnemy(x, y float64, health int, now time.Time) *object.Enemy {
	return &object.Enemy{X: x, Y: y, Size: 50, Speed: 0, Health: health, LastShot: now}
}

// recordSurface records paint calls as strings.
type recordSurface struct {
	w, h    float64
	ops     []string
	clears  int
	present int
}

func newRecordSurface() *recordSurface {
	return &recordSurface{w: 800, h: 600}
}

func (r *recordSurface) Size() (float64, float64) { return r.w, r.h }

func (r *recordSurface) Clear() {
	r.clears++
	r.ops = r.ops[:0]
}

func (r *recordSurface) FillRect(x, y, w, h float64, c draw.Color) {
	r.ops = append(r.ops, fmt.Sprintf("rect %s %.0f,%.0f %.0fx%.0f", c, x, y, w, h))
}

func (r *recordSurface) StrokeCircle(cx, cy, radius float64, c draw.Color) {
	r.ops = append(r.ops, fmt.Sprintf("circle %s %.0f,%.0f r%.0f", c, cx, cy, radius))
}

func (r *recordSurface) Text(x, y, size float64, s string, c draw.Color) {
	r.ops = append(r.ops, fmt.Sprintf("text %s %q", c, s))
}

func (r *recordSurface) Present() error {
	r.present++
	return nil
}

func (r *recordSurface) has(op string) bool {
	for _, o := range r.ops {
		if o == op {
			return true
		}
	}
	return false
}
