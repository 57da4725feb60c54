// Package draw provides the paint surfaces the game renders onto: a half-block
// ANSI canvas for raw terminals and SSH sessions, and a tcell cell screen.
package draw

import (
	"fmt"
	"io"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Surface is an immediate-mode 2D paint target in logical coordinates.
// Implementations scale the logical playfield to their own resolution.
type Surface interface {
	// Size returns the logical width and height of the surface.
	Size() (width, height float64)
	// Clear erases everything painted since the last Clear.
	Clear()
	// FillRect paints a solid rectangle with its top-left corner at (x, y).
	FillRect(x, y, w, h float64, c Color)
	// StrokeCircle paints the outline of a circle.
	StrokeCircle(cx, cy, r float64, c Color)
	// Text paints a string with its baseline starting at (x, y).
	// size is the nominal font height in logical units; cell-based surfaces ignore it.
	Text(x, y, size float64, s string, c Color)
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// ResetStyle resets terminal colors and attributes.
func ResetStyle(w io.Writer) {
	fmt.Fprint(w, "\033[0m")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// TextMeasurer is implemented by surfaces that know how wide rendered text is.
type TextMeasurer interface {
	TextWidth(s string, size float64) float64
}

// glyphAspect approximates proportional font advance as a fraction of size.
const glyphAspect = 0.6

// MeasureText returns the logical width of s on surf, estimating from the
// font size when surf cannot measure.
func MeasureText(surf Surface, s string, size float64) float64 {
	if m, ok := surf.(TextMeasurer); ok {
		return m.TextWidth(s, size)
	}
	return float64(len(s)) * size * glyphAspect
}
