package draw

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// CellScreen is a Surface backed by a tcell.Screen. Each terminal cell is one
// paint unit; rectangles are filled by cell background color.
type CellScreen struct {
	screen        tcell.Screen
	logicalWidth  float64
	logicalHeight float64
	cols, rows    int
	scaleX        float64
	scaleY        float64
	bg            []Color // Background painted per cell this frame
}

// NewCellScreen wraps an initialized tcell screen.
func NewCellScreen(screen tcell.Screen, logicalWidth, logicalHeight float64) *CellScreen {
	cs := &CellScreen{
		screen:        screen,
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	cs.resize()
	return cs
}

// TcellColor maps a palette color to a tcell color.
func TcellColor(c Color) tcell.Color {
	if c == ColorNone {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c.ANSI()))
}

func (cs *CellScreen) resize() {
	cols, rows := cs.screen.Size()
	cols, rows = max(cols, 1), max(rows, 1)
	if cols != cs.cols || rows != cs.rows {
		cs.bg = make([]Color, cols*rows)
		cs.cols, cs.rows = cols, rows
	}
	cs.scaleX = float64(cols) / cs.logicalWidth
	cs.scaleY = float64(rows) / cs.logicalHeight
}

// Size returns the logical dimensions.
func (cs *CellScreen) Size() (float64, float64) {
	return cs.logicalWidth, cs.logicalHeight
}

// Clear picks up resizes and blanks the screen.
func (cs *CellScreen) Clear() {
	cs.resize()
	clear(cs.bg)
	cs.screen.Clear()
}

// FillRect paints every cell the rectangle covers. Rectangles smaller than a
// cell still paint the cell containing their top-left corner.
func (cs *CellScreen) FillRect(x, y, w, h float64, c Color) {
	c0 := int(math.Floor(x * cs.scaleX))
	r0 := int(math.Floor(y * cs.scaleY))
	c1 := max(int(math.Ceil((x+w)*cs.scaleX))-1, c0)
	r1 := max(int(math.Ceil((y+h)*cs.scaleY))-1, r0)
	style := tcell.StyleDefault.Background(TcellColor(c))
	for row := max(r0, 0); row <= min(r1, cs.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, cs.cols-1); col++ {
			cs.bg[row*cs.cols+col] = c
			cs.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// StrokeCircle plots the circle outline with dot glyphs over whatever
// background is already painted.
func (cs *CellScreen) StrokeCircle(cx, cy, r float64, c Color) {
	var buf [circleSegments]Point
	for _, p := range CirclePoints(buf[:], cx, cy, r) {
		col := int(math.Round(p.X * cs.scaleX))
		row := int(math.Round(p.Y * cs.scaleY))
		cs.setGlyph(col, row, '•', c)
	}
}

// Text writes s starting at the cell containing (x, y-size/2).
func (cs *CellScreen) Text(x, y, size float64, s string, c Color) {
	col := int(math.Round(x * cs.scaleX))
	row := int(math.Round((y - size/2) * cs.scaleY))
	for _, r := range s {
		cs.setGlyph(col, row, r, c)
		col++
	}
}

func (cs *CellScreen) setGlyph(col, row int, r rune, c Color) {
	if col < 0 || col >= cs.cols || row < 0 || row >= cs.rows {
		return
	}
	style := tcell.StyleDefault.Foreground(TcellColor(c))
	if bg := cs.bg[row*cs.cols+col]; bg != ColorNone {
		style = style.Background(TcellColor(bg))
	}
	cs.screen.SetContent(col, row, r, nil, style)
}

// Present shows the frame.
func (cs *CellScreen) Present() error {
	cs.screen.Show()
	return nil
}

// TextWidth returns the logical width of s: one cell per rune.
func (cs *CellScreen) TextWidth(s string, _ float64) float64 {
	return float64(len([]rune(s))) / cs.scaleX
}
