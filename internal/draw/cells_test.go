package draw

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

type cell struct {
	r     rune
	style tcell.Style
}

// MockScreen is a minimal mock for tcell.Screen recording painted cells.
type MockScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]cell
	shown         int
}

func newMockScreen(w, h int) *MockScreen {
	return &MockScreen{width: w, height: h, cells: make(map[[2]int]cell)}
}

func (m *MockScreen) Size() (int, int) { return m.width, m.height }

func (m *MockScreen) Clear() { clear(m.cells) }

func (m *MockScreen) Show() { m.shown++ }

func (m *MockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.cells[[2]int{x, y}] = cell{r: mainc, style: style}
}

func TestCellScreenFillRect(t *testing.T) {
	mock := newMockScreen(80, 30)
	cs := NewCellScreen(mock, 800, 600)
	cs.Clear()

	// 0.1 col per unit, 0.05 row per unit.
	cs.FillRect(100, 100, 50, 50, ColorGreen)

	got, ok := mock.cells[[2]int{10, 5}]
	if !ok {
		t.Fatal("expected cell (10,5) painted")
	}
	_, bg, _ := got.style.Decompose()
	if bg != TcellColor(ColorGreen) {
		t.Errorf("background = %v, want green", bg)
	}
	if _, ok := mock.cells[[2]int{20, 20}]; ok {
		t.Error("cell outside rect painted")
	}
}

func TestCellScreenTextKeepsBackground(t *testing.T) {
	mock := newMockScreen(80, 30)
	cs := NewCellScreen(mock, 800, 600)
	cs.Clear()

	cs.FillRect(0, 0, 800, 600, ColorYellow)
	cs.Text(100, 110, 20, "5.0s", ColorBlack)

	got := mock.cells[[2]int{10, 5}]
	if got.r != '5' {
		t.Fatalf("rune = %q, want '5'", got.r)
	}
	fg, bg, _ := got.style.Decompose()
	if fg != TcellColor(ColorBlack) || bg != TcellColor(ColorYellow) {
		t.Errorf("style fg=%v bg=%v, want black on yellow", fg, bg)
	}
}

func TestCellScreenClipsOffscreen(t *testing.T) {
	mock := newMockScreen(10, 10)
	cs := NewCellScreen(mock, 100, 100)
	cs.Clear()

	cs.FillRect(-50, -50, 20, 20, ColorRed)
	cs.Text(95, 50, 0, "overflow", ColorWhite)
	cs.StrokeCircle(0, 0, 500, ColorCyan)

	for pos := range mock.cells {
		if pos[0] < 0 || pos[0] >= 10 || pos[1] < 0 || pos[1] >= 10 {
			t.Errorf("painted outside screen at %v", pos)
		}
	}
	if err := cs.Present(); err != nil {
		t.Fatal(err)
	}
	if mock.shown != 1 {
		t.Errorf("Show called %d times, want 1", mock.shown)
	}
}
