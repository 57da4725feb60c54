package physics

import (
	"math"
	"slices"
)

// SpatialGrid is a uniform grid for broad-phase collision detection on a bounded
// playfield. Rectangles are inserted into every cell they cover, so a query by
// rectangle finds every inserted rectangle that could overlap it.
//
// Positions outside the playfield are clamped to the border cells, which keeps
// the cell mapping monotonic: two overlapping rectangles always share a cell.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
	scratch     []int // Reusable result buffer for Query
}

// gridCell stores the indices of items that cover a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given playfield dimensions.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) to every cell covered by r.
func (g *SpatialGrid) Insert(r Rect, index int) {
	c0, r0, c1, r1 := g.cellRange(r)
	for row := r0; row <= r1; row++ {
		offset := row * g.cols
		for col := c0; col <= c1; col++ {
			cell := &g.cells[offset+col]
			cell.items = append(cell.items, index)
		}
	}
}

// Query returns the indices of all items sharing a cell with r, in ascending
// order and without duplicates. The returned slice is only valid until the
// next call to Query.
func (g *SpatialGrid) Query(r Rect) []int {
	out := g.scratch[:0]
	c0, r0, c1, r1 := g.cellRange(r)
	for row := r0; row <= r1; row++ {
		offset := row * g.cols
		for col := c0; col <= c1; col++ {
			out = append(out, g.cells[offset+col].items...)
		}
	}
	slices.Sort(out)
	out = slices.Compact(out)
	g.scratch = out
	return out
}

// cellRange converts a rectangle to the inclusive range of cells it covers.
func (g *SpatialGrid) cellRange(r Rect) (c0, r0, c1, r1 int) {
	c0, r0 = g.posToCell(r.X, r.Y)
	c1, r1 = g.posToCell(r.Right(), r.Bottom())
	return c0, r0, c1, r1
}

// posToCell converts playfield coordinates to grid cell coordinates.
// Clamps to valid range to handle off-field entities and floating point edges.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
