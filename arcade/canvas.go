package arcade

import (
	"image/color"

	"github.com/plus3/gridarcade/geom"
)

// Canvas is the render surface a game paints cells onto.
type Canvas interface {
	Paint(p geom.Vec, c color.Color)
	Erase(p geom.Vec)
}

// Grid is an in-memory Canvas of Columns x Rows cells. Writes outside the grid
// are dropped.
type Grid struct {
	cols, rows int
	cells      []color.Color
}

// NewGrid creates an empty grid.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{}
	g.Resize(cols, rows)
	return g
}

// Resize changes the grid dimensions, keeping the cells that still fit.
func (g *Grid) Resize(cols, rows int) {
	if cols < 0 || rows < 0 {
		panic("arcade: negative grid size")
	}
	cells := make([]color.Color, cols*rows)
	for y := 0; y < min(rows, g.rows); y++ {
		for x := 0; x < min(cols, g.cols); x++ {
			cells[y*cols+x] = g.cells[y*g.cols+x]
		}
	}
	g.cols, g.rows, g.cells = cols, rows, cells
}

// Size returns the number of columns and rows.
func (g *Grid) Size() (int, int) {
	return g.cols, g.rows
}

func (g *Grid) index(p geom.Vec) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= g.cols || p.Y >= g.rows {
		return 0, false
	}
	return p.Y*g.cols + p.X, true
}

// Paint colors the cell at p. Cells outside the grid are ignored.
func (g *Grid) Paint(p geom.Vec, c color.Color) {
	if i, ok := g.index(p); ok {
		g.cells[i] = c
	}
}

// Erase clears the cell at p.
func (g *Grid) Erase(p geom.Vec) {
	if i, ok := g.index(p); ok {
		g.cells[i] = nil
	}
}

// At returns the color painted at p, if any.
func (g *Grid) At(p geom.Vec) (color.Color, bool) {
	i, ok := g.index(p)
	if !ok || g.cells[i] == nil {
		return nil, false
	}
	return g.cells[i], true
}

// Each calls fn for every painted cell in row-major order.
func (g *Grid) Each(fn func(p geom.Vec, c color.Color)) {
	for i, c := range g.cells {
		if c != nil {
			fn(geom.V(i%g.cols, i/g.cols), c)
		}
	}
}

// Count returns the number of painted cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c != nil {
			n++
		}
	}
	return n
}

// Clear erases every cell.
func (g *Grid) Clear() {
	clear(g.cells)
}
