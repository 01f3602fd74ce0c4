package minefield

import (
	"errors"
	"fmt"
	"strings"
)

// Grid is a rows x cols matrix of cells, indexed [x][y] where x is the row.
type Grid [][]Cell

// NewGrid returns an all-Blank grid.
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for x := range g {
		g[x] = make([]Cell, cols)
		for y := range g[x] {
			g[x][y] = NewCell()
		}
	}
	return g
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the number of columns.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Rows() && y >= 0 && y < g.Cols()
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for x := range g {
		c[x] = append([]Cell(nil), g[x]...)
	}
	return c
}

// Neighbors calls fn for every in-bounds cell within Chebyshev distance 1
// of (x, y), excluding (x, y) itself.
func (g Grid) Neighbors(x, y int, fn func(nx, ny int)) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.InBounds(nx, ny) {
				fn(nx, ny)
			}
		}
	}
}

// CountNeighbors returns how many neighbors of (x, y) are in the given state.
func (g Grid) CountNeighbors(x, y int, state CellState) int {
	n := 0
	g.Neighbors(x, y, func(nx, ny int) {
		if g[nx][ny].state == state {
			n++
		}
	})
	return n
}

// ErrRaggedGrid is returned by ParseGrid when rows differ in length.
var ErrRaggedGrid = errors.New("minefield: fixture rows differ in length")

// ParseGrid decodes a text fixture, one string per row, using CellFromText.
func ParseGrid(lines []string) (Grid, error) {
	g := make(Grid, 0, len(lines))
	for i, line := range lines {
		row := make([]Cell, 0, len(line))
		for _, r := range line {
			row = append(row, CellFromText(r))
		}
		if i > 0 && len(row) != len(g[0]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, i, len(row), len(g[0]))
		}
		g = append(g, row)
	}
	return g, nil
}

// String renders the grid in the fixture alphabet where possible:
// discovered counts as digits, covered mines as 'm', other covered cells
// as '?', flags as 'F', exploded mines as 'X'.
func (g Grid) String() string {
	var sb strings.Builder
	for x, row := range g {
		if x > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			sb.WriteRune(c.glyph())
		}
	}
	return sb.String()
}

func (c Cell) glyph() rune {
	switch c.state {
	case StateDiscovered:
		if c.IsMine() {
			return '*'
		}
		return rune('0' + c.value)
	case StateBlank:
		if c.IsMine() {
			return 'm'
		}
		return '?'
	case StateFlagged:
		return 'F'
	case StateQuestion:
		return 'Q'
	case StateExploded:
		return 'X'
	default:
		return '.'
	}
}
