// Package minefield implements the Minesweeper state engine: the cell grid,
// lazy mine placement with a safe first move, the reveal cascade, flag
// cycling, win/loss detection and elapsed-time tracking.
//
// The package has no knowledge of terminals or input devices. The platform
// layer drives a Board through Click, Flag and Update.
package minefield

import "fmt"

// MineValue is the cell value reserved for mines, independent of the
// cell's display state.
const MineValue uint8 = 15

// CellState is the display state of a cell.
type CellState uint8

const (
	StateDiscovered CellState = iota
	StateBlank
	StateFlagged
	StateQuestion
	StateExploded
	StateOther
)

// String returns a human-readable name for the state.
func (s CellState) String() string {
	switch s {
	case StateDiscovered:
		return "Discovered"
	case StateBlank:
		return "Blank"
	case StateFlagged:
		return "Flagged"
	case StateQuestion:
		return "Question"
	case StateExploded:
		return "Exploded"
	default:
		return "Other"
	}
}

// hidden reports whether the state is one of the covered states a player
// can still act on.
func (s CellState) hidden() bool {
	return s == StateBlank || s == StateFlagged || s == StateQuestion
}

// Cell is a single grid square: a display state plus an adjacency count
// (0..8) or MineValue.
type Cell struct {
	state CellState
	value uint8
}

// NewCell returns a covered, mine-free cell.
func NewCell() Cell {
	return Cell{state: StateBlank}
}

// State returns the display state.
func (c Cell) State() CellState {
	return c.state
}

// Value returns the raw value: the adjacency count or MineValue.
func (c Cell) Value() uint8 {
	return c.value
}

// IsMine reports whether the cell holds a mine.
func (c Cell) IsMine() bool {
	return c.value == MineValue
}

// Count returns the adjacency count for discovered cells.
// The second result is false for every other state.
func (c Cell) Count() (int, bool) {
	if c.state != StateDiscovered || c.IsMine() {
		return 0, false
	}
	return int(c.value), true
}

// Reveal uncovers a Blank cell, keeping its value.
// Returns true when the cell has no adjacent mines, which tells the
// cascade to keep going. Any other state is left untouched.
func (c *Cell) Reveal() bool {
	if c.state != StateBlank {
		return false
	}
	c.state = StateDiscovered
	return c.value == 0
}

// CycleFlag advances Blank -> Flagged -> Question -> Blank and returns the
// change to apply to the flagged-cell counter. Discovered cells are not
// affected.
func (c *Cell) CycleFlag() int {
	switch c.state {
	case StateBlank:
		c.state = StateFlagged
		return 1
	case StateFlagged:
		c.state = StateQuestion
		return 0
	case StateQuestion:
		c.state = StateBlank
		return -1
	default:
		return 0
	}
}

// Equal compares cells the way a renderer sees them: all covered states
// are interchangeable, discovered cells must show the same number.
// Not used for game logic.
func (c Cell) Equal(other Cell) bool {
	if c.state.hidden() && other.state.hidden() {
		return true
	}
	if c.state == StateDiscovered && other.state == StateDiscovered {
		return c.value == other.value
	}
	return false
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %s)", c.value, c.state)
}

// CellFromText decodes a single fixture character.
//
//	'0'..'9' discovered cell with that count
//	'm'      covered mine
//	'?'      covered safe cell
//	other    opaque cell
func CellFromText(r rune) Cell {
	switch {
	case r >= '0' && r <= '9':
		return Cell{state: StateDiscovered, value: uint8(r - '0')}
	case r == 'm':
		return Cell{state: StateBlank, value: MineValue}
	case r == '?':
		return Cell{state: StateBlank}
	default:
		return Cell{state: StateOther}
	}
}
