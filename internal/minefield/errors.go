package minefield

import "errors"

var (
	// ErrInvalidCoordinate is returned for a move outside the grid.
	ErrInvalidCoordinate = errors.New("minefield: coordinate out of range")

	// ErrInvalidDimensions is returned when rows or cols is below 1.
	ErrInvalidDimensions = errors.New("minefield: rows and cols must be at least 1")

	// ErrInvalidMineCount is returned for a negative mine count.
	ErrInvalidMineCount = errors.New("minefield: mine count must not be negative")

	// ErrTooManyMines is returned when the mines cannot all be placed
	// outside the first-move exclusion zone.
	ErrTooManyMines = errors.New("minefield: too many mines for board size")
)
