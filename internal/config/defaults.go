package config

import (
	_ "embed"
)

//go:embed defaults/sweeper.yaml
var defaultSweeperYAML []byte

// DefaultSweeperConfig returns the built-in configuration used when no
// YAML file can be read.
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		Beginner:     BoardConfig{Rows: 9, Cols: 9, Mines: 10},
		Intermediate: BoardConfig{Rows: 16, Cols: 16, Mines: 40},
		Expert:       BoardConfig{Rows: 16, Cols: 30, Mines: 99},
		Custom:       BoardConfig{Rows: 12, Cols: 20, Mines: 36},
		Display: DisplayConfig{
			CellWidth:     2,
			Colors:        true,
			QuestionMarks: true,
		},
	}
}
