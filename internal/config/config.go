// Package config provides YAML-based board configuration loading and
// difficulty preset mapping.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-sweeper/internal/minefield"
)

// Preset names, also used as game IDs by the registry.
const (
	PresetBeginner     = "beginner"
	PresetIntermediate = "intermediate"
	PresetExpert       = "expert"
	PresetCustom       = "custom"
)

// Presets lists the preset names in menu order.
var Presets = []string{PresetBeginner, PresetIntermediate, PresetExpert, PresetCustom}

// ErrUnknownPreset is returned for a preset name not in Presets.
var ErrUnknownPreset = errors.New("config: unknown preset")

// ErrInvalidBoard is returned by Validate for an unplayable board.
var ErrInvalidBoard = errors.New("config: invalid board")

// SweeperConfig contains all configuration for the sweeper game.
type SweeperConfig struct {
	Beginner     BoardConfig   `yaml:"beginner"`
	Intermediate BoardConfig   `yaml:"intermediate"`
	Expert       BoardConfig   `yaml:"expert"`
	Custom       BoardConfig   `yaml:"custom"`
	Display      DisplayConfig `yaml:"display"`
}

// BoardConfig is the geometry of one preset.
type BoardConfig struct {
	Rows  int `yaml:"rows"`
	Cols  int `yaml:"cols"`
	Mines int `yaml:"mines"`
}

// DisplayConfig controls how the board is drawn.
type DisplayConfig struct {
	CellWidth     int  `yaml:"cell_width"`     // Screen columns per cell (1-3)
	Colors        bool `yaml:"colors"`         // Color digits and markers
	QuestionMarks bool `yaml:"question_marks"` // Show the Question marker instead of skipping it visually
}

// Density returns the fraction of cells holding a mine.
func (b BoardConfig) Density() float64 {
	if b.Rows <= 0 || b.Cols <= 0 {
		return 0
	}
	return float64(b.Mines) / float64(b.Rows*b.Cols)
}

// Validate checks the board against the engine's limits.
func (b BoardConfig) Validate() error {
	if b.Rows < 1 || b.Cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBoard, b.Rows, b.Cols)
	}
	if b.Mines < 0 {
		return fmt.Errorf("%w: %d mines", ErrInvalidBoard, b.Mines)
	}
	if limit := minefield.MaxMines(b.Rows, b.Cols); b.Mines > limit {
		return fmt.Errorf("%w: %d mines on %dx%d, at most %d", ErrInvalidBoard, b.Mines, b.Rows, b.Cols, limit)
	}
	return nil
}

// Board returns the geometry of a named preset.
func (c SweeperConfig) Board(preset string) (BoardConfig, error) {
	switch preset {
	case PresetBeginner:
		return c.Beginner, nil
	case PresetIntermediate:
		return c.Intermediate, nil
	case PresetExpert:
		return c.Expert, nil
	case PresetCustom:
		return c.Custom, nil
	default:
		return BoardConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
}

// Validate checks every preset and the display settings.
func (c SweeperConfig) Validate() error {
	for _, name := range Presets {
		b, _ := c.Board(name)
		if err := b.Validate(); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
	}
	if c.Display.CellWidth < 1 || c.Display.CellWidth > 3 {
		return fmt.Errorf("%w: cell_width %d not in 1..3", ErrInvalidBoard, c.Display.CellWidth)
	}
	return nil
}
