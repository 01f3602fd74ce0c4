package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
	"github.com/vovakirdan/tui-sweeper/internal/platform/tui"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
)

var (
	flagDifficulty string
	flagRows       int
	flagCols       int
	flagMines      int
)

var playCmd = &cobra.Command{
	Use:   "play [preset]",
	Short: "Play a board",
	Long: `Start playing the given preset (beginner when omitted).

Controls:
  Arrows/WASD/HJKL   - Move cursor
  Space/Enter/X      - Reveal (on a number: chord)
  F/M                - Cycle flag / question mark
  P                  - Pause
  R                  - New board
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - beginner board
  normal - intermediate board
  hard   - expert board

Setting --rows, --cols or --mines selects the custom preset.

Examples:
  sweeper play
  sweeper play expert
  sweeper play --difficulty normal
  sweeper play custom --rows 20 --cols 40 --mines 150
  sweeper play --config ./my-boards.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagRows, "rows", 0, "Custom board rows")
	playCmd.Flags().IntVar(&flagCols, "cols", 0, "Custom board columns")
	playCmd.Flags().IntVar(&flagMines, "mines", 0, "Custom board mine count")
}

func runPlay(cmd *cobra.Command, args []string) error {
	preset, err := resolvePreset(cmd, args)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	sweeper.SetConfigPath(flagConfig)

	if preset == config.PresetCustom {
		cfg, err = customBoard(cmd, cfg)
		if err != nil {
			return err
		}
	}

	game, err := registry.Create(preset)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// resolvePreset picks the preset from the argument, the custom board
// flags or --difficulty, in that order.
func resolvePreset(cmd *cobra.Command, args []string) (string, error) {
	customFlags := cmd.Flags().Changed("rows") || cmd.Flags().Changed("cols") || cmd.Flags().Changed("mines")

	if len(args) == 1 {
		preset := args[0]
		if !registry.Exists(preset) {
			return "", fmt.Errorf("unknown preset %q (run 'sweeper list' to see available boards)", preset)
		}
		if customFlags && preset != config.PresetCustom {
			return "", fmt.Errorf("--rows, --cols and --mines only apply to the custom preset")
		}
		return preset, nil
	}

	if customFlags {
		return config.PresetCustom, nil
	}

	if flagDifficulty != "" {
		if !config.IsDifficulty(flagDifficulty) {
			return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		return config.PresetForDifficulty(config.DifficultyPreset(flagDifficulty)), nil
	}

	return config.PresetBeginner, nil
}

// customBoard validates the custom board flags against the loaded config
// and stores the result in the runtime config.
func customBoard(cmd *cobra.Command, cfg core.RuntimeConfig) (core.RuntimeConfig, error) {
	sc, err := config.LoadSweeper(flagConfig)
	if err != nil {
		return cfg, err
	}

	sc = config.WithCustomBoard(sc, config.BoardConfig{Rows: flagRows, Cols: flagCols, Mines: flagMines})
	board := sc.Custom
	if cmd.Flags().Changed("mines") {
		board.Mines = flagMines
	}
	if err := board.Validate(); err != nil {
		return cfg, err
	}

	cfg.Rows = board.Rows
	cfg.Cols = board.Cols
	cfg.Mines = board.Mines
	return cfg, nil
}
