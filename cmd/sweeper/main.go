// sweeper is a Minesweeper game for the terminal.
//
// Usage:
//
//	sweeper list               - List board presets
//	sweeper play [preset]      - Play a preset (default: beginner)
//	sweeper menu               - Pick a board interactively
//	sweeper scores <preset>    - Show best times for a preset
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible boards
//	--db <path>     - Set database path (default: ~/.sweeper/results.db)
//	--config <path> - Load board presets from a YAML file
//	--debug         - Write debug logs to ~/.sweeper/debug.log
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	// Import the game to register its presets
	_ "github.com/vovakirdan/tui-sweeper/internal/games/sweeper"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagDebug  bool

	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "Minesweeper in your terminal",
	Long: `Sweeper is a terminal Minesweeper with the classic beginner,
intermediate and expert boards plus a configurable custom board.

Available commands:
  list     - Show all board presets
  play     - Play a preset directly
  menu     - Interactive board picker
  scores   - View best times

Examples:
  sweeper list
  sweeper play expert
  sweeper play custom --rows 20 --cols 40 --mines 150
  sweeper menu
  sweeper scores beginner`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sweeper/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to ~/.sweeper/debug.log")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setupLogging keeps the alternate screen clean: logs are dropped unless
// --debug sends them to a file.
func setupLogging(_ *cobra.Command, _ []string) error {
	if !flagDebug {
		log.SetDefault(log.New(io.Discard))
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("debug log: %w", err)
	}
	dir := filepath.Join(home, ".sweeper")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("debug log: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("debug log: %w", err)
	}
	logFile = f

	log.SetDefault(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		Level:           log.DebugLevel,
		Prefix:          "sweeper",
	}))
	log.Debug("debug logging enabled", "fps", flagFPS, "seed", flagSeed)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the results database. A failure is reported and play
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		log.Warn("results database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
