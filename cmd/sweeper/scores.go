package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/registry"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

var (
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <preset>",
	Short: "Show best times for a preset",
	Long: `Display the fastest cleared boards and overall statistics for a preset.

Examples:
  sweeper scores beginner
  sweeper scores expert --limit 20
  sweeper scores custom --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results for the preset")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of best times to show")
}

func runScores(_ *cobra.Command, args []string) error {
	preset := args[0]

	if !registry.Exists(preset) {
		return fmt.Errorf("unknown preset %q (run 'sweeper list' to see available boards)", preset)
	}

	game, err := registry.Create(preset)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(preset); err != nil {
			return fmt.Errorf("clearing results: %w", err)
		}
		fmt.Printf("Cleared all results for %s.\n", title)
		return nil
	}

	entries, err := store.BestTimes(preset, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving best times: %w", err)
	}

	fmt.Printf("Best Times - %s\n", title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No cleared boards yet.")
		fmt.Println()
		fmt.Printf("Play 'sweeper play %s' to set the first best time!\n", preset)
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-5s  %-6s  %s\n", "Rank", "Time", "3BV", "3BV/s", "Date")
	fmt.Printf("  %-4s  %-9s  %-5s  %-6s  %s\n", "----", "----", "---", "-----", "----")

	for i, e := range entries {
		bbbv, rate := "-", "-"
		if e.BBBV > 0 {
			bbbv = fmt.Sprintf("%d", e.BBBV)
			rate = fmt.Sprintf("%.2f", e.BBBVPerSecond())
		}
		fmt.Printf("  %-4d  %-9s  %-5s  %-6s  %s\n",
			i+1, fmt.Sprintf("%.2fs", e.Duration.Seconds()), bbbv, rate, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := store.Stats(preset)
	if err == nil && st.Played > 0 {
		fmt.Println()
		fmt.Printf("Played: %d  Won: %d (%.0f%%)  Avg: %.2fs\n",
			st.Played, st.Won, st.WinRate()*100, st.AvgTime.Seconds())
	}
	return nil
}
