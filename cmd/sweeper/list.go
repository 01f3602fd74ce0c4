package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/config"
	"github.com/vovakirdan/tui-sweeper/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board presets",
	Long:  `Shows every registered board preset with its size and mine count.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No boards available.")
		return nil
	}

	cfg, err := config.LoadSweeper(flagConfig)
	if err != nil {
		return err
	}

	fmt.Println("Available boards:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-7s  %5s  %s\n", maxIDLen, "ID", "Size", "Mines", "Density")
	fmt.Printf("  %-*s  %-7s  %5s  %s\n", maxIDLen, "--", "----", "-----", "-------")

	for _, g := range games {
		b, err := cfg.Board(g.ID)
		if err != nil {
			continue
		}
		size := fmt.Sprintf("%dx%d", b.Rows, b.Cols)
		fmt.Printf("  %-*s  %-7s  %5d  %5.1f%%\n", maxIDLen, g.ID, size, b.Mines, b.Density()*100)
	}

	fmt.Println()
	fmt.Println("Run 'sweeper play <id>' to play a board.")
	return nil
}
