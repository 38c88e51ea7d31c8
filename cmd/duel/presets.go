package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/engine"
	"github.com/vovakirdan/tui-duel/internal/storage"
)

var flagClearPresets bool

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Show saved player presets",
	Long: `Display the color, shot speed and move speed saved for each side.

Presets are saved whenever a player is customized during play and are
applied when the next session starts.

Examples:
  duel presets
  duel presets --clear`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

func init() {
	presetsCmd.Flags().BoolVar(&flagClearPresets, "clear", false, "Delete all saved presets")
}

func runPresets(_ *cobra.Command, _ []string) {
	// Open preset storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening presets database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearPresets {
		if err := store.ClearPresets(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing presets: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Presets cleared.")
		return
	}

	presets, err := store.Presets()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving presets: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Player Presets")
	fmt.Println()

	if len(presets) == 0 {
		fmt.Println("No presets saved yet.")
		fmt.Println()
		fmt.Println("Customize a player in 'duel play' to save one.")
		return
	}

	// Print header
	fmt.Printf("  %-10s  %-8s  %-10s  %-10s  %s\n", "Player", "Color", "Shot Speed", "Move Speed", "Updated")
	fmt.Printf("  %-10s  %-8s  %-10s  %-10s  %s\n", "------", "-----", "----------", "----------", "-------")

	for _, p := range presets {
		fmt.Printf("  %-10s  %-8s  %-10.1f  %-10.1f  %s\n",
			engine.Side(p.Side).String(),
			p.Color,
			p.ShotSpeed,
			p.MoveSpeed,
			p.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
}
