// duel is a two-player arena where each player bounces along its side of the
// playfield and fires at the other, played in the terminal.
//
// Usage:
//
//	duel play               - Play in this terminal
//	duel serve              - Start SSH server for remote play
//	duel presets            - Show saved player presets
//	duel config             - Print the default configuration
//
// Global flags:
//
//	--config <path>     - Config file, YAML or TOML (default: search order)
//	--db <path>         - Set database path (default: ~/.duel/duel.db)
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duel",
	Short: "Duel - A two-player shooting arena in your terminal",
	Long: `Duel puts two players on opposite sides of a playfield. Each one bounces
between the top and bottom walls and fires on its own; every bullet that
reaches the other player scores a point.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  presets  - Show or clear saved player presets
  config   - Print the default configuration

Examples:
  duel play
  duel play --config ./duel.toml
  duel serve --ssh :2222
  duel presets --clear`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.duel/duel.db", "Path to presets database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates a logger writing to w at the level given by --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// loadConfig loads the duel configuration, exiting on error.
func loadConfig() config.DuelConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
