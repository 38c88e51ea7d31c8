package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/config"
)

var flagCheckConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the embedded default configuration as YAML.

Save it to ~/.duel/config.yaml or ./configs/duel.yaml and edit it to change
the arena. Files given with --config may also be TOML.

With --check, the configuration that would be used is loaded and validated
instead.

Examples:
  duel config > ~/.duel/config.yaml
  duel config --check --config ./duel.toml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagCheckConfig, "check", false, "Validate the active configuration")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagCheckConfig {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg := loadConfig()
	fmt.Printf("Configuration OK: %vx%v arena, %v tick\n", cfg.Arena.Width, cfg.Arena.Height, cfg.TickInterval())
}
