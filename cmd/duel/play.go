package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/platform/tui"
	"github.com/vovakirdan/tui-duel/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a duel in the current terminal.

Controls:
  Space      - Pause/resume
  1/2        - Select Player 1 or Player 2
  Up/Down    - Steer the selected player
  [ / ]      - Lower/raise shot speed
  - / +      - Lower/raise move speed
  C/Enter    - Customize the selected player's color
  Mouse      - Hover a player to push it away, click to customize
  Q/Ctrl+C   - Quit

Color and speed changes are saved and reused by the next session.

Examples:
  duel play
  duel play --config ./duel.toml
  duel play --log-level debug --log-file ./duel.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	defaultLog := ""
	if dir := config.UserDir(); dir != "" {
		defaultLog = filepath.Join(dir, "duel.log")
	}
	playCmd.Flags().StringVar(&flagLogFile, "log-file", defaultLog, "Log file (the terminal is used by the game)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()

	// Logs go to a file so they don't tear the alt screen
	logOut, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logOut.Close()

	logger, err := newLogger(logOut, "duel")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open preset storage
	var presets []storage.Preset
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open presets database", "error", err)
	} else {
		defer store.Close()
		if presets, err = store.Presets(); err != nil {
			logger.Warn("could not load presets", "error", err)
		}
	}

	arena, err := tui.NewArena(cfg, presets, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating arena: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size for the initial layout
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Arena:  arena,
		Logger: logger,
		Screen: core.RuntimeConfig{ScreenW: width, ScreenH: height},
	}
	if store != nil {
		opts.Store = store
	}

	if err := tui.Run(cmd.Context(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running duel: %v\n", err)
		os.Exit(1)
	}
}

// openLogFile opens path for appending, or discards logs when path is empty.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
