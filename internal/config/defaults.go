package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-duel/internal/core"
)

//go:embed defaults/duel.yaml
var defaultDuelYAML []byte

// DefaultDuelConfig returns the default duel configuration.
func DefaultDuelConfig() DuelConfig {
	return DuelConfig{
		Arena: ArenaConfig{
			Width:          500,
			Height:         500,
			Background:     string(core.ColorWhite),
			TickIntervalMS: 49,
		},
		Players: PlayerConfig{
			Size:      20,
			Offset:    50,
			Velocity:  7,
			ShotSpeed: 0.1,
			MoveSpeed: 1,
			Colors:    [2]string{string(core.ColorBlack), string(core.ColorRed)},
		},
		Input: InputConfig{
			PickRadius: 10,
			EdgeMargin: 50,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDuelYAML
}
