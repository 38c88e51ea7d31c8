package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-duel/internal/config"
	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/engine"
	"github.com/vovakirdan/tui-duel/internal/storage"
)

// Arena bundles a level with the canvas it draws on and the runner that owns it.
// Once the runner is started, the level and canvas may only be touched
// through Runner.Submit and Runner.Do.
type Arena struct {
	Level  *engine.Level
	Runner *engine.Runner
	Canvas *core.Canvas
}

// NewArena builds the default two-player arena from cfg. Saved presets
// override the configured color and speeds of their side.
func NewArena(cfg config.DuelConfig, presets []storage.Preset, logger *log.Logger) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// The model resizes the canvas to the terminal before the first frame
	canvas := core.NewCanvas(cfg.Arena.Width, cfg.Arena.Height, 100, 100)

	ecfg := cfg.EngineConfig()
	ecfg.Logger = logger
	level := engine.NewLevel(canvas, ecfg)

	specs := cfg.PlayerSpecs()
	for _, p := range presets {
		if p.Side < 0 || p.Side >= len(specs) {
			continue
		}
		applyPreset(&specs[p.Side], p)
	}

	for _, spec := range specs {
		p, err := level.NewPlayer(spec)
		if err != nil {
			return nil, fmt.Errorf("tui: cannot create player: %w", err)
		}
		level.Spawn(p)
	}

	return &Arena{
		Level:  level,
		Runner: engine.NewRunner(level, logger),
		Canvas: canvas,
	}, nil
}

// applyPreset copies the valid parts of a saved preset onto spec.
func applyPreset(spec *engine.PlayerSpec, p storage.Preset) {
	if c, ok := core.ParseColor(p.Color); ok {
		spec.Color = c
	}
	spec.MoveSpeed = core.ClampF(p.MoveSpeed, 0, 1)
	spec.ShotSpeed = core.ClampF(p.ShotSpeed, 0, 1)
}

// presetOf captures the customizable state of a player.
func presetOf(p *engine.Player) storage.Preset {
	return storage.Preset{
		Side:      int(p.Side()),
		Color:     string(p.Color()),
		MoveSpeed: p.MoveSpeed(),
		ShotSpeed: p.ShotSpeed(),
	}
}
