// Package config provides YAML and TOML configuration loading for the duel
// arena.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/engine"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

// DuelConfig contains all configuration for a duel session.
type DuelConfig struct {
	Arena   ArenaConfig  `yaml:"arena" toml:"arena"`
	Players PlayerConfig `yaml:"players" toml:"players"`
	Input   InputConfig  `yaml:"input" toml:"input"`
}

// ArenaConfig defines the playfield and scheduler.
type ArenaConfig struct {
	Width          float64 `yaml:"width" toml:"width"`
	Height         float64 `yaml:"height" toml:"height"`
	Background     string  `yaml:"background" toml:"background"`
	TickIntervalMS int     `yaml:"tick_interval_ms" toml:"tick_interval_ms"`
}

// PlayerConfig defines the starting state of both players.
type PlayerConfig struct {
	Size      float64   `yaml:"size" toml:"size"`
	Offset    float64   `yaml:"offset" toml:"offset"`     // Horizontal distance from the side walls
	Velocity  float64   `yaml:"velocity" toml:"velocity"` // Vertical speed at move speed 1
	ShotSpeed float64   `yaml:"shot_speed" toml:"shot_speed"`
	MoveSpeed float64   `yaml:"move_speed" toml:"move_speed"`
	Colors    [2]string `yaml:"colors" toml:"colors"` // Left, right
}

// InputConfig defines pointer handling.
type InputConfig struct {
	PickRadius float64 `yaml:"pick_radius" toml:"pick_radius"`
	EdgeMargin float64 `yaml:"edge_margin" toml:"edge_margin"`
}

// finite reports whether none of vs is NaN or infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// TickInterval returns the scheduler period.
func (c DuelConfig) TickInterval() time.Duration {
	return time.Duration(c.Arena.TickIntervalMS) * time.Millisecond
}

// Validate reports the first value the engine cannot run with.
func (c DuelConfig) Validate() error {
	switch {
	case !finite(c.Arena.Width, c.Arena.Height, c.Players.Size, c.Players.Offset, c.Players.Velocity,
		c.Players.ShotSpeed, c.Players.MoveSpeed, c.Input.PickRadius, c.Input.EdgeMargin):
		return fmt.Errorf("%w: numbers must be finite", ErrInvalid)
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena size %vx%v", ErrInvalid, c.Arena.Width, c.Arena.Height)
	case c.Arena.TickIntervalMS <= 0:
		return fmt.Errorf("%w: tick_interval_ms %d", ErrInvalid, c.Arena.TickIntervalMS)
	case !core.Color(c.Arena.Background).Valid():
		return fmt.Errorf("%w: background %q", ErrInvalid, c.Arena.Background)
	case c.Players.Size <= 0:
		return fmt.Errorf("%w: player size %v", ErrInvalid, c.Players.Size)
	case c.Players.ShotSpeed < 0 || c.Players.ShotSpeed > 1:
		return fmt.Errorf("%w: shot_speed %v outside [0, 1]", ErrInvalid, c.Players.ShotSpeed)
	case c.Players.MoveSpeed < 0 || c.Players.MoveSpeed > 1:
		return fmt.Errorf("%w: move_speed %v outside [0, 1]", ErrInvalid, c.Players.MoveSpeed)
	case c.Input.PickRadius < 0 || c.Input.EdgeMargin < 0:
		return fmt.Errorf("%w: input radii must not be negative", ErrInvalid)
	}
	for i, col := range c.Players.Colors {
		if !core.Color(col).Valid() {
			return fmt.Errorf("%w: players.colors[%d] %q", ErrInvalid, i, col)
		}
	}
	// Both players must fit between the walls without starting dead.
	if 2*c.Players.Size >= c.Arena.Height || c.Players.Offset+2*c.Players.Size >= c.Arena.Width {
		return fmt.Errorf("%w: players do not fit in a %vx%v arena", ErrInvalid, c.Arena.Width, c.Arena.Height)
	}
	return nil
}

// EngineConfig converts the arena and input settings for engine.NewLevel.
func (c DuelConfig) EngineConfig() engine.Config {
	return engine.Config{
		Background:   core.Color(c.Arena.Background),
		TickInterval: c.TickInterval(),
		PickRadius:   c.Input.PickRadius,
		EdgeMargin:   c.Input.EdgeMargin,
	}
}

// PlayerSpecs returns the left and right players of the default arena.
// Player 1 starts at the top moving up and faces right; Player 2 starts at
// the bottom moving down and faces left.
func (c DuelConfig) PlayerSpecs() [2]engine.PlayerSpec {
	p := c.Players
	return [2]engine.PlayerSpec{
		{
			Corner:      core.V(p.Offset, 0),
			Velocity:    core.V(0, -p.Velocity),
			Size:        p.Size,
			Color:       core.Color(p.Colors[0]),
			Orientation: engine.OrientationRight,
			ShotSpeed:   p.ShotSpeed,
			MoveSpeed:   p.MoveSpeed,
		},
		{
			Corner:      core.V(c.Arena.Width-p.Offset-2*p.Size, c.Arena.Height-2*p.Size),
			Velocity:    core.V(0, p.Velocity),
			Size:        p.Size,
			Color:       core.Color(p.Colors[1]),
			Orientation: engine.OrientationLeft,
			ShotSpeed:   p.ShotSpeed,
			MoveSpeed:   p.MoveSpeed,
		},
	}
}
