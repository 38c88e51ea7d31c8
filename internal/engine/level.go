package engine

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-duel/internal/core"
)

// Construction errors. These are configuration mistakes; nothing on the
// tick path returns an error.
var (
	ErrPlayerSlotsFull = errors.New("engine: both player slots are taken")
	ErrInvalidSpec     = errors.New("engine: invalid player spec")
)

// Config holds the immutable settings of a Level.
type Config struct {
	Background   core.Color    // Playfield clear color
	TickInterval time.Duration // Period of the scheduler
	PickRadius   float64       // Pointer radius for PlayerAt
	EdgeMargin   float64       // Pointer band near the top and bottom ignored by PushAt
	Logger       *log.Logger   // Optional; discards when nil
}

// DefaultConfig returns the settings of the classic arena.
func DefaultConfig() Config {
	return Config{
		Background:   core.ColorWhite,
		TickInterval: 49 * time.Millisecond,
		PickRadius:   10,
		EdgeMargin:   50,
	}
}

// Level owns the entities, the two player slots and the score mapping.
type Level struct {
	cfg      Config
	surface  Surface
	logger   *log.Logger
	entities []Actor
	players  [2]*Player
	score    map[ID]int
	paused   bool
	ticks    uint64
	latest   atomic.Pointer[Snapshot]
}

// NewLevel creates an empty level drawing onto surface.
func NewLevel(surface Surface, cfg Config) *Level {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}

	l := &Level{
		cfg:     cfg,
		surface: surface,
		logger:  logger,
		score:   make(map[ID]int),
	}
	l.publish()
	return l
}

// NewPlayer constructs a player in the next free slot and registers its
// zero score entry. The player is not live until it is spawned.
func (l *Level) NewPlayer(spec PlayerSpec) (*Player, error) {
	if spec.Size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %v", ErrInvalidSpec, spec.Size)
	}
	if !spec.Color.Valid() {
		return nil, fmt.Errorf("%w: color %q", ErrInvalidSpec, spec.Color)
	}

	side := -1
	for i, p := range l.players {
		if p == nil {
			side = i
			break
		}
	}
	if side < 0 {
		return nil, ErrPlayerSlotsFull
	}

	p := &Player{
		Entity:      newEntity(KindPlayer, spec.Corner, spec.Velocity, spec.Size, spec.Color, 0),
		side:        Side(side),
		orientation: spec.Orientation,
	}
	p.SetMoveSpeed(spec.MoveSpeed)
	p.SetShotSpeed(spec.ShotSpeed)

	l.players[side] = p
	l.score[p.id] = 0
	return p, nil
}

// Spawn appends an actor to the live collection.
func (l *Level) Spawn(a Actor) {
	a.Base().attached = true
	l.entities = append(l.entities, a)
}

// Surface returns the drawing surface.
func (l *Level) Surface() Surface {
	return l.surface
}

// Config returns the level settings.
func (l *Level) Config() Config {
	return l.cfg
}

// Len returns the number of live entities.
func (l *Level) Len() int {
	return len(l.entities)
}

// Ticks returns the number of simulated (non-paused) ticks.
func (l *Level) Ticks() uint64 {
	return l.ticks
}

// FindEntity returns the first live entity, in collection order, matching pred.
func (l *Level) FindEntity(pred func(*Entity) bool) (*Entity, bool) {
	for _, a := range l.entities {
		if e := a.Base(); pred(e) {
			return e, true
		}
	}
	return nil, false
}

// Player returns the player constructed in the given slot.
func (l *Level) Player(side Side) (*Player, bool) {
	if side < SideLeft || side > SideRight {
		return nil, false
	}
	p := l.players[side]
	return p, p != nil
}

// PlayerByID returns the player with the given id.
func (l *Level) PlayerByID(id ID) (*Player, bool) {
	for _, p := range l.players {
		if p != nil && p.id == id {
			return p, true
		}
	}
	return nil, false
}

// Opponent returns the live player in the slot not held by of.
func (l *Level) Opponent(of ID) (*Player, bool) {
	for _, p := range l.players {
		if p != nil && p.attached && p.id != of {
			return p, true
		}
	}
	return nil, false
}

// ReportHit credits one point to owner.
func (l *Level) ReportHit(owner ID) {
	if _, ok := l.score[owner]; !ok {
		return
	}
	l.score[owner]++
	l.logger.Debug("hit", "owner", owner, "score", l.score[owner], "tick", l.ticks)
}

// Score returns a copy of the score mapping.
func (l *Level) Score() map[ID]int {
	out := make(map[ID]int, len(l.score))
	for id, n := range l.score {
		out[id] = n
	}
	return out
}

// PlayerAt returns the player under a pointer at p.
// Only the first entity under the pointer is considered, so a bullet
// passing over a player hides it.
func (l *Level) PlayerAt(p core.Vec2) (*Player, bool) {
	e, ok := l.FindEntity(func(e *Entity) bool {
		return e.Hits(p, l.cfg.PickRadius)
	})
	if !ok || e.kind != KindPlayer {
		return nil, false
	}
	return l.PlayerByID(e.id)
}

// PushAt steers the player under the pointer away from it.
// Pointers within the edge margin and players inside the wall bounce
// band are ignored. Reports whether a player changed direction.
func (l *Level) PushAt(p core.Vec2) bool {
	if p.Y < l.cfg.EdgeMargin || p.Y > l.surface.Height()-l.cfg.EdgeMargin {
		return false
	}
	pl, ok := l.PlayerAt(p)
	if !ok || pl.inBounceBand(l.surface.Height()) {
		return false
	}
	return pl.PushFrom(p.Y)
}

// Steer turns the player on side toward dir. Reports whether it changed direction.
// A player inside the wall bounce band ignores steering until it leaves it.
func (l *Level) Steer(side Side, dir Direction) bool {
	p, ok := l.Player(side)
	if !ok || p.inBounceBand(l.surface.Height()) {
		return false
	}
	return p.Steer(dir)
}

// Paused reports whether ticking is suspended.
func (l *Level) Paused() bool {
	return l.paused
}

// SetPaused suspends or resumes ticking. State is preserved while paused.
func (l *Level) SetPaused(paused bool) {
	if l.paused == paused {
		return
	}
	l.paused = paused
	l.publish()
}

// TogglePause flips the paused flag and returns the new value.
func (l *Level) TogglePause() bool {
	l.SetPaused(!l.paused)
	return l.paused
}

// Tick runs one step of the scheduler: clear the surface, tick every entity
// from last to first and remove each one that is dead right after its own
// tick. Returns false when paused.
func (l *Level) Tick() bool {
	if l.paused {
		return false
	}

	l.surface.Clear(l.cfg.Background)

	for i := len(l.entities) - 1; i >= 0; i-- {
		a := l.entities[i]
		a.Tick(l)

		if a.Base().Dead(l.surface) {
			l.removeAt(i)
		}
	}

	l.ticks++
	l.publish()
	return true
}

// removeAt swap-removes index i. Only indices greater than i are moved,
// and the reverse sweep has already visited those.
func (l *Level) removeAt(i int) {
	e := l.entities[i].Base()
	e.attached = false

	last := len(l.entities) - 1
	l.entities[i] = l.entities[last]
	l.entities[last] = nil
	l.entities = l.entities[:last]

	if e.kind == KindPlayer {
		l.logger.Warn("player left the playfield", "id", e.id, "pos", e.pos)
	}
}
