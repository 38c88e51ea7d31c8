// Package engine implements the duel simulation: circular entities advanced on a
// fixed tick, two players that fire bullets at each other, and the level that
// schedules them, removes the dead and keeps score.
//
// A Level is not safe for concurrent use. All mutation must happen on one
// goroutine; Runner provides that goroutine together with the periodic timer.
package engine

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-duel/internal/core"
)

// ID is a process-unique entity identity.
type ID string

func newID() ID {
	return ID(uuid.NewString())
}

// Kind discriminates the entity variants stored in a Level.
type Kind uint8

const (
	KindPlayer Kind = iota + 1
	KindBullet
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Surface is the drawing collaborator. Its reported size is also the
// playfield boundary used by Entity.Dead.
type Surface interface {
	Width() float64
	Height() float64
	Clear(c core.Color)
	FillCircle(center core.Vec2, r float64, c core.Color)
}

// World is the view of the Level an entity gets while it ticks.
type World interface {
	// Surface returns the drawing surface.
	Surface() Surface

	// Spawn adds an actor; it is first ticked on the next sweep.
	Spawn(a Actor)

	// Opponent returns the live player that is not of.
	Opponent(of ID) (*Player, bool)

	// ReportHit credits one point to the player owner.
	ReportHit(owner ID)
}

// Actor is anything the Level can schedule.
type Actor interface {
	Base() *Entity
	Tick(w World)
}

// Entity holds the state shared by every circular object on the playfield.
type Entity struct {
	id        ID
	kind      Kind
	pos       core.Vec2 // Center
	vel       core.Vec2
	size      float64 // Radius
	color     core.Color
	moveSpeed float64
	alive     bool
	attached  bool // In a Level's live collection
}

// newEntity creates an entity whose bounding box starts at corner.
func newEntity(kind Kind, corner, vel core.Vec2, size float64, color core.Color, moveSpeed float64) Entity {
	return Entity{
		id:        newID(),
		kind:      kind,
		pos:       corner.Add(core.V(size, size)),
		vel:       vel,
		size:      size,
		color:     color,
		moveSpeed: moveSpeed,
		alive:     true,
	}
}

// Base returns the entity itself.
func (e *Entity) Base() *Entity { return e }

// ID returns the entity identity.
func (e *Entity) ID() ID { return e.id }

// Kind returns the entity variant.
func (e *Entity) Kind() Kind { return e.kind }

// Position returns the center of the entity.
func (e *Entity) Position() core.Vec2 { return e.pos }

// Velocity returns the per-tick step before move speed scaling.
func (e *Entity) Velocity() core.Vec2 { return e.vel }

// Size returns the radius.
func (e *Entity) Size() float64 { return e.size }

// Color returns the display color.
func (e *Entity) Color() core.Color { return e.color }

// MoveSpeed returns the velocity multiplier.
func (e *Entity) MoveSpeed() float64 { return e.moveSpeed }

// Alive reports whether the entity has not been killed.
// A live entity can still be dead by leaving the playfield.
func (e *Entity) Alive() bool { return e.alive }

// SetColor changes the color if s is a valid #rrggbb string.
// Invalid input is ignored and false is returned.
func (e *Entity) SetColor(s string) bool {
	c, ok := core.ParseColor(s)
	if !ok {
		return false
	}
	e.color = c
	return true
}

// Tick draws the entity and then advances it by one step.
// The frame therefore shows the position from before the step.
func (e *Entity) Tick(w World) {
	w.Surface().FillCircle(e.pos, e.size, e.color)
	e.pos = e.pos.Add(e.vel.Scale(e.moveSpeed))
}

// Dead reports whether the entity was killed or its center has crossed any
// edge of the surface.
func (e *Entity) Dead(s Surface) bool {
	return !e.alive ||
		e.pos.X <= 0 ||
		s.Width()-e.pos.X <= 0 ||
		e.pos.Y <= 0 ||
		s.Height()-e.pos.Y <= 0
}

// Hits reports whether a circle of radius r at p overlaps the entity.
// Exact tangency is a miss.
func (e *Entity) Hits(p core.Vec2, r float64) bool {
	return e.pos.Dist(p) < e.size+r
}
