package engine

import (
	"github.com/vovakirdan/tui-duel/internal/core"
)

// BulletSpeed is the horizontal speed of every bullet.
const BulletSpeed = 10

// chargeEpsilon absorbs floating point drift so that shot speed 0.1
// fires on exactly every tenth tick.
const chargeEpsilon = 1e-9

// Orientation is the fixed firing direction of a player.
type Orientation int

const (
	OrientationLeft Orientation = iota
	OrientationRight
)

// String returns a human-readable name for the orientation.
func (o Orientation) String() string {
	if o == OrientationRight {
		return "right"
	}
	return "left"
}

// sign returns the x direction bullets travel in.
func (o Orientation) sign() float64 {
	if o == OrientationRight {
		return 1
	}
	return -1
}

// Side identifies one of the two player slots of a Level.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// String returns the display label of the side.
func (s Side) String() string {
	if s == SideRight {
		return "Player 2"
	}
	return "Player 1"
}

// Direction is a requested vertical heading.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

// PlayerSpec describes a player to construct.
type PlayerSpec struct {
	Corner      core.Vec2 // Top-left of the bounding box
	Velocity    core.Vec2
	Size        float64
	Color       core.Color
	Orientation Orientation
	ShotSpeed   float64
	MoveSpeed   float64
}

// Player bounces vertically and periodically fires at the opposite side.
type Player struct {
	Entity
	side        Side
	orientation Orientation
	shotSpeed   float64 // Charge gained per tick, in [0, 1]
	shotCharge  float64
}

// Side returns the slot this player occupies.
func (p *Player) Side() Side { return p.side }

// Orientation returns the firing direction.
func (p *Player) Orientation() Orientation { return p.orientation }

// ShotSpeed returns the charge gained per tick.
func (p *Player) ShotSpeed() float64 { return p.shotSpeed }

// ShotCharge returns the accumulated charge.
func (p *Player) ShotCharge() float64 { return p.shotCharge }

// SetShotSpeed sets the charge gained per tick, clamped to [0, 1].
func (p *Player) SetShotSpeed(v float64) {
	p.shotSpeed = core.ClampF(v, 0, 1)
}

// SetMoveSpeed sets the velocity multiplier, clamped to [0, 1].
func (p *Player) SetMoveSpeed(v float64) {
	p.moveSpeed = core.ClampF(v, 0, 1)
}

// Tick bounces off the top and bottom walls, charges and possibly fires,
// then draws and moves.
func (p *Player) Tick(w World) {
	if p.inBounceBand(w.Surface().Height()) {
		p.vel.Y = -p.vel.Y
	}

	p.shotCharge += p.shotSpeed
	if p.shotCharge >= 1-chargeEpsilon {
		w.Spawn(p.fire())
		p.shotCharge = 0
	}

	p.Entity.Tick(w)
}

// inBounceBand reports whether the player is within one size of the
// top or bottom wall of a surface h units tall.
func (p *Player) inBounceBand(h float64) bool {
	return p.pos.Y <= p.size || p.pos.Y >= h-p.size
}

// fire creates a bullet from the current position.
// The position is passed as a bounding-box corner, like any other entity.
func (p *Player) fire() *Bullet {
	return &Bullet{
		Entity: newEntity(
			KindBullet,
			p.pos,
			core.V(BulletSpeed*p.orientation.sign(), 0),
			p.size/2,
			p.color,
			1,
		),
		owner: p.id,
	}
}

// Steer reverses vertical motion so the player heads in dir.
// Returns false without changes if it already moves that way.
func (p *Player) Steer(dir Direction) bool {
	switch dir {
	case DirectionUp:
		if p.vel.Y < 0 {
			return false
		}
	case DirectionDown:
		if p.vel.Y > 0 {
			return false
		}
	}
	p.vel.Y = -p.vel.Y
	return true
}

// PushFrom steers the player away from a pointer at height y.
func (p *Player) PushFrom(y float64) bool {
	if y > p.pos.Y {
		return p.Steer(DirectionUp)
	}
	return p.Steer(DirectionDown)
}
