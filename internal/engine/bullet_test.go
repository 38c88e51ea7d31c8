package engine

import (
	"testing"

	"github.com/vovakirdan/tui-duel/internal/core"
)

func newTestBullet(owner ID, corner core.Vec2) *Bullet {
	return &Bullet{
		Entity: newEntity(KindBullet, corner, core.V(BulletSpeed, 0), 10, core.ColorBlack, 1),
		owner:  owner,
	}
}

func TestBulletHitReportsOwnerAndDies(t *testing.T) {
	w := newStubWorld(500, 500)
	w.opponent = newTestPlayer(core.V(180, 80), core.V(0, 0), OrientationLeft, 0) // center (200, 100)

	b := newTestBullet("shooter", core.V(175, 90)) // center (185, 100)
	before := b.Position()

	b.Tick(w)

	if len(w.hits) != 1 || w.hits[0] != "shooter" {
		t.Errorf("hits = %v, expected [shooter]", w.hits)
	}
	if b.Alive() {
		t.Error("bullet should be killed by the hit")
	}
	if !b.Dead(w.surface) {
		t.Error("Dead() should be true after a hit")
	}
	// Movement and drawing still happen on the hit tick
	if b.Position() != before.Add(core.V(BulletSpeed, 0)) {
		t.Errorf("Position() = %v, expected the bullet to move on the hit tick", b.Position())
	}
	if len(w.surface.circles) != 1 {
		t.Errorf("expected the bullet to be drawn on the hit tick, got %d circles", len(w.surface.circles))
	}
}

func TestBulletMiss(t *testing.T) {
	w := newStubWorld(500, 500)
	w.opponent = newTestPlayer(core.V(380, 80), core.V(0, 0), OrientationLeft, 0) // center (400, 100)

	b := newTestBullet("shooter", core.V(175, 90))
	b.Tick(w)

	if len(w.hits) != 0 {
		t.Errorf("hits = %v, expected none", w.hits)
	}
	if !b.Alive() {
		t.Error("bullet should still be alive after a miss")
	}
}

func TestBulletWithoutOpponent(t *testing.T) {
	w := newStubWorld(500, 500)

	b := newTestBullet("shooter", core.V(175, 90))
	b.Tick(w)

	if len(w.hits) != 0 || !b.Alive() {
		t.Errorf("without an opponent nothing should be hit, hits=%v alive=%v", w.hits, b.Alive())
	}
}

func TestBulletIgnoresItsOwner(t *testing.T) {
	w := newStubWorld(500, 500)
	owner := newTestPlayer(core.V(180, 80), core.V(0, 0), OrientationRight, 0)
	w.opponent = owner

	b := newTestBullet(owner.ID(), core.V(175, 90))
	b.Tick(w)

	if len(w.hits) != 0 || !b.Alive() {
		t.Errorf("a bullet must not hit its own player, hits=%v alive=%v", w.hits, b.Alive())
	}
}
