package engine

import (
	"testing"

	"github.com/vovakirdan/tui-duel/internal/core"
)

type circle struct {
	center core.Vec2
	r      float64
	color  core.Color
}

// recordingSurface is a Surface that remembers what was drawn.
type recordingSurface struct {
	w, h    float64
	clears  []core.Color
	circles []circle
}

func newRecordingSurface(w, h float64) *recordingSurface {
	return &recordingSurface{w: w, h: h}
}

func (s *recordingSurface) Width() float64  { return s.w }
func (s *recordingSurface) Height() float64 { return s.h }

func (s *recordingSurface) Clear(c core.Color) {
	s.clears = append(s.clears, c)
	s.circles = nil
}

func (s *recordingSurface) FillCircle(center core.Vec2, r float64, c core.Color) {
	s.circles = append(s.circles, circle{center: center, r: r, color: c})
}

// stubWorld is a World with a configurable opponent that records side effects.
type stubWorld struct {
	surface  *recordingSurface
	opponent *Player
	spawned  []Actor
	hits     []ID
}

func newStubWorld(w, h float64) *stubWorld {
	return &stubWorld{surface: newRecordingSurface(w, h)}
}

func (w *stubWorld) Surface() Surface { return w.surface }
func (w *stubWorld) Spawn(a Actor)    { w.spawned = append(w.spawned, a) }
func (w *stubWorld) ReportHit(id ID)  { w.hits = append(w.hits, id) }

func (w *stubWorld) Opponent(of ID) (*Player, bool) {
	if w.opponent == nil || w.opponent.id == of {
		return nil, false
	}
	return w.opponent, true
}

// newTestLevel builds a 500x500 level with the default config.
func newTestLevel(t *testing.T) (*Level, *recordingSurface) {
	t.Helper()
	s := newRecordingSurface(500, 500)
	return NewLevel(s, DefaultConfig()), s
}

// mustPlayer constructs a player or fails the test.
func mustPlayer(t *testing.T, l *Level, spec PlayerSpec) *Player {
	t.Helper()
	p, err := l.NewPlayer(spec)
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	return p
}

// classicSpecs returns the two players of the default arena.
func classicSpecs() (PlayerSpec, PlayerSpec) {
	left := PlayerSpec{
		Corner:      core.V(50, 0),
		Velocity:    core.V(0, -7),
		Size:        20,
		Color:       core.ColorBlack,
		Orientation: OrientationRight,
		ShotSpeed:   0.1,
		MoveSpeed:   1,
	}
	right := PlayerSpec{
		Corner:      core.V(430, 460),
		Velocity:    core.V(0, 7),
		Size:        20,
		Color:       core.ColorRed,
		Orientation: OrientationLeft,
		ShotSpeed:   0.1,
		MoveSpeed:   1,
	}
	return left, right
}
