package engine

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-duel/internal/core"
)

// probe is an actor that records when it is ticked.
type probe struct {
	Entity
	name    string
	visits  *[]string
	dieNext bool
	spawn   Actor
}

func newProbe(name string, visits *[]string) *probe {
	return &probe{
		Entity: newEntity(KindBullet, core.V(100, 100), core.V(0, 0), 1, core.ColorBlack, 1),
		name:   name,
		visits: visits,
	}
}

func (p *probe) Tick(w World) {
	*p.visits = append(*p.visits, p.name)
	if p.dieNext {
		p.alive = false
	}
	if p.spawn != nil {
		w.Spawn(p.spawn)
		p.spawn = nil
	}
}

func TestLevelNewPlayerRegistersScore(t *testing.T) {
	l, _ := newTestLevel(t)
	left, right := classicSpecs()

	a := mustPlayer(t, l, left)
	b := mustPlayer(t, l, right)

	if a.Side() != SideLeft || b.Side() != SideRight {
		t.Errorf("sides = (%v, %v), expected (left, right)", a.Side(), b.Side())
	}

	score := l.Score()
	if len(score) != 2 {
		t.Fatalf("score has %d entries, expected 2", len(score))
	}
	for _, id := range []ID{a.ID(), b.ID()} {
		if n, ok := score[id]; !ok || n != 0 {
			t.Errorf("score[%s] = %d, %v; expected 0, true", id, n, ok)
		}
	}

	// Construction alone does not make a player live
	if l.Len() != 0 {
		t.Errorf("Len() = %d before spawning, expected 0", l.Len())
	}
	if _, ok := l.Opponent(a.ID()); ok {
		t.Error("an unspawned player must not be found as opponent")
	}
}

func TestLevelNewPlayerErrors(t *testing.T) {
	l, _ := newTestLevel(t)
	left, right := classicSpecs()

	bad := left
	bad.Size = 0
	if _, err := l.NewPlayer(bad); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("NewPlayer(size 0) error = %v, expected ErrInvalidSpec", err)
	}

	bad = left
	bad.Color = "red"
	if _, err := l.NewPlayer(bad); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("NewPlayer(bad color) error = %v, expected ErrInvalidSpec", err)
	}

	mustPlayer(t, l, left)
	mustPlayer(t, l, right)
	if _, err := l.NewPlayer(left); !errors.Is(err, ErrPlayerSlotsFull) {
		t.Errorf("third NewPlayer error = %v, expected ErrPlayerSlotsFull", err)
	}
	if len(l.Score()) != 2 {
		t.Errorf("failed construction must not add a score entry, have %d", len(l.Score()))
	}
}

func TestLevelTickVisitsInReverseOnce(t *testing.T) {
	l, _ := newTestLevel(t)
	var visits []string

	a := newProbe("a", &visits)
	b := newProbe("b", &visits)
	c := newProbe("c", &visits)
	l.Spawn(a)
	l.Spawn(b)
	l.Spawn(c)

	l.Tick()

	expected := []string{"c", "b", "a"}
	if len(visits) != len(expected) {
		t.Fatalf("visits = %v, expected %v", visits, expected)
	}
	for i := range expected {
		if visits[i] != expected[i] {
			t.Fatalf("visits = %v, expected %v", visits, expected)
		}
	}
}

func TestLevelRemovesDeadImmediately(t *testing.T) {
	l, _ := newTestLevel(t)
	var visits []string

	probes := make([]*probe, 6)
	for i := range probes {
		probes[i] = newProbe(string(rune('a'+i)), &visits)
		l.Spawn(probes[i])
	}
	probes[1].dieNext = true
	probes[4].dieNext = true
	probes[5].dieNext = true

	l.Tick()

	if len(visits) != 6 {
		t.Fatalf("visits = %v, expected each of 6 probes exactly once", visits)
	}
	seen := make(map[string]int)
	for _, v := range visits {
		seen[v]++
	}
	for name, n := range seen {
		if n != 1 {
			t.Errorf("probe %s visited %d times", name, n)
		}
	}

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3 survivors", l.Len())
	}
	for _, i := range []int{1, 4, 5} {
		if _, ok := l.FindEntity(func(e *Entity) bool { return e.ID() == probes[i].ID() }); ok {
			t.Errorf("dead probe %s still in the level", probes[i].name)
		}
	}

	// Removed probes are never ticked again
	visits = visits[:0]
	l.Tick()
	if len(visits) != 3 {
		t.Errorf("second tick visits = %v, expected only the 3 survivors", visits)
	}
}

func TestLevelSpawnDuringTickStartsNextTick(t *testing.T) {
	l, _ := newTestLevel(t)
	var visits []string

	late := newProbe("late", &visits)
	first := newProbe("first", &visits)
	first.spawn = late
	dying := newProbe("dying", &visits)
	dying.dieNext = true

	// dying is visited after first spawned late, so late gets swapped into its slot
	l.Spawn(dying)
	l.Spawn(first)

	l.Tick()

	for _, v := range visits {
		if v == "late" {
			t.Fatalf("entity spawned mid-tick was visited in the same tick: %v", visits)
		}
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, expected first and late", l.Len())
	}

	visits = visits[:0]
	l.Tick()
	if len(visits) != 2 {
		t.Errorf("next tick visits = %v, expected first and late", visits)
	}
}

func TestLevelTickClearsToBackground(t *testing.T) {
	l, s := newTestLevel(t)

	l.Tick()
	l.Tick()

	if len(s.clears) != 2 || s.clears[0] != core.ColorWhite {
		t.Errorf("clears = %v, expected two clears to white", s.clears)
	}
	if l.Ticks() != 2 {
		t.Errorf("Ticks() = %d, expected 2", l.Ticks())
	}
}

func TestLevelBulletHitScoresOnce(t *testing.T) {
	l, _ := newTestLevel(t)

	a := mustPlayer(t, l, PlayerSpec{Corner: core.V(10, 200), Size: 20, Color: core.ColorBlack, MoveSpeed: 1})
	b := mustPlayer(t, l, PlayerSpec{Corner: core.V(300, 200), Size: 20, Color: core.ColorRed, MoveSpeed: 1})
	l.Spawn(a)
	l.Spawn(b)

	// Overlaps b, whose center is (320, 220)
	bullet := newTestBullet(a.ID(), core.V(290, 200))
	l.Spawn(bullet)

	l.Tick()

	if got := l.Score()[a.ID()]; got != 1 {
		t.Errorf("owner score = %d, expected 1", got)
	}
	if got := l.Score()[b.ID()]; got != 0 {
		t.Errorf("opponent score = %d, expected 0", got)
	}
	if _, ok := l.FindEntity(func(e *Entity) bool { return e.Kind() == KindBullet }); ok {
		t.Error("bullet should be removed on the tick it hits")
	}

	l.Tick()
	if got := l.Score()[a.ID()]; got != 1 {
		t.Errorf("owner score = %d after another tick, expected it to stay 1", got)
	}
}

func TestLevelReportHitUnknownOwner(t *testing.T) {
	l, _ := newTestLevel(t)

	l.ReportHit("nobody")

	if len(l.Score()) != 0 {
		t.Errorf("ReportHit for an unknown owner created entries: %v", l.Score())
	}
}

func TestLevelPauseFreezesEverything(t *testing.T) {
	l, s := newTestLevel(t)
	left, right := classicSpecs()
	a := mustPlayer(t, l, left)
	b := mustPlayer(t, l, right)
	l.Spawn(a)
	l.Spawn(b)

	for range 5 {
		l.Tick()
	}

	if !l.TogglePause() {
		t.Fatal("TogglePause() should report paused")
	}
	frozen := l.Snapshot()
	clears := len(s.clears)

	for range 20 {
		if l.Tick() {
			t.Fatal("Tick() should report no progress while paused")
		}
	}

	after := l.Snapshot()
	if after.Tick != frozen.Tick || after.Entities != frozen.Entities {
		t.Errorf("tick/entities changed while paused: %+v -> %+v", frozen, after)
	}
	for i := range frozen.Players {
		if after.Players[i] != frozen.Players[i] {
			t.Errorf("player %d changed while paused: %+v -> %+v", i, frozen.Players[i], after.Players[i])
		}
	}
	if len(s.clears) != clears {
		t.Error("surface was cleared while paused")
	}
	if !l.Latest().Paused {
		t.Error("published snapshot should report paused")
	}

	// Resuming continues exactly one step at a time
	l.SetPaused(false)
	l.Tick()

	ref, _ := newTestLevel(t)
	ra := mustPlayer(t, ref, left)
	rb := mustPlayer(t, ref, right)
	ref.Spawn(ra)
	ref.Spawn(rb)
	for range 6 {
		ref.Tick()
	}

	if a.Position() != ra.Position() || b.Position() != rb.Position() {
		t.Errorf("positions after resume = %v, %v; expected %v, %v", a.Position(), b.Position(), ra.Position(), rb.Position())
	}
	if a.ShotCharge() != ra.ShotCharge() {
		t.Errorf("charge after resume = %v, expected %v", a.ShotCharge(), ra.ShotCharge())
	}
}

func TestLevelClassicScenario(t *testing.T) {
	l, _ := newTestLevel(t)
	left, right := classicSpecs()
	a := mustPlayer(t, l, left)
	b := mustPlayer(t, l, right)
	l.Spawn(a)
	l.Spawn(b)

	for range 10 {
		l.Tick()
	}

	owners := make(map[ID]int)
	for _, act := range l.entities {
		if bl, ok := act.(*Bullet); ok {
			owners[bl.Owner()]++
		}
	}
	if owners[a.ID()] != 1 || owners[b.ID()] != 1 {
		t.Errorf("bullets per owner = %v, expected one each", owners)
	}

	snap := l.Latest()
	if len(snap.Scores) != 2 {
		t.Fatalf("score entries = %d, expected 2", len(snap.Scores))
	}
	for id, n := range snap.Scores {
		if n != 0 {
			t.Errorf("score[%s] = %d, expected 0", id, n)
		}
	}
	if snap.Tick != 10 || snap.Entities != 4 {
		t.Errorf("snapshot tick=%d entities=%d, expected 10 and 4", snap.Tick, snap.Entities)
	}
}

func TestLevelFindEntity(t *testing.T) {
	l, _ := newTestLevel(t)
	var visits []string

	first := newProbe("first", &visits)
	second := newProbe("second", &visits)
	l.Spawn(first)
	l.Spawn(second)

	e, ok := l.FindEntity(func(e *Entity) bool { return e.Kind() == KindBullet })
	if !ok || e.ID() != first.ID() {
		t.Errorf("FindEntity() should return the first match in collection order")
	}

	if _, ok := l.FindEntity(func(e *Entity) bool { return e.Kind() == KindPlayer }); ok {
		t.Error("FindEntity() should report not found")
	}
}

func TestLevelPlayerAtAndPushAt(t *testing.T) {
	l, _ := newTestLevel(t)
	p := mustPlayer(t, l, PlayerSpec{Corner: core.V(80, 230), Velocity: core.V(0, 7), Size: 20, Color: core.ColorBlack, MoveSpeed: 1})
	l.Spawn(p) // center (100, 250)

	if got, ok := l.PlayerAt(core.V(100, 275)); !ok || got != p {
		t.Error("PlayerAt() should find the player within the pick radius")
	}
	if _, ok := l.PlayerAt(core.V(100, 281)); ok {
		t.Error("PlayerAt() should miss outside size + pick radius")
	}

	// Inside the edge margin nothing happens
	if l.PushAt(core.V(100, 30)) {
		t.Error("PushAt() inside the top margin should be ignored")
	}
	if l.PushAt(core.V(300, 300)) {
		t.Error("PushAt() with no player under the pointer should be ignored")
	}

	// Pointer below the center pushes the player up
	if !l.PushAt(core.V(100, 260)) || p.Velocity().Y != -7 {
		t.Errorf("PushAt() below should reverse to moving up, velocity %v", p.Velocity())
	}
	if l.PushAt(core.V(100, 260)) {
		t.Error("repeated PushAt() in the same direction should be ignored")
	}
}

func TestLevelPushAtInBounceBand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EdgeMargin = 0
	l := NewLevel(newRecordingSurface(500, 500), cfg)
	left, _ := classicSpecs()
	a := mustPlayer(t, l, left) // center (60, 20), moving up
	l.Spawn(a)

	if l.PushAt(core.V(60, 5)) {
		t.Error("PushAt() on a player at the wall should be ignored")
	}
	if a.Velocity().Y != -7 {
		t.Errorf("velocity = %v, expected -7", a.Velocity().Y)
	}
}

func TestLevelOpponentRemovedFromPlayfield(t *testing.T) {
	l, _ := newTestLevel(t)
	a := mustPlayer(t, l, PlayerSpec{Corner: core.V(100, 200), Size: 20, Color: core.ColorBlack, MoveSpeed: 1})
	b := mustPlayer(t, l, PlayerSpec{Corner: core.V(5, 200), Velocity: core.V(-100, 0), Size: 20, Color: core.ColorRed, MoveSpeed: 1})
	l.Spawn(a)
	l.Spawn(b)

	if opp, ok := l.Opponent(a.ID()); !ok || opp != b {
		t.Fatal("Opponent() should find b while it is live")
	}

	l.Tick()

	if _, ok := l.Opponent(a.ID()); ok {
		t.Error("Opponent() should not return a player that left the playfield")
	}
	view, ok := l.Latest().Player(SideRight)
	if !ok || view.Live {
		t.Errorf("snapshot for removed player = %+v, expected not live", view)
	}
	if _, ok := l.Score()[b.ID()]; !ok {
		t.Error("score entry must survive the player's removal")
	}
}

func TestLevelSnapshotIsACopy(t *testing.T) {
	l, _ := newTestLevel(t)
	left, _ := classicSpecs()
	a := mustPlayer(t, l, left)
	l.Spawn(a)
	l.Tick()

	snap := l.Latest()
	snap.Scores[a.ID()] = 99

	if l.Score()[a.ID()] != 0 {
		t.Error("modifying a snapshot must not change the level")
	}

	view, ok := snap.Player(SideLeft)
	if !ok || view.ID != a.ID() || view.Color != core.ColorBlack {
		t.Errorf("Player(left) = %+v, %v", view, ok)
	}
	if _, ok := snap.Player(SideRight); ok {
		t.Error("Player(right) should be missing")
	}
	if snap.Width != 500 || snap.Height != 500 {
		t.Errorf("snapshot size = %vx%v, expected 500x500", snap.Width, snap.Height)
	}
}

func TestLevelPlayerLookup(t *testing.T) {
	l, _ := newTestLevel(t)
	left, _ := classicSpecs()
	a := mustPlayer(t, l, left)

	if p, ok := l.Player(SideLeft); !ok || p != a {
		t.Error("Player(left) should return the constructed player")
	}
	if _, ok := l.Player(SideRight); ok {
		t.Error("Player(right) should be empty")
	}
	if _, ok := l.Player(Side(7)); ok {
		t.Error("Player(out of range) should be empty")
	}
	if p, ok := l.PlayerByID(a.ID()); !ok || p != a {
		t.Error("PlayerByID() should find the player")
	}
}

func TestLevelSteer(t *testing.T) {
	l, _ := newTestLevel(t)
	left, _ := classicSpecs()
	left.Corner = core.V(50, 100)
	a := mustPlayer(t, l, left) // moving up, clear of the walls

	tests := []struct {
		name    string
		side    Side
		dir     Direction
		changed bool
		velY    float64
	}{
		{"already moving up", SideLeft, DirectionUp, false, -7},
		{"reverse down", SideLeft, DirectionDown, true, 7},
		{"empty slot", SideRight, DirectionUp, false, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Steer(tt.side, tt.dir); got != tt.changed {
				t.Errorf("Steer() = %v, expected %v", got, tt.changed)
			}
			if a.Velocity().Y != tt.velY {
				t.Errorf("velocity = %v, expected %v", a.Velocity().Y, tt.velY)
			}
		})
	}
}

func TestLevelSteerInBounceBand(t *testing.T) {
	l, _ := newTestLevel(t)
	left, right := classicSpecs()
	left.ShotSpeed, right.ShotSpeed = 0, 0
	a := mustPlayer(t, l, left)  // starts at the top wall
	b := mustPlayer(t, l, right) // starts at the bottom wall
	l.Spawn(a)
	l.Spawn(b)

	if l.Steer(SideLeft, DirectionDown) {
		t.Errorf("Steer() at top wall = true, expected false")
	}
	if l.Steer(SideRight, DirectionUp) {
		t.Errorf("Steer() at bottom wall = true, expected false")
	}

	tests := []struct {
		name string
		side Side
		dir  Direction
		p    *Player
	}{
		{"hold down from top", SideLeft, DirectionDown, a},
		{"hold up from bottom", SideRight, DirectionUp, b},
		{"hold up from top", SideLeft, DirectionUp, a},
		{"hold down from bottom", SideRight, DirectionDown, b},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				l.Steer(tt.side, tt.dir)
				l.Tick()
				if !tt.p.attached {
					t.Fatalf("player removed after %d ticks at %v", i+1, tt.p.Position())
				}
			}
			if _, ok := l.Opponent(tt.p.ID()); !ok {
				t.Errorf("Opponent() ok = false, expected both players live")
			}
		})
	}
}
