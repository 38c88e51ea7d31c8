package engine

import "github.com/vovakirdan/tui-duel/internal/core"

// PlayerView is a read-only copy of a player's state.
type PlayerView struct {
	ID         ID
	Side       Side
	Position   core.Vec2
	Velocity   core.Vec2
	Size       float64
	Color      core.Color
	MoveSpeed  float64
	ShotSpeed  float64
	ShotCharge float64
	Score      int
	Live       bool // In the level's collection
}

// Snapshot is an immutable point-in-time copy of the observable level state.
type Snapshot struct {
	Tick     uint64
	Paused   bool
	Width    float64
	Height   float64
	Entities int
	Scores   map[ID]int
	Players  []PlayerView // Ordered by side
}

// Score returns the score of id, or 0 if it has no entry.
func (s Snapshot) Score(id ID) int {
	return s.Scores[id]
}

// Player returns the view of the player on the given side.
func (s Snapshot) Player(side Side) (PlayerView, bool) {
	for _, p := range s.Players {
		if p.Side == side {
			return p, true
		}
	}
	return PlayerView{}, false
}

// Snapshot builds a fresh copy of the level state. Must be called from the
// goroutine that owns the level; other goroutines use Latest.
func (l *Level) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     l.ticks,
		Paused:   l.paused,
		Width:    l.surface.Width(),
		Height:   l.surface.Height(),
		Entities: len(l.entities),
		Scores:   l.Score(),
	}
	for _, p := range l.players {
		if p == nil {
			continue
		}
		snap.Players = append(snap.Players, PlayerView{
			ID:         p.id,
			Side:       p.side,
			Position:   p.pos,
			Velocity:   p.vel,
			Size:       p.size,
			Color:      p.color,
			MoveSpeed:  p.moveSpeed,
			ShotSpeed:  p.shotSpeed,
			ShotCharge: p.shotCharge,
			Score:      l.score[p.id],
			Live:       p.attached,
		})
	}
	return snap
}

// Latest returns the most recently published snapshot.
// Safe to call from any goroutine.
func (l *Level) Latest() Snapshot {
	if s := l.latest.Load(); s != nil {
		return *s
	}
	return Snapshot{}
}

// publish stores a new snapshot for concurrent readers.
func (l *Level) publish() {
	snap := l.Snapshot()
	l.latest.Store(&snap)
}
