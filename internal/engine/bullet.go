package engine

// Bullet travels horizontally and scores for its owner on contact with the
// opposing player.
type Bullet struct {
	Entity
	owner ID
}

// Owner returns the id of the player that fired the bullet.
func (b *Bullet) Owner() ID { return b.owner }

// Tick tests for a hit against the opponent, then draws and moves.
// A bullet that hits still moves this tick; the sweep removes it afterwards.
func (b *Bullet) Tick(w World) {
	if opp, ok := w.Opponent(b.owner); ok && b.Hits(opp.pos, opp.size) {
		w.ReportHit(b.owner)
		b.alive = false
	}

	b.Entity.Tick(w)
}
