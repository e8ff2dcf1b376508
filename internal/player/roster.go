package player

import "errors"

var (
	ErrFull      = errors.New("roster is full")
	ErrDuplicate = errors.New("player already in roster")
)

// Roster keeps players in join order. The first player plays the left
// paddle, the second the right one.
//
// A Roster is not safe for concurrent use; it is owned by the simulation
// loop goroutine.
type Roster struct {
	capacity int
	players  []*Player
}

func NewRoster(capacity int) *Roster {
	return &Roster{
		capacity: capacity,
		players:  make([]*Player, 0, capacity),
	}
}

func (r *Roster) Add(p *Player) error {
	if r.Get(p.ID) != nil {
		return ErrDuplicate
	}
	if r.Full() {
		return ErrFull
	}
	r.players = append(r.players, p)
	return nil
}

// Remove drops the player with the given id and reports whether it was present.
func (r *Roster) Remove(id string) bool {
	for i, p := range r.players {
		if p.ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Roster) Get(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// At returns the player in slot i, or nil when the slot is empty.
func (r *Roster) At(i int) *Player {
	if i < 0 || i >= len(r.players) {
		return nil
	}
	return r.players[i]
}

func (r *Roster) All() []*Player {
	out := make([]*Player, len(r.players))
	copy(out, r.players)
	return out
}

func (r *Roster) IDs() []string {
	ids := make([]string, len(r.players))
	for i, p := range r.players {
		ids[i] = p.ID
	}
	return ids
}

func (r *Roster) Count() int {
	return len(r.players)
}

func (r *Roster) Full() bool {
	return len(r.players) >= r.capacity
}

// Reset zeroes every score and moves every paddle to y.
func (r *Roster) Reset(y float64) {
	for _, p := range r.players {
		p.Score = 0
		p.Y = y
	}
}
