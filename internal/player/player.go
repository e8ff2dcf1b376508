package player

// Player is one paddle in a room.
type Player struct {
	ID    string
	Name  string
	Y     float64
	Score int
}

func New(id, name string, y float64) *Player {
	return &Player{
		ID:   id,
		Name: name,
		Y:    y,
	}
}
