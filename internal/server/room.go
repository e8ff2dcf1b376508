package server

import (
	"errors"
	"math"

	"github.com/hersh/gopong/internal/game"
	"github.com/hersh/gopong/internal/player"
)

type RoomStatus string

const (
	StatusWaiting RoomStatus = "waiting"
	StatusPlaying RoomStatus = "playing"
)

const MaxPlayers = 2

type RematchOutcome int

const (
	RematchIgnored RematchOutcome = iota
	RematchPending
	RematchStarted
)

// Room is one match: two paddle slots, a ball and the rematch votes.
// Rooms are only touched from the simulation loop goroutine.
type Room struct {
	ID     string
	Status RoomStatus
	Ball   game.Ball

	players *player.Roster
	rematch map[string]struct{}
	serve   *game.ServePicker
	rng     game.Rand
}

func newRoom(id string, serve *game.ServePicker, rng game.Rand) *Room {
	return &Room{
		ID:      id,
		Status:  StatusWaiting,
		Ball:    game.NewBall(),
		players: player.NewRoster(MaxPlayers),
		rematch: make(map[string]struct{}),
		serve:   serve,
		rng:     rng,
	}
}

func (r *Room) Players() []*player.Player {
	return r.players.All()
}

func (r *Room) PlayerIDs() []string {
	return r.players.IDs()
}

func (r *Room) Player(id string) *player.Player {
	return r.players.Get(id)
}

func (r *Room) PlayerCount() int {
	return r.players.Count()
}

func (r *Room) Full() bool {
	return r.players.Full()
}

// Join seats a player. When the second seat fills the room starts playing
// and reports started=true.
func (r *Room) Join(id, name string) (started bool, err error) {
	if err := r.players.Add(player.New(id, name, game.StartY)); err != nil {
		if errors.Is(err, player.ErrFull) {
			return false, ErrRoomFull
		}
		return false, err
	}
	if r.players.Full() {
		r.Status = StatusPlaying
		r.Reset()
		return true, nil
	}
	return false, nil
}

// Leave removes a player and its rematch vote and returns how many remain.
// The status is left untouched; a playing room with one player is simply
// inactive.
func (r *Room) Leave(id string) int {
	r.players.Remove(id)
	delete(r.rematch, id)
	return r.players.Count()
}

// Reset zeroes scores, centres paddles, drops rematch votes and serves a
// fresh ball.
func (r *Room) Reset() {
	clear(r.rematch)
	r.players.Reset(game.StartY)
	r.serve.Serve(&r.Ball, 0)
}

// Move sets a paddle centre, clamped to the field. Unknown ids are ignored.
func (r *Room) Move(id string, y float64) {
	p := r.players.Get(id)
	if p == nil || math.IsNaN(y) {
		return
	}
	p.Y = game.ClampPaddle(y)
}

// RequestRematch records a vote. Once every seat has voted the votes are
// cleared and the match restarts.
func (r *Room) RequestRematch(id string) RematchOutcome {
	if r.players.Get(id) == nil {
		return RematchIgnored
	}
	r.rematch[id] = struct{}{}
	if len(r.rematch) < MaxPlayers {
		return RematchPending
	}
	r.Reset()
	return RematchStarted
}

func (r *Room) RematchVotes() int {
	return len(r.rematch)
}

// Active reports whether the simulation should run for this room.
func (r *Room) Active() bool {
	return r.Status == StatusPlaying && r.players.Count() == MaxPlayers
}

// Over reports whether a player has reached the winning score.
func (r *Room) Over() bool {
	left, right := r.players.At(0), r.players.At(1)
	if left == nil || right == nil {
		return false
	}
	return game.Over(left, right)
}

// Step advances an active, unfinished room by one tick.
func (r *Room) Step() game.Outcome {
	return game.Step(&r.Ball, r.players.At(0), r.players.At(1), r.serve, r.rng)
}

// SideOf returns the player seated on side s.
func (r *Room) SideOf(s game.Side) *player.Player {
	switch s {
	case game.SideLeft:
		return r.players.At(0)
	case game.SideRight:
		return r.players.At(1)
	}
	return nil
}
