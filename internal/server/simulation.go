package server

import (
	"github.com/rs/zerolog/log"

	"github.com/hersh/gopong/internal/protocol"
)

// Simulation advances every active room by one tick and fans the result
// out to its players.
type Simulation struct {
	rooms *Registry
	out   Outbox
}

func NewSimulation(rooms *Registry, out Outbox) *Simulation {
	return &Simulation{rooms: rooms, out: out}
}

// Tick runs one frame over all rooms in creation order. A room that panics
// is logged and skipped; the others still advance.
func (s *Simulation) Tick() {
	for _, room := range s.rooms.Rooms() {
		s.tickRoom(room)
	}
}

func (s *Simulation) tickRoom(room *Room) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("module", "server.simulation").
				Str("room_id", room.ID).
				Interface("panic", r).
				Msg("room tick failed")
		}
	}()

	if !room.Active() {
		return
	}
	to := memberConns(room)

	// A finished match keeps broadcasting its frozen state until a rematch.
	if !room.Over() {
		outcome := room.Step()
		if scorer := room.SideOf(outcome.Scorer); scorer != nil {
			s.out.Broadcast(to, textEnvelope(protocol.MsgMessage, scoredText(scorer.Name)))
		}
		if winner := room.SideOf(outcome.Winner); winner != nil {
			log.Info().
				Str("module", "server.simulation").
				Str("room_id", room.ID).
				Str("winner", winner.Name).
				Msg("match over")
			s.out.Broadcast(to, protocol.Envelope{
				Type:    protocol.MsgGameOver,
				Payload: protocol.GameOverPayload{Winner: winner.Name},
			})
		}
	}

	s.out.Broadcast(to, updateEnvelope(room))
}

func updateEnvelope(room *Room) protocol.Envelope {
	players := room.Players()
	states := make([]protocol.PlayerState, 0, len(players))
	for _, p := range players {
		states = append(states, protocol.PlayerState{ID: p.ID, Name: p.Name, Y: p.Y, Score: p.Score})
	}
	b := room.Ball
	return protocol.Envelope{
		Type: protocol.MsgUpdate,
		Payload: protocol.UpdatePayload{
			Players: states,
			Ball: protocol.BallState{
				X: b.X, Y: b.Y, DX: b.DX, DY: b.DY, Radius: b.Radius, Speed: b.Speed,
			},
		},
	}
}
