package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hersh/gopong/internal/protocol"
)

const (
	textRoomNotFound     = "room does not exist"
	textRoomFull         = "room is full"
	textAlreadyInRoom    = "already in this room"
	textCreateFailed     = "could not create a room, try again"
	textOpponentLeft     = "Opponent left the room!"
	textRematchRequested = "🔁 Opponent wants a rematch!"
	textRematchStarted   = "🔁 New match started!"
	textScoredFormat     = "🏓 %s scored!"
)

const defaultPlayerName = "Player"

// Gateway turns connection intents into room operations and room changes
// into outbound envelopes. Like the Registry it is owned by the Loop
// goroutine.
type Gateway struct {
	rooms *Registry
	out   Outbox
	// members maps a connection to the id of the room it sits in.
	members map[ConnID]string
}

func NewGateway(rooms *Registry, out Outbox) *Gateway {
	return &Gateway{
		rooms:   rooms,
		out:     out,
		members: make(map[ConnID]string),
	}
}

// Handle applies one intent from conn.
func (g *Gateway) Handle(conn ConnID, in Intent) {
	switch in := in.(type) {
	case CreateRoom:
		g.createRoom(conn, in.PlayerName)
	case JoinRoom:
		g.joinRoom(conn, in.RoomID, in.PlayerName)
	case JoinRandom:
		g.joinRandom(conn, in.PlayerName)
	case Move:
		if room := g.roomOf(conn); room != nil {
			room.Move(string(conn), in.Y)
		}
	case RequestRematch:
		g.requestRematch(conn)
	case LeaveRoom:
		g.leave(conn, "leave")
	case Disconnect:
		g.leave(conn, "disconnect")
	default:
		log.Warn().Str("module", "server.gateway").Str("conn_id", string(conn)).Msgf("unhandled intent %T", in)
	}
}

// RoomOf reports which room conn currently sits in.
func (g *Gateway) RoomOf(conn ConnID) (string, bool) {
	id, ok := g.members[conn]
	return id, ok
}

func (g *Gateway) createRoom(conn ConnID, name string) {
	g.leave(conn, "switch room")

	room, err := g.rooms.CreateRoom()
	if err != nil {
		log.Error().Err(err).Str("module", "server.gateway").Str("conn_id", string(conn)).Msg("create room failed")
		g.sendError(conn, textCreateFailed)
		return
	}
	if _, err := room.Join(string(conn), playerName(name)); err != nil {
		log.Error().Err(err).Str("module", "server.gateway").Str("room_id", room.ID).Msg("seat creator failed")
		g.rooms.Remove(room.ID)
		g.sendError(conn, textCreateFailed)
		return
	}
	g.members[conn] = room.ID

	g.out.Send(conn, protocol.Envelope{
		Type:    protocol.MsgRoomCreated,
		Payload: protocol.RoomCreatedPayload{RoomID: room.ID},
	})
}

func (g *Gateway) joinRoom(conn ConnID, roomID, name string) {
	room, ok := g.rooms.Find(roomID)
	if !ok {
		g.sendError(conn, textRoomNotFound)
		return
	}
	if current, in := g.members[conn]; in && current == room.ID {
		g.sendError(conn, textAlreadyInRoom)
		return
	}
	if room.Full() {
		g.sendError(conn, textRoomFull)
		return
	}

	g.leave(conn, "switch room")
	g.seat(conn, room, name)
}

func (g *Gateway) joinRandom(conn ConnID, name string) {
	g.leave(conn, "switch room")

	room, ok := g.rooms.FindJoinable()
	if !ok {
		g.createRoom(conn, name)
		return
	}
	g.seat(conn, room, name)
}

// seat adds conn to a room that is known to have a free slot.
func (g *Gateway) seat(conn ConnID, room *Room, name string) {
	started, err := room.Join(string(conn), playerName(name))
	if err != nil {
		text := textRoomFull
		if !errors.Is(err, ErrRoomFull) {
			log.Error().Err(err).Str("module", "server.gateway").Str("room_id", room.ID).Msg("join failed")
			text = err.Error()
		}
		g.sendError(conn, text)
		return
	}
	g.members[conn] = room.ID

	g.out.Send(conn, protocol.Envelope{
		Type:    protocol.MsgRoomJoined,
		Payload: protocol.RoomJoinedPayload{RoomID: room.ID},
	})
	if !started {
		return
	}

	players := room.Players()
	infos := make([]protocol.PlayerInfo, 0, len(players))
	for _, p := range players {
		infos = append(infos, protocol.PlayerInfo{ID: p.ID, Name: p.Name})
	}
	log.Info().Str("module", "server.gateway").Str("room_id", room.ID).Msg("match started")
	g.out.Broadcast(memberConns(room), protocol.Envelope{
		Type:    protocol.MsgGameStart,
		Payload: protocol.GameStartPayload{Players: infos},
	})
}

func (g *Gateway) requestRematch(conn ConnID) {
	room := g.roomOf(conn)
	if room == nil {
		return
	}

	switch room.RequestRematch(string(conn)) {
	case RematchPending:
		others := make([]ConnID, 0, MaxPlayers-1)
		for _, id := range memberConns(room) {
			if id != conn {
				others = append(others, id)
			}
		}
		g.out.Broadcast(others, textEnvelope(protocol.MsgMessage, textRematchRequested))
	case RematchStarted:
		log.Info().Str("module", "server.gateway").Str("room_id", room.ID).Msg("rematch started")
		to := memberConns(room)
		g.out.Broadcast(to, protocol.Envelope{Type: protocol.MsgRematchStart})
		g.out.Broadcast(to, textEnvelope(protocol.MsgMessage, textRematchStarted))
	}
}

// leave detaches conn from its room, if any. The last player out removes
// the room; an opponent left behind is told.
func (g *Gateway) leave(conn ConnID, reason string) {
	roomID, ok := g.members[conn]
	if !ok {
		return
	}
	delete(g.members, conn)

	room, ok := g.rooms.Find(roomID)
	if !ok {
		return
	}
	remaining := room.Leave(string(conn))
	log.Info().
		Str("module", "server.gateway").
		Str("room_id", roomID).
		Str("conn_id", string(conn)).
		Str("reason", reason).
		Int("remaining", remaining).
		Msg("player left room")

	switch remaining {
	case 0:
		g.rooms.Remove(roomID)
	case 1:
		g.out.Broadcast(memberConns(room), textEnvelope(protocol.MsgPlayerLeft, textOpponentLeft))
	}
}

// roomOf returns the room conn sits in, or nil.
func (g *Gateway) roomOf(conn ConnID) *Room {
	id, ok := g.members[conn]
	if !ok {
		return nil
	}
	room, ok := g.rooms.Find(id)
	if !ok {
		delete(g.members, conn)
		return nil
	}
	return room
}

func (g *Gateway) sendError(conn ConnID, text string) {
	g.out.Send(conn, textEnvelope(protocol.MsgError, text))
}

func textEnvelope(t protocol.MessageType, text string) protocol.Envelope {
	return protocol.Envelope{Type: t, Payload: protocol.TextPayload{Text: text}}
}

func scoredText(name string) string {
	return fmt.Sprintf(textScoredFormat, name)
}

func memberConns(room *Room) []ConnID {
	ids := room.PlayerIDs()
	out := make([]ConnID, len(ids))
	for i, id := range ids {
		out[i] = ConnID(id)
	}
	return out
}

func playerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultPlayerName
	}
	return name
}
