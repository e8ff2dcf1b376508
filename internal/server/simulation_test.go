package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hersh/gopong/internal/game"
	"github.com/hersh/gopong/internal/protocol"
)

func TestSimulationSkipsInactiveRooms(t *testing.T) {
	gw, reg, out := newTestGateway()
	sim := NewSimulation(reg, out)

	gw.Handle("ann", CreateRoom{PlayerName: "Ann"})
	out.reset()
	room, _ := reg.Find(mustRoomOf(t, gw, "ann"))
	before := room.Ball

	sim.Tick()

	assert.Empty(t, out.received("ann"))
	assert.Equal(t, before, room.Ball)
}

func TestSimulationGameOverFiresOnce(t *testing.T) {
	gw, reg, out := newTestGateway()
	room := startMatch(t, gw, reg, out)
	sim := NewSimulation(reg, out)

	room.Player("ann").Score = game.WinScore - 1
	room.Move("bo", game.MaxPaddleY)
	room.Ball = game.NewBall()
	room.Ball.X, room.Ball.DX = 598, 5
	out.reset()

	sim.Tick()
	sim.Tick()
	sim.Tick()

	for _, c := range []ConnID{"ann", "bo"} {
		over := out.received(c, protocol.MsgGameOver)
		require.Len(t, over, 1)
		assert.Equal(t, "Ann", over[0].Payload.(protocol.GameOverPayload).Winner)
		assert.Len(t, out.received(c, protocol.MsgMessage), 1)
		assert.Len(t, out.received(c, protocol.MsgUpdate), 3, "frozen rooms keep broadcasting")
	}
	assert.True(t, room.Over())
	assert.Equal(t, game.Width/2, room.Ball.X)
	assert.Zero(t, room.Ball.DX)
	assert.Zero(t, room.Ball.DY)
}

func TestSimulationRecoversFromRoomPanic(t *testing.T) {
	gw, reg, out := newTestGateway()
	broken := startMatch(t, gw, reg, out)
	gw.Handle("cy", CreateRoom{PlayerName: "Cy"})
	gw.Handle("di", JoinRandom{PlayerName: "Di"})
	sim := NewSimulation(reg, out)

	// Scoring in the broken room needs a serve picker it does not have.
	broken.serve = nil
	broken.Move("bo", game.MaxPaddleY)
	broken.Ball = game.NewBall()
	broken.Ball.X, broken.Ball.DX = 599, 5
	out.reset()

	require.NotPanics(t, sim.Tick)

	assert.Empty(t, out.received("ann", protocol.MsgUpdate))
	assert.Len(t, out.received("cy", protocol.MsgUpdate), 1)
	assert.Len(t, out.received("di", protocol.MsgUpdate), 1)
}

func TestUpdateEnvelopeListsLeftPlayerFirst(t *testing.T) {
	gw, reg, out := newTestGateway()
	room := startMatch(t, gw, reg, out)
	room.Move("ann", 100)

	env := updateEnvelope(room)

	assert.Equal(t, protocol.MsgUpdate, env.Type)
	p := env.Payload.(protocol.UpdatePayload)
	require.Len(t, p.Players, 2)
	assert.Equal(t, protocol.PlayerState{ID: "ann", Name: "Ann", Y: 100}, p.Players[0])
	assert.Equal(t, "bo", p.Players[1].ID)
	assert.Equal(t, game.BallRadius, p.Ball.Radius)
}

func mustRoomOf(t *testing.T, gw *Gateway, conn ConnID) string {
	t.Helper()
	id, ok := gw.RoomOf(conn)
	require.True(t, ok)
	return id
}
