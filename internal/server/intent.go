package server

// Intent is something a connection asks the server to do. The set is closed;
// Gateway.Handle switches over every member.
type Intent interface {
	intent()
}

type CreateRoom struct {
	PlayerName string
}

type JoinRoom struct {
	RoomID     string
	PlayerName string
}

type JoinRandom struct {
	PlayerName string
}

// Move sets the sender's paddle centre.
type Move struct {
	Y float64
}

type RequestRematch struct{}

type LeaveRoom struct{}

// Disconnect is submitted by the transport when a connection goes away.
type Disconnect struct{}

func (CreateRoom) intent()     {}
func (JoinRoom) intent()       {}
func (JoinRandom) intent()     {}
func (Move) intent()           {}
func (RequestRematch) intent() {}
func (LeaveRoom) intent()      {}
func (Disconnect) intent()     {}
