package protocol

// MessageType identifies the kind of message sent over the wire.
type MessageType string

const (
	// Server -> Client messages
	MsgAssignID     MessageType = "assign_id"
	MsgRoomCreated  MessageType = "room_created"
	MsgRoomJoined   MessageType = "room_joined"
	MsgGameStart    MessageType = "game_start"
	MsgUpdate       MessageType = "update"
	MsgMessage      MessageType = "message"
	MsgGameOver     MessageType = "game_over"
	MsgRematchStart MessageType = "rematch_start"
	MsgPlayerLeft   MessageType = "player_left"
	MsgError        MessageType = "error"

	// Client -> Server messages
	MsgCreateRoom     MessageType = "create_room"
	MsgJoinRoom       MessageType = "join_room"
	MsgJoinRandom     MessageType = "join_random"
	MsgMove           MessageType = "move"
	MsgRequestRematch MessageType = "request_rematch"
	MsgLeaveRoom      MessageType = "leave_room"
)

// Envelope is the top-level wire format for all messages.
type Envelope struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// --- Server -> Client payloads ---

// AssignIDPayload is sent when a client first connects.
type AssignIDPayload struct {
	PlayerID string `json:"player_id"`
}

// RoomCreatedPayload is sent to the player who created a room.
type RoomCreatedPayload struct {
	RoomID string `json:"room_id"`
}

// RoomJoinedPayload is sent when a player successfully joins a room.
type RoomJoinedPayload struct {
	RoomID string `json:"room_id"`
}

// PlayerInfo names one participant of a match.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GameStartPayload lists both players, left paddle first.
type GameStartPayload struct {
	Players []PlayerInfo `json:"players"`
}

// PlayerState is one paddle in an update.
type PlayerState struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Y     float64 `json:"y"`
	Score int     `json:"score"`
}

type BallState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Radius float64 `json:"radius"`
	Speed  float64 `json:"speed"`
}

// UpdatePayload is the per-tick room snapshot, left paddle first.
type UpdatePayload struct {
	Players []PlayerState `json:"players"`
	Ball    BallState     `json:"ball"`
}

// TextPayload carries human-readable text for message, player_left and
// error envelopes.
type TextPayload struct {
	Text string `json:"text"`
}

// GameOverPayload names the winner of the match.
type GameOverPayload struct {
	Winner string `json:"winner"`
}

// --- Client -> Server payloads ---

// CreateRoomPayload is sent by a client to create a new room.
type CreateRoomPayload struct {
	PlayerName string `json:"player_name"`
}

// JoinRoomPayload is sent by a client to join an existing room.
type JoinRoomPayload struct {
	RoomID     string `json:"room_id"`
	PlayerName string `json:"player_name"`
}

// JoinRandomPayload asks the server to match the client with anyone waiting.
type JoinRandomPayload struct {
	PlayerName string `json:"player_name"`
}

// MovePayload sets the sender's paddle centre.
type MovePayload struct {
	Y float64 `json:"y"`
}

// --- HTTP Request/Response types ---

// RoomInfo describes a room in the list-rooms response.
type RoomInfo struct {
	RoomID      string `json:"room_id"`
	Status      string `json:"status"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

// ListRoomsResponse is returned by GET /api/rooms.
type ListRoomsResponse struct {
	Rooms []RoomInfo `json:"rooms"`
}

// ErrorResponse is a generic JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
