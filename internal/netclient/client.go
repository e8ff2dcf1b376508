package netclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hersh/gopong/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 1 << 16
)

var errClosed = errors.New("client closed")

// ConnectedMsg is sent when the server assigns this client its id.
type ConnectedMsg struct {
	PlayerID string
}

// RoomMsg reports the room this client now sits in.
type RoomMsg struct {
	RoomID  string
	Created bool
}

type GameStartMsg struct {
	Players []protocol.PlayerInfo
}

// UpdateMsg is one simulation frame.
type UpdateMsg protocol.UpdatePayload

type GameOverMsg struct {
	Winner string
}

type RematchStartMsg struct{}

// NoticeMsg carries server text: chat-style messages, opponent departures
// and errors.
type NoticeMsg struct {
	Kind protocol.MessageType
	Text string
}

// DisconnectedMsg is sent when the WebSocket connection is lost.
type DisconnectedMsg struct {
	Err error
}

// Sink receives decoded server messages; *tea.Program satisfies it.
type Sink interface {
	Send(msg tea.Msg)
}

// Client manages the WebSocket connection to the game server.
type Client struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	sendCh chan []byte
	sink   Sink
	done   chan struct{}
	closed bool
}

// Dial connects to the server's /ws endpoint.
func Dial(serverURL string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(serverURL, nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		conn:   conn,
		sendCh: make(chan []byte, 256),
		done:   make(chan struct{}),
	}, nil
}

// Start launches the read and write pumps, delivering messages to sink.
func (c *Client) Start(sink Sink) {
	c.mu.Lock()
	c.sink = sink
	c.mu.Unlock()

	go c.writePump()
	go c.readPump()
}

func (c *Client) CreateRoom(name string) {
	c.send(protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: name})
}

func (c *Client) JoinRoom(roomID, name string) {
	c.send(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: roomID, PlayerName: name})
}

func (c *Client) JoinRandom(name string) {
	c.send(protocol.MsgJoinRandom, protocol.JoinRandomPayload{PlayerName: name})
}

func (c *Client) Move(y float64) {
	c.send(protocol.MsgMove, protocol.MovePayload{Y: y})
}

func (c *Client) RequestRematch() {
	c.send(protocol.MsgRequestRematch, nil)
}

func (c *Client) LeaveRoom() {
	c.send(protocol.MsgLeaveRoom, nil)
}

func (c *Client) send(t protocol.MessageType, payload any) {
	data, err := json.Marshal(protocol.Envelope{Type: t, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("module", "netclient").Msg("marshal")
		return
	}
	select {
	case c.sendCh <- data:
	default:
		log.Warn().Str("module", "netclient").Str("type", string(t)).Msg("send channel full, dropping message")
	}
}

// Close shuts down the client connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = c.conn.Close()
}

// Decode turns one server frame into the tea.Msg the UI understands.
func Decode(data []byte) (tea.Msg, error) {
	var env struct {
		Type    protocol.MessageType `json:"type"`
		Payload json.RawMessage      `json:"payload"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Type {
	case protocol.MsgAssignID:
		var p protocol.AssignIDPayload
		err := json.Unmarshal(env.Payload, &p)
		return ConnectedMsg{PlayerID: p.PlayerID}, err
	case protocol.MsgRoomCreated:
		var p protocol.RoomCreatedPayload
		err := json.Unmarshal(env.Payload, &p)
		return RoomMsg{RoomID: p.RoomID, Created: true}, err
	case protocol.MsgRoomJoined:
		var p protocol.RoomJoinedPayload
		err := json.Unmarshal(env.Payload, &p)
		return RoomMsg{RoomID: p.RoomID}, err
	case protocol.MsgGameStart:
		var p protocol.GameStartPayload
		err := json.Unmarshal(env.Payload, &p)
		return GameStartMsg{Players: p.Players}, err
	case protocol.MsgUpdate:
		var p protocol.UpdatePayload
		err := json.Unmarshal(env.Payload, &p)
		return UpdateMsg(p), err
	case protocol.MsgGameOver:
		var p protocol.GameOverPayload
		err := json.Unmarshal(env.Payload, &p)
		return GameOverMsg{Winner: p.Winner}, err
	case protocol.MsgRematchStart:
		return RematchStartMsg{}, nil
	case protocol.MsgMessage, protocol.MsgPlayerLeft, protocol.MsgError:
		var p protocol.TextPayload
		err := json.Unmarshal(env.Payload, &p)
		return NoticeMsg{Kind: env.Type, Text: p.Text}, err
	}
	return nil, fmt.Errorf("unknown message type %q", env.Type)
}

// readPump reads frames from the WebSocket and hands them to the sink.
func (c *Client) readPump() {
	var readErr error
	defer func() {
		c.mu.Lock()
		sink := c.sink
		c.mu.Unlock()
		if sink != nil {
			sink.Send(DisconnectedMsg{Err: readErr})
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("module", "netclient").Msg("read error")
				readErr = err
			}
			return
		}

		msg, err := Decode(message)
		if err != nil {
			log.Debug().Err(err).Str("module", "netclient").Msg("frame ignored")
			continue
		}

		c.mu.Lock()
		sink := c.sink
		c.mu.Unlock()
		if sink != nil {
			sink.Send(msg)
		}
	}
}

// writePump writes queued frames and pings to the WebSocket.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.sendCh:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// write serialises socket writes with Close.
func (c *Client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClosed
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}
