package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hersh/gopong/internal/config"
	"github.com/hersh/gopong/internal/protocol"
	"github.com/hersh/gopong/internal/server"
)

// Dispatcher is the game side of the transport: the server Loop.
type Dispatcher interface {
	Submit(ctx context.Context, conn server.ConnID, in server.Intent) error
	Rooms(ctx context.Context) ([]protocol.RoomInfo, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsHandler struct {
	ctx      context.Context
	cfg      *config.Config
	hub      *Hub
	dispatch Dispatcher
}

// serve upgrades the request and runs the connection until it goes away.
func (h *wsHandler) serve(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "transport.ws").Msg("ws upgrade")
		return
	}

	conn := newConn(server.ConnID(uuid.NewString()), ws, h.cfg.SendBuffer)
	h.hub.Register(conn)
	log.Info().Str("module", "transport.ws").Str("conn_id", string(conn.id)).Str("remote", c.ClientIP()).Msg("client connected")

	h.hub.Send(conn.id, protocol.Envelope{
		Type:    protocol.MsgAssignID,
		Payload: protocol.AssignIDPayload{PlayerID: string(conn.id)},
	})

	go conn.writePump(h.cfg.PingPeriod, h.cfg.WriteWait)
	h.readPump(conn)
}

func (h *wsHandler) readPump(conn *Conn) {
	defer func() {
		if err := h.dispatch.Submit(h.ctx, conn.id, server.Disconnect{}); err != nil {
			log.Debug().Err(err).Str("module", "transport.ws").Str("conn_id", string(conn.id)).Msg("disconnect not delivered")
		}
		h.hub.Unregister(conn.id)
		log.Info().Str("module", "transport.ws").Str("conn_id", string(conn.id)).Msg("client disconnected")
	}()

	ws := conn.ws
	ws.SetReadLimit(h.cfg.ReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("module", "transport.ws").Str("conn_id", string(conn.id)).Msg("read error")
			}
			return
		}

		in, err := DecodeIntent(data)
		if err != nil {
			ev := log.Debug()
			if errors.Is(err, ErrUnknownType) {
				ev = log.Warn()
			}
			ev.Err(err).Str("module", "transport.ws").Str("conn_id", string(conn.id)).Msg("frame ignored")
			continue
		}

		if err := h.dispatch.Submit(h.ctx, conn.id, in); err != nil {
			log.Debug().Err(err).Str("module", "transport.ws").Str("conn_id", string(conn.id)).Msg("intent not delivered")
			return
		}
	}
}
