package transport

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/hersh/gopong/internal/protocol"
	"github.com/hersh/gopong/internal/server"
)

// Hub tracks live connections and implements server.Outbox on top of them.
// Delivery is fire-and-forget: a full or closed connection loses the frame.
type Hub struct {
	mu    sync.RWMutex
	conns map[server.ConnID]*Conn
}

var _ server.Outbox = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{conns: make(map[server.ConnID]*Conn)}
}

func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.id] = c
}

// Unregister forgets a connection and closes it.
func (h *Hub) Unregister(id server.ConnID) {
	h.mu.Lock()
	c, ok := h.conns[id]
	delete(h.conns, id)
	h.mu.Unlock()

	if ok {
		c.Close()
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// CloseAll closes every connection; used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.conns {
		c.Close()
	}
}

func (h *Hub) Send(to server.ConnID, env protocol.Envelope) {
	h.Broadcast([]server.ConnID{to}, env)
}

func (h *Hub) Broadcast(to []server.ConnID, env protocol.Envelope) {
	if len(to) == 0 {
		return
	}
	data, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("module", "transport.hub").Str("type", string(env.Type)).Msg("marshal envelope")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, id := range to {
		c, ok := h.conns[id]
		if !ok {
			continue
		}
		if err := c.TrySend(data); err != nil {
			ev := log.Debug()
			if errors.Is(err, ErrBackpressure) {
				ev = log.Warn()
			}
			ev.Err(err).Str("module", "transport.hub").Str("conn_id", string(id)).Str("type", string(env.Type)).Msg("frame dropped")
		}
	}
}
