package server

import "github.com/hersh/gopong/internal/protocol"

// ConnID identifies one live client connection.
type ConnID string

// Outbox delivers envelopes to connections. Implementations must not block:
// a frame that cannot be queued is dropped.
type Outbox interface {
	Send(to ConnID, env protocol.Envelope)
	Broadcast(to []ConnID, env protocol.Envelope)
}
