package server

import (
	"sync"

	"github.com/hersh/gopong/internal/protocol"
)

type delivery struct {
	to  ConnID
	env protocol.Envelope
}

// recorder is an Outbox that keeps every frame it is asked to send.
type recorder struct {
	mu   sync.Mutex
	sent []delivery
}

func (r *recorder) Send(to ConnID, env protocol.Envelope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, delivery{to: to, env: env})
}

func (r *recorder) Broadcast(to []ConnID, env protocol.Envelope) {
	for _, c := range to {
		r.Send(c, env)
	}
}

// received returns what conn got, optionally filtered by type.
func (r *recorder) received(conn ConnID, types ...protocol.MessageType) []protocol.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []protocol.Envelope
	for _, d := range r.sent {
		if d.to != conn {
			continue
		}
		if len(types) == 0 {
			out = append(out, d.env)
			continue
		}
		for _, t := range types {
			if d.env.Type == t {
				out = append(out, d.env)
				break
			}
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

func texts(envs []protocol.Envelope) []string {
	out := make([]string, 0, len(envs))
	for _, e := range envs {
		if p, ok := e.Payload.(protocol.TextPayload); ok {
			out = append(out, p.Text)
		}
	}
	return out
}
