package server

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hersh/gopong/internal/protocol"
)

var ErrLoopStopped = errors.New("game loop stopped")

type submission struct {
	conn   ConnID
	intent Intent
}

// Loop is the single goroutine that owns every room. Intents, read-only
// queries and simulation ticks are processed one at a time, so a tick never
// observes a half-applied intent.
type Loop struct {
	rooms    *Registry
	gateway  *Gateway
	sim      *Simulation
	interval time.Duration

	intents chan submission
	queries chan func()
	done    chan struct{}
}

func NewLoop(rooms *Registry, out Outbox, interval time.Duration) *Loop {
	return &Loop{
		rooms:    rooms,
		gateway:  NewGateway(rooms, out),
		sim:      NewSimulation(rooms, out),
		interval: interval,
		intents:  make(chan submission),
		queries:  make(chan func()),
		done:     make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	log.Info().Str("module", "server.loop").Dur("interval", l.interval).Msg("game loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "server.loop").Int("rooms", l.rooms.Len()).Msg("game loop stopped")
			return ctx.Err()
		case s := <-l.intents:
			l.gateway.Handle(s.conn, s.intent)
		case q := <-l.queries:
			q()
		case <-ticker.C:
			l.sim.Tick()
		}
	}
}

// Submit hands an intent to the loop, waiting until it is accepted.
func (l *Loop) Submit(ctx context.Context, conn ConnID, in Intent) error {
	select {
	case l.intents <- submission{conn: conn, intent: in}:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Rooms returns a snapshot of every room taken on the loop goroutine.
func (l *Loop) Rooms(ctx context.Context) ([]protocol.RoomInfo, error) {
	reply := make(chan []protocol.RoomInfo, 1)
	q := func() { reply <- l.rooms.Snapshot() }

	select {
	case l.queries <- q:
	case <-l.done:
		return nil, ErrLoopStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return <-reply, nil
}
