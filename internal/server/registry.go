package server

import (
	"crypto/rand"
	"errors"
	"fmt"
	mrand "math/rand"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hersh/gopong/internal/game"
	"github.com/hersh/gopong/internal/protocol"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrIDSpaceExhausted = errors.New("no free room id")
)

const (
	roomIDAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomIDLen         = 6
	fallbackRoomIDLen = 10
	maxIDAttempts     = 8
)

// Registry owns every live room, in creation order.
// It is not safe for concurrent use; the Loop serialises access.
type Registry struct {
	rooms map[string]*Room
	order []string

	rng         game.Rand
	shareServe  bool
	sharedServe *game.ServePicker
	newID       func(n int) (string, error)
}

type RegistryOption func(*Registry)

// WithRand seeds ball serves and deflections, mostly for tests.
func WithRand(rng game.Rand) RegistryOption {
	return func(r *Registry) { r.rng = rng }
}

// WithSharedServeAngle makes every room share one last-serve-angle memory
// instead of each room keeping its own.
func WithSharedServeAngle(shared bool) RegistryOption {
	return func(r *Registry) { r.shareServe = shared }
}

func withIDSource(fn func(n int) (string, error)) RegistryOption {
	return func(r *Registry) { r.newID = fn }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		rooms: make(map[string]*Room),
		newID: randomRoomID,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = mrand.New(mrand.NewSource(time.Now().UnixNano()))
	}
	if r.shareServe {
		r.sharedServe = game.NewServePicker(r.rng)
	}
	return r
}

// CreateRoom registers an empty waiting room under a fresh id.
func (r *Registry) CreateRoom() (*Room, error) {
	id, err := r.allocateID()
	if err != nil {
		return nil, err
	}

	serve := r.sharedServe
	if serve == nil {
		serve = game.NewServePicker(r.rng)
	}
	room := newRoom(id, serve, r.rng)
	r.rooms[id] = room
	r.order = append(r.order, id)

	log.Info().Str("module", "server.registry").Str("room_id", id).Int("rooms", len(r.rooms)).Msg("room created")
	return room, nil
}

// allocateID draws short ids first and falls back to a larger id space when
// the short one keeps colliding.
func (r *Registry) allocateID() (string, error) {
	for _, n := range []int{roomIDLen, fallbackRoomIDLen} {
		for attempt := 0; attempt < maxIDAttempts; attempt++ {
			id, err := r.newID(n)
			if err != nil {
				return "", fmt.Errorf("generate room id: %w", err)
			}
			if _, taken := r.rooms[id]; !taken {
				return id, nil
			}
			log.Warn().Str("module", "server.registry").Str("room_id", id).Int("attempt", attempt+1).Msg("room id collision")
		}
	}
	return "", ErrIDSpaceExhausted
}

// Find looks a room up by id, ignoring case.
func (r *Registry) Find(id string) (*Room, bool) {
	room, ok := r.rooms[strings.ToUpper(strings.TrimSpace(id))]
	return room, ok
}

// FindJoinable returns the oldest waiting room with a free seat.
func (r *Registry) FindJoinable() (*Room, bool) {
	for _, id := range r.order {
		room := r.rooms[id]
		if room.Status == StatusWaiting && !room.Full() {
			return room, true
		}
	}
	return nil, false
}

// Remove deletes a room. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	if _, ok := r.rooms[id]; !ok {
		return
	}
	delete(r.rooms, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	log.Info().Str("module", "server.registry").Str("room_id", id).Int("rooms", len(r.rooms)).Msg("room removed")
}

// Rooms returns every room in creation order.
func (r *Registry) Rooms() []*Room {
	out := make([]*Room, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rooms[id])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.rooms)
}

// Snapshot summarises every room for the HTTP API.
func (r *Registry) Snapshot() []protocol.RoomInfo {
	out := make([]protocol.RoomInfo, 0, len(r.order))
	for _, room := range r.Rooms() {
		out = append(out, protocol.RoomInfo{
			RoomID:      room.ID,
			Status:      string(room.Status),
			PlayerCount: room.PlayerCount(),
			MaxPlayers:  MaxPlayers,
		})
	}
	return out
}

func randomRoomID(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = roomIDAlphabet[int(b[i])%len(roomIDAlphabet)]
	}
	return string(b), nil
}
