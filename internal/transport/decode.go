package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cast"

	"github.com/hersh/gopong/internal/protocol"
	"github.com/hersh/gopong/internal/server"
)

var ErrUnknownType = errors.New("unknown message type")

type inbound struct {
	Type    protocol.MessageType `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

// DecodeIntent turns one client frame into a server intent.
func DecodeIntent(data []byte) (server.Intent, error) {
	var env inbound
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch env.Type {
	case protocol.MsgCreateRoom:
		var p protocol.CreateRoomPayload
		if err := payload(env.Payload, &p); err != nil {
			return nil, err
		}
		return server.CreateRoom{PlayerName: p.PlayerName}, nil

	case protocol.MsgJoinRoom:
		var p protocol.JoinRoomPayload
		if err := payload(env.Payload, &p); err != nil {
			return nil, err
		}
		return server.JoinRoom{RoomID: p.RoomID, PlayerName: p.PlayerName}, nil

	case protocol.MsgJoinRandom:
		var p protocol.JoinRandomPayload
		if err := payload(env.Payload, &p); err != nil {
			return nil, err
		}
		return server.JoinRandom{PlayerName: p.PlayerName}, nil

	case protocol.MsgMove:
		y, err := moveY(env.Payload)
		if err != nil {
			return nil, err
		}
		return server.Move{Y: y}, nil

	case protocol.MsgRequestRematch:
		return server.RequestRematch{}, nil

	case protocol.MsgLeaveRoom:
		return server.LeaveRoom{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
}

// payload decodes an optional object payload; a missing one leaves v zeroed.
func payload(raw json.RawMessage, v any) error {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// moveY accepts {"y": 120}, {"y": "120"} or a bare 120.
func moveY(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errors.New("move without position")
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("decode payload: %w", err)
	}
	if obj, ok := v.(map[string]any); ok {
		y, found := obj["y"]
		if !found {
			return 0, errors.New("move without position")
		}
		v = y
	}
	y, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("move position: %w", err)
	}
	return y, nil
}
