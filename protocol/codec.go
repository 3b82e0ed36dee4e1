package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownType marks a frame whose envelope parsed but whose type tag is
// not part of the closed union. Callers drop these for forward
// compatibility with server-added message types.
var ErrUnknownType = errors.New("unknown message type")

// DecodeError wraps any failure to turn a raw frame into a typed message.
// It is a diagnostic, not a connection-fatal condition.
type DecodeError struct {
	Type string // envelope type tag, if one parsed
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("decode %q: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("decode frame: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Envelope is the wire framing around every message.
type Envelope struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Decode parses a raw frame into its typed message. It has no side
// effects: a malformed frame or unrecognized type yields a *DecodeError
// and never panics past this boundary.
func Decode(raw []byte) (Message, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if env.Type == "" {
		return nil, &DecodeError{Err: errors.New("missing type field")}
	}

	var msg Message
	switch env.Type {
	case TypeRoomJoined:
		msg = &RoomJoined{}
	case TypePlayerMove:
		msg = &PlayerMove{}
	case TypeWeaponState:
		msg = &WeaponState{}
	case TypeShootFailed:
		msg = &ShootFailed{}
	case TypePlayerDeath:
		msg = &PlayerDeath{}
	case TypePlayerRespawn:
		msg = &PlayerRespawn{}
	case TypePlayerLeave:
		msg = &PlayerLeave{}
	case TypePlayerInput:
		msg = &PlayerInput{}
	case TypePlayerShoot:
		msg = &PlayerShoot{}
	default:
		return nil, &DecodeError{Type: env.Type, Err: ErrUnknownType}
	}

	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, msg); err != nil {
			return nil, &DecodeError{Type: env.Type, Err: err}
		}
	}
	return msg, nil
}

// Encode wraps a typed message in the wire envelope.
func Encode(msg Message, ts time.Time) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %q payload: %w", msg.MessageType(), err)
	}
	return json.Marshal(Envelope{
		Type:      msg.MessageType(),
		Timestamp: ts.UnixMilli(),
		Data:      data,
	})
}
