package protocol

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDecodeRoomJoined(t *testing.T) {
	raw := []byte(`{"type":"room:joined","timestamp":1000,"data":{"playerId":"P1","roomId":"arena-1"}}`)
	msg, err := Decode(raw)
	require.NoError(t, err)

	joined, ok := msg.(*RoomJoined)
	require.True(t, ok, "expected *RoomJoined, got %T", msg)
	require.Equal(t, "P1", joined.PlayerID)
	require.Equal(t, "arena-1", joined.RoomID)
}

func TestDecodePlayerMoveDeltaFields(t *testing.T) {
	raw := []byte(`{"type":"player:move","timestamp":2000,"data":{
		"players":[
			{"id":"P1","position":{"x":300,"y":400},"velocity":{"x":10,"y":20},"aimAngle":1.5},
			{"id":"P2","velocity":{"x":-5,"y":0}}
		],
		"isDelta":true}}`)
	msg, err := Decode(raw)
	require.NoError(t, err)

	move, ok := msg.(*PlayerMove)
	require.True(t, ok)
	require.True(t, move.IsDelta)
	require.Len(t, move.Players, 2)

	p1 := move.Players[0]
	require.NotNil(t, p1.Position)
	require.Equal(t, 300.0, p1.Position.X)
	require.Equal(t, 400.0, p1.Position.Y)
	require.NotNil(t, p1.AimAngle)
	require.Equal(t, 1.5, *p1.AimAngle)

	// Absent fields stay nil so the registry can tell "unset" from zero.
	p2 := move.Players[1]
	require.Nil(t, p2.Position)
	require.Nil(t, p2.AimAngle)
	require.NotNil(t, p2.Velocity)
}

func TestDecodeWeaponState(t *testing.T) {
	raw := []byte(`{"type":"weapon:state","timestamp":0,"data":{"currentAmmo":3,"maxAmmo":12,"isReloading":true,"canShoot":false}}`)
	msg, err := Decode(raw)
	require.NoError(t, err)

	ws, ok := msg.(*WeaponState)
	require.True(t, ok)
	require.Equal(t, WeaponState{CurrentAmmo: 3, MaxAmmo: 12, IsReloading: true, CanShoot: false}, *ws)
}

func TestDecodeShootFailed(t *testing.T) {
	raw := []byte(`{"type":"shoot:failed","timestamp":0,"data":{"reason":"empty"}}`)
	msg, err := Decode(raw)
	require.NoError(t, err)

	failed, ok := msg.(*ShootFailed)
	require.True(t, ok)
	require.Equal(t, ReasonEmpty, failed.Reason)
}

func TestDecodeUnknownType(t *testing.T) {
	raw := []byte(`{"type":"server:banter","timestamp":0,"data":{"text":"gg"}}`)
	msg, err := Decode(raw)
	require.Nil(t, msg)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownType))

	var derr *DecodeError
	require.True(t, errors.As(err, &derr))
	require.Equal(t, "server:banter", derr.Type)
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{
		`not json at all`,
		`{"timestamp":1}`,
		`{"type":"player:move","data":{"players":"nope"}}`,
	} {
		msg, err := Decode([]byte(raw))
		require.Nil(t, msg, "input %q", raw)
		var derr *DecodeError
		require.True(t, errors.As(err, &derr), "input %q: %v", raw, err)
	}
}

func TestEncodeEnvelope(t *testing.T) {
	ts := time.UnixMilli(123456)
	raw, err := Encode(&PlayerShoot{AimAngle: 0.5}, ts)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Equal(t, TypePlayerShoot, env.Type)
	require.Equal(t, int64(123456), env.Timestamp)

	msg, err := Decode(raw)
	require.NoError(t, err)
	shoot, ok := msg.(*PlayerShoot)
	require.True(t, ok)
	require.Equal(t, 0.5, shoot.AimAngle)
}
