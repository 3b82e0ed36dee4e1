// Package protocol implements the JSON wire envelope shared with the
// gridfire server: a `{type, timestamp, data}` object where type selects
// the data shape. The message set is a closed tagged union; decoding is
// pure and fails closed with a *DecodeError on malformed frames or
// unrecognized types so callers can drop and keep the connection open.
package protocol

import "github.com/gridfire/client/gamemath"

// Message type tags. Server → client unless noted.
const (
	TypeRoomJoined    = "room:joined"
	TypePlayerMove    = "player:move"
	TypeWeaponState   = "weapon:state"
	TypeShootFailed   = "shoot:failed"
	TypePlayerDeath   = "player:death"
	TypePlayerRespawn = "player:respawn"
	TypePlayerLeave   = "player:leave"

	// Client → server.
	TypePlayerInput = "player:input"
	TypePlayerShoot = "player:shoot"
)

// ReasonEmpty is the shoot:failed reason sent when the magazine is empty.
// It selects the distinguished out-of-ammo feedback path; every other
// reason (cooldown, dead, ...) gets uniform treatment.
const ReasonEmpty = "empty"

// Message is implemented by every payload in the closed union.
type Message interface {
	MessageType() string
}

// RoomJoined establishes the local player's identity. Sent once by the
// server after the join handshake.
type RoomJoined struct {
	PlayerID string `json:"playerId"`
	RoomID   string `json:"roomId,omitempty"`
}

func (RoomJoined) MessageType() string { return TypeRoomJoined }

// PlayerUpdate is one per-player record inside a player:move batch.
// Pointer fields are optional: absent fields leave the registry's prior
// values untouched (delta semantics).
type PlayerUpdate struct {
	ID       string         `json:"id"`
	Position *gamemath.Vec2 `json:"position,omitempty"`
	Velocity *gamemath.Vec2 `json:"velocity,omitempty"`
	AimAngle *float64       `json:"aimAngle,omitempty"`
}

// PlayerMove carries authoritative position/velocity/aim for a batch of
// players. IsDelta tags whether the batch is a partial update or a full
// snapshot of the listed players.
type PlayerMove struct {
	Players []PlayerUpdate `json:"players"`
	IsDelta bool           `json:"isDelta,omitempty"`
}

func (PlayerMove) MessageType() string { return TypePlayerMove }

// WeaponState mirrors the server's view of the local player's weapon.
// Forwarded verbatim to the weapon collaborator.
type WeaponState struct {
	CurrentAmmo int  `json:"currentAmmo"`
	MaxAmmo     int  `json:"maxAmmo"`
	IsReloading bool `json:"isReloading"`
	CanShoot    bool `json:"canShoot"`
}

func (WeaponState) MessageType() string { return TypeWeaponState }

// ShootFailed reports a rejected shoot action and why.
type ShootFailed struct {
	Reason string `json:"reason"`
}

func (ShootFailed) MessageType() string { return TypeShootFailed }

// PlayerDeath marks a player dead. Drives spectator entry on the client.
type PlayerDeath struct {
	PlayerID string `json:"playerId"`
}

func (PlayerDeath) MessageType() string { return TypePlayerDeath }

// PlayerRespawn revives a player at a fresh position.
type PlayerRespawn struct {
	PlayerID string        `json:"playerId"`
	Position gamemath.Vec2 `json:"position"`
}

func (PlayerRespawn) MessageType() string { return TypePlayerRespawn }

// PlayerLeave removes a player who left the room or timed out.
type PlayerLeave struct {
	PlayerID string `json:"playerId"`
}

func (PlayerLeave) MessageType() string { return TypePlayerLeave }

// PlayerInput is sent client → server with the current directional intent
// and aim. Sequence increments per send for server-side dedup.
type PlayerInput struct {
	Sequence uint32  `json:"seq"`
	Up       bool    `json:"up"`
	Down     bool    `json:"down"`
	Left     bool    `json:"left"`
	Right    bool    `json:"right"`
	AimAngle float64 `json:"aimAngle"`
}

func (PlayerInput) MessageType() string { return TypePlayerInput }

// PlayerShoot is sent client → server on a fire action.
type PlayerShoot struct {
	AimAngle float64 `json:"aimAngle"`
}

func (PlayerShoot) MessageType() string { return TypePlayerShoot }
