// Package components defines the donburi component types the player state
// registry stores per entity. Kept engine-free so the registry can be used
// headless (tests, bots, future server-side replay).
package components

import "github.com/yohamta/donburi"

// PlayerData identifies a player entity within a match.
type PlayerData struct {
	ID    string
	Alive bool
	Local bool // set once when the identity message binds this id, never reassigned
}

var Player = donburi.NewComponentType[PlayerData]()

// PositionData is the authoritative position, last value received from the
// server.
type PositionData struct {
	X, Y float64
}

var Position = donburi.NewComponentType[PositionData]()

// VelocityData is the authoritative velocity, last value received from the
// server.
type VelocityData struct {
	X, Y float64
}

var Velocity = donburi.NewComponentType[VelocityData]()

// AimData is the aim angle in radians. Authoritative unless the local
// player overrides it with live input.
type AimData struct {
	Angle float64
}

var Aim = donburi.NewComponentType[AimData]()

// PredictedData is the locally predicted position. Valid only for the
// local player while a connection is open; recomputed every tick and
// discarded on teardown.
type PredictedData struct {
	X, Y  float64
	Valid bool
}

var Predicted = donburi.NewComponentType[PredictedData]()
