// Package prediction advances the local player's position between server
// updates so input feels instant despite network latency.
package prediction

import (
	"math"

	"github.com/gridfire/client/gamemath"
)

// MoveSpeed is the input-driven movement speed in world units per second.
// Must match the server simulation exactly or predictions drift.
const MoveSpeed = 200.0

// InputSnapshot is one tick's worth of directional intent plus the derived
// aim angle. Produced by the input collaborator; never persisted and not
// part of the wire protocol.
type InputSnapshot struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	AimAngle float64
}

// PredictPosition computes the next position from one tick of input-driven
// movement. Opposing flags on an axis cancel; diagonals are normalized so
// they carry no speed advantage. Deterministic and stateless: identical
// inputs always yield identical outputs.
//
// vel is accepted for external forces layered on top of input movement
// (knockback, conveyors); the current policy ignores it, but the
// four-argument contract is load-bearing for callers and tests.
func PredictPosition(pos, vel gamemath.Vec2, in InputSnapshot, deltaSeconds float64) gamemath.Vec2 {
	_ = vel

	var dx, dy float64
	if in.Left != in.Right {
		if in.Left {
			dx = -1
		} else {
			dx = 1
		}
	}
	if in.Up != in.Down {
		if in.Up {
			dy = -1
		} else {
			dy = 1
		}
	}
	if dx != 0 && dy != 0 {
		inv := 1 / math.Sqrt2
		dx *= inv
		dy *= inv
	}

	return gamemath.Vec2{
		X: pos.X + dx*MoveSpeed*deltaSeconds,
		Y: pos.Y + dy*MoveSpeed*deltaSeconds,
	}
}
