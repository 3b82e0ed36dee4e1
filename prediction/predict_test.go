package prediction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridfire/client/gamemath"
)

func TestPredictPositionPure(t *testing.T) {
	pos := gamemath.Vec2{X: 100, Y: 100}
	vel := gamemath.Vec2{X: 10, Y: -5}
	in := InputSnapshot{Right: true, Down: true}

	first := PredictPosition(pos, vel, in, 0.016)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, PredictPosition(pos, vel, in, 0.016))
	}
}

func TestPredictPositionSingleAxis(t *testing.T) {
	tests := []struct {
		name string
		in   InputSnapshot
		want gamemath.Vec2
	}{
		{"up", InputSnapshot{Up: true}, gamemath.Vec2{X: 0, Y: -MoveSpeed * 0.1}},
		{"down", InputSnapshot{Down: true}, gamemath.Vec2{X: 0, Y: MoveSpeed * 0.1}},
		{"left", InputSnapshot{Left: true}, gamemath.Vec2{X: -MoveSpeed * 0.1, Y: 0}},
		{"right", InputSnapshot{Right: true}, gamemath.Vec2{X: MoveSpeed * 0.1, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PredictPosition(gamemath.Vec2{}, gamemath.Vec2{}, tt.in, 0.1)
			require.InDelta(t, tt.want.X, got.X, 1e-12)
			require.InDelta(t, tt.want.Y, got.Y, 1e-12)
		})
	}
}

func TestPredictPositionOpposingFlagsCancel(t *testing.T) {
	pos := gamemath.Vec2{X: 42, Y: 24}

	got := PredictPosition(pos, gamemath.Vec2{}, InputSnapshot{Up: true, Down: true}, 0.1)
	require.Equal(t, pos, got)

	got = PredictPosition(pos, gamemath.Vec2{}, InputSnapshot{Left: true, Right: true, Up: true}, 0.1)
	require.Equal(t, pos.X, got.X, "opposing horizontal flags net to zero on that axis")
	require.InDelta(t, pos.Y-MoveSpeed*0.1, got.Y, 1e-12)
}

func TestPredictPositionDiagonalNormalized(t *testing.T) {
	got := PredictPosition(gamemath.Vec2{}, gamemath.Vec2{}, InputSnapshot{Right: true, Down: true}, 1)

	dist := math.Sqrt(got.X*got.X + got.Y*got.Y)
	require.InDelta(t, MoveSpeed, dist, 1e-9, "diagonal speed must equal axis speed")
	require.InDelta(t, got.X, got.Y, 1e-12)
}

func TestPredictPositionIgnoresVelocity(t *testing.T) {
	// The velocity parameter is contractual, not yet used: input-only motion.
	a := PredictPosition(gamemath.Vec2{}, gamemath.Vec2{}, InputSnapshot{Right: true}, 0.5)
	b := PredictPosition(gamemath.Vec2{}, gamemath.Vec2{X: 999, Y: -999}, InputSnapshot{Right: true}, 0.5)
	require.Equal(t, a, b)
}

func TestPredictPositionNoInput(t *testing.T) {
	pos := gamemath.Vec2{X: 300, Y: 400}
	got := PredictPosition(pos, gamemath.Vec2{X: 10, Y: 20}, InputSnapshot{}, 0.01667)
	require.Equal(t, pos, got)
}
