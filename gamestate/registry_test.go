package gamestate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridfire/client/gamemath"
	"github.com/gridfire/client/logging"
	"github.com/gridfire/client/protocol"
)

func vec(x, y float64) *gamemath.Vec2 { return &gamemath.Vec2{X: x, Y: y} }

func update(id string, pos, vel *gamemath.Vec2) protocol.PlayerUpdate {
	return protocol.PlayerUpdate{ID: id, Position: pos, Velocity: vel}
}

func TestFullSnapshotReplacesWholesale(t *testing.T) {
	r := NewRegistry(logging.Nop())

	r.UpdatePlayers([]protocol.PlayerUpdate{update("P1", vec(1, 2), vec(3, 4))}, false)
	r.UpdatePlayers([]protocol.PlayerUpdate{update("P1", vec(100, 200), vec(-1, -2))}, false)

	p, ok := r.Player("P1")
	require.True(t, ok)
	require.Equal(t, gamemath.Vec2{X: 100, Y: 200}, p.Position)
	require.Equal(t, gamemath.Vec2{X: -1, Y: -2}, p.Velocity)
}

func TestDeltaRetainsAbsentFields(t *testing.T) {
	r := NewRegistry(logging.Nop())
	aim := 1.25

	r.UpdatePlayers([]protocol.PlayerUpdate{
		{ID: "P1", Position: vec(10, 20), Velocity: vec(1, 1), AimAngle: &aim},
	}, false)
	r.UpdatePlayers([]protocol.PlayerUpdate{
		{ID: "P1", Velocity: vec(5, 5)},
	}, true)

	p, ok := r.Player("P1")
	require.True(t, ok)
	require.Equal(t, gamemath.Vec2{X: 10, Y: 20}, p.Position, "position absent from delta must be retained")
	require.Equal(t, gamemath.Vec2{X: 5, Y: 5}, p.Velocity)
	require.Equal(t, 1.25, p.AimAngle)
}

func TestUnknownIDsInserted(t *testing.T) {
	r := NewRegistry(logging.Nop())

	r.UpdatePlayers([]protocol.PlayerUpdate{update("P9", vec(1, 1), nil)}, true)

	require.Equal(t, 1, r.Len())
	p, ok := r.Player("P9")
	require.True(t, ok)
	require.True(t, p.Alive)
}

func TestIdentityBinding(t *testing.T) {
	r := NewRegistry(logging.Nop())

	require.NoError(t, r.SetLocalPlayerID("P1"))
	// Idempotent under repetition with the same id.
	require.NoError(t, r.SetLocalPlayerID("P1"))

	// Rejected, not overwritten, with a different id.
	err := r.SetLocalPlayerID("P2")
	require.ErrorIs(t, err, ErrIdentityConflict)

	id, ok := r.LocalPlayerID()
	require.True(t, ok)
	require.Equal(t, "P1", id)

	p, ok := r.Player("P1")
	require.True(t, ok)
	require.True(t, p.Local)
}

func TestPredictedPositionRequiresLocalPlayer(t *testing.T) {
	r := NewRegistry(logging.Nop())

	// No local player bound: write is a no-op, not an error.
	r.SetPredictedPosition(gamemath.Vec2{X: 5, Y: 5})
	_, ok := r.LocalPredictedPosition()
	require.False(t, ok)

	require.NoError(t, r.SetLocalPlayerID("P1"))
	r.SetPredictedPosition(gamemath.Vec2{X: 7, Y: 8})

	pred, ok := r.LocalPredictedPosition()
	require.True(t, ok)
	require.Equal(t, gamemath.Vec2{X: 7, Y: 8}, pred)

	// Predicted slot is surfaced only on the local player's view.
	p, _ := r.Player("P1")
	require.NotNil(t, p.Predicted)
	require.Equal(t, gamemath.Vec2{X: 7, Y: 8}, *p.Predicted)
}

func TestLivingPlayersInsertionOrder(t *testing.T) {
	r := NewRegistry(logging.Nop())

	r.UpdatePlayers([]protocol.PlayerUpdate{
		update("C", vec(1, 1), nil),
		update("A", vec(2, 2), nil),
		update("B", vec(3, 3), nil),
	}, false)

	ids := func() []string {
		var out []string
		for _, p := range r.LivingPlayers() {
			out = append(out, p.ID)
		}
		return out
	}

	require.Equal(t, []string{"C", "A", "B"}, ids())
	// Stable across calls, not re-sorted.
	require.Equal(t, []string{"C", "A", "B"}, ids())

	r.SetAlive("A", false)
	require.Equal(t, []string{"C", "B"}, ids())

	r.SetAlive("A", true)
	require.Equal(t, []string{"C", "A", "B"}, ids())
}

func TestRemovePlayer(t *testing.T) {
	r := NewRegistry(logging.Nop())

	r.UpdatePlayers([]protocol.PlayerUpdate{
		update("P1", vec(1, 1), nil),
		update("P2", vec(2, 2), nil),
	}, false)

	r.Remove("P1")
	require.Equal(t, 1, r.Len())
	_, ok := r.Player("P1")
	require.False(t, ok)

	// Removing twice is harmless.
	r.Remove("P1")
	require.Equal(t, 1, r.Len())
}

func TestAuthRevTracksLocalPositionOnly(t *testing.T) {
	r := NewRegistry(logging.Nop())
	require.NoError(t, r.SetLocalPlayerID("P1"))

	rev := r.LocalAuthRev()

	r.UpdatePlayers([]protocol.PlayerUpdate{update("P2", vec(1, 1), nil)}, true)
	require.Equal(t, rev, r.LocalAuthRev(), "remote updates must not bump the local rev")

	r.UpdatePlayers([]protocol.PlayerUpdate{update("P1", vec(1, 1), nil)}, true)
	require.Equal(t, rev+1, r.LocalAuthRev())

	r.UpdatePlayers([]protocol.PlayerUpdate{{ID: "P1", Velocity: vec(2, 2)}}, true)
	require.Equal(t, rev+1, r.LocalAuthRev(), "velocity-only updates leave the position baseline alone")
}

func TestReset(t *testing.T) {
	r := NewRegistry(logging.Nop())
	require.NoError(t, r.SetLocalPlayerID("P1"))
	r.UpdatePlayers([]protocol.PlayerUpdate{update("P2", vec(2, 2), nil)}, false)

	r.Reset()
	require.Equal(t, 0, r.Len())
	_, ok := r.LocalPlayerID()
	require.False(t, ok)

	// The binding is free again after a reset.
	require.NoError(t, r.SetLocalPlayerID("P2"))
}
