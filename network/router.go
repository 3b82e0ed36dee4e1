package network

import (
	"go.uber.org/zap"

	"github.com/gridfire/client/gamestate"
	"github.com/gridfire/client/protocol"
)

// WeaponSink receives weapon:state payloads verbatim.
type WeaponSink interface {
	ApplyWeaponState(state protocol.WeaponState)
}

// FeedbackSink receives rejected-action notices. outOfAmmo marks the
// distinguished "empty" reason; every other reason is uniform.
type FeedbackSink interface {
	ShootRejected(reason string, outOfAmmo bool)
}

// AimAnchor receives the latest authoritative position of the local player
// so aim angles are computed against the server's view, not a stale one.
type AimAnchor interface {
	SetPlayerPosition(x, y float64)
}

// LifecycleSink observes alive-state and membership transitions, e.g. to
// drive spectator entry/exit.
type LifecycleSink interface {
	PlayerDied(id string)
	PlayerRespawned(id string)
	PlayerLeft(id string)
}

// Collaborators are the external components the router forwards to. Any
// field may be nil; forwarding to an absent collaborator is skipped.
type Collaborators struct {
	Weapons   WeaponSink
	Feedback  FeedbackSink
	Aim       AimAnchor
	Lifecycle LifecycleSink
}

// Router dispatches decoded messages by type into the registry and the
// collaborator interfaces. It holds non-owning references only.
type Router struct {
	reg    *gamestate.Registry
	collab Collaborators
	log    *zap.SugaredLogger
}

func NewRouter(reg *gamestate.Registry, collab Collaborators, log *zap.SugaredLogger) *Router {
	return &Router{reg: reg, collab: collab, log: log}
}

// Dispatch applies one decoded message. Unrecognized messages are logged
// and dropped; nothing here may fail into the game loop.
func (rt *Router) Dispatch(msg protocol.Message) {
	switch m := msg.(type) {
	case *protocol.RoomJoined:
		if err := rt.reg.SetLocalPlayerID(m.PlayerID); err != nil {
			rt.log.Warnw("identity rebind rejected", "err", err)
		}

	case *protocol.PlayerMove:
		rt.reg.UpdatePlayers(m.Players, m.IsDelta)
		rt.syncAimAnchor(m.Players)

	case *protocol.WeaponState:
		if rt.collab.Weapons != nil {
			rt.collab.Weapons.ApplyWeaponState(*m)
		}

	case *protocol.ShootFailed:
		if rt.collab.Feedback != nil {
			rt.collab.Feedback.ShootRejected(m.Reason, m.Reason == protocol.ReasonEmpty)
		}

	case *protocol.PlayerDeath:
		rt.reg.SetAlive(m.PlayerID, false)
		if rt.collab.Lifecycle != nil {
			rt.collab.Lifecycle.PlayerDied(m.PlayerID)
		}

	case *protocol.PlayerRespawn:
		rt.reg.SetAlive(m.PlayerID, true)
		pos := m.Position
		rt.reg.UpdatePlayers([]protocol.PlayerUpdate{{ID: m.PlayerID, Position: &pos}}, true)
		if rt.collab.Lifecycle != nil {
			rt.collab.Lifecycle.PlayerRespawned(m.PlayerID)
		}

	case *protocol.PlayerLeave:
		rt.reg.Remove(m.PlayerID)
		if rt.collab.Lifecycle != nil {
			rt.collab.Lifecycle.PlayerLeft(m.PlayerID)
		}

	default:
		rt.log.Debugw("unhandled message", "type", msg.MessageType())
	}
}

// syncAimAnchor forwards the local player's authoritative position from a
// batch to the aim collaborator. The only cross-cutting side effect the
// router performs outside the registry.
func (rt *Router) syncAimAnchor(updates []protocol.PlayerUpdate) {
	if rt.collab.Aim == nil {
		return
	}
	localID, ok := rt.reg.LocalPlayerID()
	if !ok {
		return
	}
	for _, u := range updates {
		if u.ID == localID && u.Position != nil {
			rt.collab.Aim.SetPlayerPosition(u.Position.X, u.Position.Y)
		}
	}
}
