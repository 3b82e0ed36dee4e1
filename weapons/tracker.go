// Package weapons holds the thin weapon-side collaborators of the sync
// core: the ammo tracker fed by weapon:state, the rejected-shot feedback
// notifier, the crate proximity field, and the projectile pool. Their
// simulations are independent; the core only forwards payloads and drives
// Update once per tick.
package weapons

import (
	"go.uber.org/zap"

	"github.com/gridfire/client/protocol"
)

// Tracker mirrors the server's weapon state for the local player. Payloads
// are stored field-for-field, no transformation.
type Tracker struct {
	state protocol.WeaponState
	seen  bool
	log   *zap.SugaredLogger
}

func NewTracker(log *zap.SugaredLogger) *Tracker {
	return &Tracker{log: log}
}

// ApplyWeaponState stores a weapon:state payload verbatim.
func (t *Tracker) ApplyWeaponState(state protocol.WeaponState) {
	t.state = state
	t.seen = true
	t.log.Debugw("weapon state",
		"ammo", state.CurrentAmmo, "max", state.MaxAmmo,
		"reloading", state.IsReloading, "canShoot", state.CanShoot)
}

// State returns the last applied weapon state and whether one has arrived.
func (t *Tracker) State() (protocol.WeaponState, bool) {
	return t.state, t.seen
}

// CanShoot reports the server's last word on whether firing is allowed.
// False before any weapon:state has arrived.
func (t *Tracker) CanShoot() bool {
	return t.seen && t.state.CanShoot
}
