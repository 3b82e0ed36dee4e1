package prediction

import (
	"go.uber.org/zap"

	"github.com/gridfire/client/gamemath"
	"github.com/gridfire/client/gamestate"
)

// Reconciler runs one prediction step per simulation tick for the local
// player only; remote players are driven purely by authoritative updates.
//
// Correction policy is trust-server-next-tick: every authoritative
// player:move for the local id resets the baseline the next steps build
// from, so drift cannot accumulate across more than one update gap.
// Corrections snap rather than interpolate — smoothing is a render-side
// concern for remote players, not a sync-layer one.
type Reconciler struct {
	reg *gamestate.Registry
	log *zap.SugaredLogger

	base    gamemath.Vec2
	hasBase bool
	seenRev uint64
}

func NewReconciler(reg *gamestate.Registry, log *zap.SugaredLogger) *Reconciler {
	return &Reconciler{reg: reg, log: log}
}

// Tick advances the predicted position by one step. A no-op before the
// identity message binds a local player or after the entry is gone; ticks
// in those windows are expected, not errors.
func (rc *Reconciler) Tick(in InputSnapshot, deltaSeconds float64) {
	auth, ok := rc.reg.LocalPlayerPosition()
	if !ok {
		return
	}

	// Fresh server truth replaces whatever we predicted since the last
	// update; otherwise keep stepping from our own previous prediction.
	if rev := rc.reg.LocalAuthRev(); !rc.hasBase || rev != rc.seenRev {
		rc.base = auth
		rc.seenRev = rev
		rc.hasBase = true
	}

	vel, _ := rc.reg.LocalPlayerVelocity()
	next := PredictPosition(rc.base, vel, in, deltaSeconds)
	rc.base = next
	rc.reg.SetPredictedPosition(next)
}

// Reset forgets the prediction baseline. Called on teardown so a reconnect
// starts clean from the next authoritative update.
func (rc *Reconciler) Reset() {
	rc.base = gamemath.Vec2{}
	rc.hasBase = false
	rc.seenRev = 0
	rc.reg.ClearPrediction()
}
