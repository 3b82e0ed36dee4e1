// Package gamestate owns the per-player state registry: the authoritative
// server view of every player in the match, plus the locally predicted
// position of the player this client controls. The registry has no network
// knowledge; the protocol router writes into it and the prediction layer
// reads from it.
package gamestate

import (
	"errors"
	"fmt"

	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/gridfire/client/archetypes"
	"github.com/gridfire/client/components"
	"github.com/gridfire/client/gamemath"
	"github.com/gridfire/client/protocol"
)

// ErrIdentityConflict is returned when a second identity message names a
// different player id. The first binding wins; the conflict is a protocol
// violation, never a silent overwrite.
var ErrIdentityConflict = errors.New("local identity already bound")

// PlayerView is a read-only snapshot of one registry entry.
type PlayerView struct {
	ID        string
	Position  gamemath.Vec2
	Velocity  gamemath.Vec2
	AimAngle  float64
	Alive     bool
	Local     bool
	Predicted *gamemath.Vec2 // non-nil only for the local player with a valid prediction
}

// Registry maps player ids to entities backed by a donburi world. All
// mutation happens on the game goroutine; no locking by design.
type Registry struct {
	world   donburi.World
	byID    map[string]donburi.Entity
	order   []string // insertion order, stable across calls
	localID string
	authRev uint64 // bumped whenever the local player's authoritative position changes
	log     *zap.SugaredLogger
}

func NewRegistry(log *zap.SugaredLogger) *Registry {
	return &Registry{
		world: donburi.NewWorld(),
		byID:  make(map[string]donburi.Entity),
		log:   log,
	}
}

// SetLocalPlayerID binds the local identity exactly once, creating the
// entry if absent. Rebinding the same id is idempotent; a different id is
// rejected with ErrIdentityConflict and existing state is untouched.
func (r *Registry) SetLocalPlayerID(id string) error {
	if r.localID != "" {
		if r.localID == id {
			return nil
		}
		return fmt.Errorf("%w: have %q, got %q", ErrIdentityConflict, r.localID, id)
	}
	entry := r.ensure(id)
	p := components.Player.Get(entry)
	p.Local = true
	r.localID = id
	r.log.Infow("local player bound", "id", id)
	return nil
}

// UpdatePlayers applies a batch of authoritative per-player records in
// order. Fields absent from a record retain their prior values; unknown
// ids are inserted as new entries. No entry is ever removed here.
func (r *Registry) UpdatePlayers(updates []protocol.PlayerUpdate, isDelta bool) {
	for _, u := range updates {
		if u.ID == "" {
			continue
		}
		entry := r.ensure(u.ID)
		if u.Position != nil {
			components.Position.SetValue(entry, components.PositionData{X: u.Position.X, Y: u.Position.Y})
			if u.ID == r.localID {
				r.authRev++
			}
		}
		if u.Velocity != nil {
			components.Velocity.SetValue(entry, components.VelocityData{X: u.Velocity.X, Y: u.Velocity.Y})
		}
		if u.AimAngle != nil {
			components.Aim.SetValue(entry, components.AimData{Angle: *u.AimAngle})
		}
	}
	_ = isDelta // full snapshots and deltas share field-presence semantics
}

// SetPredictedPosition writes the prediction slot of the local player.
// A no-op when no local player is bound: ticks may fire before the
// identity message arrives.
func (r *Registry) SetPredictedPosition(pos gamemath.Vec2) {
	entry, ok := r.entry(r.localID)
	if !ok {
		return
	}
	components.Predicted.SetValue(entry, components.PredictedData{X: pos.X, Y: pos.Y, Valid: true})
}

// ClearPrediction discards the predicted slot, e.g. on disconnect.
func (r *Registry) ClearPrediction() {
	entry, ok := r.entry(r.localID)
	if !ok {
		return
	}
	components.Predicted.SetValue(entry, components.PredictedData{})
}

// SetAlive flips a player's alive flag, creating the entry if absent.
func (r *Registry) SetAlive(id string, alive bool) {
	if id == "" {
		return
	}
	entry := r.ensure(id)
	components.Player.Get(entry).Alive = alive
}

// Remove drops a player entry, e.g. on an explicit leave message.
func (r *Registry) Remove(id string) {
	entity, ok := r.byID[id]
	if !ok {
		return
	}
	if r.world.Valid(entity) {
		r.world.Entry(entity).Remove()
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// LivingPlayers returns snapshots of every entry with Alive set, in
// registry insertion order.
func (r *Registry) LivingPlayers() []PlayerView {
	views := make([]PlayerView, 0, len(r.order))
	for _, id := range r.order {
		entry, ok := r.entry(id)
		if !ok {
			continue
		}
		if !components.Player.Get(entry).Alive {
			continue
		}
		views = append(views, r.view(id, entry))
	}
	return views
}

// Player returns a snapshot of one entry.
func (r *Registry) Player(id string) (PlayerView, bool) {
	entry, ok := r.entry(id)
	if !ok {
		return PlayerView{}, false
	}
	return r.view(id, entry), true
}

// LocalPlayerID reports the bound identity, if any.
func (r *Registry) LocalPlayerID() (string, bool) {
	return r.localID, r.localID != ""
}

// LocalPlayerPosition returns the local player's authoritative position.
func (r *Registry) LocalPlayerPosition() (gamemath.Vec2, bool) {
	entry, ok := r.entry(r.localID)
	if !ok {
		return gamemath.Vec2{}, false
	}
	p := components.Position.Get(entry)
	return gamemath.Vec2{X: p.X, Y: p.Y}, true
}

// LocalPlayerVelocity returns the local player's authoritative velocity.
func (r *Registry) LocalPlayerVelocity() (gamemath.Vec2, bool) {
	entry, ok := r.entry(r.localID)
	if !ok {
		return gamemath.Vec2{}, false
	}
	v := components.Velocity.Get(entry)
	return gamemath.Vec2{X: v.X, Y: v.Y}, true
}

// LocalPredictedPosition returns the predicted position, if one has been
// computed since the last reset.
func (r *Registry) LocalPredictedPosition() (gamemath.Vec2, bool) {
	entry, ok := r.entry(r.localID)
	if !ok {
		return gamemath.Vec2{}, false
	}
	pred := components.Predicted.Get(entry)
	if !pred.Valid {
		return gamemath.Vec2{}, false
	}
	return gamemath.Vec2{X: pred.X, Y: pred.Y}, true
}

// LocalAuthRev counts authoritative position updates for the local player.
// The reconciler uses it to reset its prediction baseline whenever fresh
// server truth has arrived.
func (r *Registry) LocalAuthRev() uint64 { return r.authRev }

// Len reports the number of tracked players.
func (r *Registry) Len() int { return len(r.order) }

// Reset releases every entry and the identity binding. Used by the
// scene-teardown path; safe to call repeatedly.
func (r *Registry) Reset() {
	r.world = donburi.NewWorld()
	r.byID = make(map[string]donburi.Entity)
	r.order = nil
	r.localID = ""
	r.authRev = 0
}

func (r *Registry) ensure(id string) *donburi.Entry {
	if entry, ok := r.entry(id); ok {
		return entry
	}
	entry := archetypes.Player.Spawn(r.world)
	components.Player.SetValue(entry, components.PlayerData{ID: id, Alive: true})
	r.byID[id] = entry.Entity()
	r.order = append(r.order, id)
	return entry
}

func (r *Registry) entry(id string) (*donburi.Entry, bool) {
	if id == "" {
		return nil, false
	}
	entity, ok := r.byID[id]
	if !ok || !r.world.Valid(entity) {
		return nil, false
	}
	return r.world.Entry(entity), true
}

func (r *Registry) view(id string, entry *donburi.Entry) PlayerView {
	p := components.Player.Get(entry)
	pos := components.Position.Get(entry)
	vel := components.Velocity.Get(entry)
	aim := components.Aim.Get(entry)
	v := PlayerView{
		ID:       id,
		Position: gamemath.Vec2{X: pos.X, Y: pos.Y},
		Velocity: gamemath.Vec2{X: vel.X, Y: vel.Y},
		AimAngle: aim.Angle,
		Alive:    p.Alive,
		Local:    p.Local,
	}
	if p.Local {
		if pred := components.Predicted.Get(entry); pred.Valid {
			v.Predicted = &gamemath.Vec2{X: pred.X, Y: pred.Y}
		}
	}
	return v
}
