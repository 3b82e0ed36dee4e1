// Package archetypes fixes the component set of each entity kind the
// client tracks, so spawning stays in one place.
package archetypes

import (
	"github.com/yohamta/donburi"

	"github.com/gridfire/client/components"
)

var (
	Player = newArchetype(
		components.Player,
		components.Position,
		components.Velocity,
		components.Aim,
		components.Predicted,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{components: cs}
}

// Spawn creates one entity with the archetype's components and returns
// its entry.
func (a *archetype) Spawn(w donburi.World) *donburi.Entry {
	return w.Entry(w.Create(a.components...))
}
