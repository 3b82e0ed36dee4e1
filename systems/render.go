package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/gridfire/client/config"
	"github.com/gridfire/client/gamemath"
	"github.com/gridfire/client/gamestate"
	"github.com/gridfire/client/weapons"
)

// interpDuration smooths remote players across roughly one server update
// interval.
const interpDuration = 0.1

type interpState struct {
	x, y       float32
	tx, ty     *gween.Tween
	lastTarget gamemath.Vec2
	init       bool
}

// RenderSystem draws every living player as a rect: the local player at
// its predicted position, remote players at a tween-smoothed display
// position. Remote smoothing is cosmetic only; the registry keeps raw
// authoritative values.
type RenderSystem struct {
	reg         *gamestate.Registry
	projectiles *weapons.ProjectilePool
	smoothing   bool

	interp map[string]*interpState
}

func NewRenderSystem(reg *gamestate.Registry, projectiles *weapons.ProjectilePool, smoothing bool) *RenderSystem {
	return &RenderSystem{
		reg:         reg,
		projectiles: projectiles,
		smoothing:   smoothing,
		interp:      make(map[string]*interpState),
	}
}

// Update advances the remote-player display tweens. Runs once per tick as
// a client collaborator.
func (r *RenderSystem) Update(deltaSeconds float64) {
	seen := make(map[string]bool)
	for _, p := range r.reg.LivingPlayers() {
		if p.Local {
			continue
		}
		seen[p.ID] = true

		st, ok := r.interp[p.ID]
		if !ok {
			st = &interpState{}
			r.interp[p.ID] = st
		}
		if !st.init {
			st.x = float32(p.Position.X)
			st.y = float32(p.Position.Y)
			st.lastTarget = p.Position
			st.init = true
			continue
		}
		if p.Position != st.lastTarget {
			st.tx = gween.New(st.x, float32(p.Position.X), interpDuration, ease.Linear)
			st.ty = gween.New(st.y, float32(p.Position.Y), interpDuration, ease.Linear)
			st.lastTarget = p.Position
		}
		if !r.smoothing {
			st.x = float32(p.Position.X)
			st.y = float32(p.Position.Y)
			st.tx, st.ty = nil, nil
			continue
		}
		if st.tx != nil {
			v, done := st.tx.Update(float32(deltaSeconds))
			st.x = v
			if done {
				st.tx = nil
			}
		}
		if st.ty != nil {
			v, done := st.ty.Update(float32(deltaSeconds))
			st.y = v
			if done {
				st.ty = nil
			}
		}
	}

	for id := range r.interp {
		if !seen[id] {
			delete(r.interp, id)
		}
	}
}

// Draw renders players and projectiles.
func (r *RenderSystem) Draw(screen *ebiten.Image) {
	size := float32(config.Player.Size)

	for _, p := range r.reg.LivingPlayers() {
		var x, y float32
		var col = config.LightGrey

		if p.Local {
			col = config.BrightGreen
			pos := p.Position
			if p.Predicted != nil {
				pos = *p.Predicted
			}
			x = float32(pos.X)
			y = float32(pos.Y)
		} else if st, ok := r.interp[p.ID]; ok && st.init {
			x = st.x
			y = st.y
		} else {
			x = float32(p.Position.X)
			y = float32(p.Position.Y)
		}

		vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, col, false)

		// Aim marker offset along the aim angle.
		mx := x + float32(math.Cos(p.AimAngle))*size
		my := y + float32(math.Sin(p.AimAngle))*size
		vector.DrawFilledRect(screen, mx-2, my-2, 4, 4, config.White, false)

		ebitenutil.DebugPrintAt(screen, p.ID, int(x)-len(p.ID)*3, int(y-size/2)-16)
	}

	if r.projectiles != nil {
		for _, pr := range r.projectiles.Active() {
			vector.DrawFilledRect(screen, float32(pr.Pos.X)-2, float32(pr.Pos.Y)-2, 4, 4, config.Yellow, false)
		}
	}
}
