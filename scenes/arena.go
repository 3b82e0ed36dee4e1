// Package scenes wires the sync core to the presentation systems, one
// scene per screen.
package scenes

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/gridfire/client/config"
	"github.com/gridfire/client/gamemath"
	"github.com/gridfire/client/network"
	"github.com/gridfire/client/systems"
	"github.com/gridfire/client/weapons"
)

// ArenaScene runs one networked match: it prepares the client's registry
// and collaborators first, then dials the server — two-phase init so every
// message sink exists before the first frame can arrive.
type ArenaScene struct {
	log  *zap.SugaredLogger
	addr string

	client      *network.Client
	input       *systems.InputSystem
	render      *systems.RenderSystem
	tracker     *weapons.Tracker
	notifier    *weapons.Notifier
	crates      *weapons.CrateField
	projectiles *weapons.ProjectilePool

	once       sync.Once
	smoothing  bool
	spectating bool
	nearCrate  string
	nearOK     bool
	disposed   bool
}

func NewArenaScene(log *zap.SugaredLogger, addr string, smoothing bool) *ArenaScene {
	return &ArenaScene{
		log:         log,
		addr:        addr,
		smoothing:   smoothing,
		client:      network.NewClient(log),
		input:       systems.NewInputSystem(),
		tracker:     weapons.NewTracker(log),
		notifier:    weapons.NewNotifier(log),
		crates:      weapons.NewCrateField(),
		projectiles: weapons.NewProjectilePool(),
	}
}

// configure runs once, on the first Update after the scene is live.
func (s *ArenaScene) configure() {
	s.client.Prepare(network.Collaborators{
		Weapons:   s.tracker,
		Feedback:  s.notifier,
		Aim:       s.input,
		Lifecycle: s,
	}, s.notifier, s.projectiles)

	// The registry exists only after Prepare.
	s.render = systems.NewRenderSystem(s.client.Registry(), s.projectiles, s.smoothing)

	s.crates.Init(config.Window.Width, config.Window.Height)
	s.crates.Add("crate-1", gamemath.Vec2{X: 160, Y: 120}, 20)
	s.crates.Add("crate-2", gamemath.Vec2{X: 720, Y: 400}, 20)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(config.Network.DialTimeoutSecs)*time.Second)
		defer cancel()
		if err := s.client.Connect(ctx, s.addr); err != nil {
			s.log.Warnw("connect failed", "addr", s.addr, "err", err)
		}
	}()
}

func (s *ArenaScene) Update() {
	s.once.Do(s.configure)

	dt := 1.0 / float64(ebiten.TPS())
	in := s.input.Snapshot()

	if s.input.ShootPressed() && !s.spectating {
		s.client.Shoot(in.AimAngle)
		if pos, ok := s.localPosition(); ok {
			vel := gamemath.Vec2{X: math.Cos(in.AimAngle), Y: math.Sin(in.AimAngle)}.Scale(600)
			s.projectiles.Spawn(pos, vel, 1.5)
		}
	}

	s.client.Update(in, dt)
	s.render.Update(dt)

	s.nearOK = false
	if pos, ok := s.localPosition(); ok {
		s.nearCrate, s.nearOK = s.crates.Nearby(pos, config.Player.PickupRadius)
	}
}

func (s *ArenaScene) Draw(screen *ebiten.Image) {
	if s.render == nil {
		return
	}
	s.render.Draw(screen)
	systems.DrawHUD(screen, s.client.State(), s.tracker, s.notifier)
	if s.nearOK {
		systems.DrawPickupPrompt(screen, s.nearCrate)
	}
	if s.spectating {
		ebitenutil.DebugPrintAt(screen, "SPECTATING", config.Window.Width/2-30, 40)
	}
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("players: %d", s.client.Registry().Len()),
		4, config.Window.Height-16)
}

// Dispose tears the session down. Idempotent; the shutdown path may call
// it more than once.
func (s *ArenaScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.client.Close()
}

// LifecycleSink: alive transitions for the local player toggle spectating.

func (s *ArenaScene) PlayerDied(id string) {
	if local, ok := s.client.Registry().LocalPlayerID(); ok && id == local {
		s.spectating = true
	}
}

func (s *ArenaScene) PlayerRespawned(id string) {
	if local, ok := s.client.Registry().LocalPlayerID(); ok && id == local {
		s.spectating = false
	}
}

func (s *ArenaScene) PlayerLeft(id string) {
	s.log.Debugw("player left", "id", id)
}

func (s *ArenaScene) localPosition() (gamemath.Vec2, bool) {
	reg := s.client.Registry()
	if reg == nil {
		return gamemath.Vec2{}, false
	}
	if pos, ok := reg.LocalPredictedPosition(); ok {
		return pos, true
	}
	return reg.LocalPlayerPosition()
}

