// Package systems contains the presentation-side collaborators of the
// sync core: input polling, rect rendering, and the HUD. Everything here
// is replaceable without touching the core; the core only sees the
// interfaces in the network package.
package systems

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gridfire/client/prediction"
)

// InputSystem polls the keyboard and cursor each frame and produces the
// InputSnapshot fed into prediction. It also receives the latest
// authoritative anchor position from the router (AimAnchor contract) so
// the aim angle is computed against the server's view of the player.
type InputSystem struct {
	anchorX, anchorY float64
	hasAnchor        bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// SetPlayerPosition records the authoritative aim anchor.
func (s *InputSystem) SetPlayerPosition(x, y float64) {
	s.anchorX = x
	s.anchorY = y
	s.hasAnchor = true
}

// Snapshot reads the current input state. WASD and arrows both steer.
func (s *InputSystem) Snapshot() prediction.InputSnapshot {
	in := prediction.InputSnapshot{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
	}
	if s.hasAnchor {
		cx, cy := ebiten.CursorPosition()
		in.AimAngle = math.Atan2(float64(cy)-s.anchorY, float64(cx)-s.anchorX)
	}
	return in
}

// ShootPressed reports a fire action this frame.
func (s *InputSystem) ShootPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)
}
