package systems

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/gridfire/client/config"
	"github.com/gridfire/client/network"
	"github.com/gridfire/client/weapons"
)

// DrawHUD prints connection and weapon status. Debug text only — the real
// overlay UI (death screen, pickup prompts) is outside this layer.
func DrawHUD(screen *ebiten.Image, state network.ConnState, tracker *weapons.Tracker, notifier *weapons.Notifier) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("conn: %s", state), 4, 4)

	if ws, ok := tracker.State(); ok {
		line := fmt.Sprintf("ammo: %d/%d", ws.CurrentAmmo, ws.MaxAmmo)
		if ws.IsReloading {
			line += "  reloading..."
		}
		ebitenutil.DebugPrintAt(screen, line, 4, 20)
	}

	if notifier.FlashActive() {
		ebitenutil.DebugPrintAt(screen, "OUT OF AMMO", config.Window.Width/2-40, config.Window.Height/2)
	}
}

// DrawPickupPrompt shows the crate interaction hint.
func DrawPickupPrompt(screen *ebiten.Image, crateID string) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("press E to pick up %s", crateID),
		config.Window.Width/2-70, config.Window.Height-24)
}
