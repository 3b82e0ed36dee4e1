package weapons

import "go.uber.org/zap"

// emptyFlashSeconds is how long the out-of-ammo warning stays on screen.
const emptyFlashSeconds = 0.6

// Notifier turns shoot:failed messages into user-visible feedback. The
// "empty" reason gets a distinguished flash; every other reason is
// uniform, log-only feedback.
type Notifier struct {
	flashLeft  float64
	emptyCount int
	log        *zap.SugaredLogger
}

func NewNotifier(log *zap.SugaredLogger) *Notifier {
	return &Notifier{log: log}
}

// ShootRejected handles one rejection notice.
func (n *Notifier) ShootRejected(reason string, outOfAmmo bool) {
	if outOfAmmo {
		n.flashLeft = emptyFlashSeconds
		n.emptyCount++
		n.log.Debugw("shot rejected, magazine empty")
		return
	}
	n.log.Debugw("shot rejected", "reason", reason)
}

// Update decays the active flash.
func (n *Notifier) Update(deltaSeconds float64) {
	if n.flashLeft > 0 {
		n.flashLeft -= deltaSeconds
		if n.flashLeft < 0 {
			n.flashLeft = 0
		}
	}
}

// FlashActive reports whether the out-of-ammo warning should render.
func (n *Notifier) FlashActive() bool { return n.flashLeft > 0 }

// EmptyCount counts distinguished out-of-ammo rejections.
func (n *Notifier) EmptyCount() int { return n.emptyCount }
