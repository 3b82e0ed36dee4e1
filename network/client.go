package network

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gridfire/client/gamestate"
	"github.com/gridfire/client/prediction"
	"github.com/gridfire/client/protocol"
)

// Ticker is anything advanced once per simulation tick. Driving Update is
// the client's only obligation toward weapon/projectile collaborators.
type Ticker interface {
	Update(deltaSeconds float64)
}

// resendInterval bounds how stale an unchanged input state may get before
// it is resent anyway.
const resendInterval = 50 * time.Millisecond

// ErrNotPrepared is returned when Connect is called before Prepare.
var ErrNotPrepared = errors.New("client: Prepare must run before Connect")

// ErrClosed is returned when Connect is called on a closed session.
var ErrClosed = errors.New("client: session closed")

// Client is one state-synchronization session: registry, router,
// reconciler and connection wired together behind a two-phase init.
// Prepare builds everything that must exist before the first message can
// arrive; Connect constructs the transport. The caller sequences the two.
//
// Connect typically runs on a background goroutine while Update keeps
// ticking, so conn and closed are mutex-guarded. Everything else is
// touched by the game goroutine only.
type Client struct {
	log *zap.SugaredLogger

	reg     *gamestate.Registry
	rec     *prediction.Reconciler
	router  *Router
	tickers []Ticker

	mu     sync.Mutex
	conn   *Conn
	closed bool

	inputSeq  uint32
	lastInput protocol.PlayerInput
	lastSend  time.Time
	sentOnce  bool

	prepared bool
}

func NewClient(log *zap.SugaredLogger) *Client {
	return &Client{log: log}
}

// Prepare wires the registry, reconciler and router with the given
// collaborators. Idempotent; later calls are ignored.
func (c *Client) Prepare(collab Collaborators, tickers ...Ticker) {
	if c.prepared {
		return
	}
	c.reg = gamestate.NewRegistry(c.log)
	c.rec = prediction.NewReconciler(c.reg, c.log)
	c.router = NewRouter(c.reg, collab, c.log)
	c.tickers = tickers
	c.prepared = true
}

// Connect constructs the transport and dials the server. The connection
// is published before the blocking dial so a concurrent Close finds it
// and tears it down; a Close that already won makes the eventual attach
// discard the freshly-dialed transport.
func (c *Client) Connect(ctx context.Context, url string) error {
	if !c.prepared {
		return ErrNotPrepared
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	conn := NewConn(c.log)
	c.conn = conn
	c.mu.Unlock()

	return conn.Dial(ctx, url)
}

// Update runs one simulation tick: drain and dispatch pending messages,
// advance prediction for the local player, advance collaborators, and send
// outbound input. Safe regardless of network state: every no-op window
// (no identity yet, connection closed) is handled inside.
func (c *Client) Update(in prediction.InputSnapshot, deltaSeconds float64) {
	conn, closed := c.connection()
	if closed || !c.prepared {
		return
	}

	if conn != nil {
		for _, msg := range conn.Drain() {
			c.router.Dispatch(msg)
		}
	}

	c.rec.Tick(in, deltaSeconds)

	for _, t := range c.tickers {
		t.Update(deltaSeconds)
	}

	c.sendInput(conn, in)
}

// Shoot sends a fire action at the given aim angle. No-op while the
// connection is not open.
func (c *Client) Shoot(aimAngle float64) {
	conn, closed := c.connection()
	if closed || conn == nil {
		return
	}
	if err := conn.Send(&protocol.PlayerShoot{AimAngle: aimAngle}); err != nil {
		c.log.Warnw("shoot send failed", "err", err)
	}
}

// sendInput pushes the current input state to the server when it changed,
// or when the resend interval elapsed on an unchanged state.
func (c *Client) sendInput(conn *Conn, in prediction.InputSnapshot) {
	if conn == nil || conn.State() != StateOpen {
		return
	}

	msg := protocol.PlayerInput{
		Up:       in.Up,
		Down:     in.Down,
		Left:     in.Left,
		Right:    in.Right,
		AimAngle: in.AimAngle,
	}

	changed := !c.sentOnce ||
		msg.Up != c.lastInput.Up || msg.Down != c.lastInput.Down ||
		msg.Left != c.lastInput.Left || msg.Right != c.lastInput.Right ||
		msg.AimAngle != c.lastInput.AimAngle
	if !changed && time.Since(c.lastSend) < resendInterval {
		return
	}

	c.inputSeq++
	msg.Sequence = c.inputSeq
	if err := conn.Send(&msg); err != nil {
		c.log.Warnw("input send failed", "err", err)
		return
	}
	c.lastInput = msg
	c.lastSend = time.Now()
	c.sentOnce = true
}

// Registry exposes read access for rendering/UI collaborators.
func (c *Client) Registry() *gamestate.Registry { return c.reg }

// State reports the connection lifecycle state; Closed before Connect.
func (c *Client) State() ConnState {
	conn, _ := c.connection()
	if conn == nil {
		return StateClosed
	}
	return conn.State()
}

// Close tears the session down: the connection is closed, prediction state
// discarded, and every registry entry released. Idempotent; the scene
// shutdown path may hit it more than once. A Connect still dialing finds
// the session closed and discards its transport on attach.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if c.rec != nil {
		c.rec.Reset()
	}
	if c.reg != nil {
		c.reg.Reset()
	}
	c.log.Infow("session closed")
}

func (c *Client) connection() (*Conn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn, c.closed
}
