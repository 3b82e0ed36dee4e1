// Package network owns the websocket session with the gridfire server:
// the connection lifecycle, the bounded queue of decoded messages drained
// once per tick, and the protocol router that applies those messages to
// the game state.
package network

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/gridfire/client/protocol"
)

// ConnState is the connection lifecycle. Closed is terminal; reconnect
// policy, if any, is layered above this package.
type ConnState int

const (
	StateConnecting ConnState = iota
	StateOpen
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

const (
	incomingBuffer = 256
	writeTimeout   = 5 * time.Second
)

// transport abstracts the websocket so lifecycle logic is testable without
// a live server.
type transport interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, p []byte) error
	Close() error
}

type wsTransport struct {
	conn *websocket.Conn
}

func (t *wsTransport) Read(ctx context.Context) ([]byte, error) {
	_, data, err := t.conn.Read(ctx)
	return data, err
}

func (t *wsTransport) Write(ctx context.Context, p []byte) error {
	return t.conn.Write(ctx, websocket.MessageText, p)
}

func (t *wsTransport) Close() error { return t.conn.CloseNow() }

// Conn owns exactly one transport handle. Incoming frames are decoded on
// the read goroutine and handed to the game goroutine through a bounded
// channel; everything else is mutex-guarded state.
type Conn struct {
	mu    sync.Mutex
	state ConnState
	tr    transport

	incoming chan protocol.Message
	log      *zap.SugaredLogger
}

func NewConn(log *zap.SugaredLogger) *Conn {
	return &Conn{
		state:    StateConnecting,
		incoming: make(chan protocol.Message, incomingBuffer),
		log:      log,
	}
}

// Dial connects to the server and starts the read loop. On failure the
// connection transitions straight to Closed.
func (c *Conn) Dial(ctx context.Context, url string) error {
	ws, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		c.transition(StateClosed)
		return err
	}
	c.attach(&wsTransport{conn: ws})
	return nil
}

// attach installs a transport and moves to Open. Split from Dial so tests
// can drive the lifecycle with an in-memory transport.
func (c *Conn) attach(tr transport) {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		_ = tr.Close()
		return
	}
	c.tr = tr
	c.state = StateOpen
	c.mu.Unlock()

	c.log.Infow("connection open")
	go c.readLoop(tr)
}

func (c *Conn) readLoop(tr transport) {
	for {
		raw, err := tr.Read(context.Background())
		if err != nil {
			c.closeWith(err)
			return
		}

		msg, derr := protocol.Decode(raw)
		if derr != nil {
			// Malformed or unrecognized frame: drop, keep the connection.
			c.log.Debugw("dropping frame", "err", derr)
			continue
		}

		if c.State() != StateOpen {
			return
		}
		select {
		case c.incoming <- msg:
		default:
			c.log.Warnw("incoming queue full, dropping message", "type", msg.MessageType())
		}
	}
}

// Drain returns the decoded messages received since the last call, in
// arrival order. Once the connection is Closed any queued messages are
// discarded: nothing is dispatched after close.
func (c *Conn) Drain() []protocol.Message {
	closed := c.State() == StateClosed

	var out []protocol.Message
	for {
		select {
		case msg := <-c.incoming:
			if !closed {
				out = append(out, msg)
			}
		default:
			return out
		}
	}
}

// Send encodes and writes a message. A deliberate no-op when the
// connection is not Open: outbound actions before establishment are not
// yet meaningful, and callers must not need to guard for it.
func (c *Conn) Send(msg protocol.Message) error {
	c.mu.Lock()
	tr := c.tr
	open := c.state == StateOpen
	c.mu.Unlock()
	if !open || tr == nil {
		return nil
	}

	raw, err := protocol.Encode(msg, time.Now())
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return tr.Write(ctx, raw)
}

// State reports the current lifecycle state.
func (c *Conn) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close synchronously transitions to Closed and releases the transport.
// Idempotent.
func (c *Conn) Close() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	tr := c.tr
	c.tr = nil
	c.mu.Unlock()

	if tr != nil {
		_ = tr.Close()
	}
	c.log.Infow("connection closed")
}

func (c *Conn) closeWith(err error) {
	if c.State() == StateClosed {
		return
	}
	c.log.Infow("transport closed", "err", err)
	c.Close()
}

func (c *Conn) transition(s ConnState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
