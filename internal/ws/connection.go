package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"eduverse/pkg/types"
)

// Connection wraps a WebSocket connection with a single writer goroutine.
// All writes go through writeCh; the write loop is the only goroutine that
// touches the underlying socket for output, which keeps gorilla's
// one-concurrent-writer rule intact.
//
// A connection belongs to exactly one broadcast group, fixed at accept time,
// and acts as the group's fan-out target via Deliver.
type Connection struct {
	id         string
	group      string
	dispatcher Dispatcher

	conn      *websocket.Conn
	writeCh   chan []byte
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps conn for the given group. The dispatcher translates
// published events into this endpoint's outbound wire shapes.
func NewConnection(conn *websocket.Conn, group string, dispatcher Dispatcher) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Connection{
		id:         uuid.New().String(),
		group:      group,
		dispatcher: dispatcher,
		conn:       conn,
		writeCh:    make(chan []byte, 100),
		ctx:        ctx,
		cancel:     cancel,
	}

	go c.writeLoop()

	return c
}

// ID returns the connection's subscriber identity.
func (c *Connection) ID() string { return c.id }

// Group returns the broadcast group this connection joined at accept time.
func (c *Connection) Group() string { return c.group }

// Deliver implements interfaces.Subscriber: it serializes a published event
// into this endpoint's outbound wire shape and queues it for writing. Events
// the endpoint has no handler for are dropped with an error so the channel
// layer can log them.
func (c *Connection) Deliver(event types.Event) error {
	payload, ok := c.dispatcher.Dispatch(event)
	if !ok {
		return ErrUnhandledEventType
	}
	return c.WriteJSON(payload)
}

// writeLoop exits on the first failed write. It closes the connection on the
// way out: pending and future WriteJSON calls fail via ctx.Done instead of
// queueing, and the read pump unblocks so the group membership is dropped.
// writeCh is never closed; senders only ever observe the context.
func (c *Connection) writeLoop() {
	defer func() { _ = c.Close() }()

	for {
		select {
		case data := <-c.writeCh:
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// WriteJSON marshals v and queues it on the write channel. The enqueue never
// blocks: a subscriber whose queue is full drops the message and reports
// ErrQueueFull so the fan-out moves on to the next member.
func (c *Connection) WriteJSON(v interface{}) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	data, err := json.Marshal(v)
	if err != nil {
		return ErrInvalidJSON
	}

	select {
	case c.writeCh <- data:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		return ErrQueueFull
	}
}

// Close shuts down the writer goroutine and the underlying socket. Safe to
// call more than once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		if c.conn != nil {
			err = c.conn.Close()
		}
	})
	return err
}
