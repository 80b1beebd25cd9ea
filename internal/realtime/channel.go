package realtime

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const sendBufferSize = 16

var ErrChannelClosed = errors.New("channel closed")
var ErrSendBufferFull = errors.New("channel send buffer full")

// Conn is the subset of *websocket.Conn the channel requires. Tests inject
// in-memory implementations.
type Conn interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Channel is one live connection between a client and the server. It owns a
// buffered outbound queue drained by WritePump, so a slow client never
// blocks the dispatcher.
type Channel struct {
	id        string
	conn      Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannel wraps an accepted connection. The caller must start WritePump
// in its own goroutine and call Close exactly when the connection ends.
func NewChannel(conn Conn) *Channel {
	return &Channel{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// ID returns the channel's unique identifier.
func (c *Channel) ID() string { return c.id }

// Send enqueues an envelope without blocking. It reports ErrChannelClosed
// after Close and ErrSendBufferFull when the outbound queue is saturated;
// either way the caller should treat the channel as dead.
func (c *Channel) Send(env Envelope) error {
	data, err := env.Encode()
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrChannelClosed
	default:
		return ErrSendBufferFull
	}
}

// WritePump drains the outbound queue onto the connection. It returns when
// the channel is closed or a write fails.
func (c *Channel) WritePump() {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

// ReadMessage blocks until the next inbound frame.
func (c *Channel) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

// Close tears the channel down. Safe to call more than once; any in-flight
// Send observes ErrChannelClosed afterwards.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}
