// Package wsclient implements the dashboard's side of the real-time update
// channel: it keeps one websocket connection to the backend, announces the
// signed-in user's identity, and turns incoming envelopes into cache
// invalidations (see CachedList) or one-shot user alerts.
//
// A dropped connection is re-established after a fixed delay, indefinitely,
// until Disconnect is called.
package wsclient

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/bizhub/erp-system/internal/realtime"
)

// State is the connection lifecycle of the client.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnectedUnauthenticated
	StateConnectedAuthenticated
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnectedUnauthenticated:
		return "connected-unauthenticated"
	case StateConnectedAuthenticated:
		return "connected-authenticated"
	default:
		return "disconnected"
	}
}

// DefaultReconnectDelay is the fixed delay between reconnect attempts.
const DefaultReconnectDelay = 5 * time.Second

// Conn is the subset of *websocket.Conn the client requires. Tests inject
// in-memory implementations.
type Conn interface {
	ReadMessage() (messageType int, data []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// DialFunc opens a connection to the channel endpoint.
type DialFunc func(ctx context.Context, url string) (Conn, error)

func defaultDial(ctx context.Context, url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Options configures a Client.
type Options struct {
	// URL of the channel endpoint, e.g. "ws://host:8080/ws".
	URL string
	// Identity announced after connect. Can change later via SetIdentity.
	Identity string
	// AutoReconnect re-dials after a fixed delay whenever the connection
	// drops. Disconnect always suppresses it.
	AutoReconnect bool
	// ReconnectDelay overrides DefaultReconnectDelay.
	ReconnectDelay time.Duration
	// Dial overrides the websocket dialer. Used by tests.
	Dial DialFunc
	// Notifications and Messages are the cached lists invalidated by
	// matching envelopes. Either may be nil.
	Notifications *CachedList
	Messages      *CachedList
	// OnAlert surfaces one-shot user-visible alerts (auth or server errors).
	OnAlert func(message string)

	Logger zerolog.Logger
}

// Client is the reconciling consumer of the real-time channel.
type Client struct {
	url           string
	autoReconnect bool
	delay         time.Duration
	dial          DialFunc
	notifications *CachedList
	messages      *CachedList
	onAlert       func(string)
	log           zerolog.Logger

	mu       sync.Mutex
	identity string
	state    State
	conn     Conn
	gen      int // connection generation; stale read loops are ignored
	timer    *time.Timer
	stopped  bool
}

func New(opts Options) *Client {
	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	dial := opts.Dial
	if dial == nil {
		dial = defaultDial
	}
	alert := opts.OnAlert
	if alert == nil {
		alert = func(string) {}
	}
	return &Client{
		url:           opts.URL,
		autoReconnect: opts.AutoReconnect,
		delay:         delay,
		dial:          dial,
		notifications: opts.Notifications,
		messages:      opts.Messages,
		onAlert:       alert,
		log:           opts.Logger,
		identity:      opts.Identity,
		state:         StateDisconnected,
	}
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect dials the channel endpoint and announces the identity. A dial
// failure schedules a reconnect attempt (when AutoReconnect is on) and
// returns the error. Calling Connect while already connecting or connected
// is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.stopped = false
	c.cancelReconnectLocked()
	c.state = StateConnecting
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	conn, err := c.dial(ctx, c.url)
	if err != nil {
		c.mu.Lock()
		if gen == c.gen {
			c.state = StateDisconnected
			c.scheduleReconnectLocked()
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if gen != c.gen || c.stopped {
		c.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	c.conn = conn
	c.state = StateConnectedUnauthenticated
	identity := c.identity
	c.mu.Unlock()

	if err := c.announce(conn, gen, identity); err != nil {
		_ = conn.Close()
		c.handleClose(gen)
		return err
	}

	go c.readLoop(ctx, conn, gen)
	return nil
}

// Disconnect closes the connection, cancels any pending reconnect attempt,
// and suppresses auto-reconnect until the next explicit Connect.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.stopped = true
	c.cancelReconnectLocked()
	c.gen++
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
}

// SetIdentity changes the announced identity. When the channel is already
// authenticated the new identity is re-announced in place, without closing
// the connection; the server binding is superseded.
func (c *Client) SetIdentity(identity string) error {
	c.mu.Lock()
	c.identity = identity
	conn := c.conn
	gen := c.gen
	reannounce := c.state == StateConnectedAuthenticated
	c.mu.Unlock()

	if !reannounce || conn == nil {
		return nil
	}
	return c.announce(conn, gen, identity)
}

// announce sends the auth envelope. The state machine does not wait for an
// acknowledgment: a successful write is enough to consider the channel
// authenticated, and a later auth_error envelope reverts that.
func (c *Client) announce(conn Conn, gen int, identity string) error {
	data, err := realtime.Envelope{Type: realtime.KindAuth, UserID: identity}.Encode()
	if err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}

	c.mu.Lock()
	if gen == c.gen && c.state == StateConnectedUnauthenticated {
		c.state = StateConnectedAuthenticated
	}
	c.mu.Unlock()
	return nil
}

func (c *Client) readLoop(ctx context.Context, conn Conn, gen int) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			_ = conn.Close()
			c.handleClose(gen)
			return
		}

		env, err := realtime.DecodeEnvelope(data)
		if err != nil {
			c.log.Warn().Err(err).Msg("malformed envelope dropped")
			continue
		}
		c.handleEnvelope(ctx, env)
	}
}

// handleEnvelope classifies one received envelope. Event kinds only
// invalidate the matching cached list; the envelope payload itself is never
// merged into client state.
func (c *Client) handleEnvelope(ctx context.Context, env realtime.Envelope) {
	switch env.Type {
	case realtime.KindAuthSuccess:
		// No transition: authentication was already assumed at announce.

	case realtime.KindAuthError:
		c.mu.Lock()
		if c.state == StateConnectedAuthenticated {
			c.state = StateConnectedUnauthenticated
		}
		c.mu.Unlock()
		c.onAlert(env.Message)

	case realtime.KindNotificationCreated:
		if c.State() != StateConnectedAuthenticated || c.notifications == nil {
			return
		}
		if err := c.notifications.Invalidate(ctx); err != nil {
			c.log.Warn().Err(err).Msg("notifications re-fetch failed")
		}

	case realtime.KindChatMessageCreated:
		if c.State() != StateConnectedAuthenticated || c.messages == nil {
			return
		}
		if err := c.messages.Invalidate(ctx); err != nil {
			c.log.Warn().Err(err).Msg("chat messages re-fetch failed")
		}

	case realtime.KindError:
		c.onAlert(env.Message)

	default:
		// Unrecognised kind: forward-compatible no-op, not an error.
	}
}

// handleClose runs on every connection loss. Stale generations (already
// superseded by Disconnect or a newer Connect) are ignored so an old read
// loop can never schedule a duplicate reconnect.
func (c *Client) handleClose(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.conn = nil
	c.state = StateDisconnected
	c.scheduleReconnectLocked()
}

// scheduleReconnectLocked arms the fixed-delay reconnect timer, replacing
// any previously armed one so at most a single attempt is ever pending.
// Caller holds c.mu.
func (c *Client) scheduleReconnectLocked() {
	if !c.autoReconnect || c.stopped {
		return
	}
	c.cancelReconnectLocked()
	c.timer = time.AfterFunc(c.delay, func() {
		_ = c.Connect(context.Background())
	})
}

func (c *Client) cancelReconnectLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
