package wsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/bizhub/erp-system/internal/realtime"
)

// fakeConn is a scriptable in-memory connection: the test pushes inbound
// envelopes and inspects what the client wrote.
type fakeConn struct {
	in        chan []byte
	mu        sync.Mutex
	writes    [][]byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 16), closed: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case data := <-c.in:
		return websocket.TextMessage, data, nil
	case <-c.closed:
		return 0, nil, errors.New("connection closed")
	}
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	select {
	case <-c.closed:
		return errors.New("connection closed")
	default:
	}
	c.mu.Lock()
	c.writes = append(c.writes, append([]byte(nil), data...))
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) push(t *testing.T, env realtime.Envelope) {
	t.Helper()
	data, err := env.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	c.in <- data
}

func (c *fakeConn) written(t *testing.T) []realtime.Envelope {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]realtime.Envelope, 0, len(c.writes))
	for _, data := range c.writes {
		var env realtime.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("written frame is not an envelope: %v", err)
		}
		out = append(out, env)
	}
	return out
}

// fakeDialer hands out fakeConns and can fail a set number of dials first.
type fakeDialer struct {
	mu       sync.Mutex
	conns    []*fakeConn
	failures int
}

func (d *fakeDialer) dial(context.Context, string) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failures > 0 {
		d.failures--
		return nil, errors.New("dial refused")
	}
	conn := newFakeConn()
	d.conns = append(d.conns, conn)
	return conn, nil
}

func (d *fakeDialer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.conns)
}

func (d *fakeDialer) last() *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.conns) == 0 {
		return nil
	}
	return d.conns[len(d.conns)-1]
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func newTestClient(t *testing.T, dialer *fakeDialer, opts Options) *Client {
	t.Helper()
	opts.URL = "ws://test/ws"
	opts.Dial = dialer.dial
	opts.Logger = zerolog.Nop()
	if opts.Identity == "" {
		opts.Identity = "42"
	}
	c := New(opts)
	t.Cleanup(c.Disconnect)
	return c
}

func TestConnect_AnnouncesIdentity(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestClient(t, dialer, Options{})

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if got := c.State(); got != StateConnectedAuthenticated {
		t.Fatalf("expected connected-authenticated, got %s", got)
	}

	writes := dialer.last().written(t)
	if len(writes) != 1 || writes[0].Type != realtime.KindAuth || writes[0].UserID != "42" {
		t.Fatalf("expected a single auth envelope for 42, got %+v", writes)
	}
}

func TestAuthError_RevertsStateAndAlerts(t *testing.T) {
	dialer := &fakeDialer{}
	var alerts atomic.Int32
	c := newTestClient(t, dialer, Options{
		OnAlert: func(string) { alerts.Add(1) },
	})

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	dialer.last().push(t, realtime.Envelope{Type: realtime.KindAuthError, Message: "unknown user"})

	waitFor(t, func() bool { return c.State() == StateConnectedUnauthenticated }, "state revert")
	waitFor(t, func() bool { return alerts.Load() == 1 }, "alert")
}

func TestNotificationCreated_TriggersExactlyOneRefetch(t *testing.T) {
	dialer := &fakeDialer{}
	var fetches atomic.Int32
	list := NewCachedList(func(context.Context) ([]json.RawMessage, error) {
		fetches.Add(1)
		return []json.RawMessage{[]byte(`{"id":"n1"}`), []byte(`{"id":"n2"}`)}, nil
	})
	c := newTestClient(t, dialer, Options{Notifications: list})

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	dialer.last().push(t, realtime.Envelope{Type: realtime.KindNotificationCreated})

	waitFor(t, func() bool { return fetches.Load() == 1 }, "re-fetch")
	waitFor(t, func() bool { return list.Len() == 2 }, "cache update")

	// The envelope carried no payload and mutated nothing beyond the fetch.
	time.Sleep(30 * time.Millisecond)
	if fetches.Load() != 1 {
		t.Fatalf("expected exactly one fetch, got %d", fetches.Load())
	}
}

func TestChatMessageCreated_InvalidatesMessages(t *testing.T) {
	dialer := &fakeDialer{}
	var fetches atomic.Int32
	list := NewCachedList(func(context.Context) ([]json.RawMessage, error) {
		fetches.Add(1)
		return nil, nil
	})
	c := newTestClient(t, dialer, Options{Messages: list})

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	dialer.last().push(t, realtime.Envelope{Type: realtime.KindChatMessageCreated})
	waitFor(t, func() bool { return fetches.Load() == 1 }, "re-fetch")
}

func TestUnknownKind_IsIgnored(t *testing.T) {
	dialer := &fakeDialer{}
	var fetches, alerts atomic.Int32
	list := NewCachedList(func(context.Context) ([]json.RawMessage, error) {
		fetches.Add(1)
		return nil, nil
	})
	c := newTestClient(t, dialer, Options{
		Notifications: list,
		Messages:      list,
		OnAlert:       func(string) { alerts.Add(1) },
	})

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	dialer.last().push(t, realtime.Envelope{Type: realtime.Kind("presence-changed")})

	time.Sleep(30 * time.Millisecond)
	if fetches.Load() != 0 || alerts.Load() != 0 {
		t.Fatalf("unknown kind must be a no-op (fetches=%d alerts=%d)", fetches.Load(), alerts.Load())
	}
	if c.State() != StateConnectedAuthenticated {
		t.Fatalf("state must be unchanged, got %s", c.State())
	}
}

func TestErrorEnvelope_SurfacesAlert(t *testing.T) {
	dialer := &fakeDialer{}
	var got atomic.Value
	c := newTestClient(t, dialer, Options{
		OnAlert: func(msg string) { got.Store(msg) },
	})

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	dialer.last().push(t, realtime.Envelope{Type: realtime.KindError, Message: "something broke"})

	waitFor(t, func() bool { v, _ := got.Load().(string); return v == "something broke" }, "alert")
	if c.State() != StateConnectedAuthenticated {
		t.Fatalf("error envelope must not change state, got %s", c.State())
	}
}

func TestReconnect_AfterFixedDelay(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestClient(t, dialer, Options{
		AutoReconnect:  true,
		ReconnectDelay: 30 * time.Millisecond,
	})

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	first := dialer.last()

	// Simulate a transport drop.
	_ = first.Close()

	waitFor(t, func() bool { return dialer.count() == 2 }, "reconnect dial")
	waitFor(t, func() bool { return c.State() == StateConnectedAuthenticated }, "re-authentication")

	// The new connection re-announced the identity.
	writes := dialer.last().written(t)
	if len(writes) != 1 || writes[0].Type != realtime.KindAuth {
		t.Fatalf("expected announce on reconnect, got %+v", writes)
	}
}

func TestReconnect_DialFailureReschedules(t *testing.T) {
	dialer := &fakeDialer{failures: 1}
	c := newTestClient(t, dialer, Options{
		AutoReconnect:  true,
		ReconnectDelay: 20 * time.Millisecond,
	})

	if err := c.Connect(context.Background()); err == nil {
		t.Fatalf("expected dial error")
	}

	// The failed attempt reschedules itself after the same fixed delay.
	waitFor(t, func() bool { return c.State() == StateConnectedAuthenticated }, "eventual connect")
	if dialer.count() != 1 {
		t.Fatalf("expected one successful dial, got %d", dialer.count())
	}
}

func TestDisconnect_CancelsPendingReconnect(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestClient(t, dialer, Options{
		AutoReconnect:  true,
		ReconnectDelay: 50 * time.Millisecond,
	})

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	// Drop the transport, then disconnect manually before the timer fires.
	_ = dialer.last().Close()
	waitFor(t, func() bool { return c.State() == StateDisconnected }, "drop observed")
	c.Disconnect()

	time.Sleep(150 * time.Millisecond)
	if dialer.count() != 1 {
		t.Fatalf("manual disconnect must cancel the scheduled attempt, got %d dials", dialer.count())
	}
	if c.State() != StateDisconnected {
		t.Fatalf("expected disconnected, got %s", c.State())
	}
}

func TestSetIdentity_ReannouncesInPlace(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestClient(t, dialer, Options{})

	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	if err := c.SetIdentity("99"); err != nil {
		t.Fatalf("set identity failed: %v", err)
	}

	writes := dialer.last().written(t)
	if len(writes) != 2 {
		t.Fatalf("expected announce + re-announce, got %d frames", len(writes))
	}
	if writes[1].Type != realtime.KindAuth || writes[1].UserID != "99" {
		t.Fatalf("unexpected re-announce: %+v", writes[1])
	}
	if c.State() != StateConnectedAuthenticated {
		t.Fatalf("re-announce must not drop the connection, got %s", c.State())
	}
	if dialer.count() != 1 {
		t.Fatalf("re-announce must reuse the open channel, got %d dials", dialer.count())
	}
}

func TestCachedList_KeepsItemsOnFetchFailure(t *testing.T) {
	calls := 0
	list := NewCachedList(func(context.Context) ([]json.RawMessage, error) {
		calls++
		if calls > 1 {
			return nil, fmt.Errorf("store unavailable")
		}
		return []json.RawMessage{[]byte(`{"id":"n1"}`)}, nil
	})

	if err := list.Invalidate(context.Background()); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	if err := list.Invalidate(context.Background()); err == nil {
		t.Fatalf("expected fetch error")
	}
	if list.Len() != 1 {
		t.Fatalf("failed fetch must keep previous items, got %d", list.Len())
	}
}
