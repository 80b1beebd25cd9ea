package realtime

import (
	"testing"
)

// stubConn is an in-memory Conn for tests that never touch the network.
type stubConn struct {
	closed bool
}

func (c *stubConn) ReadMessage() (int, []byte, error) { select {} }
func (c *stubConn) WriteMessage(int, []byte) error    { return nil }
func (c *stubConn) Close() error                      { c.closed = true; return nil }

func newTestChannel() *Channel {
	return NewChannel(&stubConn{})
}

func contains(channels []*Channel, ch *Channel) bool {
	for _, c := range channels {
		if c == ch {
			return true
		}
	}
	return false
}

func TestRegistry_BindAndChannelsFor(t *testing.T) {
	reg := NewRegistry()
	a, b := newTestChannel(), newTestChannel()

	reg.Bind("42", a)
	reg.Bind("42", b)

	got := reg.ChannelsFor("42")
	if len(got) != 2 || !contains(got, a) || !contains(got, b) {
		t.Fatalf("expected both channels bound to 42, got %d", len(got))
	}
	if len(reg.ChannelsFor("7")) != 0 {
		t.Fatalf("unrelated identity should have no channels")
	}
}

func TestRegistry_BindIdempotent(t *testing.T) {
	reg := NewRegistry()
	ch := newTestChannel()

	reg.Bind("42", ch)
	reg.Bind("42", ch)

	if got := reg.ChannelsFor("42"); len(got) != 1 {
		t.Fatalf("expected 1 channel after double bind, got %d", len(got))
	}
	if reg.Len() != 1 {
		t.Fatalf("expected registry size 1, got %d", reg.Len())
	}
}

func TestRegistry_RebindSupersedes(t *testing.T) {
	reg := NewRegistry()
	ch := newTestChannel()

	reg.Bind("alice", ch)
	reg.Bind("bob", ch)

	if got := reg.ChannelsFor("alice"); len(got) != 0 {
		t.Fatalf("channel should have left alice's set, got %d", len(got))
	}
	got := reg.ChannelsFor("bob")
	if len(got) != 1 || got[0] != ch {
		t.Fatalf("channel should be in bob's set")
	}
}

func TestRegistry_Unbind(t *testing.T) {
	reg := NewRegistry()
	a, b := newTestChannel(), newTestChannel()

	reg.Bind("42", a)
	reg.Bind("42", b)
	reg.Unbind(a)

	got := reg.ChannelsFor("42")
	if len(got) != 1 || got[0] != b {
		t.Fatalf("expected only b to remain, got %d channels", len(got))
	}

	// Unbinding an unknown channel is a no-op.
	reg.Unbind(newTestChannel())
	reg.Unbind(a)
	if reg.Len() != 1 {
		t.Fatalf("expected registry size 1, got %d", reg.Len())
	}
}

func TestRegistry_EmptySetPruned(t *testing.T) {
	reg := NewRegistry()
	ch := newTestChannel()

	reg.Bind("42", ch)
	reg.Unbind(ch)

	if len(reg.byIdentity) != 0 {
		t.Fatalf("empty identity set should be deleted")
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", reg.Len())
	}
}
