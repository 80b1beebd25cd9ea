package realtime

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

// drain reads every envelope currently queued on the channel's send buffer.
func drain(t *testing.T, ch *Channel) []Envelope {
	t.Helper()
	var out []Envelope
	for {
		select {
		case data := <-ch.send:
			var env Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				t.Fatalf("queued frame is not an envelope: %v", err)
			}
			out = append(out, env)
		default:
			return out
		}
	}
}

func TestDispatcher_PublishToAllChannels(t *testing.T) {
	reg := NewRegistry()
	d := NewDispatcher(reg, zerolog.Nop())

	a, b := newTestChannel(), newTestChannel()
	other := newTestChannel()
	reg.Bind("42", a)
	reg.Bind("42", b)
	reg.Bind("7", other)

	d.Publish("42", Envelope{Type: KindNotificationCreated})

	for _, ch := range []*Channel{a, b} {
		got := drain(t, ch)
		if len(got) != 1 || got[0].Type != KindNotificationCreated {
			t.Fatalf("expected exactly one notification envelope, got %+v", got)
		}
	}
	if got := drain(t, other); len(got) != 0 {
		t.Fatalf("unrelated identity received %d envelopes", len(got))
	}
}

func TestDispatcher_NoChannelsIsSilentDrop(t *testing.T) {
	reg := NewRegistry()
	d := NewDispatcher(reg, zerolog.Nop())

	// Must not panic or error; the client discovers the change on its
	// next normal fetch.
	d.Publish("nobody", Envelope{Type: KindNotificationCreated})
}

func TestDispatcher_DeadChannelUnbound(t *testing.T) {
	reg := NewRegistry()
	d := NewDispatcher(reg, zerolog.Nop())

	dead, live := newTestChannel(), newTestChannel()
	reg.Bind("42", dead)
	reg.Bind("42", live)
	dead.Close()

	d.Publish("42", Envelope{Type: KindChatMessageCreated})

	// The failed send must not block delivery to the live channel.
	if got := drain(t, live); len(got) != 1 {
		t.Fatalf("live channel should still receive, got %d", len(got))
	}

	// The dead channel is gone on the very next lookup.
	got := reg.ChannelsFor("42")
	if len(got) != 1 || got[0] != live {
		t.Fatalf("dead channel should be unbound, got %d channels", len(got))
	}
}

func TestDispatcher_BufferFullUnbinds(t *testing.T) {
	reg := NewRegistry()
	d := NewDispatcher(reg, zerolog.Nop())

	ch := newTestChannel()
	reg.Bind("42", ch)

	// Saturate the send buffer; WritePump is deliberately not running.
	for i := 0; i < sendBufferSize; i++ {
		if err := ch.Send(Envelope{Type: KindError}); err != nil {
			t.Fatalf("prefill send %d failed: %v", i, err)
		}
	}

	d.Publish("42", Envelope{Type: KindNotificationCreated})

	if len(reg.ChannelsFor("42")) != 0 {
		t.Fatalf("saturated channel should be unbound")
	}
}

func TestDispatcher_EventPublisherKinds(t *testing.T) {
	reg := NewRegistry()
	d := NewDispatcher(reg, zerolog.Nop())

	ch := newTestChannel()
	reg.Bind("42", ch)

	d.NotificationCreated("42")
	d.ChatMessageCreated("42")

	got := drain(t, ch)
	if len(got) != 2 {
		t.Fatalf("expected 2 envelopes, got %d", len(got))
	}
	if got[0].Type != KindNotificationCreated || got[1].Type != KindChatMessageCreated {
		t.Fatalf("unexpected kinds: %s, %s", got[0].Type, got[1].Type)
	}
}
