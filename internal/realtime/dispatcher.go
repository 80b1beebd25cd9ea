package realtime

import (
	"github.com/rs/zerolog"

	"github.com/bizhub/erp-system/internal/api/metrics"
)

// Dispatcher fans a domain event out to every channel currently bound to
// the target user. Delivery is best-effort, at-most-once per open channel:
// a failed send marks that channel dead and unbinds it, and never prevents
// delivery to the user's other channels. When no channel is open the event
// is dropped; the client picks the change up on its next normal fetch.
type Dispatcher struct {
	registry *Registry
	log      zerolog.Logger
}

func NewDispatcher(registry *Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// Publish sends env to each of identity's open channels. Fire-and-forget:
// it returns without waiting for client acknowledgment and reports nothing
// to the caller.
func (d *Dispatcher) Publish(identity string, env Envelope) {
	for _, ch := range d.registry.ChannelsFor(identity) {
		if err := ch.Send(env); err != nil {
			d.log.Warn().Err(err).
				Str("user_id", identity).
				Str("channel_id", ch.ID()).
				Str("kind", string(env.Type)).
				Msg("channel send failed, unbinding")
			metrics.EnvelopeSendErrorsTotal.Inc()
			d.registry.Unbind(ch)
			ch.Close()
			continue
		}
		metrics.EnvelopesPublishedTotal.WithLabelValues(string(env.Type)).Inc()
	}
}

// NotificationCreated implements ports.EventPublisher.
func (d *Dispatcher) NotificationCreated(userID string) {
	d.Publish(userID, Envelope{Type: KindNotificationCreated})
}

// ChatMessageCreated implements ports.EventPublisher.
func (d *Dispatcher) ChatMessageCreated(userID string) {
	d.Publish(userID, Envelope{Type: KindChatMessageCreated})
}
