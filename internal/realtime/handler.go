package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bizhub/erp-system/internal/api/metrics"
)

// Handler upgrades HTTP requests on the channel endpoint and runs the
// per-connection read loop. A fresh channel is anonymous until the client
// announces an identity with an auth envelope.
type Handler struct {
	registry *Registry
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(registry *Registry, log zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The dashboard is served from the same origin as the API.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws.
func (h *Handler) Serve(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	ch := NewChannel(ws)
	metrics.OpenChannels.Inc()
	go ch.WritePump()

	h.readLoop(ch)

	h.registry.Unbind(ch)
	ch.Close()
	metrics.OpenChannels.Dec()
	return nil
}

// readLoop consumes inbound frames until the connection drops. Malformed
// frames are logged and dropped; unknown kinds are ignored without logging
// so newer clients keep working against older servers.
func (h *Handler) readLoop(ch *Channel) {
	for {
		data, err := ch.ReadMessage()
		if err != nil {
			return
		}

		env, err := DecodeEnvelope(data)
		if err != nil {
			h.log.Warn().Err(err).Str("channel_id", ch.ID()).Msg("malformed envelope dropped")
			continue
		}

		switch env.Type {
		case KindAuth:
			h.handleAuth(ch, env)
		default:
			// Clients only ever send auth. Anything else, known or not,
			// is a no-op.
		}
	}
}

func (h *Handler) handleAuth(ch *Channel, env Envelope) {
	if env.UserID == "" {
		_ = ch.Send(Envelope{Type: KindAuthError, Message: "missing userId"})
		return
	}

	h.registry.Bind(env.UserID, ch)
	h.log.Debug().Str("user_id", env.UserID).Str("channel_id", ch.ID()).Msg("channel bound")

	if err := ch.Send(Envelope{Type: KindAuthSuccess, UserID: env.UserID}); err != nil {
		h.registry.Unbind(ch)
		ch.Close()
	}
}
