package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizhub/erp-system/internal/core/domain"
	"github.com/bizhub/erp-system/internal/core/ports"
)

// MessageHandler handles HTTP requests for direct chat messages.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Body        string `json:"body"`
}

type messageListResponse struct {
	Messages []*domain.ChatMessage `json:"messages"`
}

// Conversation handles GET /v1/messages?with=<userID> — all messages
// exchanged with the given peer, oldest first. This is the authoritative
// list that the real-time channel invalidates.
//
// @Summary      List a conversation
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        with  query     string  true  "Peer user id"
// @Success      200   {object}  messageListResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/messages [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	peerID := c.QueryParam("with")
	if peerID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing 'with' query parameter"})
	}

	msgs, err := h.service.Conversation(c.Request().Context(), userID, peerID)
	if err != nil {
		return err
	}
	if msgs == nil {
		msgs = []*domain.ChatMessage{}
	}
	return c.JSON(http.StatusOK, messageListResponse{Messages: msgs})
}

// Send handles POST /v1/messages.
//
// @Summary      Send a chat message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message details"
// @Success      201   {object}  domain.ChatMessage
// @Failure      400   {object}  map[string]string
// @Router       /v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	created, err := h.service.Send(c.Request().Context(), ports.SendMessageInput{
		SenderID:    userID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}
