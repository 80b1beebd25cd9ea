package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizhub/erp-system/internal/core/ports"
)

// SummaryHandler exposes the three AI text-summary endpoints.
type SummaryHandler struct {
	service ports.SummaryService
}

func NewSummaryHandler(service ports.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// Finance handles POST /v1/ai/finance.
//
// @Summary      AI digest of my finance snapshot
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Failure      502  {object}  map[string]string
// @Router       /v1/ai/finance [post]
func (h *SummaryHandler) Finance(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	text, err := h.service.FinanceDigest(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{Summary: text})
}

// Notifications handles POST /v1/ai/notifications.
//
// @Summary      AI digest of my unread notifications
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Failure      502  {object}  map[string]string
// @Router       /v1/ai/notifications [post]
func (h *SummaryHandler) Notifications(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	text, err := h.service.NotificationDigest(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{Summary: text})
}

// Chat handles POST /v1/ai/chat?with=<userID>.
//
// @Summary      AI summary of a conversation
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Param        with  query  string  true  "Peer user id"
// @Success      200  {object}  summaryResponse
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /v1/ai/chat [post]
func (h *SummaryHandler) Chat(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	peerID := c.QueryParam("with")
	if peerID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing 'with' query parameter"})
	}

	text, err := h.service.ConversationSummary(c.Request().Context(), userID, peerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{Summary: text})
}
