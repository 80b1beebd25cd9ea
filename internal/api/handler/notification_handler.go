package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizhub/erp-system/internal/core/domain"
	"github.com/bizhub/erp-system/internal/core/ports"
)

// NotificationHandler handles HTTP requests for dashboard notifications.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type createNotificationRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type notificationListResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
}

// List handles GET /v1/notifications — the authenticated user's
// notifications, newest first. This is the authoritative list that the
// real-time channel invalidates.
//
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  notificationListResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Notification{}
	}
	return c.JSON(http.StatusOK, notificationListResponse{Notifications: list})
}

// Create handles POST /v1/notifications (admin only).
//
// @Summary      Create a notification for a user
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNotificationRequest  true  "Notification details"
// @Success      201   {object}  domain.Notification
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/notifications [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req createNotificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateNotificationInput{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// MarkRead handles POST /v1/notifications/:id/read.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
