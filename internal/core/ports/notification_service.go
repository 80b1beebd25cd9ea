package ports

import (
	"context"

	"github.com/bizhub/erp-system/internal/core/domain"
)

// CreateNotificationInput is the DTO passed from the transport layer.
type CreateNotificationInput struct {
	UserID string
	Title  string
	Body   string
}

// NotificationService manages dashboard notifications.
type NotificationService interface {
	Create(ctx context.Context, in CreateNotificationInput) (*domain.Notification, error)
	List(ctx context.Context, userID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
}
