package ports

import (
	"context"

	"github.com/bizhub/erp-system/internal/core/domain"
)

// NotificationRepository handles notification persistence.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error)

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error)

	// MarkRead flags a single notification as read. Returns
	// domain.ErrNotificationNotFound when no document matches both ids.
	MarkRead(ctx context.Context, userID, notificationID string) error
}
