package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizhub/erp-system/internal/api/metrics"
	"github.com/bizhub/erp-system/internal/core/domain"
	"github.com/bizhub/erp-system/internal/core/ports"
)

type notificationService struct {
	repo      ports.NotificationRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(
	repo ports.NotificationRepository,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{repo: repo, publisher: publisher, log: log}
}

// Create persists the notification, then signals the recipient's open
// channels. Delivery is best-effort: the write has already succeeded and is
// never rolled back or failed because no channel could be notified.
func (s *notificationService) Create(ctx context.Context, in ports.CreateNotificationInput) (*domain.Notification, error) {
	if in.UserID == "" || in.Title == "" {
		return nil, fmt.Errorf("create notification: %w", domain.ErrInvalidNotification)
	}

	n := &domain.Notification{
		UserID:    in.UserID,
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	metrics.NotificationsCreatedTotal.Inc()

	s.publisher.NotificationCreated(created.UserID)

	s.log.Info().
		Str("notification_id", created.ID).
		Str("user_id", created.UserID).
		Msg("notification created")

	return created, nil
}

func (s *notificationService) List(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := s.repo.MarkRead(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
