package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizhub/erp-system/internal/api/metrics"
	"github.com/bizhub/erp-system/internal/core/domain"
	"github.com/bizhub/erp-system/internal/core/ports"
)

type messageService struct {
	repo      ports.MessageRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewMessageService returns a MessageService implementation.
func NewMessageService(
	repo ports.MessageRepository,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) ports.MessageService {
	return &messageService{repo: repo, publisher: publisher, log: log}
}

// Send persists the message, then signals the recipient's open channels.
// As with notifications, publish failures never fail the write.
func (s *messageService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.ChatMessage, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, fmt.Errorf("send message: %w", domain.ErrEmptyMessage)
	}
	if in.SenderID == "" || in.RecipientID == "" {
		return nil, fmt.Errorf("send message: %w", domain.ErrInvalidRecipient)
	}

	m := &domain.ChatMessage{
		SenderID:    in.SenderID,
		RecipientID: in.RecipientID,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	metrics.ChatMessagesSentTotal.Inc()

	s.publisher.ChatMessageCreated(created.RecipientID)

	s.log.Info().
		Str("message_id", created.ID).
		Str("sender_id", created.SenderID).
		Str("recipient_id", created.RecipientID).
		Msg("chat message sent")

	return created, nil
}

func (s *messageService) Conversation(ctx context.Context, userID, peerID string) ([]*domain.ChatMessage, error) {
	return s.repo.ListConversation(ctx, userID, peerID)
}
