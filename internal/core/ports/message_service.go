package ports

import (
	"context"

	"github.com/bizhub/erp-system/internal/core/domain"
)

// SendMessageInput is the DTO passed from the transport layer.
type SendMessageInput struct {
	SenderID    string
	RecipientID string
	Body        string
}

// MessageService manages direct chat messages.
type MessageService interface {
	Send(ctx context.Context, in SendMessageInput) (*domain.ChatMessage, error)
	Conversation(ctx context.Context, userID, peerID string) ([]*domain.ChatMessage, error)
}
