package ports

import (
	"context"

	"github.com/bizhub/erp-system/internal/core/domain"
)

// MessageRepository handles chat message persistence.
type MessageRepository interface {
	Insert(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error)

	// ListConversation returns all messages exchanged between the two users,
	// oldest first.
	ListConversation(ctx context.Context, userID, peerID string) ([]*domain.ChatMessage, error)
}
