package domain

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")
var ErrEmptyMessage = errors.New("message body is empty")
var ErrInvalidRecipient = errors.New("message requires a sender and a recipient")

// ChatMessage is a direct message between two users.
type ChatMessage struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	SenderID    string    `json:"sender_id" bson:"sender_id"`
	RecipientID string    `json:"recipient_id" bson:"recipient_id"`
	Body        string    `json:"body" bson:"body"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
