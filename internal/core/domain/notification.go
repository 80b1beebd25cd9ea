package domain

import (
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")
var ErrInvalidNotification = errors.New("notification requires a recipient and a title")
var ErrForbidden = errors.New("access forbidden")

// Notification is a dashboard alert addressed to a single user.
type Notification struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body" bson:"body"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
