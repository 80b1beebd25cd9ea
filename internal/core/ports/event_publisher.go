package ports

// EventPublisher signals connected clients that server-side state changed.
// Implementations are fire-and-forget: delivery failures must never
// propagate back to the write that produced the event.
type EventPublisher interface {
	NotificationCreated(userID string)
	ChatMessageCreated(userID string)
}
