package ports

import (
	"context"
	"time"
)

// TextGenerator abstracts the third-party LLM (Gemini) behind a single call
// from a prompt to generated text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SummaryCache stores generated summaries for a bounded time so repeated
// dashboard loads do not re-invoke the model.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// SummaryService exposes the three AI text-summary operations used by the
// dashboard widgets.
type SummaryService interface {
	FinanceDigest(ctx context.Context, userID string) (string, error)
	NotificationDigest(ctx context.Context, userID string) (string, error)
	ConversationSummary(ctx context.Context, userID, peerID string) (string, error)
}
