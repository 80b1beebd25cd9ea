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

const summaryTTL = 10 * time.Minute

type summaryService struct {
	finance       ports.FinanceRepository
	notifications ports.NotificationRepository
	messages      ports.MessageRepository
	generator     ports.TextGenerator
	cache         ports.SummaryCache
	log           zerolog.Logger
}

// NewSummaryService returns a SummaryService backed by the LLM text
// generator. Generated summaries are cached for summaryTTL so repeated
// dashboard loads do not re-invoke the model.
func NewSummaryService(
	finance ports.FinanceRepository,
	notifications ports.NotificationRepository,
	messages ports.MessageRepository,
	generator ports.TextGenerator,
	cache ports.SummaryCache,
	log zerolog.Logger,
) ports.SummaryService {
	return &summaryService{
		finance:       finance,
		notifications: notifications,
		messages:      messages,
		generator:     generator,
		cache:         cache,
		log:           log,
	}
}

// FinanceDigest summarises the user's ledger totals in plain language.
func (s *summaryService) FinanceDigest(ctx context.Context, userID string) (string, error) {
	timer := time.Now()
	defer func() { metrics.SummaryDuration.WithLabelValues("finance").Observe(time.Since(timer).Seconds()) }()

	summary, err := s.finance.Summarize(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("finance digest: %w", err)
	}

	prompt := fmt.Sprintf(
		"Summarize this business finance snapshot in two short sentences for a dashboard widget. "+
			"Income: %.2f, expenses: %.2f, balance: %.2f across %d transactions.",
		summary.Income, summary.Expenses, summary.Balance, summary.Transactions,
	)

	return s.generate(ctx, "finance:"+userID, prompt)
}

// NotificationDigest condenses the user's unread notifications.
func (s *summaryService) NotificationDigest(ctx context.Context, userID string) (string, error) {
	timer := time.Now()
	defer func() {
		metrics.SummaryDuration.WithLabelValues("notifications").Observe(time.Since(timer).Seconds())
	}()

	list, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("notification digest: %w", err)
	}

	var unread []*domain.Notification
	for _, n := range list {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	if len(unread) == 0 {
		return "You have no unread notifications.", nil
	}

	var b strings.Builder
	for _, n := range unread {
		fmt.Fprintf(&b, "- %s: %s\n", n.Title, n.Body)
	}
	prompt := fmt.Sprintf(
		"Write a one-paragraph digest of these %d unread dashboard notifications:\n%s",
		len(unread), b.String(),
	)

	return s.generate(ctx, "notifications:"+userID, prompt)
}

// ConversationSummary summarises the chat thread between two users.
func (s *summaryService) ConversationSummary(ctx context.Context, userID, peerID string) (string, error) {
	timer := time.Now()
	defer func() { metrics.SummaryDuration.WithLabelValues("chat").Observe(time.Since(timer).Seconds()) }()

	msgs, err := s.messages.ListConversation(ctx, userID, peerID)
	if err != nil {
		return "", fmt.Errorf("conversation summary: %w", err)
	}
	if len(msgs) == 0 {
		return "No messages in this conversation yet.", nil
	}

	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "%s: %s\n", m.SenderID, m.Body)
	}
	prompt := "Summarize the key points and any action items from this chat conversation " +
		"in at most three sentences:\n" + b.String()

	return s.generate(ctx, "chat:"+userID+":"+peerID, prompt)
}

// generate answers from cache when possible, otherwise calls the model and
// caches the result. Cache failures are logged and bypassed, never fatal.
func (s *summaryService) generate(ctx context.Context, key, prompt string) (string, error) {
	cacheKey := "summary:" + key

	cached, ok, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		s.log.Warn().Err(err).Str("key", cacheKey).Msg("summary cache read failed")
	} else if ok {
		metrics.SummaryCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.SummaryCacheTotal.WithLabelValues("miss").Inc()

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, text, summaryTTL); err != nil {
		s.log.Warn().Err(err).Str("key", cacheKey).Msg("summary cache write failed")
	}

	return text, nil
}
