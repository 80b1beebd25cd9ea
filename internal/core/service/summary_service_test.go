package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizhub/erp-system/internal/core/domain"
)

type stubGenerator struct {
	calls   int
	text    string
	prompts []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, prompt)
	return g.text, nil
}

type memorySummaryCache struct {
	entries map[string]string
}

func newMemorySummaryCache() *memorySummaryCache {
	return &memorySummaryCache{entries: make(map[string]string)}
}

func (c *memorySummaryCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *memorySummaryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func newSummaryFixture(gen *stubGenerator, cache *memorySummaryCache) (*stubFinanceRepo, *stubNotificationRepo, *stubMessageRepo, interface {
	FinanceDigest(context.Context, string) (string, error)
	NotificationDigest(context.Context, string) (string, error)
	ConversationSummary(context.Context, string, string) (string, error)
}) {
	finance := &stubFinanceRepo{summary: &domain.FinanceSummary{Income: 2000, Expenses: 500, Balance: 1500, Transactions: 7}}
	notifications := &stubNotificationRepo{}
	messages := &stubMessageRepo{}
	svc := NewSummaryService(finance, notifications, messages, gen, cache, zerolog.Nop())
	return finance, notifications, messages, svc
}

func TestSummaryService_FinanceDigest_CachesResult(t *testing.T) {
	gen := &stubGenerator{text: "Healthy month with a positive balance."}
	cache := newMemorySummaryCache()
	_, _, _, svc := newSummaryFixture(gen, cache)

	first, err := svc.FinanceDigest(context.Background(), "42")
	if err != nil {
		t.Fatalf("digest failed: %v", err)
	}
	if first != gen.text {
		t.Fatalf("unexpected digest: %q", first)
	}
	if !strings.Contains(gen.prompts[0], "1500.00") {
		t.Fatalf("prompt must carry the ledger totals: %q", gen.prompts[0])
	}

	second, err := svc.FinanceDigest(context.Background(), "42")
	if err != nil {
		t.Fatalf("second digest failed: %v", err)
	}
	if second != first {
		t.Fatalf("cached digest differs: %q vs %q", second, first)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one model call, got %d", gen.calls)
	}
}

func TestSummaryService_NotificationDigest_SkipsModelWhenAllRead(t *testing.T) {
	gen := &stubGenerator{text: "digest"}
	_, notifications, _, svc := newSummaryFixture(gen, newMemorySummaryCache())
	notifications.list = []*domain.Notification{
		{ID: "n1", UserID: "42", Title: "t", Read: true},
	}

	got, err := svc.NotificationDigest(context.Background(), "42")
	if err != nil {
		t.Fatalf("digest failed: %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("no unread notifications must not invoke the model")
	}
	if got != "You have no unread notifications." {
		t.Fatalf("unexpected canned response: %q", got)
	}
}

func TestSummaryService_NotificationDigest_UnreadOnly(t *testing.T) {
	gen := &stubGenerator{text: "Two items need attention."}
	_, notifications, _, svc := newSummaryFixture(gen, newMemorySummaryCache())
	notifications.list = []*domain.Notification{
		{ID: "n1", UserID: "42", Title: "Overdue invoice", Read: false},
		{ID: "n2", UserID: "42", Title: "Archived", Read: true},
	}

	if _, err := svc.NotificationDigest(context.Background(), "42"); err != nil {
		t.Fatalf("digest failed: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one model call, got %d", gen.calls)
	}
	if strings.Contains(gen.prompts[0], "Archived") {
		t.Fatalf("read notifications must not reach the prompt: %q", gen.prompts[0])
	}
}

func TestSummaryService_ConversationSummary_EmptyThread(t *testing.T) {
	gen := &stubGenerator{text: "summary"}
	_, _, _, svc := newSummaryFixture(gen, newMemorySummaryCache())

	got, err := svc.ConversationSummary(context.Background(), "42", "77")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("empty thread must not invoke the model")
	}
	if got != "No messages in this conversation yet." {
		t.Fatalf("unexpected canned response: %q", got)
	}
}

func TestSummaryService_ConversationSummary(t *testing.T) {
	gen := &stubGenerator{text: "They agreed to ship on Friday."}
	_, _, messages, svc := newSummaryFixture(gen, newMemorySummaryCache())
	messages.history = []*domain.ChatMessage{
		{SenderID: "42", RecipientID: "77", Body: "can we ship friday?"},
		{SenderID: "77", RecipientID: "42", Body: "yes, friday works"},
	}

	got, err := svc.ConversationSummary(context.Background(), "42", "77")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if got != gen.text {
		t.Fatalf("unexpected summary: %q", got)
	}
	if !strings.Contains(gen.prompts[0], "friday works") {
		t.Fatalf("prompt must carry the thread: %q", gen.prompts[0])
	}
}
