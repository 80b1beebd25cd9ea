package ports

import (
	"context"

	"github.com/bizhub/erp-system/internal/core/domain"
)

// FinanceRepository handles ledger persistence and aggregation.
type FinanceRepository interface {
	Insert(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)

	// Summarize aggregates the user's ledger server-side (income, expenses,
	// balance, count).
	Summarize(ctx context.Context, userID string) (*domain.FinanceSummary, error)
}
