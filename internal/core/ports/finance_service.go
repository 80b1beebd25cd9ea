package ports

import (
	"context"
	"time"

	"github.com/bizhub/erp-system/internal/core/domain"
)

// RecordTransactionInput is the DTO passed from the transport layer.
type RecordTransactionInput struct {
	UserID      string
	Type        string
	Amount      float64
	Currency    string
	Category    string
	Description string
	OccurredAt  time.Time
}

// FinanceService manages ledger entries and the dashboard summary.
type FinanceService interface {
	Record(ctx context.Context, in RecordTransactionInput) (*domain.Transaction, error)
	List(ctx context.Context, userID string) ([]*domain.Transaction, error)
	Summary(ctx context.Context, userID string) (*domain.FinanceSummary, error)
}
