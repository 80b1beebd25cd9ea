package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizhub/erp-system/internal/core/domain"
	"github.com/bizhub/erp-system/internal/core/ports"
)

type financeService struct {
	repo ports.FinanceRepository
	log  zerolog.Logger
}

// NewFinanceService returns a FinanceService implementation.
func NewFinanceService(repo ports.FinanceRepository, log zerolog.Logger) ports.FinanceService {
	return &financeService{repo: repo, log: log}
}

func (s *financeService) Record(ctx context.Context, in ports.RecordTransactionInput) (*domain.Transaction, error) {
	txType := domain.TransactionType(in.Type)
	if !txType.Valid() {
		return nil, fmt.Errorf("record transaction: %w", domain.ErrInvalidTransactionType)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("record transaction: %w", domain.ErrInvalidAmount)
	}

	now := time.Now().UTC()
	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	t := &domain.Transaction{
		UserID:      in.UserID,
		Type:        txType,
		Amount:      in.Amount,
		Currency:    currency,
		Category:    in.Category,
		Description: in.Description,
		OccurredAt:  occurredAt,
		CreatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, t)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", in.UserID).Msg("failed to record transaction")
		return nil, err
	}

	return created, nil
}

func (s *financeService) List(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *financeService) Summary(ctx context.Context, userID string) (*domain.FinanceSummary, error) {
	summary, err := s.repo.Summarize(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("finance summary: %w", err)
	}
	return summary, nil
}
