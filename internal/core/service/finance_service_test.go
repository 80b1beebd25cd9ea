package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bizhub/erp-system/internal/core/domain"
	"github.com/bizhub/erp-system/internal/core/ports"
)

type stubFinanceRepo struct {
	inserted []*domain.Transaction
	list     []*domain.Transaction
	summary  *domain.FinanceSummary
	err      error
}

func (r *stubFinanceRepo) Insert(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
	tx.ID = "t1"
	r.inserted = append(r.inserted, tx)
	return tx, nil
}

func (r *stubFinanceRepo) ListByUser(context.Context, string) ([]*domain.Transaction, error) {
	return r.list, r.err
}

func (r *stubFinanceRepo) Summarize(context.Context, string) (*domain.FinanceSummary, error) {
	return r.summary, r.err
}

func TestFinanceService_Record(t *testing.T) {
	repo := &stubFinanceRepo{}
	svc := NewFinanceService(repo, zerolog.Nop())

	tx, err := svc.Record(context.Background(), ports.RecordTransactionInput{
		UserID:   "42",
		Type:     "income",
		Amount:   1250.50,
		Category: "sales",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if tx.Currency != "USD" {
		t.Fatalf("expected default currency USD, got %q", tx.Currency)
	}
	if tx.OccurredAt.IsZero() {
		t.Fatalf("occurred_at must default to now")
	}
	if tx.Type != domain.TransactionIncome {
		t.Fatalf("unexpected type %q", tx.Type)
	}
}

func TestFinanceService_Record_InvalidType(t *testing.T) {
	svc := NewFinanceService(&stubFinanceRepo{}, zerolog.Nop())

	_, err := svc.Record(context.Background(), ports.RecordTransactionInput{
		UserID: "42",
		Type:   "transfer",
		Amount: 10,
	})
	if !errors.Is(err, domain.ErrInvalidTransactionType) {
		t.Fatalf("expected ErrInvalidTransactionType, got %v", err)
	}
}

func TestFinanceService_Record_InvalidAmount(t *testing.T) {
	svc := NewFinanceService(&stubFinanceRepo{}, zerolog.Nop())

	for _, amount := range []float64{0, -5} {
		_, err := svc.Record(context.Background(), ports.RecordTransactionInput{
			UserID: "42",
			Type:   "expense",
			Amount: amount,
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("amount %v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestFinanceService_Summary(t *testing.T) {
	repo := &stubFinanceRepo{summary: &domain.FinanceSummary{
		Income:       2000,
		Expenses:     500,
		Balance:      1500,
		Transactions: 7,
	}}
	svc := NewFinanceService(repo, zerolog.Nop())

	got, err := svc.Summary(context.Background(), "42")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if got.Balance != 1500 || got.Transactions != 7 {
		t.Fatalf("unexpected summary: %+v", got)
	}
}
