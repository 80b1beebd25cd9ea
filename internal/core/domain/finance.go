package domain

import (
	"errors"
	"time"
)

// TransactionType discriminates money in from money out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

var ErrInvalidTransactionType = errors.New("invalid transaction type")
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// Transaction is a single finance ledger entry owned by a user.
type Transaction struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	UserID      string          `json:"user_id" bson:"user_id"`
	Type        TransactionType `json:"type" bson:"type"`
	Amount      float64         `json:"amount" bson:"amount"`
	Currency    string          `json:"currency" bson:"currency"`
	Category    string          `json:"category" bson:"category"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at" bson:"occurred_at"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
}

// Valid reports whether the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// FinanceSummary aggregates a user's ledger for the dashboard widget.
type FinanceSummary struct {
	Income       float64 `json:"income"`
	Expenses     float64 `json:"expenses"`
	Balance      float64 `json:"balance"`
	Transactions int64   `json:"transactions"`
}
