package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bizhub/erp-system/internal/core/domain"
)

const collectionTransactions = "transactions"

// FinanceRepository implements ports.FinanceRepository using MongoDB.
type FinanceRepository struct {
	col *mongo.Collection
}

func NewFinanceRepository(db *mongo.Database) *FinanceRepository {
	return &FinanceRepository{col: db.Collection(collectionTransactions)}
}

type transactionDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Type        string             `bson:"type"`
	Amount      float64            `bson:"amount"`
	Currency    string             `bson:"currency"`
	Category    string             `bson:"category"`
	Description string             `bson:"description,omitempty"`
	OccurredAt  time.Time          `bson:"occurred_at"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (d transactionDoc) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		Type:        domain.TransactionType(d.Type),
		Amount:      d.Amount,
		Currency:    d.Currency,
		Category:    d.Category,
		Description: d.Description,
		OccurredAt:  d.OccurredAt,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *FinanceRepository) Insert(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := transactionDoc{
		UserID:      t.UserID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Currency:    t.Currency,
		Category:    t.Category,
		Description: t.Description,
		OccurredAt:  t.OccurredAt,
		CreatedAt:   t.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	created := *t
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *FinanceRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Transaction
	for cur.Next(ctx) {
		var doc transactionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

// Summarize aggregates the ledger server-side: one $group per transaction
// type, folded into a single summary.
func (r *FinanceRepository) Summarize(ctx context.Context, userID string) (*domain.FinanceSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$type",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("summarize ledger: %w", err)
	}
	defer cur.Close(ctx)

	summary := &domain.FinanceSummary{}
	for cur.Next(ctx) {
		var row struct {
			Type  string  `bson:"_id"`
			Total float64 `bson:"total"`
			Count int64   `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode summary row: %w", err)
		}
		switch domain.TransactionType(row.Type) {
		case domain.TransactionIncome:
			summary.Income = row.Total
		case domain.TransactionExpense:
			summary.Expenses = row.Total
		}
		summary.Transactions += row.Count
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	summary.Balance = summary.Income - summary.Expenses
	return summary, nil
}

// EnsureIndexes creates the per-user ledger index.
func (r *FinanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "occurred_at", Value: -1}},
	})
	return err
}
