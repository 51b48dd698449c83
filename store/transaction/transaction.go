package transaction

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

type transactionStore struct {
	db *db.DB
}

// New new journal store
func New(db *db.DB) core.ITransactionStore {
	return &transactionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})
		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Create is idempotent on trace id
func (s *transactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	return tx.Update().Where("trace_id = ?", transaction.TraceID).FirstOrCreate(transaction).Error
}

func (s *transactionStore) List(ctx context.Context, query core.TransactionQuery) ([]*core.Transaction, error) {
	limit := query.Limit
	if limit <= 0 || limit > 500 {
		limit = 500
	}

	q := s.db.View().Where("id > ?", query.Offset)
	if query.UserID != "" {
		q = q.Where("user_id = ?", query.UserID)
	}

	if query.Symbol != "" {
		q = q.Where("symbol = ?", query.Symbol)
	}

	var transactions []*core.Transaction
	if err := q.Order("id ASC").Limit(limit).Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}
