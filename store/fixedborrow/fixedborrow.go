package fixedborrow

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

type fixedBorrowStore struct {
	db *db.DB
}

// New new fixed borrow store
func New(db *db.DB) core.IFixedBorrowStore {
	return &fixedBorrowStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.FixedBorrow{})
		if err := tx.AutoMigrate(core.FixedBorrow{}).Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_fixed_borrows_status", "status").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *fixedBorrowStore) Save(ctx context.Context, tx *db.DB, borrow *core.FixedBorrow) error {
	return tx.Update().Save(borrow).Error
}

func (s *fixedBorrowStore) FindByUser(ctx context.Context, userID, symbol string) ([]*core.FixedBorrow, error) {
	var borrows []*core.FixedBorrow
	query := s.db.View().Where("user_id = ?", userID)
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}

	if err := query.Order("symbol, slot").Find(&borrows).Error; err != nil {
		return nil, err
	}

	return borrows, nil
}

// All closed positions are loaded too, they hold their slots
func (s *fixedBorrowStore) All(ctx context.Context) ([]*core.FixedBorrow, error) {
	var borrows []*core.FixedBorrow
	if err := s.db.View().Order("user_id, symbol, slot").Find(&borrows).Error; err != nil {
		return nil, err
	}

	return borrows, nil
}
