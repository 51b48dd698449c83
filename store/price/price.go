package price

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})

		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Save(ctx context.Context, tx *db.DB, price *core.Price) error {
	return tx.Update().Save(price).Error
}

func (s *priceStore) Find(ctx context.Context, symbol string) (*core.Price, error) {
	var price core.Price
	if err := s.db.View().Where("symbol = ?", symbol).First(&price).Error; err != nil {
		return nil, err
	}

	return &price, nil
}

func (s *priceStore) All(ctx context.Context) ([]*core.Price, error) {
	var prices []*core.Price
	if err := s.db.View().Order("symbol").Find(&prices).Error; err != nil {
		return nil, err
	}

	return prices, nil
}
