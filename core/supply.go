package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Supply share balance of a user in a market
type Supply struct {
	UserID    string          `sql:"size:36;PRIMARY_KEY" json:"user_id"`
	Symbol    string          `sql:"size:20;PRIMARY_KEY" json:"symbol"`
	Shares    decimal.Decimal `sql:"type:decimal(64,8)" json:"shares"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Clone returns a copy safe to mutate
func (s *Supply) Clone() *Supply {
	c := *s
	return &c
}

// ISupplyStore supply store interface
type ISupplyStore interface {
	Save(ctx context.Context, tx *db.DB, supply *Supply) error
	FindByUser(ctx context.Context, userID string) ([]*Supply, error)
	All(ctx context.Context) ([]*Supply, error)
}
