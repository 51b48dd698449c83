package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Borrow variable rate borrow snapshot
type Borrow struct {
	UserID        string          `sql:"size:36;PRIMARY_KEY" json:"user_id"`
	Symbol        string          `sql:"size:20;PRIMARY_KEY" json:"symbol"`
	Principal     decimal.Decimal `sql:"type:decimal(64,18)" json:"principal"`
	InterestIndex decimal.Decimal `sql:"type:decimal(64,18);default:1" json:"interest_index"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Clone returns a copy safe to mutate
func (b *Borrow) Clone() *Borrow {
	c := *b
	return &c
}

// IBorrowStore borrow store interface
type IBorrowStore interface {
	Save(ctx context.Context, tx *db.DB, borrow *Borrow) error
	FindByUser(ctx context.Context, userID string) ([]*Borrow, error)
	All(ctx context.Context) ([]*Borrow, error)
}
