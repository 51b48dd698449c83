package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// FixedBorrowStatus fixed borrow status
type FixedBorrowStatus int

const (
	_ FixedBorrowStatus = iota
	// FixedBorrowStatusOpen outstanding
	FixedBorrowStatusOpen
	// FixedBorrowStatusRepaid repaid by the borrower
	FixedBorrowStatusRepaid
	// FixedBorrowStatusLiquidated repaid by a liquidator
	FixedBorrowStatusLiquidated
)

func (s FixedBorrowStatus) String() string {
	switch s {
	case FixedBorrowStatusOpen:
		return "open"
	case FixedBorrowStatusRepaid:
		return "repaid"
	case FixedBorrowStatusLiquidated:
		return "liquidated"
	default:
		return "unknown"
	}
}

// FixedBorrow fixed rate borrow, addressed by slot
//
// Interest is locked and added to the principal at origination, the
// position is never resized and keeps its slot after it is closed.
type FixedBorrow struct {
	UserID string `sql:"size:36;PRIMARY_KEY" json:"user_id"`
	Symbol string `sql:"size:20;PRIMARY_KEY" json:"symbol"`
	Slot   int    `sql:"PRIMARY_KEY;auto_increment:false" json:"slot"`
	// disbursed amount
	Amount    decimal.Decimal `sql:"type:decimal(64,18)" json:"amount"`
	Interest  decimal.Decimal `sql:"type:decimal(64,18)" json:"interest"`
	Principal decimal.Decimal `sql:"type:decimal(64,18)" json:"principal"`
	// rate for the whole duration
	Rate      decimal.Decimal   `sql:"type:decimal(32,18)" json:"rate"`
	StartAt   time.Time         `json:"start_at"`
	Duration  int64             `json:"duration"`
	Status    FixedBorrowStatus `sql:"default:1" json:"status"`
	Repaid    decimal.Decimal   `sql:"type:decimal(64,18)" json:"repaid"`
	ClosedAt  *time.Time        `json:"closed_at,omitempty"`
	CreatedAt time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsOpen outstanding
func (f *FixedBorrow) IsOpen() bool {
	return f.Status == FixedBorrowStatusOpen
}

// MaturityAt end of the term
func (f *FixedBorrow) MaturityAt() time.Time {
	return f.StartAt.Add(time.Duration(f.Duration) * time.Second)
}

// Elapsed seconds since origination
func (f *FixedBorrow) Elapsed(now time.Time) int64 {
	return int64(now.Sub(f.StartAt) / time.Second)
}

// Matured term completed
func (f *FixedBorrow) Matured(now time.Time) bool {
	return f.Elapsed(now) >= f.Duration
}

// Liquidatable term and rest period both elapsed
func (f *FixedBorrow) Liquidatable(now time.Time, restPeriod int64) bool {
	return f.Elapsed(now)-f.Duration >= restPeriod
}

// Clone returns a copy safe to mutate
func (f *FixedBorrow) Clone() *FixedBorrow {
	c := *f
	if f.ClosedAt != nil {
		t := *f.ClosedAt
		c.ClosedAt = &t
	}

	return &c
}

// IFixedBorrowStore fixed borrow store interface
type IFixedBorrowStore interface {
	Save(ctx context.Context, tx *db.DB, borrow *FixedBorrow) error
	FindByUser(ctx context.Context, userID, symbol string) ([]*FixedBorrow, error)
	// All every position ordered by user, symbol and slot
	All(ctx context.Context) ([]*FixedBorrow, error)
}
