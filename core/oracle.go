package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Price oracle price of a market's underlying
type Price struct {
	Symbol    string          `sql:"size:20;PRIMARY_KEY" json:"symbol"`
	Price     decimal.Decimal `sql:"type:decimal(64,18)" json:"price"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Save(ctx context.Context, tx *db.DB, price *Price) error
	Find(ctx context.Context, symbol string) (*Price, error)
	All(ctx context.Context) ([]*Price, error)
}

// IPriceOracle price source, a missing price is ErrPriceError
type IPriceOracle interface {
	PriceOf(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// IPriceService price feed
type IPriceService interface {
	IPriceOracle
	// SetPrice admin override of a price
	SetPrice(ctx context.Context, caller, symbol string, price decimal.Decimal) error
	// Update trusted price update from the ticker feed
	Update(ctx context.Context, symbol string, price decimal.Decimal) error
	All(ctx context.Context) ([]*Price, error)
}

// PriceTicker ticker pulled from the price endpoint
type PriceTicker struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"ts"`
}

// IPriceFeed remote price source
type IPriceFeed interface {
	PullPriceTicker(ctx context.Context, symbol string) (*PriceTicker, error)
}
