package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// IAssetLedger underlying asset balances
//
// Transfers are exact and fail without side effects on insufficient balance.
type IAssetLedger interface {
	BalanceOf(ctx context.Context, assetID, userID string) (decimal.Decimal, error)
	// TransferIn moves amount from the user into the pool
	TransferIn(ctx context.Context, assetID, from string, amount decimal.Decimal) error
	// TransferOut moves amount from the pool to the user
	TransferOut(ctx context.Context, assetID, to string, amount decimal.Decimal) error
}
