package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// PolicyID the only policy row
const PolicyID = 1

// Policy cross market risk policy
type Policy struct {
	ID int64 `sql:"PRIMARY_KEY;auto_increment:false" json:"-"`
	// max fraction of one variable borrow repaid per liquidation, [0.05, 0.9]
	CloseFactor decimal.Decimal `sql:"type:decimal(20,18)" json:"close_factor"`
	// bonus multiplier on seized collateral, [1, 1.5]
	LiquidationIncentive decimal.Decimal `sql:"type:decimal(20,18)" json:"liquidation_incentive"`
	// fraction of seized shares kept as reserves of the collateral market
	ProtocolSeizeShare decimal.Decimal `sql:"type:decimal(20,18)" json:"protocol_seize_share"`
	// count open fixed borrows when redeeming, transferring or exiting collateral
	FixedDebtBlocksCollateral bool `json:"fixed_debt_blocks_collateral"`
	// count open fixed borrows in the shortfall of variable liquidation
	FixedDebtInShortfall bool      `json:"fixed_debt_in_shortfall"`
	UpdatedAt            time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DefaultPolicy policy used before any is configured
func DefaultPolicy() Policy {
	return Policy{
		ID:                        PolicyID,
		CloseFactor:               decimal.NewFromFloat(0.5),
		LiquidationIncentive:      decimal.NewFromFloat(1.1),
		ProtocolSeizeShare:        decimal.NewFromFloat(0.028),
		FixedDebtBlocksCollateral: true,
	}
}

// IPolicyStore policy store interface
type IPolicyStore interface {
	Save(ctx context.Context, tx *db.DB, policy *Policy) error
	Find(ctx context.Context) (*Policy, error)
}

// AccountLiquidity liquidity of an account across markets
type AccountLiquidity struct {
	UserID    string          `json:"user_id"`
	Liquidity decimal.Decimal `json:"liquidity"`
	Shortfall decimal.Decimal `json:"shortfall"`
	At        time.Time       `json:"at"`
}

// IControllerService risk controller
type IControllerService interface {
	AccountLiquidity(ctx context.Context, userID string) (*AccountLiquidity, error)
	LiquidateCalculateSeizeTokens(ctx context.Context, borrowSymbol, collateralSymbol string, repay decimal.Decimal) (decimal.Decimal, error)
	EnterMarkets(ctx context.Context, userID string, symbols []string) error
	ExitMarket(ctx context.Context, userID, symbol string) error
	Members(ctx context.Context, userID string) ([]string, error)
	// Accounts users holding shares or debt
	Accounts(ctx context.Context) ([]string, error)
	Policy(ctx context.Context) (*Policy, error)

	SetCollateralFactor(ctx context.Context, caller, symbol string, factor decimal.Decimal) error
	SetCloseFactor(ctx context.Context, caller string, factor decimal.Decimal) error
	SetLiquidationIncentive(ctx context.Context, caller string, incentive decimal.Decimal) error
	SetProtocolSeizeShare(ctx context.Context, caller string, share decimal.Decimal) error
}

// IAccountStore cached account liquidity
type IAccountStore interface {
	Save(ctx context.Context, liquidity *AccountLiquidity) error
	Find(ctx context.Context, userID string) (*AccountLiquidity, bool)
	Shortfalls(ctx context.Context) []*AccountLiquidity
}
