package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ShareDecimals decimals of market shares
const ShareDecimals int32 = 8

// MarketStatus market status
type MarketStatus int

const (
	_ MarketStatus = iota
	// MarketStatusOpen accepts every operation
	MarketStatusOpen
	// MarketStatusClose only repay, redeem and liquidation
	MarketStatusClose
)

func (s MarketStatus) String() string {
	switch s {
	case MarketStatusOpen:
		return "open"
	case MarketStatusClose:
		return "close"
	default:
		return "unknown"
	}
}

// ParseMarketStatus parse market status
func ParseMarketStatus(s string) MarketStatus {
	switch s {
	case "open":
		return MarketStatusOpen
	case "close":
		return MarketStatusClose
	default:
		return 0
	}
}

// Market money market of one underlying asset
type Market struct {
	Symbol   string `sql:"size:20;PRIMARY_KEY" json:"symbol"`
	AssetID  string `sql:"size:36;index:idx_markets_asset_id" json:"asset_id"`
	Decimals int32  `json:"decimals"`
	// total shares minted
	TotalShares          decimal.Decimal `sql:"type:decimal(64,8)" json:"total_shares"`
	TotalCash            decimal.Decimal `sql:"type:decimal(64,18)" json:"total_cash"`
	TotalVariableBorrows decimal.Decimal `sql:"type:decimal(64,18)" json:"total_variable_borrows"`
	// fixed borrows principal, interest included
	TotalFixedBorrows decimal.Decimal `sql:"type:decimal(64,18)" json:"total_fixed_borrows"`
	TotalReserves     decimal.Decimal `sql:"type:decimal(64,18)" json:"total_reserves"`
	BorrowIndex       decimal.Decimal `sql:"type:decimal(64,18);default:1" json:"borrow_index"`
	LastAccrualAt     time.Time       `json:"last_accrual_at"`
	InitExchangeRate  decimal.Decimal `sql:"type:decimal(64,18)" json:"init_exchange_rate"`
	// [0, 1)
	ReserveFactor decimal.Decimal `sql:"type:decimal(20,18)" json:"reserve_factor"`
	// seconds after maturity before a fixed borrow can be liquidated
	RestPeriod int64 `json:"rest_period"`
	// fraction of locked interest charged for the unexpired term on early repay
	EarlyRepayPenalty decimal.Decimal `sql:"type:decimal(20,18)" json:"early_repay_penalty"`
	// [0, 0.9]
	CollateralFactor decimal.Decimal `sql:"type:decimal(20,18)" json:"collateral_factor"`
	// per year
	BaseRate       decimal.Decimal `sql:"type:decimal(20,18)" json:"base_rate"`
	Multiplier     decimal.Decimal `sql:"type:decimal(20,18)" json:"multiplier"`
	JumpMultiplier decimal.Decimal `sql:"type:decimal(20,18)" json:"jump_multiplier"`
	Kink           decimal.Decimal `sql:"type:decimal(20,18)" json:"kink"`
	Status         MarketStatus    `sql:"default:1" json:"status"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsOpen accepts new supply and borrows
func (m *Market) IsOpen() bool {
	return m.Status == MarketStatusOpen
}

// Clone returns a copy safe to mutate
func (m *Market) Clone() *Market {
	c := *m
	return &c
}

// IMarketStore market store interface
type IMarketStore interface {
	Save(ctx context.Context, tx *db.DB, market *Market) error
	Find(ctx context.Context, symbol string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
}

// MarketRates market rates at the moment
type MarketRates struct {
	UtilizationRate     decimal.Decimal `json:"utilization_rate"`
	ExchangeRate        decimal.Decimal `json:"exchange_rate"`
	BorrowRatePerSecond decimal.Decimal `json:"borrow_rate_per_second"`
	SupplyRatePerSecond decimal.Decimal `json:"supply_rate_per_second"`
	BorrowAPY           decimal.Decimal `json:"borrow_apy"`
	SupplyAPY           decimal.Decimal `json:"supply_apy"`
}

// TermRates rates over a term, the borrow rate is the one a fixed borrow locks now
type TermRates struct {
	Symbol     string          `json:"symbol"`
	Duration   int64           `json:"duration"`
	BorrowRate decimal.Decimal `json:"borrow_rate"`
	SupplyRate decimal.Decimal `json:"supply_rate"`
}

// AccountSnapshot account position in one market
type AccountSnapshot struct {
	UserID       string          `json:"user_id"`
	Symbol       string          `json:"symbol"`
	Shares       decimal.Decimal `json:"shares"`
	Underlying   decimal.Decimal `json:"underlying"`
	VariableDebt decimal.Decimal `json:"variable_debt"`
	FixedDebt    decimal.Decimal `json:"fixed_debt"`
	FixedBorrows int             `json:"fixed_borrows"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Entered      bool            `json:"entered"`
}

// Seizure collateral moved by one liquidation
type Seizure struct {
	Borrower       string          `json:"borrower"`
	Liquidator     string          `json:"liquidator"`
	Symbol         string          `json:"symbol"`
	Collateral     string          `json:"collateral"`
	Slot           int             `json:"slot,omitempty"`
	Repay          decimal.Decimal `json:"repay"`
	SeizeShares    decimal.Decimal `json:"seize_shares"`
	ProtocolShares decimal.Decimal `json:"protocol_shares"`
}

// RepayAll repays the whole variable debt
var RepayAll = decimal.NewFromInt(-1)

// IMarketService market operations, each runs atomically
type IMarketService interface {
	Deposit(ctx context.Context, userID, symbol string, amount decimal.Decimal) (decimal.Decimal, error)
	Redeem(ctx context.Context, userID, symbol string, shares decimal.Decimal) (decimal.Decimal, error)
	RedeemUnderlying(ctx context.Context, userID, symbol string, amount decimal.Decimal) (decimal.Decimal, error)
	Borrow(ctx context.Context, userID, symbol string, amount decimal.Decimal) error
	RepayBorrow(ctx context.Context, userID, symbol string, amount decimal.Decimal) (decimal.Decimal, error)
	BorrowFixedRate(ctx context.Context, userID, symbol string, amount decimal.Decimal, duration int64) (*FixedBorrow, error)
	RepayBorrowFixedRate(ctx context.Context, userID, symbol string, slots []int) (decimal.Decimal, error)
	ExpiredBorrows(ctx context.Context, userID, symbol string) ([]*FixedBorrow, error)
	FixedBorrows(ctx context.Context, userID, symbol string) ([]*FixedBorrow, error)
	LiquidateBorrow(ctx context.Context, liquidator, borrower, symbol string, amount decimal.Decimal, collateral string) (*Seizure, error)
	LiquidateBorrowFixedRate(ctx context.Context, liquidator, borrower, symbol string, slots []int, collaterals []string) ([]*Seizure, error)
	Transfer(ctx context.Context, from, to, symbol string, shares decimal.Decimal) (bool, error)
	AddReserves(ctx context.Context, userID, symbol string, amount decimal.Decimal) error
	ReduceReserves(ctx context.Context, caller, symbol string, amount decimal.Decimal) error
	AccrueInterest(ctx context.Context, symbols ...string) error

	Market(ctx context.Context, symbol string) (*Market, error)
	Markets(ctx context.Context) ([]*Market, error)
	Rates(ctx context.Context, symbol string) (*MarketRates, error)
	// RatesPerTime borrow and supply rates over duration seconds at the current utilization
	RatesPerTime(ctx context.Context, symbol string, duration int64) (*TermRates, error)
	AccountSnapshot(ctx context.Context, userID, symbol string) (*AccountSnapshot, error)

	// Bootstrap lists markets missing from the ledger, skipping listed ones
	Bootstrap(ctx context.Context, markets []*Market) error
	SupportMarket(ctx context.Context, caller string, market *Market) error
	SetReserveFactor(ctx context.Context, caller, symbol string, factor decimal.Decimal) error
	SetRestPeriod(ctx context.Context, caller, symbol string, seconds int64) error
	SetInterestRateModel(ctx context.Context, caller, symbol string, base, multiplier, jump, kink decimal.Decimal) error
	SetEarlyRepayPenalty(ctx context.Context, caller, symbol string, penalty decimal.Decimal) error
	SetMarketStatus(ctx context.Context, caller, symbol string, status MarketStatus) error
}
