package market

import (
	"moneymarket/core"
	"moneymarket/pkg/accounting"
	"moneymarket/service/ledger"

	"github.com/shopspring/decimal"
)

// Controller authorizes cross market actions against staged ledger state
type Controller interface {
	BorrowAllowed(tx *ledger.Tx, userID, symbol string, amount decimal.Decimal) error
	RedeemAllowed(tx *ledger.Tx, userID, symbol string, shares decimal.Decimal) error
	TransferAllowed(tx *ledger.Tx, from, symbol string, shares decimal.Decimal) error
	LiquidateBorrowAllowed(tx *ledger.Tx, borrower, symbol string, repay decimal.Decimal) error
	SeizeAllowed(tx *ledger.Tx, collateralSymbol, borrowSymbol string) error
	SeizeShares(tx *ledger.Tx, borrowSymbol, collateralSymbol string, repay decimal.Decimal) (decimal.Decimal, error)
}

type service struct {
	cfg        *core.Config
	ledger     *ledger.Ledger
	controller Controller
}

// New new market service
func New(
	cfg *core.Config,
	l *ledger.Ledger,
	controller Controller,
) core.IMarketService {
	return &service{
		cfg:        cfg,
		ledger:     l,
		controller: controller,
	}
}

// openMarket market accepting new supply and borrows
func openMarket(tx *ledger.Tx, symbol string) (*core.Market, error) {
	m, err := tx.Market(symbol)
	if err != nil {
		return nil, err
	}

	if !m.IsOpen() {
		return nil, core.ErrMarketClosed
	}

	return m, nil
}

// checkAmount amount must be positive and fit the asset decimals
func checkAmount(m *core.Market, amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Truncate(m.Decimals)) {
		return core.ErrInvalidAmount
	}

	return nil
}

func checkShares(shares decimal.Decimal) error {
	if !shares.IsPositive() || !shares.Equal(shares.Truncate(core.ShareDecimals)) {
		return core.ErrInvalidAmount
	}

	return nil
}

// seize moves shares of the collateral market from borrower to liquidator,
// keeping the protocol share as reserves
func (s *service) seize(tx *ledger.Tx, collateral *core.Market, liquidator, borrower string, shares decimal.Decimal) (liquidatorShares, protocolShares decimal.Decimal) {
	liquidatorShares, protocolShares = accounting.SplitSeize(shares, tx.Policy().ProtocolSeizeShare)

	from := tx.Supply(borrower, collateral.Symbol)
	from.Shares = from.Shares.Sub(shares)

	to := tx.Supply(liquidator, collateral.Symbol)
	to.Shares = to.Shares.Add(liquidatorShares)

	if protocolShares.IsPositive() {
		rate := accounting.ExchangeRate(collateral)
		collateral.TotalShares = collateral.TotalShares.Sub(protocolShares)
		collateral.TotalReserves = collateral.TotalReserves.Add(protocolShares.Mul(rate).Truncate(accounting.MaxPrecision))
	}

	return liquidatorShares, protocolShares
}
