package market

import (
	"context"

	"moneymarket/core"
	"moneymarket/internal/ratemodel"
	"moneymarket/pkg/accounting"
	"moneymarket/service/ledger"
)

// Market market accrued to now
func (s *service) Market(ctx context.Context, symbol string) (*core.Market, error) {
	var market *core.Market
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		market = m
		return nil
	})

	return market, err
}

func (s *service) Markets(ctx context.Context) ([]*core.Market, error) {
	var markets []*core.Market
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		markets = tx.Markets()
		return nil
	})

	return markets, err
}

// Rates utilization, exchange rate and per second rates of the market
func (s *service) Rates(ctx context.Context, symbol string) (*core.MarketRates, error) {
	var rates core.MarketRates
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		rates = accounting.Rates(m)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &rates, nil
}

// RatesPerTime quote of the rates locked over duration seconds
func (s *service) RatesPerTime(ctx context.Context, symbol string, duration int64) (*core.TermRates, error) {
	if !validDuration(duration) {
		return nil, core.ErrInvalidArgument
	}

	var rates *core.TermRates
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		rates = &core.TermRates{
			Symbol:     m.Symbol,
			Duration:   duration,
			BorrowRate: accounting.FixedRate(m, duration),
			SupplyRate: ratemodel.RatePerDuration(accounting.SupplyRatePerSecond(m), duration),
		}
		return nil
	})

	return rates, err
}

// AccountSnapshot position of user in the market
func (s *service) AccountSnapshot(ctx context.Context, userID, symbol string) (*core.AccountSnapshot, error) {
	var snapshot *core.AccountSnapshot
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		rate := accounting.ExchangeRate(m)
		shares := tx.Supply(userID, symbol).Shares
		snapshot = &core.AccountSnapshot{
			UserID:       userID,
			Symbol:       symbol,
			Shares:       shares,
			Underlying:   accounting.UnderlyingForShares(m, shares, rate),
			VariableDebt: accounting.BorrowBalance(tx.Borrow(userID, symbol), m),
			FixedDebt:    tx.FixedDebt(userID, symbol),
			FixedBorrows: tx.FixedBorrows(userID, symbol).Len(),
			ExchangeRate: rate,
			Entered:      tx.IsMember(userID, symbol),
		}
		return nil
	})

	return snapshot, err
}
