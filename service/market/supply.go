package market

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/accounting"
	"moneymarket/service/ledger"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Deposit supplies amount of the underlying and mints shares at the current exchange rate
func (s *service) Deposit(ctx context.Context, userID, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	var shares decimal.Decimal
	err := s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := openMarket(tx, symbol)
		if err != nil {
			return err
		}

		if err := checkAmount(m, amount); err != nil {
			return err
		}

		rate := accounting.ExchangeRate(m)
		shares = accounting.SharesForAmount(amount, rate)
		if !shares.IsPositive() {
			return core.ErrInvalidAmount
		}

		supply := tx.Supply(userID, symbol)
		supply.Shares = supply.Shares.Add(shares)
		m.TotalCash = m.TotalCash.Add(amount)
		m.TotalShares = m.TotalShares.Add(shares)
		tx.TransferIn(m.AssetID, userID, amount)

		extra := core.NewTransactionExtra().
			Put(core.TransactionKeyShares, shares).
			Put(core.TransactionKeyExchangeRate, rate)
		tx.Record(core.ActionDeposit, userID, symbol, amount, extra)
		return nil
	})

	return shares, err
}

// Redeem burns shares and pays out their underlying
func (s *service) Redeem(ctx context.Context, userID, symbol string, shares decimal.Decimal) (decimal.Decimal, error) {
	if err := checkShares(shares); err != nil {
		return decimal.Zero, err
	}

	var amount decimal.Decimal
	err := s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		rate := accounting.ExchangeRate(m)
		amount = accounting.UnderlyingForShares(m, shares, rate)
		return s.redeemFresh(tx, m, userID, shares, amount, rate)
	})

	return amount, err
}

// RedeemUnderlying burns the shares worth amount and pays out exactly amount
func (s *service) RedeemUnderlying(ctx context.Context, userID, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	var shares decimal.Decimal
	err := s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		if err := checkAmount(m, amount); err != nil {
			return err
		}

		rate := accounting.ExchangeRate(m)
		shares = accounting.SharesToBurn(amount, rate)
		return s.redeemFresh(tx, m, userID, shares, amount, rate)
	})

	return shares, err
}

func (s *service) redeemFresh(tx *ledger.Tx, m *core.Market, userID string, shares, amount, rate decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	supply := tx.Supply(userID, m.Symbol)
	if shares.GreaterThan(supply.Shares) {
		return core.ErrInsufficientBalance
	}

	if amount.GreaterThan(m.TotalCash) {
		return core.ErrInsufficientCash
	}

	if err := s.controller.RedeemAllowed(tx, userID, m.Symbol, shares); err != nil {
		return err
	}

	supply.Shares = supply.Shares.Sub(shares)
	m.TotalShares = m.TotalShares.Sub(shares)
	m.TotalCash = m.TotalCash.Sub(amount)
	tx.TransferOut(m.AssetID, userID, amount)

	extra := core.NewTransactionExtra().
		Put(core.TransactionKeyShares, shares).
		Put(core.TransactionKeyExchangeRate, rate)
	tx.Record(core.ActionRedeem, userID, m.Symbol, amount, extra)
	return nil
}

// Transfer moves shares between accounts
//
// A transfer that would leave the sender in shortfall reports false and
// changes nothing.
func (s *service) Transfer(ctx context.Context, from, to, symbol string, shares decimal.Decimal) (bool, error) {
	if err := checkShares(shares); err != nil {
		return false, err
	}

	if from == to || to == "" {
		return false, core.ErrInvalidArgument
	}

	var ok bool
	err := s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		if _, err := tx.Market(symbol); err != nil {
			return err
		}

		src := tx.Supply(from, symbol)
		if shares.GreaterThan(src.Shares) {
			return core.ErrInsufficientBalance
		}

		switch err := s.controller.TransferAllowed(tx, from, symbol, shares); err {
		case nil:
		case core.ErrInsufficientLiquidity:
			logger.FromContext(ctx).WithField("symbol", symbol).Infoln("transfer rejected, shortfall of", from)
			return nil
		default:
			return err
		}

		dst := tx.Supply(to, symbol)
		src.Shares = src.Shares.Sub(shares)
		dst.Shares = dst.Shares.Add(shares)
		ok = true

		extra := core.NewTransactionExtra().Put(core.TransactionKeyTo, to)
		tx.Record(core.ActionTransfer, from, symbol, shares, extra)
		return nil
	})

	return ok, err
}

// AddReserves donates amount of the underlying to the reserves
func (s *service) AddReserves(ctx context.Context, userID, symbol string, amount decimal.Decimal) error {
	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		if err := checkAmount(m, amount); err != nil {
			return err
		}

		m.TotalCash = m.TotalCash.Add(amount)
		m.TotalReserves = m.TotalReserves.Add(amount)
		tx.TransferIn(m.AssetID, userID, amount)
		tx.Record(core.ActionAddReserves, userID, symbol, amount, nil)
		return nil
	})
}

// ReduceReserves withdraws reserves to the admin caller
func (s *service) ReduceReserves(ctx context.Context, caller, symbol string, amount decimal.Decimal) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrOperationForbidden
	}

	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		if err := checkAmount(m, amount); err != nil {
			return err
		}

		if amount.GreaterThan(m.TotalReserves) {
			return core.ErrInvalidAmount
		}

		if amount.GreaterThan(m.TotalCash) {
			return core.ErrInsufficientCash
		}

		m.TotalCash = m.TotalCash.Sub(amount)
		m.TotalReserves = m.TotalReserves.Sub(amount)
		tx.TransferOut(m.AssetID, caller, amount)
		tx.Record(core.ActionReduceReserves, caller, symbol, amount, nil)
		return nil
	})
}
