package controller

import (
	"moneymarket/core"
	"moneymarket/pkg/accounting"
	"moneymarket/service/ledger"

	"github.com/shopspring/decimal"
)

// hypothetical effects applied to one market before measuring liquidity
type hypothetical struct {
	symbol       string
	redeemShares decimal.Decimal
	borrowAmount decimal.Decimal
	includeFixed bool
}

// hypotheticalLiquidity liquidity of user if h happened
//
// Collateral is counted over entered markets only, debt over every market.
// Values are normalized by price so assets of different decimals compare.
func (s *Service) hypotheticalLiquidity(tx *ledger.Tx, userID string, h hypothetical) (liquidity, shortfall decimal.Decimal, err error) {
	ctx := tx.Context()
	collateral, debt := decimal.Zero, decimal.Zero

	for _, m := range tx.Markets() {
		shares := decimal.Zero
		if tx.IsMember(userID, m.Symbol) {
			shares = tx.Supply(userID, m.Symbol).Shares
		}

		owed := accounting.BorrowBalance(tx.Borrow(userID, m.Symbol), m)
		if h.includeFixed {
			owed = owed.Add(tx.FixedDebt(userID, m.Symbol))
		}

		var redeem, borrow decimal.Decimal
		if m.Symbol == h.symbol {
			redeem, borrow = h.redeemShares, h.borrowAmount
		}

		if shares.IsZero() && owed.IsZero() && redeem.IsZero() && borrow.IsZero() {
			continue
		}

		price, err := s.price(ctx, m.Symbol)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}

		// value of one share counted as collateral
		shareValue := accounting.ExchangeRate(m).Mul(price).Mul(m.CollateralFactor)

		collateral = collateral.Add(shares.Mul(shareValue))
		debt = debt.Add(owed.Mul(price))
		debt = debt.Add(redeem.Mul(shareValue))
		debt = debt.Add(borrow.Mul(price))
	}

	if collateral.GreaterThan(debt) {
		return collateral.Sub(debt), decimal.Zero, nil
	}

	return decimal.Zero, debt.Sub(collateral), nil
}

// BorrowAllowed denies a borrow of amount that leaves user in shortfall
//
// Both variable and fixed debt count, a new borrow of either kind must be
// backed by collateral.
func (s *Service) BorrowAllowed(tx *ledger.Tx, userID, symbol string, amount decimal.Decimal) error {
	if _, err := tx.Market(symbol); err != nil {
		return err
	}

	if _, err := s.price(tx.Context(), symbol); err != nil {
		return err
	}

	_, shortfall, err := s.hypotheticalLiquidity(tx, userID, hypothetical{
		symbol:       symbol,
		borrowAmount: amount,
		includeFixed: true,
	})
	if err != nil {
		return err
	}

	if shortfall.IsPositive() {
		return core.ErrInsufficientLiquidity
	}

	return nil
}

// RedeemAllowed denies removing shares from entered collateral when that leaves user in shortfall
func (s *Service) RedeemAllowed(tx *ledger.Tx, userID, symbol string, shares decimal.Decimal) error {
	if _, err := tx.Market(symbol); err != nil {
		return err
	}

	if !tx.IsMember(userID, symbol) {
		return nil
	}

	_, shortfall, err := s.hypotheticalLiquidity(tx, userID, hypothetical{
		symbol:       symbol,
		redeemShares: shares,
		includeFixed: tx.Policy().FixedDebtBlocksCollateral,
	})
	if err != nil {
		return err
	}

	if shortfall.IsPositive() {
		return core.ErrInsufficientLiquidity
	}

	return nil
}

// TransferAllowed same rule as redeeming the transferred shares
func (s *Service) TransferAllowed(tx *ledger.Tx, from, symbol string, shares decimal.Decimal) error {
	return s.RedeemAllowed(tx, from, symbol, shares)
}

// LiquidateBorrowAllowed variable liquidation needs a shortfall and a repay within the close factor
func (s *Service) LiquidateBorrowAllowed(tx *ledger.Tx, borrower, symbol string, repay decimal.Decimal) error {
	m, err := tx.Market(symbol)
	if err != nil {
		return err
	}

	policy := tx.Policy()
	_, shortfall, err := s.hypotheticalLiquidity(tx, borrower, hypothetical{
		includeFixed: policy.FixedDebtInShortfall,
	})
	if err != nil {
		return err
	}

	if !shortfall.IsPositive() {
		return core.ErrInsufficientShortfall
	}

	owed := accounting.BorrowBalance(tx.Borrow(borrower, symbol), m)
	maxClose := owed.Mul(policy.CloseFactor)
	if repay.GreaterThan(maxClose) {
		return core.ErrTooMuchRepay
	}

	return nil
}

// SeizeAllowed both markets must be listed
func (s *Service) SeizeAllowed(tx *ledger.Tx, collateralSymbol, borrowSymbol string) error {
	if _, err := tx.Market(collateralSymbol); err != nil {
		return err
	}

	_, err := tx.Market(borrowSymbol)
	return err
}
