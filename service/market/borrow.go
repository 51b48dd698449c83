package market

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/accounting"
	"moneymarket/pkg/number"
	"moneymarket/service/ledger"

	"github.com/shopspring/decimal"
)

// Borrow borrows amount at the variable rate
func (s *service) Borrow(ctx context.Context, userID, symbol string, amount decimal.Decimal) error {
	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := openMarket(tx, symbol)
		if err != nil {
			return err
		}

		if err := checkAmount(m, amount); err != nil {
			return err
		}

		if amount.GreaterThan(m.TotalCash) {
			return core.ErrInsufficientCash
		}

		if err := s.controller.BorrowAllowed(tx, userID, symbol, amount); err != nil {
			return err
		}

		b := tx.Borrow(userID, symbol)
		b.Principal = accounting.BorrowBalance(b, m).Add(amount)
		b.InterestIndex = m.BorrowIndex
		m.TotalVariableBorrows = m.TotalVariableBorrows.Add(amount)
		m.TotalCash = m.TotalCash.Sub(amount)
		tx.TransferOut(m.AssetID, userID, amount)

		tx.Record(core.ActionBorrow, userID, symbol, amount, nil)
		return nil
	})
}

// RepayBorrow repays at most amount of the variable debt, core.RepayAll repays everything
func (s *service) RepayBorrow(ctx context.Context, userID, symbol string, amount decimal.Decimal) (decimal.Decimal, error) {
	var repaid decimal.Decimal
	err := s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		if !amount.Equal(core.RepayAll) {
			if err := checkAmount(m, amount); err != nil {
				return err
			}
		}

		repaid = s.repayFresh(tx, m, userID, userID, amount)
		return nil
	})

	return repaid, err
}

// repayFresh payer repays up to amount of borrower's variable debt and
// returns the amount actually collected
func (s *service) repayFresh(tx *ledger.Tx, m *core.Market, payer, borrower string, amount decimal.Decimal) decimal.Decimal {
	b := tx.Borrow(borrower, m.Symbol)
	owed := accounting.BorrowBalance(b, m)
	if !owed.IsPositive() {
		return decimal.Zero
	}

	actual := owed
	if !amount.Equal(core.RepayAll) && amount.LessThan(owed) {
		actual = amount
	}

	b.Principal = owed.Sub(actual)
	b.InterestIndex = m.BorrowIndex
	m.TotalVariableBorrows = number.SubFloor(m.TotalVariableBorrows, actual)
	m.TotalCash = m.TotalCash.Add(actual)
	tx.TransferIn(m.AssetID, payer, actual)

	extra := core.NewTransactionExtra().Put(core.TransactionKeyBorrower, borrower)
	tx.Record(core.ActionRepay, payer, m.Symbol, actual, extra)
	return actual
}

// AccrueInterest checkpoints accrual of the given markets, every market when none given
func (s *service) AccrueInterest(ctx context.Context, symbols ...string) error {
	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		if len(symbols) == 0 {
			symbols = tx.Symbols()
		}

		for _, symbol := range symbols {
			if err := tx.Checkpoint(symbol); err != nil {
				return err
			}
		}

		return nil
	})
}
