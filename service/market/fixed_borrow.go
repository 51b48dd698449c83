package market

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/accounting"
	"moneymarket/pkg/number"
	"moneymarket/service/ledger"

	"github.com/shopspring/decimal"
)

// BorrowFixedRate borrows amount for duration seconds at the current rate
//
// The interest for the whole term is locked upfront and added to the
// principal of the new position.
func (s *service) BorrowFixedRate(ctx context.Context, userID, symbol string, amount decimal.Decimal, duration int64) (*core.FixedBorrow, error) {
	if !validDuration(duration) {
		return nil, core.ErrInvalidArgument
	}

	var position *core.FixedBorrow
	err := s.ledger.Update(ctx, func(tx *ledger.Tx) error {
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

		rate := accounting.FixedRate(m, duration)
		interest := accounting.FixedInterest(m, amount, rate)
		principal := amount.Add(interest)

		if err := s.controller.BorrowAllowed(tx, userID, symbol, principal); err != nil {
			return err
		}

		fb := &core.FixedBorrow{
			UserID:    userID,
			Symbol:    symbol,
			Amount:    amount,
			Interest:  interest,
			Principal: principal,
			Rate:      rate,
			StartAt:   tx.Now(),
			Duration:  duration,
			Repaid:    decimal.Zero,
		}
		slot := tx.AddFixedBorrow(fb)

		m.TotalFixedBorrows = m.TotalFixedBorrows.Add(principal)
		m.TotalReserves = m.TotalReserves.Add(interest.Mul(m.ReserveFactor).Truncate(number.Precision))
		m.TotalCash = m.TotalCash.Sub(amount)
		tx.TransferOut(m.AssetID, userID, amount)

		extra := core.NewTransactionExtra().
			Put(core.TransactionKeySlot, slot).
			Put(core.TransactionKeyInterest, interest)
		tx.Record(core.ActionBorrowFixed, userID, symbol, amount, extra)

		position = fb.Clone()
		return nil
	})

	return position, err
}

// openPositions resolves slots to open positions, rejecting unknown,
// closed and duplicated slots before anything is mutated
func openPositions(tx *ledger.Tx, userID, symbol string, slots []int) ([]*core.FixedBorrow, error) {
	if len(slots) == 0 {
		return nil, core.ErrInvalidArgument
	}

	positions := tx.FixedBorrows(userID, symbol)
	seen := make(map[int]bool, len(slots))
	result := make([]*core.FixedBorrow, 0, len(slots))
	for _, slot := range slots {
		if seen[slot] {
			return nil, core.ErrInvalidArgument
		}
		seen[slot] = true

		fb, ok := positions.Get(slot)
		if !ok || !fb.IsOpen() {
			return nil, core.ErrInvalidArgument
		}

		result = append(result, fb)
	}

	return result, nil
}

// RepayBorrowFixedRate closes the given positions and returns the total paid
//
// Before maturity a position costs its principal plus the early repay
// penalty, at or after maturity exactly its principal.
func (s *service) RepayBorrowFixedRate(ctx context.Context, userID, symbol string, slots []int) (decimal.Decimal, error) {
	total := decimal.Zero
	err := s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		positions, err := openPositions(tx, userID, symbol, slots)
		if err != nil {
			return err
		}

		for _, fb := range positions {
			amount, penalty := accounting.FixedRepayAmount(m, fb, tx.Now())

			m.TotalFixedBorrows = number.SubFloor(m.TotalFixedBorrows, fb.Principal)
			m.TotalCash = m.TotalCash.Add(amount)
			if penalty.IsPositive() {
				m.TotalReserves = m.TotalReserves.Add(penalty.Mul(m.ReserveFactor).Truncate(number.Precision))
			}

			tx.CloseFixedBorrow(fb, core.FixedBorrowStatusRepaid, amount)
			total = total.Add(amount)

			extra := core.NewTransactionExtra().
				Put(core.TransactionKeySlot, fb.Slot).
				Put(core.TransactionKeyPenalty, penalty)
			tx.Record(core.ActionRepayFixed, userID, symbol, amount, extra)
		}

		tx.TransferIn(m.AssetID, userID, total)
		return nil
	})

	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// ExpiredBorrows open positions past maturity and rest period, in slot order
func (s *service) ExpiredBorrows(ctx context.Context, userID, symbol string) ([]*core.FixedBorrow, error) {
	var expired []*core.FixedBorrow
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		now := tx.Now()
		tx.FixedBorrows(userID, symbol).Range(func(_ int, fb *core.FixedBorrow) bool {
			if fb.Liquidatable(now, m.RestPeriod) {
				expired = append(expired, fb.Clone())
			}

			return true
		})

		return nil
	})

	return expired, err
}

// FixedBorrows open positions in slot order
func (s *service) FixedBorrows(ctx context.Context, userID, symbol string) ([]*core.FixedBorrow, error) {
	var positions []*core.FixedBorrow
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		if _, err := tx.Market(symbol); err != nil {
			return err
		}

		tx.FixedBorrows(userID, symbol).Range(func(_ int, fb *core.FixedBorrow) bool {
			positions = append(positions, fb.Clone())
			return true
		})

		return nil
	})

	return positions, err
}
