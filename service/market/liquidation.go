package market

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/number"
	"moneymarket/service/ledger"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// seizeFresh seizes the collateral worth repay of the borrowed market
func (s *service) seizeFresh(tx *ledger.Tx, borrowed *core.Market, liquidator, borrower, collateralSymbol string, repay decimal.Decimal) (*core.Seizure, error) {
	if err := s.controller.SeizeAllowed(tx, collateralSymbol, borrowed.Symbol); err != nil {
		return nil, err
	}

	collateral, err := tx.Market(collateralSymbol)
	if err != nil {
		return nil, err
	}

	shares, err := s.controller.SeizeShares(tx, borrowed.Symbol, collateralSymbol, repay)
	if err != nil {
		return nil, err
	}

	if !shares.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	if shares.GreaterThan(tx.Supply(borrower, collateralSymbol).Shares) {
		return nil, core.ErrSeizeTooMuch
	}

	_, protocolShares := s.seize(tx, collateral, liquidator, borrower, shares)
	return &core.Seizure{
		Borrower:       borrower,
		Liquidator:     liquidator,
		Symbol:         borrowed.Symbol,
		Collateral:     collateralSymbol,
		Repay:          repay,
		SeizeShares:    shares,
		ProtocolShares: protocolShares,
	}, nil
}

// LiquidateBorrow repays amount of borrower's variable debt and seizes collateral in return
func (s *service) LiquidateBorrow(ctx context.Context, liquidator, borrower, symbol string, amount decimal.Decimal, collateral string) (*core.Seizure, error) {
	if liquidator == borrower {
		return nil, core.ErrLiquidateSelf
	}

	var seizure *core.Seizure
	err := s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		if err := checkAmount(m, amount); err != nil {
			return err
		}

		if err := s.controller.LiquidateBorrowAllowed(tx, borrower, symbol, amount); err != nil {
			return err
		}

		seizure, err = s.seizeFresh(tx, m, liquidator, borrower, collateral, amount)
		if err != nil {
			return err
		}

		seizure.Repay = s.repayFresh(tx, m, liquidator, borrower, amount)

		extra := core.NewTransactionExtra().
			Put(core.TransactionKeyBorrower, borrower).
			Put(core.TransactionKeyCollateral, collateral).
			Put(core.TransactionKeyShares, seizure.SeizeShares).
			Put(core.TransactionKeyProtocolShares, seizure.ProtocolShares)
		tx.Record(core.ActionLiquidate, liquidator, symbol, seizure.Repay, extra)
		return nil
	})

	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).WithField("service", "market")
	log.WithField("borrower", borrower).Infof("liquidated by %s, repay %s %s seize %s %s",
		liquidator, seizure.Repay, symbol, seizure.SeizeShares, collateral)

	return seizure, nil
}

// LiquidateBorrowFixedRate repays expired fixed positions of borrower, each
// against the collateral at the same index
//
// Either every slot is liquidatable and the whole batch executes, or nothing does.
func (s *service) LiquidateBorrowFixedRate(ctx context.Context, liquidator, borrower, symbol string, slots []int, collaterals []string) ([]*core.Seizure, error) {
	if len(slots) != len(collaterals) {
		return nil, core.ErrInvalidArgument
	}

	if liquidator == borrower {
		return nil, core.ErrLiquidateSelf
	}

	var seizures []*core.Seizure
	err := s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		positions, err := openPositions(tx, borrower, symbol, slots)
		if err != nil {
			return err
		}

		now := tx.Now()
		for _, fb := range positions {
			if !fb.Liquidatable(now, m.RestPeriod) {
				return core.ErrCannotLiquidate
			}
		}

		total := decimal.Zero
		for idx, fb := range positions {
			seizure, err := s.seizeFresh(tx, m, liquidator, borrower, collaterals[idx], fb.Principal)
			if err != nil {
				return err
			}

			seizure.Slot = fb.Slot
			m.TotalFixedBorrows = number.SubFloor(m.TotalFixedBorrows, fb.Principal)
			m.TotalCash = m.TotalCash.Add(fb.Principal)
			total = total.Add(fb.Principal)
			tx.CloseFixedBorrow(fb, core.FixedBorrowStatusLiquidated, fb.Principal)

			extra := core.NewTransactionExtra().
				Put(core.TransactionKeyBorrower, borrower).
				Put(core.TransactionKeySlot, fb.Slot).
				Put(core.TransactionKeyCollateral, seizure.Collateral).
				Put(core.TransactionKeyShares, seizure.SeizeShares).
				Put(core.TransactionKeyProtocolShares, seizure.ProtocolShares)
			tx.Record(core.ActionLiquidateFixed, liquidator, symbol, fb.Principal, extra)

			seizures = append(seizures, seizure)
		}

		tx.TransferIn(m.AssetID, liquidator, total)
		return nil
	})

	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).WithField("service", "market")
	log.WithField("borrower", borrower).Infof("%d fixed borrows of %s liquidated by %s", len(seizures), symbol, liquidator)

	return seizures, nil
}
