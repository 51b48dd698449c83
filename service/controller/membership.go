package controller

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/accounting"
	"moneymarket/service/ledger"

	"github.com/shopspring/decimal"
)

// EnterMarkets adds markets to the collateral of user
func (s *Service) EnterMarkets(ctx context.Context, userID string, symbols []string) error {
	if len(symbols) == 0 {
		return core.ErrInvalidArgument
	}

	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		for _, symbol := range symbols {
			if _, err := tx.Market(symbol); err != nil {
				return err
			}

			if tx.EnterMarket(userID, symbol) {
				tx.Record(core.ActionEnterMarket, userID, symbol, decimal.Zero, nil)
			}
		}

		return nil
	})
}

// ExitMarket removes a market from the collateral of user
//
// Denied while user owes the market or when its collateral still backs other debt.
func (s *Service) ExitMarket(ctx context.Context, userID, symbol string) error {
	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		if !tx.IsMember(userID, symbol) {
			return nil
		}

		owed := accounting.BorrowBalance(tx.Borrow(userID, symbol), m)
		if owed.IsPositive() || tx.FixedBorrows(userID, symbol).Len() > 0 {
			return core.ErrNonzeroBorrowBalance
		}

		shares := tx.Supply(userID, symbol).Shares
		if err := s.RedeemAllowed(tx, userID, symbol, shares); err != nil {
			return err
		}

		tx.ExitMarket(userID, symbol)
		tx.Record(core.ActionExitMarket, userID, symbol, decimal.Zero, nil)
		return nil
	})
}

// Members markets entered by user
func (s *Service) Members(ctx context.Context, userID string) ([]string, error) {
	var symbols []string
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		symbols = tx.Members(userID)
		return nil
	})

	return symbols, err
}

// Accounts users holding shares or debt in any market
func (s *Service) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		accounts = tx.Accounts()
		return nil
	})

	return accounts, err
}
