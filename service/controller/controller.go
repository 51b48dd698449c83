package controller

import (
	"context"
	"errors"

	"moneymarket/core"
	"moneymarket/pkg/accounting"
	"moneymarket/service/ledger"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Service risk controller, reads staged ledger state and authorizes actions
type Service struct {
	cfg    *core.Config
	ledger *ledger.Ledger
	oracle core.IPriceOracle
}

// New new controller
func New(cfg *core.Config, l *ledger.Ledger, oracle core.IPriceOracle) *Service {
	return &Service{
		cfg:    cfg,
		ledger: l,
		oracle: oracle,
	}
}

var _ core.IControllerService = (*Service)(nil)

func (s *Service) price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	price, err := s.oracle.PriceOf(ctx, symbol)
	if err != nil {
		if !errors.Is(err, core.ErrPriceError) {
			logger.FromContext(ctx).WithError(err).Errorln("read price", symbol)
		}

		return decimal.Zero, core.ErrPriceError
	}

	if !price.IsPositive() {
		return decimal.Zero, core.ErrPriceError
	}

	return price, nil
}

// AccountLiquidity liquidity of user counting every variable and fixed debt
func (s *Service) AccountLiquidity(ctx context.Context, userID string) (*core.AccountLiquidity, error) {
	var result *core.AccountLiquidity
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		liquidity, shortfall, err := s.hypotheticalLiquidity(tx, userID, hypothetical{includeFixed: true})
		if err != nil {
			return err
		}

		result = &core.AccountLiquidity{
			UserID:    userID,
			Liquidity: liquidity,
			Shortfall: shortfall,
			At:        tx.Now(),
		}
		return nil
	})

	return result, err
}

// LiquidateCalculateSeizeTokens collateral shares seized for repaying repay of the borrowed market
func (s *Service) LiquidateCalculateSeizeTokens(ctx context.Context, borrowSymbol, collateralSymbol string, repay decimal.Decimal) (decimal.Decimal, error) {
	var seize decimal.Decimal
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		var err error
		seize, err = s.SeizeShares(tx, borrowSymbol, collateralSymbol, repay)
		return err
	})

	return seize, err
}

// SeizeShares seize calculation against staged state
func (s *Service) SeizeShares(tx *ledger.Tx, borrowSymbol, collateralSymbol string, repay decimal.Decimal) (decimal.Decimal, error) {
	ctx := tx.Context()

	if _, err := tx.Market(borrowSymbol); err != nil {
		return decimal.Zero, err
	}

	collateral, err := tx.Market(collateralSymbol)
	if err != nil {
		return decimal.Zero, err
	}

	priceBorrowed, err := s.price(ctx, borrowSymbol)
	if err != nil {
		return decimal.Zero, err
	}

	priceCollateral, err := s.price(ctx, collateralSymbol)
	if err != nil {
		return decimal.Zero, err
	}

	policy := tx.Policy()
	return accounting.SeizeShares(
		repay,
		priceBorrowed,
		priceCollateral,
		policy.LiquidationIncentive,
		accounting.ExchangeRate(collateral),
	), nil
}

// Policy current risk policy
func (s *Service) Policy(ctx context.Context) (*core.Policy, error) {
	var policy core.Policy
	err := s.ledger.View(ctx, func(tx *ledger.Tx) error {
		policy = tx.Policy()
		return nil
	})

	return &policy, err
}
