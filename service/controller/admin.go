package controller

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/number"
	"moneymarket/service/ledger"

	"github.com/shopspring/decimal"
)

var (
	// CloseFactorMin min of close factor
	CloseFactorMin = number.Decimal("0.05")
	// CloseFactorMax max of close factor
	CloseFactorMax = number.Decimal("0.9")
	// CollateralFactorMax max of collateral factor [0, 0.9]
	CollateralFactorMax = number.Decimal("0.9")
	// LiquidationIncentiveMin no bonus
	LiquidationIncentiveMin = number.One
	// LiquidationIncentiveMax max bonus multiplier
	LiquidationIncentiveMax = number.Decimal("1.5")
)

func between(d, lo, hi decimal.Decimal) bool {
	return d.GreaterThanOrEqual(lo) && d.LessThanOrEqual(hi)
}

func (s *Service) updatePolicy(ctx context.Context, caller, field string, value decimal.Decimal, valid bool, fn func(p *core.Policy)) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrOperationForbidden
	}

	if !valid {
		return core.ErrInvalidArgument
	}

	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		policy := tx.Policy()
		fn(&policy)
		tx.SetPolicy(policy)

		extra := core.NewTransactionExtra().
			Put(core.TransactionKeyField, field).
			Put(core.TransactionKeyValue, value)
		tx.Record(core.ActionUpdatePolicy, caller, "", decimal.Zero, extra)
		return nil
	})
}

// SetCollateralFactor sets the collateral factor of a market
func (s *Service) SetCollateralFactor(ctx context.Context, caller, symbol string, factor decimal.Decimal) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrOperationForbidden
	}

	if !between(factor, decimal.Zero, CollateralFactorMax) {
		return core.ErrInvalidArgument
	}

	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		if factor.IsPositive() {
			if _, err := s.price(ctx, symbol); err != nil {
				return err
			}
		}

		m.CollateralFactor = factor

		extra := core.NewTransactionExtra().
			Put(core.TransactionKeyField, "collateral_factor").
			Put(core.TransactionKeyValue, factor)
		tx.Record(core.ActionUpdateMarket, caller, symbol, decimal.Zero, extra)
		return nil
	})
}

// SetCloseFactor sets the close factor
func (s *Service) SetCloseFactor(ctx context.Context, caller string, factor decimal.Decimal) error {
	valid := between(factor, CloseFactorMin, CloseFactorMax)
	return s.updatePolicy(ctx, caller, "close_factor", factor, valid, func(p *core.Policy) {
		p.CloseFactor = factor
	})
}

// SetLiquidationIncentive sets the liquidation incentive
func (s *Service) SetLiquidationIncentive(ctx context.Context, caller string, incentive decimal.Decimal) error {
	valid := between(incentive, LiquidationIncentiveMin, LiquidationIncentiveMax)
	return s.updatePolicy(ctx, caller, "liquidation_incentive", incentive, valid, func(p *core.Policy) {
		p.LiquidationIncentive = incentive
	})
}

// SetProtocolSeizeShare sets the share of seized collateral kept as reserves
func (s *Service) SetProtocolSeizeShare(ctx context.Context, caller string, share decimal.Decimal) error {
	valid := !share.IsNegative() && share.LessThan(number.One)
	return s.updatePolicy(ctx, caller, "protocol_seize_share", share, valid, func(p *core.Policy) {
		p.ProtocolSeizeShare = share
	})
}
