package market

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/number"
	"moneymarket/service/ledger"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
)

var (
	// CollateralFactorMax max of collateral factor
	CollateralFactorMax = number.Decimal("0.9")
	// MaxDecimals max decimals of an underlying asset
	MaxDecimals int32 = 18
	// MaxFixedDuration longest fixed borrow term in seconds
	MaxFixedDuration int64 = 10 * 365 * 24 * 3600
)

func validMarket(m *core.Market) error {
	if m.Symbol == "" || !govalidator.IsAlphanumeric(m.Symbol) {
		return core.ErrInvalidArgument
	}

	if m.AssetID == "" || m.Decimals < 0 || m.Decimals > MaxDecimals {
		return core.ErrInvalidArgument
	}

	if !m.InitExchangeRate.IsPositive() {
		return core.ErrInvalidArgument
	}

	if !validFraction(m.ReserveFactor) || !validRestPeriod(m.RestPeriod) {
		return core.ErrInvalidArgument
	}

	if m.EarlyRepayPenalty.IsNegative() || m.EarlyRepayPenalty.GreaterThan(number.One) {
		return core.ErrInvalidArgument
	}

	if m.CollateralFactor.IsNegative() || m.CollateralFactor.GreaterThan(CollateralFactorMax) {
		return core.ErrInvalidArgument
	}

	return validRateModel(m.BaseRate, m.Multiplier, m.JumpMultiplier, m.Kink)
}

func validDuration(seconds int64) bool {
	return seconds > 0 && seconds <= MaxFixedDuration
}

func validRestPeriod(seconds int64) bool {
	return seconds >= 0 && seconds <= MaxFixedDuration
}

// validFraction in [0, 1)
func validFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThan(number.One)
}

func validRateModel(base, multiplier, jump, kink decimal.Decimal) error {
	for _, d := range []decimal.Decimal{base, multiplier, jump, kink} {
		if d.IsNegative() {
			return core.ErrInvalidArgument
		}
	}

	if kink.GreaterThan(number.One) {
		return core.ErrInvalidArgument
	}

	return nil
}

func listing(m *core.Market) *core.Market {
	c := m.Clone()
	c.TotalShares = decimal.Zero
	c.TotalCash = decimal.Zero
	c.TotalVariableBorrows = decimal.Zero
	c.TotalFixedBorrows = decimal.Zero
	c.TotalReserves = decimal.Zero
	c.BorrowIndex = number.One
	c.Status = core.MarketStatusOpen
	c.Version = 0
	return c
}

// SupportMarket lists a new market
func (s *service) SupportMarket(ctx context.Context, caller string, market *core.Market) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrOperationForbidden
	}

	if err := validMarket(market); err != nil {
		return err
	}

	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		if err := tx.AddMarket(listing(market)); err != nil {
			return err
		}

		tx.Record(core.ActionSupportMarket, caller, market.Symbol, decimal.Zero, nil)
		return nil
	})
}

// Bootstrap lists markets missing from the ledger, skipping listed ones
func (s *service) Bootstrap(ctx context.Context, markets []*core.Market) error {
	for _, m := range markets {
		if err := validMarket(m); err != nil {
			return err
		}
	}

	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		for _, m := range markets {
			if _, err := tx.Market(m.Symbol); err == nil {
				continue
			}

			if err := tx.AddMarket(listing(m)); err != nil {
				return err
			}

			tx.Record(core.ActionSupportMarket, "", m.Symbol, decimal.Zero, nil)
		}

		return nil
	})
}

func (s *service) updateMarket(ctx context.Context, caller, symbol, field string, value interface{}, fn func(m *core.Market) error) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrOperationForbidden
	}

	return s.ledger.Update(ctx, func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		if err := fn(m); err != nil {
			return err
		}

		extra := core.NewTransactionExtra().
			Put(core.TransactionKeyField, field).
			Put(core.TransactionKeyValue, value)
		tx.Record(core.ActionUpdateMarket, caller, symbol, decimal.Zero, extra)
		return nil
	})
}

// SetReserveFactor reserve factor in [0, 1)
func (s *service) SetReserveFactor(ctx context.Context, caller, symbol string, factor decimal.Decimal) error {
	return s.updateMarket(ctx, caller, symbol, "reserve_factor", factor, func(m *core.Market) error {
		if !validFraction(factor) {
			return core.ErrInvalidArgument
		}

		m.ReserveFactor = factor
		return nil
	})
}

// SetRestPeriod seconds after maturity before fixed borrows turn liquidatable
func (s *service) SetRestPeriod(ctx context.Context, caller, symbol string, seconds int64) error {
	return s.updateMarket(ctx, caller, symbol, "rest_period", seconds, func(m *core.Market) error {
		if !validRestPeriod(seconds) {
			return core.ErrInvalidArgument
		}

		m.RestPeriod = seconds
		return nil
	})
}

// SetInterestRateModel replaces the rate model, interest so far is accrued under the old one
func (s *service) SetInterestRateModel(ctx context.Context, caller, symbol string, base, multiplier, jump, kink decimal.Decimal) error {
	value := map[string]decimal.Decimal{
		"base_rate":       base,
		"multiplier":      multiplier,
		"jump_multiplier": jump,
		"kink":            kink,
	}

	return s.updateMarket(ctx, caller, symbol, "interest_rate_model", value, func(m *core.Market) error {
		if err := validRateModel(base, multiplier, jump, kink); err != nil {
			return err
		}

		m.BaseRate = base
		m.Multiplier = multiplier
		m.JumpMultiplier = jump
		m.Kink = kink
		return nil
	})
}

// SetEarlyRepayPenalty fraction of the locked interest charged for the unexpired term
func (s *service) SetEarlyRepayPenalty(ctx context.Context, caller, symbol string, penalty decimal.Decimal) error {
	return s.updateMarket(ctx, caller, symbol, "early_repay_penalty", penalty, func(m *core.Market) error {
		if penalty.IsNegative() || penalty.GreaterThan(number.One) {
			return core.ErrInvalidArgument
		}

		m.EarlyRepayPenalty = penalty
		return nil
	})
}

// SetMarketStatus opens or closes the market to new supply and borrows
func (s *service) SetMarketStatus(ctx context.Context, caller, symbol string, status core.MarketStatus) error {
	return s.updateMarket(ctx, caller, symbol, "status", status.String(), func(m *core.Market) error {
		if status != core.MarketStatusOpen && status != core.MarketStatusClose {
			return core.ErrInvalidArgument
		}

		m.Status = status
		return nil
	})
}
