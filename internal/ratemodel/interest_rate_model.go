package ratemodel

import (
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year, model params are quoted per year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// MaxPrecision digits kept for per-second rates
	MaxPrecision = number.Precision
)

// Model jump rate model, all params per year
type Model struct {
	BaseRate       decimal.Decimal
	Multiplier     decimal.Decimal
	JumpMultiplier decimal.Decimal
	Kink           decimal.Decimal
}

// UtilizationRate utilization rate
// utilization_rate = borrows / (cash + borrows - reserves), clamped to [0, 1]
func UtilizationRate(cash, borrows, reserves decimal.Decimal) decimal.Decimal {
	if !borrows.IsPositive() {
		return decimal.Zero
	}

	total := cash.Add(borrows).Sub(reserves)
	if !total.IsPositive() {
		return decimal.Zero
	}

	u := number.Div(borrows, total).Truncate(MaxPrecision)
	return number.Clamp(u, decimal.Zero, number.One)
}

// PerSecond converts a per year rate to per second
func PerSecond(perYear decimal.Decimal) decimal.Decimal {
	return number.Div(perYear, SecondsPerYear).Truncate(MaxPrecision)
}

// BorrowRatePerYear borrow rate per year at utilization u
func (m Model) BorrowRatePerYear(u decimal.Decimal) decimal.Decimal {
	if !m.Kink.IsPositive() || u.LessThanOrEqual(m.Kink) {
		return m.BaseRate.Add(m.Multiplier.Mul(u)).Truncate(MaxPrecision)
	}

	normalRate := m.BaseRate.Add(m.Multiplier.Mul(m.Kink))
	excessUtil := u.Sub(m.Kink)
	return normalRate.Add(m.JumpMultiplier.Mul(excessUtil)).Truncate(MaxPrecision)
}

// BorrowRate borrow rate per second at utilization u
func (m Model) BorrowRate(u decimal.Decimal) decimal.Decimal {
	return PerSecond(m.BorrowRatePerYear(u))
}

// SupplyRate supply rate per second
// supply_rate = borrow_rate * u * (1 - reserve_factor)
func (m Model) SupplyRate(u, reserveFactor decimal.Decimal) decimal.Decimal {
	rateToPool := m.BorrowRate(u).Mul(number.One.Sub(reserveFactor))
	return u.Mul(rateToPool).Truncate(MaxPrecision)
}

// Rates borrow and supply rate per second of a pool
func (m Model) Rates(cash, borrows, reserves, reserveFactor decimal.Decimal) (borrowRate, supplyRate decimal.Decimal) {
	u := UtilizationRate(cash, borrows, reserves)
	return m.BorrowRate(u), m.SupplyRate(u, reserveFactor)
}

// RatePerDuration scales a per second rate linearly to a duration in seconds
func RatePerDuration(ratePerSecond decimal.Decimal, seconds int64) decimal.Decimal {
	return ratePerSecond.Mul(decimal.NewFromInt(seconds))
}

// Annualize converts a per second rate back to per year
func Annualize(ratePerSecond decimal.Decimal) decimal.Decimal {
	return ratePerSecond.Mul(SecondsPerYear).Truncate(MaxPrecision)
}
