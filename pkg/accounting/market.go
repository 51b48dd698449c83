package accounting

import (
	"time"

	"moneymarket/core"
	"moneymarket/internal/ratemodel"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

// MaxPrecision digits kept for totals, indices and exchange rates
var MaxPrecision = number.Precision

// RateModel rate model configured on market
func RateModel(market *core.Market) ratemodel.Model {
	return ratemodel.Model{
		BaseRate:       market.BaseRate,
		Multiplier:     market.Multiplier,
		JumpMultiplier: market.JumpMultiplier,
		Kink:           market.Kink,
	}
}

// UtilizationRate utilization of variable borrows
func UtilizationRate(market *core.Market) decimal.Decimal {
	return ratemodel.UtilizationRate(market.TotalCash, market.TotalVariableBorrows, market.TotalReserves)
}

// BorrowRatePerSecond current variable borrow rate per second
func BorrowRatePerSecond(market *core.Market) decimal.Decimal {
	return RateModel(market).BorrowRate(UtilizationRate(market))
}

// SupplyRatePerSecond current supply rate per second
func SupplyRatePerSecond(market *core.Market) decimal.Decimal {
	return RateModel(market).SupplyRate(UtilizationRate(market), market.ReserveFactor)
}

// ExchangeRate underlying per share
// exchange_rate = (cash + variable_borrows + fixed_borrows - reserves) / total_shares
func ExchangeRate(market *core.Market) decimal.Decimal {
	if !market.TotalShares.IsPositive() {
		return market.InitExchangeRate
	}

	value := market.TotalCash.
		Add(market.TotalVariableBorrows).
		Add(market.TotalFixedBorrows).
		Sub(market.TotalReserves)
	return number.Div(value, market.TotalShares).Truncate(MaxPrecision)
}

// Rates every rate of market at the moment
func Rates(market *core.Market) core.MarketRates {
	borrowRate := BorrowRatePerSecond(market)
	supplyRate := SupplyRatePerSecond(market)

	return core.MarketRates{
		UtilizationRate:     UtilizationRate(market),
		ExchangeRate:        ExchangeRate(market),
		BorrowRatePerSecond: borrowRate,
		SupplyRatePerSecond: supplyRate,
		BorrowAPY:           ratemodel.Annualize(borrowRate),
		SupplyAPY:           ratemodel.Annualize(supplyRate),
	}
}

// AccrueInterest accrue variable borrow interest of market up to now
//
// Runs before a market is read by any operation, it is the only place the
// exchange rate grows for suppliers between operations.
func AccrueInterest(market *core.Market, now time.Time) {
	if !market.BorrowIndex.IsPositive() {
		market.BorrowIndex = number.One
	}

	if market.LastAccrualAt.IsZero() {
		market.LastAccrualAt = now
		return
	}

	elapsed := int64(now.Sub(market.LastAccrualAt) / time.Second)
	if elapsed <= 0 {
		return
	}

	borrowRate := BorrowRatePerSecond(market)
	delta := ratemodel.RatePerDuration(borrowRate, elapsed)
	interest := market.TotalVariableBorrows.Mul(delta).Truncate(MaxPrecision)

	market.TotalVariableBorrows = market.TotalVariableBorrows.Add(interest)
	market.TotalReserves = market.TotalReserves.Add(interest.Mul(market.ReserveFactor).Truncate(MaxPrecision))
	market.BorrowIndex = market.BorrowIndex.Add(number.Ceil(delta.Mul(market.BorrowIndex), MaxPrecision))
	market.LastAccrualAt = market.LastAccrualAt.Add(time.Duration(elapsed) * time.Second)
}
