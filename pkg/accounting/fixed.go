package accounting

import (
	"time"

	"moneymarket/core"
	"moneymarket/internal/ratemodel"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

// FixedRate current borrow rate locked for duration seconds
func FixedRate(market *core.Market, duration int64) decimal.Decimal {
	return ratemodel.RatePerDuration(BorrowRatePerSecond(market), duration)
}

// FixedInterest interest charged upfront on a fixed borrow of amount
func FixedInterest(market *core.Market, amount, rate decimal.Decimal) decimal.Decimal {
	return number.Ceil(amount.Mul(rate), market.Decimals)
}

// EarlyRepayPenalty penalty of repaying before maturity
// penalty = interest * market.early_repay_penalty * remaining / duration
func EarlyRepayPenalty(market *core.Market, fb *core.FixedBorrow, now time.Time) decimal.Decimal {
	if fb.Matured(now) || fb.Duration <= 0 || !market.EarlyRepayPenalty.IsPositive() {
		return decimal.Zero
	}

	remaining := decimal.NewFromInt(fb.Duration - fb.Elapsed(now))
	penalty := fb.Interest.Mul(market.EarlyRepayPenalty).Mul(remaining)
	return number.Div(penalty, decimal.NewFromInt(fb.Duration)).Truncate(market.Decimals)
}

// FixedRepayAmount amount that closes fb now and the penalty included in it
//
// Before maturity the full locked interest is due plus the penalty, after
// maturity exactly the principal.
func FixedRepayAmount(market *core.Market, fb *core.FixedBorrow, now time.Time) (amount, penalty decimal.Decimal) {
	penalty = EarlyRepayPenalty(market, fb, now)
	return fb.Principal.Add(penalty), penalty
}
