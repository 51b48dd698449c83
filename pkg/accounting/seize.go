package accounting

import (
	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

// SeizeShares collateral shares seized for repaying repay of the borrowed asset
// seize_shares = repay * price_borrowed * incentive / (price_collateral * exchange_rate_collateral)
func SeizeShares(repay, priceBorrowed, priceCollateral, incentive, exchangeRateCollateral decimal.Decimal) decimal.Decimal {
	seizeValue := repay.Mul(priceBorrowed).Mul(incentive)
	denominator := priceCollateral.Mul(exchangeRateCollateral)
	if !denominator.IsPositive() {
		return decimal.Zero
	}

	return number.Div(seizeValue, denominator).Truncate(core.ShareDecimals)
}

// SplitSeize splits seized shares into the liquidator part and the protocol part
func SplitSeize(seizeShares, protocolSeizeShare decimal.Decimal) (liquidator, protocol decimal.Decimal) {
	protocol = seizeShares.Mul(protocolSeizeShare).Truncate(core.ShareDecimals)
	return seizeShares.Sub(protocol), protocol
}
