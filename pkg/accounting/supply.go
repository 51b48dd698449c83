package accounting

import (
	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

// SharesForAmount shares minted for depositing amount
func SharesForAmount(amount, exchangeRate decimal.Decimal) decimal.Decimal {
	return number.Div(amount, exchangeRate).Truncate(core.ShareDecimals)
}

// SharesToBurn shares burned to pay out exactly amount
func SharesToBurn(amount, exchangeRate decimal.Decimal) decimal.Decimal {
	return number.Ceil(number.Div(amount, exchangeRate), core.ShareDecimals)
}

// UnderlyingForShares underlying paid out for shares, truncated to the asset decimals
func UnderlyingForShares(market *core.Market, shares, exchangeRate decimal.Decimal) decimal.Decimal {
	return shares.Mul(exchangeRate).Truncate(market.Decimals)
}
