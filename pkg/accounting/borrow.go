package accounting

import (
	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

// BorrowBalance variable debt owed now
// balance = borrow.principal * market.borrow_index / borrow.interest_index
func BorrowBalance(b *core.Borrow, market *core.Market) decimal.Decimal {
	if b == nil || !b.Principal.IsPositive() {
		return decimal.Zero
	}

	index := market.BorrowIndex
	if !index.IsPositive() {
		index = number.One
	}

	interestIndex := b.InterestIndex
	if !interestIndex.IsPositive() {
		interestIndex = index
	}

	balance := number.Div(b.Principal.Mul(index), interestIndex)
	return number.Ceil(balance, market.Decimals)
}
