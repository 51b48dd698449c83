package accounting

import (
	"testing"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/stretchr/testify/assert"
)

func testMarket() *core.Market {
	return &core.Market{
		Symbol:           "USDC",
		Decimals:         6,
		InitExchangeRate: number.Decimal("0.02"),
		ReserveFactor:    number.Decimal("0.1"),
		BorrowIndex:      number.One,
		BaseRate:         number.Decimal("0.02"),
		Multiplier:       number.Decimal("0.2"),
		JumpMultiplier:   number.Decimal("2"),
		Kink:             number.Decimal("0.8"),
		RestPeriod:       4 * 3600,
		Status:           core.MarketStatusOpen,
	}
}

func TestExchangeRate(t *testing.T) {
	m := testMarket()
	assert.Equal(t, "0.02", ExchangeRate(m).String())

	m.TotalShares = number.Decimal("50")
	m.TotalCash = number.Decimal("1")
	assert.Equal(t, "0.02", ExchangeRate(m).String())

	m.TotalFixedBorrows = number.Decimal("0.5")
	m.TotalReserves = number.Decimal("0.25")
	// (1 + 0.5 - 0.25) / 50
	assert.Equal(t, "0.025", ExchangeRate(m).String())
}

func TestDepositShares(t *testing.T) {
	rate := number.Decimal("0.02")
	amount := number.FromUnits(number.Decimal("1000000"), 6)

	shares := SharesForAmount(amount, rate)
	assert.Equal(t, "5000000000", number.ToUnits(shares, core.ShareDecimals).String())

	m := testMarket()
	assert.Equal(t, "1", UnderlyingForShares(m, shares, rate).String())
	assert.Equal(t, shares.String(), SharesToBurn(amount, rate).String())
}

func TestAccrueInterest(t *testing.T) {
	now := time.Unix(1700000000, 0)
	m := testMarket()
	m.LastAccrualAt = now
	m.TotalCash = number.Decimal("600")
	m.TotalVariableBorrows = number.Decimal("400")

	AccrueInterest(m, now)
	assert.Equal(t, "1", m.BorrowIndex.String(), "no time elapsed")

	prevIndex := m.BorrowIndex
	prevReserves := m.TotalReserves
	prevRate := ExchangeRate(m)
	m.TotalShares = number.Decimal("50000")

	AccrueInterest(m, now.Add(24*time.Hour))
	assert.True(t, m.BorrowIndex.GreaterThan(prevIndex))
	assert.True(t, m.TotalReserves.GreaterThan(prevReserves))
	assert.True(t, m.TotalVariableBorrows.GreaterThan(number.Decimal("400")))
	assert.True(t, ExchangeRate(m).GreaterThanOrEqual(prevRate))
	assert.Equal(t, now.Add(24*time.Hour), m.LastAccrualAt)

	// interest split between reserves and suppliers
	interest := m.TotalVariableBorrows.Sub(number.Decimal("400"))
	assert.Equal(t, interest.Mul(m.ReserveFactor).Truncate(MaxPrecision).String(), m.TotalReserves.String())
}

func TestAccrueWithoutBorrows(t *testing.T) {
	now := time.Unix(1700000000, 0)
	m := testMarket()
	m.LastAccrualAt = now
	m.TotalCash = number.Decimal("100")
	m.TotalShares = number.Decimal("5000")

	AccrueInterest(m, now.Add(time.Hour))
	assert.Equal(t, "0.02", ExchangeRate(m).String())
	assert.True(t, m.TotalReserves.IsZero())
}

func TestBorrowBalance(t *testing.T) {
	m := testMarket()
	m.BorrowIndex = number.Decimal("1.1")

	b := &core.Borrow{Principal: number.Decimal("100"), InterestIndex: number.Decimal("1")}
	assert.Equal(t, "110", BorrowBalance(b, m).String())

	// rounded up against the borrower
	b = &core.Borrow{Principal: number.Decimal("1"), InterestIndex: number.Decimal("3")}
	m.BorrowIndex = number.Decimal("1")
	assert.Equal(t, "0.333334", BorrowBalance(b, m).String())

	assert.True(t, BorrowBalance(nil, m).IsZero())
}

func TestFixedRepayAmount(t *testing.T) {
	start := time.Unix(1700000000, 0)
	m := testMarket()
	m.EarlyRepayPenalty = number.Decimal("0.5")

	fb := &core.FixedBorrow{
		Amount:    number.Decimal("100"),
		Interest:  number.Decimal("2"),
		Principal: number.Decimal("102"),
		StartAt:   start,
		Duration:  14 * 24 * 3600,
		Status:    core.FixedBorrowStatusOpen,
	}

	atMaturity, penalty := FixedRepayAmount(m, fb, fb.MaturityAt())
	assert.Equal(t, "102", atMaturity.String())
	assert.True(t, penalty.IsZero())

	// one day into a two week term
	early, penalty := FixedRepayAmount(m, fb, start.Add(24*time.Hour))
	assert.True(t, early.GreaterThanOrEqual(atMaturity))
	// 2 * 0.5 * 13 / 14
	assert.Equal(t, "0.928571", penalty.String())

	m.EarlyRepayPenalty = number.Decimal("0")
	early, _ = FixedRepayAmount(m, fb, start)
	assert.Equal(t, atMaturity.String(), early.String())
}

func TestFixedInterest(t *testing.T) {
	m := testMarket()
	rate := number.Decimal("0.0123456789")
	assert.Equal(t, "1.234568", FixedInterest(m, number.Decimal("100"), rate).String())
}

func TestSeizeShares(t *testing.T) {
	seize := SeizeShares(
		number.Decimal("150000"),
		number.Decimal("1"),
		number.Decimal("2000"),
		number.Decimal("1.1"),
		number.Decimal("0.02"),
	)
	assert.Equal(t, "4125", seize.String())

	liquidator, protocol := SplitSeize(seize, number.Decimal("0.028"))
	assert.Equal(t, "115.5", protocol.String())
	assert.Equal(t, "4009.5", liquidator.String())
}
