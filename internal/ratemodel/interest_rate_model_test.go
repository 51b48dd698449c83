package ratemodel

import (
	"testing"

	"moneymarket/pkg/number"

	"github.com/bmizerany/assert"
)

func testModel() Model {
	return Model{
		BaseRate:       number.Decimal("0.02"),
		Multiplier:     number.Decimal("0.1"),
		JumpMultiplier: number.Decimal("3"),
		Kink:           number.Decimal("0.8"),
	}
}

func TestUtilizationRate(t *testing.T) {
	tests := []struct {
		name                    string
		cash, borrows, reserves string
		want                    string
	}{
		{"empty", "0", "0", "0", "0"},
		{"no borrows", "100", "0", "0", "0"},
		{"half", "50", "50", "0", "0.5"},
		{"reserves", "60", "50", "10", "0.5"},
		{"denominator zero", "0", "10", "10", "0"},
		{"clamped", "0", "10", "5", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := UtilizationRate(number.Decimal(tt.cash), number.Decimal(tt.borrows), number.Decimal(tt.reserves))
			assert.Equal(t, tt.want, u.String())
		})
	}
}

func TestBorrowRatePerYear(t *testing.T) {
	m := testModel()

	assert.Equal(t, "0.02", m.BorrowRatePerYear(number.Decimal("0")).String())
	assert.Equal(t, "0.07", m.BorrowRatePerYear(number.Decimal("0.5")).String())
	// at the kink the normal slope still applies
	assert.Equal(t, "0.1", m.BorrowRatePerYear(number.Decimal("0.8")).String())
	// 0.02 + 0.1*0.8 + 3*0.1
	assert.Equal(t, "0.4", m.BorrowRatePerYear(number.Decimal("0.9")).String())
}

func TestBorrowRateMonotonic(t *testing.T) {
	m := testModel()
	prev := m.BorrowRate(number.Decimal("0"))
	for _, u := range []string{"0.1", "0.5", "0.79", "0.8", "0.81", "0.95", "1"} {
		r := m.BorrowRate(number.Decimal(u))
		assert.T(t, r.GreaterThanOrEqual(prev), u)
		prev = r
	}
}

func TestSupplyRate(t *testing.T) {
	m := testModel()
	u := number.Decimal("0.5")
	reserveFactor := number.Decimal("0.1")

	supply := m.SupplyRate(u, reserveFactor)
	borrow := m.BorrowRate(u)
	assert.T(t, supply.LessThan(borrow))
	assert.Equal(t, borrow.Mul(u).Mul(number.Decimal("0.9")).Truncate(MaxPrecision).String(), supply.String())
	assert.T(t, m.SupplyRate(number.Decimal("0"), reserveFactor).IsZero())
}

func TestRatePerDuration(t *testing.T) {
	perSecond := PerSecond(number.Decimal("0.31536"))
	assert.Equal(t, "0.00000001", perSecond.String())

	twoWeeks := int64(14 * 24 * 3600)
	assert.Equal(t, "0.012096", RatePerDuration(perSecond, twoWeeks).String())
	assert.Equal(t, "0.31536", Annualize(perSecond).String())
}
