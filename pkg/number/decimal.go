package number

import (
	"github.com/shopspring/decimal"
)

// Precision digits kept for rates, indices and exchange rates
const Precision int32 = 18

// divPrecision digits kept by Div before callers round to their own scale
const divPrecision = 2 * Precision

// One decimal one
var One = decimal.New(1, 0)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Ceil rounds d up at precision
func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// Floor rounds d down at precision
func Floor(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Floor().Shift(-precision)
}

// Div divides with enough digits for per-second rates; the divisor must be non-zero
func Div(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, divPrecision)
}

// FromUnits converts an integer amount of base units into natural units
func FromUnits(units decimal.Decimal, decimals int32) decimal.Decimal {
	return units.Shift(-decimals)
}

// ToUnits converts natural units into integer base units, dropping dust
func ToUnits(d decimal.Decimal, decimals int32) decimal.Decimal {
	return d.Shift(decimals).Truncate(0)
}

// Clamp bounds d to [lo, hi]
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Max(lo, decimal.Min(d, hi))
}

// SubFloor subtracts b from a, never going below zero
func SubFloor(a, b decimal.Decimal) decimal.Decimal {
	if r := a.Sub(b); r.IsPositive() {
		return r
	}

	return decimal.Zero
}
