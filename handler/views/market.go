package views

import (
	"moneymarket/core"

	"github.com/shopspring/decimal"
)

// Market market with rates and oracle price at the moment
type Market struct {
	*core.Market
	Status string            `json:"status"`
	Rates  *core.MarketRates `json:"rates,omitempty"`
	Price  decimal.Decimal   `json:"price"`
}

// MarketView market view, price is zero when the oracle has none
func MarketView(m *core.Market, rates *core.MarketRates, price decimal.Decimal) *Market {
	return &Market{
		Market: m,
		Status: m.Status.String(),
		Rates:  rates,
		Price:  price,
	}
}
