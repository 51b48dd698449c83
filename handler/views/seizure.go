package views

import (
	"moneymarket/core"

	"github.com/shopspring/decimal"
)

// Liquidation liquidation result
type Liquidation struct {
	Seizures []*core.Seizure `json:"seizures"`
	// shares credited to the liquidator
	Shares decimal.Decimal `json:"shares"`
}

func LiquidationView(seizures ...*core.Seizure) *Liquidation {
	v := Liquidation{Seizures: seizures, Shares: decimal.Zero}
	for _, s := range seizures {
		v.Shares = v.Shares.Add(s.SeizeShares.Sub(s.ProtocolShares))
	}

	return &v
}
