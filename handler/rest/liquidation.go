package rest

import (
	"net/http"
	"strings"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"
	"moneymarket/handler/views"

	"github.com/shopspring/decimal"
)

func liquidateHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower   string          `json:"borrower" valid:"printableascii,required"`
			Symbol     string          `json:"symbol" valid:"alphanum,required"`
			Amount     decimal.Decimal `json:"amount"`
			Collateral string          `json:"collateral" valid:"alphanum,required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		seizure, err := markets.LiquidateBorrow(r.Context(), caller(r), params.Borrower,
			strings.ToUpper(params.Symbol), params.Amount, strings.ToUpper(params.Collateral))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.LiquidationView(seizure))
	}
}

func liquidateFixedHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower    string   `json:"borrower" valid:"printableascii,required"`
			Symbol      string   `json:"symbol" valid:"alphanum,required"`
			Slots       []int    `json:"slots"`
			Collaterals []string `json:"collaterals"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		collaterals := make([]string, len(params.Collaterals))
		for i, c := range params.Collaterals {
			collaterals[i] = strings.ToUpper(c)
		}

		seizures, err := markets.LiquidateBorrowFixedRate(r.Context(), caller(r), params.Borrower,
			strings.ToUpper(params.Symbol), params.Slots, collaterals)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.LiquidationView(seizures...))
	}
}
