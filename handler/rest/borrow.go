package rest

import (
	"net/http"
	"strings"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"
	"moneymarket/handler/views"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

func borrowHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := bindAmount(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := markets.Borrow(r.Context(), caller(r), params.Symbol, params.Amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

// repayHandler repays amount, or the whole debt when all is set
func repayHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol string          `json:"symbol" valid:"alphanum,required"`
			Amount decimal.Decimal `json:"amount"`
			All    bool            `json:"all"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		amount := params.Amount
		if params.All {
			amount = core.RepayAll
		}

		repaid, err := markets.RepayBorrow(r.Context(), caller(r), strings.ToUpper(params.Symbol), amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"repaid": repaid})
	}
}

func borrowFixedHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol string          `json:"symbol" valid:"alphanum,required"`
			Amount decimal.Decimal `json:"amount"`
			// seconds, numbers and numeric strings are both accepted
			Duration interface{} `json:"duration"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		fb, err := markets.BorrowFixedRate(r.Context(), caller(r), strings.ToUpper(params.Symbol), params.Amount, cast.ToInt64(params.Duration))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.FixedBorrowView(fb))
	}
}

func repayFixedHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol string `json:"symbol" valid:"alphanum,required"`
			Slots  []int  `json:"slots"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		paid, err := markets.RepayBorrowFixedRate(r.Context(), caller(r), strings.ToUpper(params.Symbol), params.Slots)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"paid": paid})
	}
}
