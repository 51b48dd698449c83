package rest

import (
	"net/http"
	"strings"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"

	"github.com/shopspring/decimal"
)

type amountRequest struct {
	Symbol string          `json:"symbol" valid:"alphanum,required"`
	Amount decimal.Decimal `json:"amount"`
}

func bindAmount(r *http.Request) (*amountRequest, error) {
	var params amountRequest
	if err := param.Binding(r, &params); err != nil {
		return nil, err
	}

	params.Symbol = strings.ToUpper(params.Symbol)
	return &params, nil
}

func depositHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := bindAmount(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		shares, err := markets.Deposit(r.Context(), caller(r), params.Symbol, params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"shares": shares})
	}
}

func redeemHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol string          `json:"symbol" valid:"alphanum,required"`
			Shares decimal.Decimal `json:"shares"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		amount, err := markets.Redeem(r.Context(), caller(r), strings.ToUpper(params.Symbol), params.Shares)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"amount": amount})
	}
}

func redeemUnderlyingHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := bindAmount(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		shares, err := markets.RedeemUnderlying(r.Context(), caller(r), params.Symbol, params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"shares": shares})
	}
}

func transferHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			To     string          `json:"to" valid:"printableascii,required"`
			Symbol string          `json:"symbol" valid:"alphanum,required"`
			Shares decimal.Decimal `json:"shares"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		ok, err := markets.Transfer(r.Context(), caller(r), params.To, strings.ToUpper(params.Symbol), params.Shares)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"ok": ok})
	}
}

func addReservesHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := bindAmount(r)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := markets.AddReserves(r.Context(), caller(r), params.Symbol, params.Amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}
