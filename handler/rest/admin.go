package rest

import (
	"context"
	"net/http"
	"strings"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"

	"github.com/shopspring/decimal"
)

func supportMarketHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params core.MarketConfig
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		params.Symbol = strings.ToUpper(params.Symbol)
		if err := markets.SupportMarket(r.Context(), caller(r), params.Market()); err != nil {
			render.Error(w, err)
			return
		}

		market, err := markets.Market(r.Context(), params.Symbol)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, market)
	}
}

// valueHandler binds {"value": ...} and applies it to the market in the path
func valueHandler(fn func(ctx context.Context, caller, symbol string, value decimal.Decimal) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Value decimal.Decimal `json:"value"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if err := fn(r.Context(), caller(r), symbolParam(r), params.Value); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func reserveFactorHandler(markets core.IMarketService) http.HandlerFunc {
	return valueHandler(markets.SetReserveFactor)
}

func earlyRepayPenaltyHandler(markets core.IMarketService) http.HandlerFunc {
	return valueHandler(markets.SetEarlyRepayPenalty)
}

func reduceReservesHandler(markets core.IMarketService) http.HandlerFunc {
	return valueHandler(markets.ReduceReserves)
}

func collateralFactorHandler(controller core.IControllerService) http.HandlerFunc {
	return valueHandler(controller.SetCollateralFactor)
}

func restPeriodHandler(markets core.IMarketService) http.HandlerFunc {
	return valueHandler(func(ctx context.Context, caller, symbol string, value decimal.Decimal) error {
		if !value.IsInteger() {
			return core.ErrInvalidArgument
		}

		return markets.SetRestPeriod(ctx, caller, symbol, value.IntPart())
	})
}

func rateModelHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			BaseRate       decimal.Decimal `json:"base_rate"`
			Multiplier     decimal.Decimal `json:"multiplier"`
			JumpMultiplier decimal.Decimal `json:"jump_multiplier"`
			Kink           decimal.Decimal `json:"kink"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if err := markets.SetInterestRateModel(r.Context(), caller(r), symbolParam(r),
			params.BaseRate, params.Multiplier, params.JumpMultiplier, params.Kink); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func marketStatusHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Status string `json:"status" valid:"in(open|close),required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if err := markets.SetMarketStatus(r.Context(), caller(r), symbolParam(r), core.ParseMarketStatus(params.Status)); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

// policyValueHandler binds {"value": ...} and applies it to the controller policy
func policyValueHandler(fn func(ctx context.Context, caller string, value decimal.Decimal) error) http.HandlerFunc {
	return valueHandler(func(ctx context.Context, caller, _ string, value decimal.Decimal) error {
		return fn(ctx, caller, value)
	})
}

func closeFactorHandler(controller core.IControllerService) http.HandlerFunc {
	return policyValueHandler(controller.SetCloseFactor)
}

func liquidationIncentiveHandler(controller core.IControllerService) http.HandlerFunc {
	return policyValueHandler(controller.SetLiquidationIncentive)
}

func protocolSeizeShareHandler(controller core.IControllerService) http.HandlerFunc {
	return policyValueHandler(controller.SetProtocolSeizeShare)
}

func priceHandler(prices core.IPriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol string          `json:"symbol" valid:"alphanum,required"`
			Price  decimal.Decimal `json:"price"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if err := prices.SetPrice(r.Context(), caller(r), strings.ToUpper(params.Symbol), params.Price); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

// mintHandler credits underlying to a user, admin only
func mintHandler(cfg *core.Config, markets core.IMarketService, assets Faucet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID string          `json:"user_id" valid:"printableascii,required"`
			Symbol string          `json:"symbol" valid:"alphanum,required"`
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if !cfg.IsAdmin(caller(r)) {
			render.Error(w, core.ErrOperationForbidden)
			return
		}

		ctx := r.Context()
		market, err := markets.Market(ctx, strings.ToUpper(params.Symbol))
		if err != nil {
			render.Error(w, err)
			return
		}

		amount := params.Amount.Truncate(market.Decimals)
		if !amount.IsPositive() {
			render.Error(w, core.ErrInvalidAmount)
			return
		}

		assets.Mint(ctx, market.AssetID, params.UserID, amount)
		balance, err := assets.BalanceOf(ctx, market.AssetID, params.UserID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"balance": balance, "minted": amount})
	}
}
