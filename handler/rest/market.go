package rest

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"
	"moneymarket/handler/views"

	"github.com/shopspring/decimal"
)

func marketsHandler(markets core.IMarketService, prices core.IPriceOracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, err := markets.Markets(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		marketViews := make([]*views.Market, 0, len(list))
		for _, m := range list {
			rates, _ := markets.Rates(ctx, m.Symbol)
			price, _ := prices.PriceOf(ctx, m.Symbol)
			marketViews = append(marketViews, views.MarketView(m, rates, price))
		}

		render.JSON(w, marketViews)
	}
}

func marketHandler(markets core.IMarketService, prices core.IPriceOracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		symbol := symbolParam(r)

		market, err := markets.Market(ctx, symbol)
		if err != nil {
			render.Error(w, err)
			return
		}

		rates, err := markets.Rates(ctx, symbol)
		if err != nil {
			render.Error(w, err)
			return
		}

		price, err := prices.PriceOf(ctx, symbol)
		if err != nil {
			price = decimal.Zero
		}

		render.JSON(w, views.MarketView(market, rates, price))
	}
}

func ratesHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rates, err := markets.Rates(r.Context(), symbolParam(r))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, rates)
	}
}

// termRatesHandler rates over ?duration= seconds
func termRatesHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Duration int64 `json:"duration"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		rates, err := markets.RatesPerTime(r.Context(), symbolParam(r), params.Duration)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, rates)
	}
}

func pricesHandler(prices core.IPriceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := prices.All(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, list)
	}
}

func policyHandler(controller core.IControllerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		policy, err := controller.Policy(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, policy)
	}
}
