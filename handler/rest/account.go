package rest

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"
	"moneymarket/handler/views"

	"github.com/go-chi/chi"
)

// liquidityHandler serves the cached liquidity unless fresh=true or the cache misses
func liquidityHandler(controller core.IControllerService, accounts core.IAccountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := chi.URLParam(r, "user")

		var params struct {
			Fresh bool `json:"fresh"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if !params.Fresh {
			if liquidity, ok := accounts.Find(ctx, userID); ok {
				render.JSON(w, liquidity)
				return
			}
		}

		liquidity, err := controller.AccountLiquidity(ctx, userID)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := accounts.Save(ctx, liquidity); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, liquidity)
	}
}

func shortfallsHandler(accounts core.IAccountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, accounts.Shortfalls(r.Context()))
	}
}

func membersHandler(controller core.IControllerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := controller.Members(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		if members == nil {
			members = []string{}
		}

		render.JSON(w, members)
	}
}

func snapshotHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := markets.AccountSnapshot(r.Context(), chi.URLParam(r, "user"), symbolParam(r))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, snapshot)
	}
}

func fixedBorrowsHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := markets.FixedBorrows(r.Context(), chi.URLParam(r, "user"), symbolParam(r))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.FixedBorrowViews(list))
	}
}

func expiredBorrowsHandler(markets core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := markets.ExpiredBorrows(r.Context(), chi.URLParam(r, "user"), symbolParam(r))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.FixedBorrowViews(list))
	}
}

// balanceHandler underlying wallet balance of the user
func balanceHandler(markets core.IMarketService, assets core.IAssetLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		market, err := markets.Market(ctx, symbolParam(r))
		if err != nil {
			render.Error(w, err)
			return
		}

		balance, err := assets.BalanceOf(ctx, market.AssetID, chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"symbol":   market.Symbol,
			"asset_id": market.AssetID,
			"balance":  balance,
		})
	}
}

func enterMarketsHandler(controller core.IControllerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbols []string `json:"symbols"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		ctx := r.Context()
		userID := caller(r)
		if err := controller.EnterMarkets(ctx, userID, params.Symbols); err != nil {
			render.Error(w, err)
			return
		}

		members, err := controller.Members(ctx, userID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, members)
	}
}

func exitMarketHandler(controller core.IControllerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Symbol string `json:"symbol" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if err := controller.ExitMarket(r.Context(), caller(r), params.Symbol); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}
