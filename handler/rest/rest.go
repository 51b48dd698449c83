package rest

import (
	"context"
	"net/http"
	"strings"

	"moneymarket/core"
	"moneymarket/handler/auth"
	"moneymarket/handler/render"
	"moneymarket/handler/request"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/twitchtv/twirp"
)

// Faucet credits underlying balances of the in process asset ledger
type Faucet interface {
	core.IAssetLedger
	Mint(ctx context.Context, assetID, userID string, amount decimal.Decimal)
}

// Services backing the rest api
type Services struct {
	Config       *core.Config
	Markets      core.IMarketService
	Controller   core.IControllerService
	Prices       core.IPriceService
	Transactions core.ITransactionStore
	Accounts     core.IAccountStore
	Assets       Faucet
}

// Handle handle rest api request
func Handle(s Services) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	router.Get("/markets", marketsHandler(s.Markets, s.Prices))
	router.Get("/markets/{symbol}", marketHandler(s.Markets, s.Prices))
	router.Get("/markets/{symbol}/rates", ratesHandler(s.Markets))
	router.Get("/markets/{symbol}/term-rates", termRatesHandler(s.Markets))
	router.Get("/prices", pricesHandler(s.Prices))
	router.Get("/policy", policyHandler(s.Controller))
	router.Get("/shortfalls", shortfallsHandler(s.Accounts))
	router.Get("/transactions", transactionsHandler(s.Transactions))

	router.Route("/accounts/{user}", func(r chi.Router) {
		r.Get("/liquidity", liquidityHandler(s.Controller, s.Accounts))
		r.Get("/members", membersHandler(s.Controller))
		r.Get("/markets/{symbol}", snapshotHandler(s.Markets))
		r.Get("/markets/{symbol}/fixed-borrows", fixedBorrowsHandler(s.Markets))
		r.Get("/markets/{symbol}/expired-borrows", expiredBorrowsHandler(s.Markets))
		r.Get("/markets/{symbol}/balance", balanceHandler(s.Markets, s.Assets))
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired())

		r.Post("/deposit", depositHandler(s.Markets))
		r.Post("/redeem", redeemHandler(s.Markets))
		r.Post("/redeem-underlying", redeemUnderlyingHandler(s.Markets))
		r.Post("/transfer", transferHandler(s.Markets))
		r.Post("/reserves", addReservesHandler(s.Markets))
		r.Post("/borrow", borrowHandler(s.Markets))
		r.Post("/repay", repayHandler(s.Markets))
		r.Post("/fixed-borrows", borrowFixedHandler(s.Markets))
		r.Post("/fixed-borrows/repay", repayFixedHandler(s.Markets))
		r.Post("/liquidate", liquidateHandler(s.Markets))
		r.Post("/liquidate-fixed", liquidateFixedHandler(s.Markets))
		r.Post("/enter-markets", enterMarketsHandler(s.Controller))
		r.Post("/exit-market", exitMarketHandler(s.Controller))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/markets", supportMarketHandler(s.Markets))
			r.Post("/markets/{symbol}/reserve-factor", reserveFactorHandler(s.Markets))
			r.Post("/markets/{symbol}/rest-period", restPeriodHandler(s.Markets))
			r.Post("/markets/{symbol}/rate-model", rateModelHandler(s.Markets))
			r.Post("/markets/{symbol}/early-repay-penalty", earlyRepayPenaltyHandler(s.Markets))
			r.Post("/markets/{symbol}/status", marketStatusHandler(s.Markets))
			r.Post("/markets/{symbol}/collateral-factor", collateralFactorHandler(s.Controller))
			r.Post("/markets/{symbol}/reduce-reserves", reduceReservesHandler(s.Markets))
			r.Post("/policy/close-factor", closeFactorHandler(s.Controller))
			r.Post("/policy/liquidation-incentive", liquidationIncentiveHandler(s.Controller))
			r.Post("/policy/protocol-seize-share", protocolSeizeShareHandler(s.Controller))
			r.Post("/prices", priceHandler(s.Prices))
			r.Post("/mint", mintHandler(s.Config, s.Markets, s.Assets))
		})
	})

	return router
}

func symbolParam(r *http.Request) string {
	return strings.ToUpper(chi.URLParam(r, "symbol"))
}

func caller(r *http.Request) string {
	return request.NewContext(r.Context()).UserID()
}
