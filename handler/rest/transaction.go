package rest

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/param"
	"moneymarket/handler/render"
)

func transactionsHandler(transactions core.ITransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID string `json:"user"`
			Symbol string `json:"symbol"`
			Offset int64  `json:"offset"`
			Limit  int    `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		list, err := transactions.List(r.Context(), core.TransactionQuery{
			UserID: params.UserID,
			Symbol: params.Symbol,
			Offset: params.Offset,
			Limit:  params.Limit,
		})
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, list)
	}
}
