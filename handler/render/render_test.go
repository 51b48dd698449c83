package render

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
)

func TestWrapResponse(t *testing.T) {
	h := WrapResponse(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			Error(w, core.ErrInsufficientCash)
			return
		}

		JSON(w, H{"symbol": "ETH"})
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"symbol":"ETH"}}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
	assert.JSONEq(t, `{"code":100106,"msg":"insufficient cash"}`, w.Body.String())
}
