package param

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	Symbol string          `json:"symbol" valid:"alphanum,required"`
	Amount decimal.Decimal `json:"amount"`
	Slots  []int           `json:"slots"`
}

func TestBindingQuery(t *testing.T) {
	var req request
	r := httptest.NewRequest(http.MethodGet, "/?symbol=ETH&amount=1.5&slots=1&slots=3", nil)
	require.NoError(t, Binding(r, &req))
	assert.Equal(t, "ETH", req.Symbol)
	assert.Equal(t, "1.5", req.Amount.String())
	assert.Equal(t, []int{1, 3}, req.Slots)
}

func TestBindingBody(t *testing.T) {
	var req request
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"symbol":"USDC","amount":"100","slots":[0]}`))
	require.NoError(t, Binding(r, &req))
	assert.Equal(t, "USDC", req.Symbol)
	assert.Equal(t, "100", req.Amount.String())

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"symbol":"US-DC"}`))
	assert.Error(t, Binding(r, &request{}))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":1}`))
	assert.Error(t, Binding(r, &request{}), "symbol required")
}
