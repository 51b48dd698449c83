package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"moneymarket/core"
	"moneymarket/handler/rest"
	"moneymarket/pkg/number"
	"moneymarket/service/asset"
	"moneymarket/service/controller"
	"moneymarket/service/ledger"
	"moneymarket/service/market"
	"moneymarket/service/session"
	"moneymarket/store/account"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPrices struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal
}

func (p *memoryPrices) PriceOf(_ context.Context, symbol string) (decimal.Decimal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	price, ok := p.prices[symbol]
	if !ok {
		return decimal.Zero, core.ErrPriceError
	}

	return price, nil
}

func (p *memoryPrices) SetPrice(ctx context.Context, caller, symbol string, price decimal.Decimal) error {
	if caller != "admin" {
		return core.ErrOperationForbidden
	}

	return p.Update(ctx, symbol, price)
}

func (p *memoryPrices) Update(_ context.Context, symbol string, price decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prices[symbol] = price
	return nil
}

func (p *memoryPrices) All(_ context.Context) ([]*core.Price, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var list []*core.Price
	for symbol, price := range p.prices {
		list = append(list, &core.Price{Symbol: symbol, Price: price})
	}

	return list, nil
}

type noTransactions struct{ core.ITransactionStore }

func (noTransactions) List(_ context.Context, _ core.TransactionQuery) ([]*core.Transaction, error) {
	return []*core.Transaction{}, nil
}

type testServer struct {
	*httptest.Server
	session core.Session
}

func newTestServer(t *testing.T) *testServer {
	ctx := context.Background()
	cfg := &core.Config{Admins: []string{"admin"}}

	prices := &memoryPrices{prices: map[string]decimal.Decimal{"USDC": number.One}}
	assets := asset.New()
	l := ledger.New(assets)
	ctrl := controller.New(cfg, l, prices)
	markets := market.New(cfg, l, ctrl)

	require.NoError(t, markets.Bootstrap(ctx, []*core.Market{{
		Symbol:           "USDC",
		AssetID:          "usdc",
		Decimals:         6,
		InitExchangeRate: number.Decimal("0.02"),
		CollateralFactor: number.Decimal("0.8"),
		BaseRate:         number.Decimal("0.02"),
		Multiplier:       number.Decimal("0.2"),
	}}))

	sess := session.New("secret", time.Hour, 16)
	server := New(sess, rest.Services{
		Config:       cfg,
		Markets:      markets,
		Controller:   ctrl,
		Prices:       prices,
		Transactions: noTransactions{},
		Accounts:     account.Cache(16, time.Minute),
		Assets:       assets,
	})

	ts := httptest.NewServer(server.HandleRestAPI())
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, session: sess}
}

type response struct {
	status int
	Data   json.RawMessage `json:"data"`
	Code   int             `json:"code"`
	Msg    string          `json:"msg"`
}

func (s *testServer) do(t *testing.T, method, path, user, body string) *response {
	req, err := http.NewRequest(method, s.URL+path, strings.NewReader(body))
	require.NoError(t, err)

	if user != "" {
		token, err := s.session.Issue(context.Background(), user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	r := response{status: resp.StatusCode}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	return &r
}

func TestDepositFlow(t *testing.T) {
	s := newTestServer(t)

	r := s.do(t, http.MethodPost, "/deposit", "", `{"symbol":"USDC","amount":"100"}`)
	assert.Equal(t, http.StatusUnauthorized, r.status)

	r = s.do(t, http.MethodPost, "/admin/mint", "alice", `{"user_id":"alice","symbol":"USDC","amount":"100"}`)
	assert.Equal(t, http.StatusForbidden, r.status)
	assert.Equal(t, 100001, r.Code)

	r = s.do(t, http.MethodPost, "/admin/mint", "admin", `{"user_id":"alice","symbol":"usdc","amount":"100"}`)
	require.Equal(t, http.StatusOK, r.status, r.Msg)

	r = s.do(t, http.MethodPost, "/deposit", "alice", `{"symbol":"usdc","amount":"100"}`)
	require.Equal(t, http.StatusOK, r.status, r.Msg)
	assert.JSONEq(t, `{"shares":"5000"}`, string(r.Data))

	r = s.do(t, http.MethodGet, "/accounts/alice/markets/usdc", "", "")
	require.Equal(t, http.StatusOK, r.status)
	var snapshot core.AccountSnapshot
	require.NoError(t, json.Unmarshal(r.Data, &snapshot))
	assert.Equal(t, "100", snapshot.Underlying.String())

	r = s.do(t, http.MethodGet, "/markets/USDC", "", "")
	require.Equal(t, http.StatusOK, r.status)
	var m struct {
		TotalCash decimal.Decimal `json:"total_cash"`
		Status    string          `json:"status"`
		Price     decimal.Decimal `json:"price"`
	}
	require.NoError(t, json.Unmarshal(r.Data, &m))
	assert.Equal(t, "100", m.TotalCash.String())
	assert.Equal(t, "open", m.Status)
	assert.Equal(t, "1", m.Price.String())
}

func TestErrors(t *testing.T) {
	s := newTestServer(t)

	r := s.do(t, http.MethodPost, "/borrow", "bob", `{"symbol":"USDC","amount":"1"}`)
	assert.Equal(t, http.StatusPreconditionFailed, r.status)
	assert.Equal(t, int(core.ErrInsufficientCash), r.Code)

	r = s.do(t, http.MethodGet, "/markets/BTC", "", "")
	assert.Equal(t, http.StatusNotFound, r.status)

	r = s.do(t, http.MethodPost, "/deposit", "bob", `{"symbol":"US-DC","amount":"1"}`)
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = s.do(t, http.MethodGet, "/accounts/bob/liquidity", "", "")
	require.Equal(t, http.StatusOK, r.status)
	var liquidity core.AccountLiquidity
	require.NoError(t, json.Unmarshal(r.Data, &liquidity))
	assert.True(t, liquidity.Liquidity.IsZero())
	assert.True(t, liquidity.Shortfall.IsZero())
}
