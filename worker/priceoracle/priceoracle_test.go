package priceoracle

import (
	"context"
	"errors"
	"sync"
	"testing"

	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marketService struct {
	core.IMarketService
}

func (marketService) Markets(_ context.Context) ([]*core.Market, error) {
	return []*core.Market{{Symbol: "ETH"}, {Symbol: "USDC"}, {Symbol: "BTC"}}, nil
}

type feed map[string]string

func (f feed) PullPriceTicker(_ context.Context, symbol string) (*core.PriceTicker, error) {
	p, ok := f[symbol]
	if !ok {
		return nil, errors.New("ticker not found")
	}

	return &core.PriceTicker{Symbol: symbol, Price: number.Decimal(p)}, nil
}

type priceService struct {
	core.IPriceService
	mu     sync.Mutex
	prices map[string]decimal.Decimal
}

func (s *priceService) Update(_ context.Context, symbol string, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = price
	return nil
}

func TestPullPrices(t *testing.T) {
	prices := &priceService{prices: map[string]decimal.Decimal{}}
	w, err := New(&core.Config{}, marketService{}, prices, feed{"ETH": "2000", "USDC": "0"})
	require.NoError(t, err)

	require.NoError(t, w.onWork(context.Background()))

	// USDC ticker is invalid, BTC has none
	require.Len(t, prices.prices, 1)
	assert.Equal(t, "2000", prices.prices["ETH"].String())
}
