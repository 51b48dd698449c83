package oracle

import (
	"context"
	"testing"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPrices struct {
	prices map[string]*core.Price
	finds  int
}

func (m *memoryPrices) Save(_ context.Context, _ *db.DB, price *core.Price) error {
	m.prices[price.Symbol] = price
	return nil
}

func (m *memoryPrices) Find(_ context.Context, symbol string) (*core.Price, error) {
	m.finds++
	p, ok := m.prices[symbol]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	return p, nil
}

func (m *memoryPrices) All(_ context.Context) ([]*core.Price, error) {
	var list []*core.Price
	for _, p := range m.prices {
		list = append(list, p)
	}

	return list, nil
}

func TestPriceService(t *testing.T) {
	ctx := context.Background()
	prices := &memoryPrices{prices: map[string]*core.Price{
		"ETH": {Symbol: "ETH", Price: number.Decimal("2000")},
	}}

	s := New(&core.Config{Admins: []string{"admin"}}, nil, prices, time.Minute)

	price, err := s.PriceOf(ctx, "ETH")
	require.NoError(t, err)
	assert.Equal(t, "2000", price.String())

	_, err = s.PriceOf(ctx, "ETH")
	require.NoError(t, err)
	assert.Equal(t, 1, prices.finds, "second read is cached")

	_, err = s.PriceOf(ctx, "BTC")
	assert.Equal(t, core.ErrPriceError, err)

	assert.Equal(t, core.ErrOperationForbidden, s.SetPrice(ctx, "bob", "ETH", number.Decimal("1")))
	assert.Equal(t, core.ErrInvalidArgument, s.SetPrice(ctx, "admin", "ETH", number.Decimal("-1")))

	require.NoError(t, s.SetPrice(ctx, "admin", "ETH", number.Decimal("1800")))
	price, err = s.PriceOf(ctx, "ETH")
	require.NoError(t, err)
	assert.Equal(t, "1800", price.String())
	assert.Equal(t, "1800", prices.prices["ETH"].Price.String())
}
