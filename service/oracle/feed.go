package oracle

import (
	"context"
	"fmt"
	"strings"

	"moneymarket/core"
	"moneymarket/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
)

type feed struct {
	endpoint string
}

// NewFeed price tickers pulled from endpoint
func NewFeed(endpoint string) core.IPriceFeed {
	return &feed{endpoint: strings.TrimSuffix(endpoint, "/")}
}

// PullPriceTicker GET {endpoint}/api/tickers/{symbol}
func (f *feed) PullPriceTicker(ctx context.Context, symbol string) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/tickers/%s", f.endpoint, symbol)
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.WithRequestID(ctx, uuid.New()).Get(url)
	if err != nil {
		return nil, fmt.Errorf("pull ticker %s: %w", symbol, err)
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, fmt.Errorf("pull ticker %s: %w", symbol, err)
	}

	if ticker.Symbol == "" {
		ticker.Symbol = symbol
	}

	return &ticker, nil
}
