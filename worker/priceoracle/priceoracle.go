package priceoracle

import (
	"context"
	"sync"

	"moneymarket/core"
	"moneymarket/pkg/concurrency"
	"moneymarket/worker"

	"github.com/fox-one/pkg/logger"
)

// Worker pulls tickers of every listed market into the price service
type Worker struct {
	worker.BaseJob
	MarketService core.IMarketService
	PriceService  core.IPriceService
	Feed          core.IPriceFeed
}

// New new price oracle worker
func New(cfg *core.Config, marketService core.IMarketService, priceService core.IPriceService, feed core.IPriceFeed) (*Worker, error) {
	job := Worker{
		MarketService: marketService,
		PriceService:  priceService,
		Feed:          feed,
	}

	job.Name = "priceoracle"
	job.OnWork = job.onWork

	spec := cfg.Worker.Price
	if spec == "" {
		spec = "@every 30s"
	}

	if err := job.Schedule(cfg.App.Location, spec); err != nil {
		return nil, err
	}

	return &job, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	markets, err := w.MarketService.Markets(ctx)
	if err != nil {
		log.Errorln("fetch all markets error:", err)
		return err
	}

	if len(markets) <= 0 {
		log.Infoln("no market found")
		return nil
	}

	limit := concurrency.NewGoLimit(concurrency.DefaultMax)
	wg := sync.WaitGroup{}
	for _, m := range markets {
		wg.Add(1)
		symbol := m.Symbol
		limit.Go(func() {
			defer wg.Done()
			w.pull(ctx, symbol)
		})
	}

	wg.Wait()
	return nil
}

// pull failures of one market never block the others
func (w *Worker) pull(ctx context.Context, symbol string) {
	log := logger.FromContext(ctx).WithField("symbol", symbol)

	ticker, err := w.Feed.PullPriceTicker(ctx, symbol)
	if err != nil {
		log.Errorln("pull price ticker error:", err)
		return
	}

	if !ticker.Price.IsPositive() {
		log.Errorln("invalid ticker price:", ticker.Price)
		return
	}

	if err := w.PriceService.Update(ctx, symbol, ticker.Price); err != nil {
		log.Errorln("update price error:", err)
	}
}
