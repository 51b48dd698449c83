package accrual

import (
	"context"

	"moneymarket/core"
	"moneymarket/worker"
)

// Worker accrues interest of every market so idle markets stay fresh
type Worker struct {
	worker.BaseJob
	MarketService core.IMarketService
}

// New new accrual worker
func New(cfg *core.Config, marketService core.IMarketService) (*Worker, error) {
	job := Worker{
		MarketService: marketService,
	}

	job.Name = "accrual"
	job.OnWork = job.onWork

	spec := cfg.Worker.Accrual
	if spec == "" {
		spec = "@every 1m"
	}

	if err := job.Schedule(cfg.App.Location, spec); err != nil {
		return nil, err
	}

	return &job, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	return w.MarketService.AccrueInterest(ctx)
}
