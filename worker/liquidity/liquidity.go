package liquidity

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/concurrency"
	"moneymarket/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Worker recomputes liquidity of every account and caches it for the api
type Worker struct {
	worker.BaseJob
	Controller   core.IControllerService
	AccountStore core.IAccountStore
	limit        int
}

// New new liquidity worker
func New(cfg *core.Config, controller core.IControllerService, accountStore core.IAccountStore) (*Worker, error) {
	job := Worker{
		Controller:   controller,
		AccountStore: accountStore,
		limit:        concurrency.DefaultMax,
	}

	job.Name = "liquidity"
	job.OnWork = job.onWork

	spec := cfg.Worker.Liquidity
	if spec == "" {
		spec = "@every 10s"
	}

	if err := job.Schedule(cfg.App.Location, spec); err != nil {
		return nil, err
	}

	return &job, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	accounts, err := w.Controller.Accounts(ctx)
	if err != nil {
		log.WithError(err).Errorln("list accounts")
		return err
	}

	limit := concurrency.NewGoLimit(w.limit)
	var g errgroup.Group
	for _, userID := range accounts {
		userID := userID
		limit.Add()
		g.Go(func() error {
			defer limit.Done()
			return w.calculateLiquidity(ctx, userID)
		})
	}

	return g.Wait()
}

func (w *Worker) calculateLiquidity(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx).WithField("user", userID)

	liquidity, err := w.Controller.AccountLiquidity(ctx, userID)
	if err != nil {
		log.WithError(err).Errorln("calculate liquidity")
		return err
	}

	if liquidity.Shortfall.IsPositive() {
		log.WithField("shortfall", liquidity.Shortfall).Infoln("account in shortfall")
	}

	return w.AccountStore.Save(ctx, liquidity)
}
