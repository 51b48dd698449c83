package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"moneymarket/core"
	"moneymarket/handler"
	"moneymarket/handler/hc"
	"moneymarket/handler/rest"
	"moneymarket/service/asset"
	"moneymarket/service/controller"
	marketservice "moneymarket/service/market"
	"moneymarket/service/oracle"
	"moneymarket/worker"
	"moneymarket/worker/accrual"
	"moneymarket/worker/liquidity"
	"moneymarket/worker/priceoracle"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run money market api server and workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		stores := provideStores(database)
		assets := asset.New()
		l, err := provideLedger(ctx, database, stores, assets)
		if err != nil {
			return err
		}

		priceService := providePriceService(database)
		controllerService := controller.New(provideConfig(), l, priceService)
		marketService := marketservice.New(provideConfig(), l, controllerService)
		accountStore := provideAccountStore()

		markets := make([]*core.Market, 0, len(cfg.Markets))
		for _, m := range cfg.Markets {
			markets = append(markets, m.Market())
		}

		if err := marketService.Bootstrap(ctx, markets); err != nil {
			return fmt.Errorf("bootstrap markets: %w", err)
		}

		jobs, err := provideJobs(marketService, controllerService, priceService, accountStore)
		if err != nil {
			return err
		}

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			//hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version))
		}

		{
			//restful api
			svr := handler.New(provideSession(), rest.Services{
				Config:       provideConfig(),
				Markets:      marketService,
				Controller:   controllerService,
				Prices:       priceService,
				Transactions: stores.Transactions,
				Accounts:     accountStore,
				Assets:       assets,
			})
			mux.Mount("/api", svr.HandleRestAPI())
		}

		port, _ := cmd.Flags().GetInt("port")
		if port == 0 {
			port = cfg.App.Port
		}

		addr := fmt.Sprintf(":%d", port)
		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		for _, job := range jobs {
			if err := job.Start(ctx); err != nil {
				return err
			}
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logrus.Infoln("serve at", addr)
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		})

		g.Go(func() error {
			<-ctx.Done()

			for _, job := range jobs {
				_ = job.Stop()
			}

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			return nil
		})

		return g.Wait()
	},
}

func provideJobs(
	marketService core.IMarketService,
	controllerService core.IControllerService,
	priceService *oracle.PriceService,
	accountStore core.IAccountStore,
) ([]worker.IJob, error) {
	accrualJob, err := accrual.New(provideConfig(), marketService)
	if err != nil {
		return nil, err
	}

	liquidityJob, err := liquidity.New(provideConfig(), controllerService, accountStore)
	if err != nil {
		return nil, err
	}

	jobs := []worker.IJob{accrualJob, liquidityJob}
	if cfg.Oracle.Endpoint != "" {
		priceJob, err := priceoracle.New(provideConfig(), marketService, priceService, oracle.NewFeed(cfg.Oracle.Endpoint))
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, priceJob)
	}

	return jobs, nil
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 0, "server port, app.port by default")
}
