package oracle

import (
	"context"
	"fmt"
	"time"

	"moneymarket/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// PriceService prices persisted in the price store and cached in memory
type PriceService struct {
	cfg    *core.Config
	db     *db.DB
	prices core.IPriceStore
	cache  gcache.Cache
}

// New new price service, cached prices live for exp
func New(cfg *core.Config, database *db.DB, prices core.IPriceStore, exp time.Duration) *PriceService {
	s := &PriceService{
		cfg:    cfg,
		db:     database,
		prices: prices,
	}

	s.cache = gcache.New(256).LRU().
		Expiration(exp).
		LoaderFunc(s.load).
		Build()

	return s
}

var _ core.IPriceService = (*PriceService)(nil)

func (s *PriceService) load(key interface{}) (interface{}, error) {
	symbol := key.(string)
	price, err := s.prices.Find(context.Background(), symbol)
	if err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrPriceError
		}

		return nil, fmt.Errorf("find price %s: %w", symbol, err)
	}

	return price.Price, nil
}

// PriceOf price of the underlying of symbol, ErrPriceError when unknown
func (s *PriceService) PriceOf(ctx context.Context, symbol string) (decimal.Decimal, error) {
	v, err := s.cache.Get(symbol)
	if err != nil {
		return decimal.Zero, err
	}

	return v.(decimal.Decimal), nil
}

// SetPrice admin override of the price of symbol
func (s *PriceService) SetPrice(ctx context.Context, caller, symbol string, price decimal.Decimal) error {
	if !s.cfg.IsAdmin(caller) {
		return core.ErrOperationForbidden
	}

	if err := s.Update(ctx, symbol, price); err != nil {
		return err
	}

	logger.FromContext(ctx).WithField("caller", caller).Infof("price of %s set to %s", symbol, price)
	return nil
}

// Update stores price of symbol and refreshes the cache
func (s *PriceService) Update(ctx context.Context, symbol string, price decimal.Decimal) error {
	if symbol == "" || !price.IsPositive() {
		return core.ErrInvalidArgument
	}

	p := &core.Price{Symbol: symbol, Price: price}
	if err := s.prices.Save(ctx, s.db, p); err != nil {
		return fmt.Errorf("save price %s: %w", symbol, err)
	}

	return s.cache.Set(symbol, price)
}

func (s *PriceService) All(ctx context.Context) ([]*core.Price, error) {
	return s.prices.All(ctx)
}
