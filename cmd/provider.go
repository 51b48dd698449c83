package cmd

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/service/ledger"
	"moneymarket/service/oracle"
	"moneymarket/service/session"
	"moneymarket/store/account"
	"moneymarket/store/borrow"
	"moneymarket/store/fixedborrow"
	"moneymarket/store/market"
	"moneymarket/store/member"
	"moneymarket/store/policy"
	"moneymarket/store/price"
	"moneymarket/store/state"
	"moneymarket/store/supply"
	"moneymarket/store/transaction"

	"github.com/fox-one/pkg/store/db"
	"github.com/go-redis/redis"
)

const (
	accountCacheCapacity = 100000
	sessionCacheCapacity = 4096
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func provideStores(database *db.DB) state.Stores {
	return state.Stores{
		Markets:      market.New(database),
		Supplies:     supply.New(database),
		Borrows:      borrow.New(database),
		FixedBorrows: fixedborrow.New(database),
		Members:      member.New(database),
		Policy:       policy.New(database),
		Transactions: transaction.New(database),
	}
}

// provideAccountStore redis when configured, in process cache otherwise
func provideAccountStore() core.IAccountStore {
	exp := time.Minute
	if cfg.Redis.Addr != "" {
		return account.New(provideRedis(), exp)
	}

	return account.Cache(accountCacheCapacity, exp)
}

// ------------------service------------------------------------

// provideLedger loads the persisted state, policy config only applies to a fresh database
func provideLedger(ctx context.Context, database *db.DB, stores state.Stores, assets core.IAssetLedger) (*ledger.Ledger, error) {
	l := ledger.New(assets,
		ledger.WithStore(state.New(database, stores)),
		ledger.WithPolicy(cfg.Policy.Build()),
	)

	if err := l.Load(ctx); err != nil {
		return nil, err
	}

	return l, nil
}

func providePriceService(database *db.DB) *oracle.PriceService {
	ttl := time.Duration(cfg.Oracle.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Second
	}

	return oracle.New(provideConfig(), database, price.New(database), ttl)
}

func provideSession() core.Session {
	ttl := time.Duration(cfg.Auth.TokenTTL) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return session.New(cfg.Auth.JwtSecret, ttl, sessionCacheCapacity)
}
