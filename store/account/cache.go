package account

import (
	"context"
	"sort"
	"sync"
	"time"

	"moneymarket/core"

	"github.com/bluele/gcache"
)

// Cache in memory liquidity cache, entries expire after exp
func Cache(capacity int, exp time.Duration) core.IAccountStore {
	return &cacheAccountStore{
		cache:      gcache.New(capacity).LRU().Expiration(exp).Build(),
		shortfalls: make(map[string]*core.AccountLiquidity),
	}
}

type cacheAccountStore struct {
	cache gcache.Cache

	mu         sync.Mutex
	shortfalls map[string]*core.AccountLiquidity
}

func (s *cacheAccountStore) Save(ctx context.Context, liquidity *core.AccountLiquidity) error {
	if err := s.cache.Set(liquidity.UserID, liquidity); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if liquidity.Shortfall.IsPositive() {
		s.shortfalls[liquidity.UserID] = liquidity
	} else {
		delete(s.shortfalls, liquidity.UserID)
	}

	return nil
}

func (s *cacheAccountStore) Find(ctx context.Context, userID string) (*core.AccountLiquidity, bool) {
	v, err := s.cache.Get(userID)
	if err != nil {
		return nil, false
	}

	liquidity, ok := v.(*core.AccountLiquidity)
	return liquidity, ok
}

// Shortfalls accounts in shortfall, largest first; expired or evicted entries are dropped
func (s *cacheAccountStore) Shortfalls(ctx context.Context) []*core.AccountLiquidity {
	s.mu.Lock()
	list := make([]*core.AccountLiquidity, 0, len(s.shortfalls))
	for userID, l := range s.shortfalls {
		if _, ok := s.Find(ctx, userID); !ok {
			delete(s.shortfalls, userID)
			continue
		}

		list = append(list, l)
	}
	s.mu.Unlock()

	sortShortfalls(list)
	return list
}

func sortShortfalls(list []*core.AccountLiquidity) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Shortfall.Equal(list[j].Shortfall) {
			return list[i].Shortfall.GreaterThan(list[j].Shortfall)
		}

		return list[i].UserID < list[j].UserID
	})
}
