package account

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"moneymarket/core"

	"github.com/fox-one/pkg/logger"
	"github.com/go-redis/redis"
)

const shortfallKey = "moneymarket:shortfalls"

// New redis backed liquidity cache shared between processes
func New(client *redis.Client, exp time.Duration) core.IAccountStore {
	return &accountStore{
		Redis: client,
		exp:   exp,
	}
}

type accountStore struct {
	Redis *redis.Client
	exp   time.Duration
}

func (s *accountStore) Save(ctx context.Context, liquidity *core.AccountLiquidity) error {
	bs, err := json.Marshal(liquidity)
	if err != nil {
		return err
	}

	if err := s.Redis.Set(s.liquidityCacheKey(liquidity.UserID), bs, s.exp).Err(); err != nil {
		return err
	}

	if liquidity.Shortfall.IsPositive() {
		score, _ := liquidity.Shortfall.Float64()
		return s.Redis.ZAdd(shortfallKey, redis.Z{Score: score, Member: liquidity.UserID}).Err()
	}

	return s.Redis.ZRem(shortfallKey, liquidity.UserID).Err()
}

func (s *accountStore) Find(ctx context.Context, userID string) (*core.AccountLiquidity, bool) {
	bs, err := s.Redis.Get(s.liquidityCacheKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var liquidity core.AccountLiquidity
	if err := json.Unmarshal(bs, &liquidity); err != nil {
		return nil, false
	}

	return &liquidity, true
}

// Shortfalls accounts in shortfall, largest first; expired entries are dropped
func (s *accountStore) Shortfalls(ctx context.Context) []*core.AccountLiquidity {
	users, err := s.Redis.ZRevRange(shortfallKey, 0, -1).Result()
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("list shortfalls")
		return nil
	}

	list := make([]*core.AccountLiquidity, 0, len(users))
	for _, userID := range users {
		liquidity, ok := s.Find(ctx, userID)
		if !ok {
			s.Redis.ZRem(shortfallKey, userID)
			continue
		}

		list = append(list, liquidity)
	}

	sortShortfalls(list)
	return list
}

func (s *accountStore) liquidityCacheKey(userID string) string {
	return fmt.Sprintf("moneymarket:liquidity:%s", userID)
}
