package account

import (
	"context"
	"testing"
	"time"

	"moneymarket/core"

	"github.com/bmizerany/assert"
	"github.com/shopspring/decimal"
)

func TestCacheShortfalls(t *testing.T) {
	ctx := context.Background()
	s := Cache(16, time.Minute)

	save := func(userID string, liquidity, shortfall int64) {
		err := s.Save(ctx, &core.AccountLiquidity{
			UserID:    userID,
			Liquidity: decimal.NewFromInt(liquidity),
			Shortfall: decimal.NewFromInt(shortfall),
		})
		assert.Equal(t, nil, err)
	}

	save("alice", 100, 0)
	save("bob", 0, 5)
	save("carol", 0, 50)

	l, ok := s.Find(ctx, "alice")
	assert.T(t, ok)
	assert.Equal(t, "100", l.Liquidity.String())

	_, ok = s.Find(ctx, "dave")
	assert.T(t, !ok)

	list := s.Shortfalls(ctx)
	assert.Equal(t, 2, len(list))
	assert.Equal(t, "carol", list[0].UserID)
	assert.Equal(t, "bob", list[1].UserID)

	// bob repaid
	save("bob", 10, 0)
	list = s.Shortfalls(ctx)
	assert.Equal(t, 1, len(list))
	assert.Equal(t, "carol", list[0].UserID)
}

func TestCacheShortfallsExpire(t *testing.T) {
	ctx := context.Background()
	s := Cache(16, 50*time.Millisecond)

	err := s.Save(ctx, &core.AccountLiquidity{
		UserID:    "bob",
		Liquidity: decimal.Zero,
		Shortfall: decimal.NewFromInt(5),
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(s.Shortfalls(ctx)))

	// bob is never scanned again
	time.Sleep(100 * time.Millisecond)

	_, ok := s.Find(ctx, "bob")
	assert.T(t, !ok)
	assert.Equal(t, 0, len(s.Shortfalls(ctx)))
}
