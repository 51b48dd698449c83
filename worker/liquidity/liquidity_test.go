package liquidity

import (
	"context"
	"testing"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/number"
	"moneymarket/store/account"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type controller struct {
	core.IControllerService
	shortfalls map[string]string
}

func (c *controller) Accounts(_ context.Context) ([]string, error) {
	return []string{"alice", "bob", "carol"}, nil
}

func (c *controller) AccountLiquidity(_ context.Context, userID string) (*core.AccountLiquidity, error) {
	l := &core.AccountLiquidity{
		UserID:    userID,
		Liquidity: number.Decimal("100"),
		Shortfall: decimal.Zero,
	}

	if s, ok := c.shortfalls[userID]; ok {
		l.Liquidity = decimal.Zero
		l.Shortfall = number.Decimal(s)
	}

	return l, nil
}

func TestLiquidityWorker(t *testing.T) {
	ctx := context.Background()
	store := account.Cache(16, time.Minute)
	ctrl := &controller{shortfalls: map[string]string{"bob": "20", "carol": "35"}}

	w, err := New(&core.Config{}, ctrl, store)
	require.NoError(t, err)
	require.NoError(t, w.onWork(ctx))

	alice, ok := store.Find(ctx, "alice")
	require.True(t, ok)
	assert.Equal(t, "100", alice.Liquidity.String())

	shortfalls := store.Shortfalls(ctx)
	require.Len(t, shortfalls, 2)
	assert.Equal(t, "carol", shortfalls[0].UserID)
	assert.Equal(t, "bob", shortfalls[1].UserID)

	// bob repaid
	delete(ctrl.shortfalls, "bob")
	require.NoError(t, w.onWork(ctx))
	shortfalls = store.Shortfalls(ctx)
	require.Len(t, shortfalls, 1)
	assert.Equal(t, "carol", shortfalls[0].UserID)
}
