package asset

import (
	"context"
	"errors"
	"testing"

	"moneymarket/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfers(t *testing.T) {
	ctx := context.Background()
	l := New()
	l.Mint(ctx, "usdc", "alice", number.Decimal("10"))

	require.NoError(t, l.TransferIn(ctx, "usdc", "alice", number.Decimal("4")))
	balance, _ := l.BalanceOf(ctx, "usdc", "alice")
	assert.Equal(t, "6", balance.String())
	assert.Equal(t, "4", l.Pool("usdc").String())

	err := l.TransferIn(ctx, "usdc", "alice", number.Decimal("7"))
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	balance, _ = l.BalanceOf(ctx, "usdc", "alice")
	assert.Equal(t, "6", balance.String(), "failed transfer has no effect")

	require.NoError(t, l.TransferOut(ctx, "usdc", "bob", number.Decimal("4")))
	assert.True(t, l.Pool("usdc").IsZero())

	err = l.TransferOut(ctx, "usdc", "bob", number.Decimal("1"))
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
}
