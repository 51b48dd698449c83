package controller

import (
	"context"
	"testing"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/number"
	"moneymarket/service/asset"
	"moneymarket/service/ledger"

	"github.com/facebookgo/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceMap map[string]decimal.Decimal

func (p priceMap) PriceOf(_ context.Context, symbol string) (decimal.Decimal, error) {
	price, ok := p[symbol]
	if !ok {
		return decimal.Zero, core.ErrPriceError
	}

	return price, nil
}

func market(symbol string, decimals int32, collateralFactor string) *core.Market {
	return &core.Market{
		Symbol:           symbol,
		AssetID:          symbol,
		Decimals:         decimals,
		InitExchangeRate: number.Decimal("0.02"),
		BorrowIndex:      number.One,
		CollateralFactor: number.Decimal(collateralFactor),
		BaseRate:         number.Decimal("0.02"),
		Multiplier:       number.Decimal("0.2"),
		Status:           core.MarketStatusOpen,
	}
}

func newTestController(t *testing.T) (*Service, *ledger.Ledger, priceMap) {
	clk := clock.NewMock()
	clk.Add(1700000000 * time.Second)

	prices := priceMap{
		"USDC": number.One,
		"ETH":  number.Decimal("2000"),
	}

	l := ledger.New(asset.New(), ledger.WithClock(clk))
	require.NoError(t, l.Update(context.Background(), func(tx *ledger.Tx) error {
		if err := tx.AddMarket(market("USDC", 6, "0.8")); err != nil {
			return err
		}

		return tx.AddMarket(market("ETH", 8, "0.75"))
	}))

	cfg := &core.Config{Admins: []string{"admin"}}
	return New(cfg, l, prices), l, prices
}

// position stages shares of collateral and a variable borrow directly on the ledger
func position(t *testing.T, l *ledger.Ledger, userID, symbol, shares, borrowSymbol, borrow string) {
	require.NoError(t, l.Update(context.Background(), func(tx *ledger.Tx) error {
		m, err := tx.Market(symbol)
		if err != nil {
			return err
		}

		s := number.Decimal(shares)
		tx.Supply(userID, symbol).Shares = s
		m.TotalShares = m.TotalShares.Add(s)
		m.TotalCash = m.TotalCash.Add(s.Mul(m.InitExchangeRate))

		if borrowSymbol != "" {
			bm, err := tx.Market(borrowSymbol)
			if err != nil {
				return err
			}

			b := tx.Borrow(userID, borrowSymbol)
			b.Principal = number.Decimal(borrow)
			b.InterestIndex = bm.BorrowIndex
			bm.TotalVariableBorrows = bm.TotalVariableBorrows.Add(b.Principal)
		}

		return nil
	}))
}

func TestLiquidateCalculateSeizeTokens(t *testing.T) {
	s, _, prices := newTestController(t)
	ctx := context.Background()

	seize, err := s.LiquidateCalculateSeizeTokens(ctx, "USDC", "ETH", number.Decimal("150000"))
	require.NoError(t, err)
	// 150000 * 1 * 1.1 / (2000 * 0.02)
	assert.Equal(t, "4125", seize.String())

	delete(prices, "ETH")
	_, err = s.LiquidateCalculateSeizeTokens(ctx, "USDC", "ETH", number.Decimal("1"))
	assert.Equal(t, core.ErrPriceError, err)

	_, err = s.LiquidateCalculateSeizeTokens(ctx, "USDC", "BTC", number.Decimal("1"))
	assert.Equal(t, core.ErrMarketNotSupported, err)
}

func TestAccountLiquidity(t *testing.T) {
	s, l, prices := newTestController(t)
	ctx := context.Background()

	position(t, l, "bob", "ETH", "50", "USDC", "1000")

	// not entered, collateral does not count
	liquidity, err := s.AccountLiquidity(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, liquidity.Liquidity.IsZero())
	assert.Equal(t, "1000", liquidity.Shortfall.String())

	require.NoError(t, s.EnterMarkets(ctx, "bob", []string{"ETH"}))
	liquidity, err = s.AccountLiquidity(ctx, "bob")
	require.NoError(t, err)
	// 50 * 0.02 * 2000 * 0.75 - 1000
	assert.Equal(t, "500", liquidity.Liquidity.String())
	assert.True(t, liquidity.Shortfall.IsZero())

	prices["ETH"] = number.Decimal("1000")
	liquidity, err = s.AccountLiquidity(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, liquidity.Liquidity.IsZero())
	assert.Equal(t, "250", liquidity.Shortfall.String())
}

func TestFixedDebtCounts(t *testing.T) {
	s, l, _ := newTestController(t)
	ctx := context.Background()

	position(t, l, "bob", "ETH", "50", "", "")
	require.NoError(t, s.EnterMarkets(ctx, "bob", []string{"ETH"}))
	require.NoError(t, l.Update(ctx, func(tx *ledger.Tx) error {
		tx.AddFixedBorrow(&core.FixedBorrow{UserID: "bob", Symbol: "USDC", Principal: number.Decimal("1400"), Duration: 60, StartAt: tx.Now()})
		return nil
	}))

	liquidity, err := s.AccountLiquidity(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "100", liquidity.Liquidity.String())

	_ = l.View(ctx, func(tx *ledger.Tx) error {
		assert.Equal(t, core.ErrInsufficientLiquidity, s.BorrowAllowed(tx, "bob", "USDC", number.Decimal("101")))
		assert.NoError(t, s.BorrowAllowed(tx, "bob", "USDC", number.Decimal("100")))

		// 10 shares are worth 300 of collateral
		assert.Equal(t, core.ErrInsufficientLiquidity, s.RedeemAllowed(tx, "bob", "ETH", number.Decimal("10")))

		// fixed debt stays out of variable liquidation by default
		assert.Equal(t, core.ErrInsufficientShortfall, s.LiquidateBorrowAllowed(tx, "bob", "USDC", number.Decimal("1")))
		return nil
	})

	require.NoError(t, s.updatePolicy(ctx, "admin", "fixed_debt_blocks_collateral", decimal.Zero, true, func(p *core.Policy) {
		p.FixedDebtBlocksCollateral = false
	}))

	_ = l.View(ctx, func(tx *ledger.Tx) error {
		assert.NoError(t, s.RedeemAllowed(tx, "bob", "ETH", number.Decimal("10")))
		return nil
	})
}

func TestEnterExitMarket(t *testing.T) {
	s, l, _ := newTestController(t)
	ctx := context.Background()

	assert.Equal(t, core.ErrInvalidArgument, s.EnterMarkets(ctx, "bob", nil))
	assert.Equal(t, core.ErrMarketNotSupported, s.EnterMarkets(ctx, "bob", []string{"BTC"}))

	position(t, l, "bob", "ETH", "50", "USDC", "100")
	require.NoError(t, s.EnterMarkets(ctx, "bob", []string{"ETH", "USDC"}))

	members, err := s.Members(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"ETH", "USDC"}, members)

	assert.Equal(t, core.ErrNonzeroBorrowBalance, s.ExitMarket(ctx, "bob", "USDC"))
	assert.Equal(t, core.ErrInsufficientLiquidity, s.ExitMarket(ctx, "bob", "ETH"))

	// repaid, exits freely
	require.NoError(t, l.Update(ctx, func(tx *ledger.Tx) error {
		m, _ := tx.Market("USDC")
		m.TotalVariableBorrows = decimal.Zero
		tx.Borrow("bob", "USDC").Principal = decimal.Zero
		return nil
	}))

	require.NoError(t, s.ExitMarket(ctx, "bob", "USDC"))
	require.NoError(t, s.ExitMarket(ctx, "bob", "ETH"))
	require.NoError(t, s.ExitMarket(ctx, "bob", "ETH"), "exiting twice is a no-op")

	members, err = s.Members(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestPolicySetters(t *testing.T) {
	s, _, prices := newTestController(t)
	ctx := context.Background()

	assert.Equal(t, core.ErrOperationForbidden, s.SetCloseFactor(ctx, "bob", number.Decimal("0.5")))
	assert.Equal(t, core.ErrInvalidArgument, s.SetCloseFactor(ctx, "admin", number.Decimal("0.95")))
	assert.Equal(t, core.ErrInvalidArgument, s.SetLiquidationIncentive(ctx, "admin", number.Decimal("0.9")))
	assert.Equal(t, core.ErrInvalidArgument, s.SetProtocolSeizeShare(ctx, "admin", number.One))
	assert.Equal(t, core.ErrInvalidArgument, s.SetCollateralFactor(ctx, "admin", "ETH", number.Decimal("0.91")))

	require.NoError(t, s.SetCloseFactor(ctx, "admin", number.Decimal("0.6")))
	require.NoError(t, s.SetLiquidationIncentive(ctx, "admin", number.Decimal("1.08")))
	require.NoError(t, s.SetProtocolSeizeShare(ctx, "admin", decimal.Zero))

	policy, err := s.Policy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.6", policy.CloseFactor.String())
	assert.Equal(t, "1.08", policy.LiquidationIncentive.String())
	assert.True(t, policy.ProtocolSeizeShare.IsZero())

	delete(prices, "ETH")
	assert.Equal(t, core.ErrPriceError, s.SetCollateralFactor(ctx, "admin", "ETH", number.Decimal("0.5")))
	assert.NoError(t, s.SetCollateralFactor(ctx, "admin", "ETH", decimal.Zero))
}
