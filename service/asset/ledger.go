package asset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"moneymarket/core"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds transfer exceeds balance
var ErrInsufficientFunds = errors.New("insufficient funds")

// Ledger in memory underlying balances, the pool is the market side of every transfer
type Ledger struct {
	mu       sync.Mutex
	balances map[string]map[string]decimal.Decimal
	pools    map[string]decimal.Decimal
}

// New in memory asset ledger
func New() *Ledger {
	return &Ledger{
		balances: make(map[string]map[string]decimal.Decimal),
		pools:    make(map[string]decimal.Decimal),
	}
}

var _ core.IAssetLedger = (*Ledger)(nil)

// Mint credits amount to user
func (l *Ledger) Mint(ctx context.Context, assetID, userID string, amount decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.account(assetID)[userID] = l.account(assetID)[userID].Add(amount)
	logger.FromContext(ctx).WithField("asset", assetID).Debugf("mint %s to %s", amount, userID)
}

func (l *Ledger) BalanceOf(_ context.Context, assetID, userID string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.account(assetID)[userID], nil
}

// Pool balance held by the markets of assetID
func (l *Ledger) Pool(assetID string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.pools[assetID]
}

func (l *Ledger) TransferIn(_ context.Context, assetID, from string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return core.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	accounts := l.account(assetID)
	if accounts[from].LessThan(amount) {
		return fmt.Errorf("transfer %s %s from %s: %w", amount, assetID, from, ErrInsufficientFunds)
	}

	accounts[from] = accounts[from].Sub(amount)
	l.pools[assetID] = l.pools[assetID].Add(amount)
	return nil
}

func (l *Ledger) TransferOut(_ context.Context, assetID, to string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return core.ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pools[assetID].LessThan(amount) {
		return fmt.Errorf("transfer %s %s to %s: %w", amount, assetID, to, ErrInsufficientFunds)
	}

	accounts := l.account(assetID)
	l.pools[assetID] = l.pools[assetID].Sub(amount)
	accounts[to] = accounts[to].Add(amount)
	return nil
}

func (l *Ledger) account(assetID string) map[string]decimal.Decimal {
	accounts, ok := l.balances[assetID]
	if !ok {
		accounts = make(map[string]decimal.Decimal)
		l.balances[assetID] = accounts
	}

	return accounts
}
