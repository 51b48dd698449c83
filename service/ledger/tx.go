package ledger

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/accounting"
	"moneymarket/pkg/slotmap"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

type transferDirection int

const (
	transferIn transferDirection = iota
	transferOut
)

type transfer struct {
	direction transferDirection
	assetID   string
	userID    string
	amount    decimal.Decimal
}

// Tx staged view of the ledger used by one operation
//
// Records returned by Tx are private copies, callers mutate them in place
// and the mutations are published when the enclosing Update commits.
// Markets are accrued to the transaction time when first loaded.
type Tx struct {
	ctx     context.Context
	base    *state
	now     time.Time
	traceID string

	markets      map[string]*core.Market
	accrued      map[string]*core.Market
	checkpoints  map[string]bool
	newMarkets   map[string]bool
	supplies     map[key]*core.Supply
	borrows      map[key]*core.Borrow
	fixed        map[key]*slotmap.Map[*core.FixedBorrow]
	fixedChanged map[key]map[int]*core.FixedBorrow
	members      map[string]map[string]bool
	policy       *core.Policy

	transfers []transfer
	journal   []*core.Transaction
}

func newTx(ctx context.Context, base *state, now time.Time) *Tx {
	return &Tx{
		ctx:          ctx,
		base:         base,
		now:          now,
		traceID:      uuid.New(),
		markets:      make(map[string]*core.Market),
		accrued:      make(map[string]*core.Market),
		checkpoints:  make(map[string]bool),
		newMarkets:   make(map[string]bool),
		supplies:     make(map[key]*core.Supply),
		borrows:      make(map[key]*core.Borrow),
		fixed:        make(map[key]*slotmap.Map[*core.FixedBorrow]),
		fixedChanged: make(map[key]map[int]*core.FixedBorrow),
		members:      make(map[string]map[string]bool),
	}
}

// Context context of the operation
func (tx *Tx) Context() context.Context {
	return tx.ctx
}

// Now time the transaction runs at
func (tx *Tx) Now() time.Time {
	return tx.now
}

// TraceID trace id of the transaction
func (tx *Tx) TraceID() string {
	return tx.traceID
}

// Market staged market accrued to now
func (tx *Tx) Market(symbol string) (*core.Market, error) {
	if m, ok := tx.markets[symbol]; ok {
		return m, nil
	}

	committed, ok := tx.base.markets[symbol]
	if !ok {
		return nil, core.ErrMarketNotSupported
	}

	m := committed.Clone()
	accounting.AccrueInterest(m, tx.now)
	tx.markets[symbol] = m
	tx.accrued[symbol] = m.Clone()
	return m, nil
}

// Checkpoint persists the accrual of the market even when nothing else changed
func (tx *Tx) Checkpoint(symbol string) error {
	if _, err := tx.Market(symbol); err != nil {
		return err
	}

	tx.checkpoints[symbol] = true
	return nil
}

// Symbols every listed market in symbol order
func (tx *Tx) Symbols() []string {
	set := make(map[string]bool, len(tx.base.markets))
	for symbol := range tx.base.markets {
		set[symbol] = true
	}

	for symbol := range tx.newMarkets {
		set[symbol] = true
	}

	return sortedKeys(set)
}

// Markets every listed market accrued to now
func (tx *Tx) Markets() []*core.Market {
	symbols := tx.Symbols()
	markets := make([]*core.Market, 0, len(symbols))
	for _, symbol := range symbols {
		m, _ := tx.Market(symbol)
		markets = append(markets, m)
	}

	return markets
}

// AddMarket lists a new market
func (tx *Tx) AddMarket(m *core.Market) error {
	if _, err := tx.Market(m.Symbol); err == nil {
		return core.ErrMarketExists
	}

	m.LastAccrualAt = tx.now
	m.CreatedAt = tx.now
	tx.markets[m.Symbol] = m
	tx.newMarkets[m.Symbol] = true
	return nil
}

// Supply staged share balance, zero when the user never supplied
func (tx *Tx) Supply(userID, symbol string) *core.Supply {
	k := key{userID, symbol}
	if s, ok := tx.supplies[k]; ok {
		return s
	}

	var s *core.Supply
	if committed, ok := tx.base.supplies[k]; ok {
		s = committed.Clone()
	} else {
		s = &core.Supply{UserID: userID, Symbol: symbol, Shares: decimal.Zero}
	}

	tx.supplies[k] = s
	return s
}

// Borrow staged variable borrow snapshot, zero when the user never borrowed
func (tx *Tx) Borrow(userID, symbol string) *core.Borrow {
	k := key{userID, symbol}
	if b, ok := tx.borrows[k]; ok {
		return b
	}

	var b *core.Borrow
	if committed, ok := tx.base.borrows[k]; ok {
		b = committed.Clone()
	} else {
		b = &core.Borrow{UserID: userID, Symbol: symbol, Principal: decimal.Zero, InterestIndex: decimal.Zero}
	}

	tx.borrows[k] = b
	return b
}

// FixedBorrows staged fixed borrow slots of the user in the market
//
// The map must only be mutated through AddFixedBorrow and CloseFixedBorrow.
func (tx *Tx) FixedBorrows(userID, symbol string) *slotmap.Map[*core.FixedBorrow] {
	k := key{userID, symbol}
	if positions, ok := tx.fixed[k]; ok {
		return positions
	}

	var positions *slotmap.Map[*core.FixedBorrow]
	if committed, ok := tx.base.fixed[k]; ok {
		positions = committed.Clone((*core.FixedBorrow).Clone)
	} else {
		positions = slotmap.New[*core.FixedBorrow]()
	}

	tx.fixed[k] = positions
	return positions
}

// AddFixedBorrow stores fb at the next slot of its owner
func (tx *Tx) AddFixedBorrow(fb *core.FixedBorrow) int {
	positions := tx.FixedBorrows(fb.UserID, fb.Symbol)
	fb.Slot = positions.Insert(fb)
	fb.Status = core.FixedBorrowStatusOpen
	fb.CreatedAt = tx.now
	tx.markFixed(fb)
	return fb.Slot
}

// CloseFixedBorrow tombstones fb with status
func (tx *Tx) CloseFixedBorrow(fb *core.FixedBorrow, status core.FixedBorrowStatus, repaid decimal.Decimal) {
	positions := tx.FixedBorrows(fb.UserID, fb.Symbol)
	positions.Remove(fb.Slot)

	closedAt := tx.now
	fb.Status = status
	fb.Repaid = repaid
	fb.ClosedAt = &closedAt
	tx.markFixed(fb)
}

func (tx *Tx) markFixed(fb *core.FixedBorrow) {
	k := key{fb.UserID, fb.Symbol}
	changed, ok := tx.fixedChanged[k]
	if !ok {
		changed = make(map[int]*core.FixedBorrow)
		tx.fixedChanged[k] = changed
	}

	changed[fb.Slot] = fb
}

// FixedDebt outstanding fixed principal of the user in the market
func (tx *Tx) FixedDebt(userID, symbol string) decimal.Decimal {
	debt := decimal.Zero
	tx.FixedBorrows(userID, symbol).Range(func(_ int, fb *core.FixedBorrow) bool {
		debt = debt.Add(fb.Principal)
		return true
	})

	return debt
}

func (tx *Tx) memberSet(userID string) map[string]bool {
	if set, ok := tx.members[userID]; ok {
		return set
	}

	set := make(map[string]bool)
	for symbol := range tx.base.members[userID] {
		set[symbol] = true
	}

	tx.members[userID] = set
	return set
}

// Members markets entered by the user in symbol order
func (tx *Tx) Members(userID string) []string {
	return sortedKeys(tx.memberSet(userID))
}

// IsMember the user entered the market
func (tx *Tx) IsMember(userID, symbol string) bool {
	return tx.memberSet(userID)[symbol]
}

// EnterMarket adds the market to the user's collateral, reports whether it was added
func (tx *Tx) EnterMarket(userID, symbol string) bool {
	set := tx.memberSet(userID)
	if set[symbol] {
		return false
	}

	set[symbol] = true
	return true
}

// ExitMarket removes the market from the user's collateral, reports whether it was removed
func (tx *Tx) ExitMarket(userID, symbol string) bool {
	set := tx.memberSet(userID)
	if !set[symbol] {
		return false
	}

	delete(set, symbol)
	return true
}

// Policy staged risk policy
func (tx *Tx) Policy() core.Policy {
	if tx.policy != nil {
		return *tx.policy
	}

	return tx.base.policy
}

// SetPolicy stages policy
func (tx *Tx) SetPolicy(policy core.Policy) {
	policy.ID = core.PolicyID
	policy.UpdatedAt = tx.now
	tx.policy = &policy
}

// Accounts users holding shares, debt or collateral memberships
func (tx *Tx) Accounts() []string {
	set := make(map[string]bool)
	for k, s := range tx.base.supplies {
		if s.Shares.IsPositive() {
			set[k.userID] = true
		}
	}

	for k, b := range tx.base.borrows {
		if b.Principal.IsPositive() {
			set[k.userID] = true
		}
	}

	for k, positions := range tx.base.fixed {
		if positions.Len() > 0 {
			set[k.userID] = true
		}
	}

	return sortedKeys(set)
}

// TransferIn collects amount of assetID from the user on commit
func (tx *Tx) TransferIn(assetID, from string, amount decimal.Decimal) {
	tx.addTransfer(transferIn, assetID, from, amount)
}

// TransferOut pays amount of assetID to the user on commit
func (tx *Tx) TransferOut(assetID, to string, amount decimal.Decimal) {
	tx.addTransfer(transferOut, assetID, to, amount)
}

func (tx *Tx) addTransfer(direction transferDirection, assetID, userID string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}

	tx.transfers = append(tx.transfers, transfer{
		direction: direction,
		assetID:   assetID,
		userID:    userID,
		amount:    amount,
	})
}

// Record appends a journal entry written with the commit
func (tx *Tx) Record(action core.ActionType, userID, symbol string, amount decimal.Decimal, extra core.ExtraDataFormatter) {
	t := &core.Transaction{
		TraceID:   uuid.Modify(tx.traceID, strconv.Itoa(len(tx.journal))),
		Action:    action,
		UserID:    userID,
		Symbol:    symbol,
		Amount:    amount,
		CreatedAt: tx.now,
	}

	t.SetExtraData(extra)
	tx.journal = append(tx.journal, t)
}

// Journal entries recorded so far
func (tx *Tx) Journal() []*core.Transaction {
	return tx.journal
}

// settle executes staged transfers, collecting before paying out, and
// returns the ones that succeeded
func (tx *Tx) settle(ctx context.Context, assets core.IAssetLedger) ([]transfer, error) {
	ordered := make([]transfer, 0, len(tx.transfers))
	for _, t := range tx.transfers {
		if t.direction == transferIn {
			ordered = append(ordered, t)
		}
	}

	for _, t := range tx.transfers {
		if t.direction == transferOut {
			ordered = append(ordered, t)
		}
	}

	done := make([]transfer, 0, len(ordered))
	for _, t := range ordered {
		var err error
		switch t.direction {
		case transferIn:
			err = assets.TransferIn(ctx, t.assetID, t.userID, t.amount)
		case transferOut:
			err = assets.TransferOut(ctx, t.assetID, t.userID, t.amount)
		}

		if err != nil {
			return done, fmt.Errorf("settle %s of %s: %w", t.amount, t.assetID, err)
		}

		done = append(done, t)
	}

	return done, nil
}

// revert compensates settled transfers in reverse order
func (tx *Tx) revert(ctx context.Context, assets core.IAssetLedger, done []transfer) {
	log := logger.FromContext(ctx)

	for i := len(done) - 1; i >= 0; i-- {
		t := done[i]

		var err error
		switch t.direction {
		case transferIn:
			err = assets.TransferOut(ctx, t.assetID, t.userID, t.amount)
		case transferOut:
			err = assets.TransferIn(ctx, t.assetID, t.userID, t.amount)
		}

		if err != nil {
			log.WithError(err).Errorf("revert transfer %s %s of %s failed", t.amount, t.assetID, t.userID)
		}
	}
}

func (tx *Tx) changeSet() *core.ChangeSet {
	cs := &core.ChangeSet{
		Transactions: tx.journal,
		Policy:       tx.policy,
	}

	for _, k := range sortedKeys(tx.supplies) {
		s := tx.supplies[k]
		committed, ok := tx.base.supplies[k]
		if ok && committed.Shares.Equal(s.Shares) {
			continue
		}

		if !ok && s.Shares.IsZero() {
			continue
		}

		if !ok {
			s.CreatedAt = tx.now
		}

		s.UpdatedAt = tx.now
		cs.Supplies = append(cs.Supplies, s)
	}

	for _, k := range sortedKeys(tx.borrows) {
		b := tx.borrows[k]
		committed, ok := tx.base.borrows[k]
		if ok && committed.Principal.Equal(b.Principal) && committed.InterestIndex.Equal(b.InterestIndex) {
			continue
		}

		if !ok && b.Principal.IsZero() {
			continue
		}

		if !ok {
			b.CreatedAt = tx.now
		}

		b.UpdatedAt = tx.now
		cs.Borrows = append(cs.Borrows, b)
	}

	// a written borrow snapshots the index, so its market is written too
	indexed := make(map[string]bool, len(cs.Borrows))
	for _, b := range cs.Borrows {
		indexed[b.Symbol] = true
	}

	for _, symbol := range sortedKeys(tx.markets) {
		m := tx.markets[symbol]
		if before, ok := tx.accrued[symbol]; ok && !tx.checkpoints[symbol] && !indexed[symbol] && !marketChanged(before, m) {
			continue
		}

		m.Version++
		m.UpdatedAt = tx.now
		cs.Markets = append(cs.Markets, m)
	}

	for _, k := range sortedKeys(tx.fixedChanged) {
		changed := tx.fixedChanged[k]
		slots := make([]int, 0, len(changed))
		for slot := range changed {
			slots = append(slots, slot)
		}

		sort.Ints(slots)
		for _, slot := range slots {
			fb := changed[slot]
			fb.UpdatedAt = tx.now
			cs.FixedBorrows = append(cs.FixedBorrows, fb)
		}
	}

	for _, userID := range sortedKeys(tx.members) {
		set := tx.members[userID]
		before := tx.base.members[userID]
		for _, symbol := range sortedKeys(set) {
			if !before[symbol] {
				cs.Members = append(cs.Members, &core.Member{UserID: userID, Symbol: symbol, CreatedAt: tx.now})
			}
		}

		for _, symbol := range sortedKeys(before) {
			if !set[symbol] {
				cs.RemovedMembers = append(cs.RemovedMembers, &core.Member{UserID: userID, Symbol: symbol})
			}
		}
	}

	return cs
}

func sortedKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return less(keys[i], keys[j])
	})

	return keys
}

func less[K comparable](a, b K) bool {
	switch a := any(a).(type) {
	case string:
		return a < any(b).(string)
	case key:
		b := any(b).(key)
		if a.userID != b.userID {
			return a.userID < b.userID
		}

		return a.symbol < b.symbol
	default:
		return false
	}
}

// marketChanged reports whether an operation touched the market beyond accruing it
func marketChanged(before, after *core.Market) bool {
	if before.RestPeriod != after.RestPeriod || before.Status != after.Status {
		return true
	}

	pairs := [][2]decimal.Decimal{
		{before.TotalShares, after.TotalShares},
		{before.TotalCash, after.TotalCash},
		{before.TotalVariableBorrows, after.TotalVariableBorrows},
		{before.TotalFixedBorrows, after.TotalFixedBorrows},
		{before.TotalReserves, after.TotalReserves},
		{before.BorrowIndex, after.BorrowIndex},
		{before.InitExchangeRate, after.InitExchangeRate},
		{before.ReserveFactor, after.ReserveFactor},
		{before.EarlyRepayPenalty, after.EarlyRepayPenalty},
		{before.CollateralFactor, after.CollateralFactor},
		{before.BaseRate, after.BaseRate},
		{before.Multiplier, after.Multiplier},
		{before.JumpMultiplier, after.JumpMultiplier},
		{before.Kink, after.Kink},
	}

	for _, p := range pairs {
		if !p[0].Equal(p[1]) {
			return true
		}
	}

	return false
}
