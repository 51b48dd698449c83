// Package ledger holds the money market state behind a single writer.
//
// Every operation runs inside Update or View. Update holds the write lock
// for the whole operation, stages changes on copies, settles underlying
// transfers, persists the change set and only then publishes the staged
// records. A failure at any step leaves the published state untouched.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/slotmap"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
)

type key struct {
	userID string
	symbol string
}

type state struct {
	markets  map[string]*core.Market
	supplies map[key]*core.Supply
	borrows  map[key]*core.Borrow
	fixed    map[key]*slotmap.Map[*core.FixedBorrow]
	members  map[string]map[string]bool
	policy   core.Policy
}

func newState(policy core.Policy) *state {
	return &state{
		markets:  make(map[string]*core.Market),
		supplies: make(map[key]*core.Supply),
		borrows:  make(map[key]*core.Borrow),
		fixed:    make(map[key]*slotmap.Map[*core.FixedBorrow]),
		members:  make(map[string]map[string]bool),
		policy:   policy,
	}
}

// Option ledger option
type Option func(l *Ledger)

// WithClock clock used for accrual and maturity
func WithClock(c clock.Clock) Option {
	return func(l *Ledger) {
		l.clock = c
	}
}

// WithStore persists every committed change set to store
func WithStore(store core.IStateStore) Option {
	return func(l *Ledger) {
		l.store = store
	}
}

// WithPolicy policy used until one is persisted
func WithPolicy(policy core.Policy) Option {
	return func(l *Ledger) {
		l.state.policy = policy
	}
}

// Ledger single writer money market state
type Ledger struct {
	mu     sync.RWMutex
	clock  clock.Clock
	assets core.IAssetLedger
	store  core.IStateStore
	state  *state
}

// New ledger settling underlying transfers on assets
func New(assets core.IAssetLedger, opts ...Option) *Ledger {
	l := &Ledger{
		clock:  clock.New(),
		assets: assets,
		state:  newState(core.DefaultPolicy()),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Now current time of the ledger clock
func (l *Ledger) Now() time.Time {
	return l.clock.Now()
}

// Load replaces the state with the one persisted in the store
func (l *Ledger) Load(ctx context.Context) error {
	if l.store == nil {
		return nil
	}

	snapshot, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	s := newState(l.state.policy)
	if snapshot.Policy != nil {
		s.policy = *snapshot.Policy
	}

	for _, m := range snapshot.Markets {
		s.markets[m.Symbol] = m
	}

	for _, supply := range snapshot.Supplies {
		s.supplies[key{supply.UserID, supply.Symbol}] = supply
	}

	for _, borrow := range snapshot.Borrows {
		s.borrows[key{borrow.UserID, borrow.Symbol}] = borrow
	}

	fixed := append([]*core.FixedBorrow(nil), snapshot.FixedBorrows...)
	sort.SliceStable(fixed, func(i, j int) bool {
		a, b := fixed[i], fixed[j]
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}

		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}

		return a.Slot < b.Slot
	})

	for _, fb := range fixed {
		k := key{fb.UserID, fb.Symbol}
		positions, ok := s.fixed[k]
		if !ok {
			positions = slotmap.New[*core.FixedBorrow]()
			s.fixed[k] = positions
		}

		if slot := positions.Insert(fb); slot != fb.Slot {
			return fmt.Errorf("fixed borrow %s/%s: slot %d restored at %d", fb.UserID, fb.Symbol, fb.Slot, slot)
		}

		if !fb.IsOpen() {
			positions.Remove(fb.Slot)
		}
	}

	for _, member := range snapshot.Members {
		set, ok := s.members[member.UserID]
		if !ok {
			set = make(map[string]bool)
			s.members[member.UserID] = set
		}

		set[member.Symbol] = true
	}

	l.state = s
	logger.FromContext(ctx).Infof("ledger loaded, %d markets, %d supplies, %d borrows, %d fixed borrows",
		len(s.markets), len(s.supplies), len(s.borrows), len(fixed))
	return nil
}

// View runs fn against a consistent snapshot, staged changes are discarded
func (l *Ledger) View(ctx context.Context, fn func(tx *Tx) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tx := newTx(ctx, l.state, l.clock.Now())
	return fn(tx)
}

// Update runs fn exclusively and commits its staged changes if fn succeeds
func (l *Ledger) Update(ctx context.Context, fn func(tx *Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := newTx(ctx, l.state, l.clock.Now())
	if err := fn(tx); err != nil {
		return err
	}

	return l.commit(ctx, tx)
}

func (l *Ledger) commit(ctx context.Context, tx *Tx) error {
	log := logger.FromContext(ctx)

	done, err := tx.settle(ctx, l.assets)
	if err != nil {
		tx.revert(ctx, l.assets, done)
		return err
	}

	cs := tx.changeSet()
	if l.store != nil && !cs.Empty() {
		if err := l.store.Commit(ctx, cs); err != nil {
			tx.revert(ctx, l.assets, done)
			return fmt.Errorf("commit change set: %w", err)
		}
	}

	l.state.apply(tx, cs)
	for _, t := range cs.Transactions {
		log.WithField("trace", t.TraceID).Debugf("%s %s %s %s", t.Action, t.UserID, t.Symbol, t.Amount)
	}

	return nil
}

func (s *state) apply(tx *Tx, cs *core.ChangeSet) {
	for _, m := range cs.Markets {
		s.markets[m.Symbol] = m
	}

	for _, supply := range cs.Supplies {
		s.supplies[key{supply.UserID, supply.Symbol}] = supply
	}

	for _, borrow := range cs.Borrows {
		s.borrows[key{borrow.UserID, borrow.Symbol}] = borrow
	}

	for k, positions := range tx.fixed {
		s.fixed[k] = positions
	}

	for userID, set := range tx.members {
		if len(set) == 0 {
			delete(s.members, userID)
			continue
		}

		s.members[userID] = set
	}

	if tx.policy != nil {
		s.policy = *tx.policy
	}
}
