package state

import (
	"context"
	"fmt"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

// Stores record stores the ledger state is spread over
type Stores struct {
	Markets      core.IMarketStore
	Supplies     core.ISupplyStore
	Borrows      core.IBorrowStore
	FixedBorrows core.IFixedBorrowStore
	Members      core.IMemberStore
	Policy       core.IPolicyStore
	Transactions core.ITransactionStore
}

type stateStore struct {
	db     *db.DB
	stores Stores
}

// New new state store
func New(db *db.DB, stores Stores) core.IStateStore {
	return &stateStore{
		db:     db,
		stores: stores,
	}
}

func (s *stateStore) Load(ctx context.Context) (*core.Snapshot, error) {
	var (
		snapshot core.Snapshot
		err      error
	)

	if snapshot.Markets, err = s.stores.Markets.All(ctx); err != nil {
		return nil, fmt.Errorf("load markets: %w", err)
	}

	if snapshot.Supplies, err = s.stores.Supplies.All(ctx); err != nil {
		return nil, fmt.Errorf("load supplies: %w", err)
	}

	if snapshot.Borrows, err = s.stores.Borrows.All(ctx); err != nil {
		return nil, fmt.Errorf("load borrows: %w", err)
	}

	if snapshot.FixedBorrows, err = s.stores.FixedBorrows.All(ctx); err != nil {
		return nil, fmt.Errorf("load fixed borrows: %w", err)
	}

	if snapshot.Members, err = s.stores.Members.All(ctx); err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	if snapshot.Policy, err = s.stores.Policy.Find(ctx); err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}

	return &snapshot, nil
}

func (s *stateStore) Commit(ctx context.Context, cs *core.ChangeSet) error {
	if cs.Empty() {
		return nil
	}

	return s.db.Tx(func(tx *db.DB) error {
		for _, m := range cs.Markets {
			if err := s.stores.Markets.Save(ctx, tx, m); err != nil {
				return fmt.Errorf("save market %s: %w", m.Symbol, err)
			}
		}

		for _, supply := range cs.Supplies {
			if err := s.stores.Supplies.Save(ctx, tx, supply); err != nil {
				return fmt.Errorf("save supply: %w", err)
			}
		}

		for _, borrow := range cs.Borrows {
			if err := s.stores.Borrows.Save(ctx, tx, borrow); err != nil {
				return fmt.Errorf("save borrow: %w", err)
			}
		}

		for _, fb := range cs.FixedBorrows {
			if err := s.stores.FixedBorrows.Save(ctx, tx, fb); err != nil {
				return fmt.Errorf("save fixed borrow: %w", err)
			}
		}

		for _, member := range cs.Members {
			if err := s.stores.Members.Save(ctx, tx, member); err != nil {
				return fmt.Errorf("save member: %w", err)
			}
		}

		for _, member := range cs.RemovedMembers {
			if err := s.stores.Members.Delete(ctx, tx, member); err != nil {
				return fmt.Errorf("delete member: %w", err)
			}
		}

		if cs.Policy != nil {
			if err := s.stores.Policy.Save(ctx, tx, cs.Policy); err != nil {
				return fmt.Errorf("save policy: %w", err)
			}
		}

		for _, t := range cs.Transactions {
			if err := s.stores.Transactions.Create(ctx, tx, t); err != nil {
				return fmt.Errorf("create transaction: %w", err)
			}
		}

		return nil
	})
}
