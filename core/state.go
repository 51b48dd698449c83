package core

import "context"

// Snapshot full persisted ledger state
type Snapshot struct {
	Markets      []*Market
	Supplies     []*Supply
	Borrows      []*Borrow
	FixedBorrows []*FixedBorrow
	Members      []*Member
	Policy       *Policy
}

// ChangeSet records written by one committed ledger transaction
type ChangeSet struct {
	Markets        []*Market
	Supplies       []*Supply
	Borrows        []*Borrow
	FixedBorrows   []*FixedBorrow
	Members        []*Member
	RemovedMembers []*Member
	Policy         *Policy
	Transactions   []*Transaction
}

// Empty nothing to write
func (c *ChangeSet) Empty() bool {
	return len(c.Markets) == 0 &&
		len(c.Supplies) == 0 &&
		len(c.Borrows) == 0 &&
		len(c.FixedBorrows) == 0 &&
		len(c.Members) == 0 &&
		len(c.RemovedMembers) == 0 &&
		c.Policy == nil &&
		len(c.Transactions) == 0
}

// IStateStore persists the ledger
type IStateStore interface {
	Load(ctx context.Context) (*Snapshot, error)
	// Commit writes every record of cs or none of them
	Commit(ctx context.Context, cs *ChangeSet) error
}
