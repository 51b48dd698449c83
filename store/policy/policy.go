package policy

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type policyStore struct {
	db *db.DB
}

// New new policy store, the policy is a single row
func New(db *db.DB) core.IPolicyStore {
	return &policyStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Policy{})
		if err := tx.AutoMigrate(core.Policy{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *policyStore) Save(ctx context.Context, tx *db.DB, policy *core.Policy) error {
	policy.ID = core.PolicyID
	return tx.Update().Save(policy).Error
}

// Find returns nil when no policy was saved yet
func (s *policyStore) Find(ctx context.Context) (*core.Policy, error) {
	var policy core.Policy
	err := s.db.View().Where("id = ?", core.PolicyID).First(&policy).Error
	if store.IsErrNotFound(err) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &policy, nil
}
