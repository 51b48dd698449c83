package member

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

type memberStore struct {
	db *db.DB
}

// New new market membership store
func New(db *db.DB) core.IMemberStore {
	return &memberStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Member{})
		if err := tx.AutoMigrate(core.Member{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *memberStore) Save(ctx context.Context, tx *db.DB, member *core.Member) error {
	return tx.Update().Where("user_id = ? AND symbol = ?", member.UserID, member.Symbol).FirstOrCreate(member).Error
}

func (s *memberStore) Delete(ctx context.Context, tx *db.DB, member *core.Member) error {
	return tx.Update().Where("user_id = ? AND symbol = ?", member.UserID, member.Symbol).Delete(core.Member{}).Error
}

func (s *memberStore) FindByUser(ctx context.Context, userID string) ([]*core.Member, error) {
	var members []*core.Member
	if err := s.db.View().Where("user_id = ?", userID).Order("symbol").Find(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}

func (s *memberStore) All(ctx context.Context) ([]*core.Member, error) {
	var members []*core.Member
	if err := s.db.View().Find(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}
