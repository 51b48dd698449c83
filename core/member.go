package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Member market entered as collateral by a user
type Member struct {
	UserID    string    `sql:"size:36;PRIMARY_KEY" json:"user_id"`
	Symbol    string    `sql:"size:20;PRIMARY_KEY" json:"symbol"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IMemberStore member store interface
type IMemberStore interface {
	Save(ctx context.Context, tx *db.DB, member *Member) error
	Delete(ctx context.Context, tx *db.DB, member *Member) error
	FindByUser(ctx context.Context, userID string) ([]*Member, error)
	All(ctx context.Context) ([]*Member, error)
}
