package core

import (
	"context"
	"time"
)

// User authenticated account
type User struct {
	UserID string `json:"user_id"`
	// session expiry
	ExpiresAt time.Time `json:"-"`
}

// Session user session
type Session interface {
	Login(ctx context.Context, accessToken string) (*User, error)
	Issue(ctx context.Context, userID string) (string, error)
}
