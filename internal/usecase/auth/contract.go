package auth

import (
	"context"

	"github.com/kailas-cloud/careersetu/internal/domain/account"
)

// Users persists registered users.
type Users interface {
	Create(ctx context.Context, u account.User) error
	GetByID(ctx context.Context, id string) (account.User, error)
	GetByUsername(ctx context.Context, username string) (account.User, error)
}

// Attempts counts failed logins per username within a window.
type Attempts interface {
	Fail(ctx context.Context, username string) (int64, error)
	Count(ctx context.Context, username string) (int64, error)
	Reset(ctx context.Context, username string) error
}
