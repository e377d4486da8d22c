package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/careersetu/internal/db"
	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/account"
)

// store is the consumer interface for users (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/auth.Users.
type Repo struct {
	store  store
	prefix string
}

// New creates a user repository. prefix namespaces every key.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) userKey(id string) string {
	return r.prefix + "user:" + id
}

func (r *Repo) usernameKey(username string) string {
	return r.prefix + "username:" + username
}

// Create reserves the username then stores the user hash.
// On HSET failure, releases the username reservation.
func (r *Repo) Create(ctx context.Context, u account.User) error {
	ok, err := r.store.SetNX(ctx, r.usernameKey(u.Username), []byte(u.ID))
	if err != nil {
		return fmt.Errorf("reserve username %s: %w", u.Username, err)
	}
	if !ok {
		return domain.ErrAlreadyExists
	}

	if err := r.store.HSet(ctx, r.userKey(u.ID), userToHash(u)); err != nil {
		cleanupErr := r.store.Del(ctx, r.usernameKey(u.Username))
		return errors.Join(fmt.Errorf("hset user %s: %w", u.ID, err), cleanupErr)
	}
	return nil
}

// GetByID loads a user by id.
func (r *Repo) GetByID(ctx context.Context, id string) (account.User, error) {
	m, err := r.store.HGetAll(ctx, r.userKey(id))
	if err != nil {
		return account.User{}, fmt.Errorf("hgetall user %s: %w", id, err)
	}
	if len(m) == 0 {
		return account.User{}, domain.ErrNotFound
	}
	return userFromHash(m)
}

// GetByUsername resolves the username index then loads the user.
func (r *Repo) GetByUsername(ctx context.Context, username string) (account.User, error) {
	id, err := r.store.Get(ctx, r.usernameKey(username))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return account.User{}, domain.ErrNotFound
		}
		return account.User{}, fmt.Errorf("get username %s: %w", username, err)
	}
	return r.GetByID(ctx, string(id))
}

// MarkProfileComplete flags that the user has saved a learner profile.
func (r *Repo) MarkProfileComplete(ctx context.Context, id string) error {
	if err := r.store.HSet(ctx, r.userKey(id), map[string]string{"profile_complete": "true"}); err != nil {
		return fmt.Errorf("hset user %s: %w", id, err)
	}
	return nil
}
