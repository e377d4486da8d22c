// Package attempts counts failed logins per username inside a fixed window.
package attempts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/careersetu/internal/db"
)

// store is the consumer interface for attempt counters (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
	Del(ctx context.Context, key string) error
}

// Store implements usecase/auth.Attempts on top of DB (INCRBY + EXPIRE NX).
// The window starts at the first failure and is not extended by later ones.
type Store struct {
	store  store
	prefix string
	window time.Duration
}

// New creates an attempt counter store.
func New(s store, prefix string, window time.Duration) *Store {
	return &Store{store: s, prefix: prefix, window: window}
}

func (s *Store) key(username string) string {
	return s.prefix + "login_failures:" + username
}

// Fail records one failed attempt and returns the count inside the window.
func (s *Store) Fail(ctx context.Context, username string) (int64, error) {
	key := s.key(username)
	n, err := s.store.IncrBy(ctx, key, 1)
	if err != nil {
		return 0, fmt.Errorf("attempts INCRBY %s: %w", key, err)
	}

	// Set TTL only if the key has no expiry yet (NX, not reset on repeat).
	if err := s.store.Expire(ctx, key, s.window, true); err != nil {
		return n, fmt.Errorf("attempts EXPIRE %s: %w", key, err)
	}
	return n, nil
}

// Count returns the failures inside the current window. Returns 0 if none.
func (s *Store) Count(ctx context.Context, username string) (int64, error) {
	key := s.key(username)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("attempts GET %s: %w", key, err)
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("attempts GET %s parse: %w", key, err)
	}
	return n, nil
}

// Reset clears the counter after a successful login.
func (s *Store) Reset(ctx context.Context, username string) error {
	if err := s.store.Del(ctx, s.key(username)); err != nil {
		return fmt.Errorf("attempts DEL %s: %w", s.key(username), err)
	}
	return nil
}
