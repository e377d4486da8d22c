// Package profile stores learner profiles as JSON documents, one per user.
package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/careersetu/internal/db"
	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/learner"
)

// store is the consumer interface for profiles (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo implements usecase/profile.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a profile repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) key(userID string) string {
	return r.prefix + "profile:" + userID
}

// Get loads the profile of a user.
func (r *Repo) Get(ctx context.Context, userID string) (learner.Profile, error) {
	data, err := r.store.Get(ctx, r.key(userID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return learner.Profile{}, domain.ErrNotFound
		}
		return learner.Profile{}, fmt.Errorf("get profile %s: %w", userID, err)
	}

	var p learner.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return learner.Profile{}, fmt.Errorf("unmarshal profile %s: %w", userID, err)
	}
	return p, nil
}

// Save stores the profile, replacing any previous one.
func (r *Repo) Save(ctx context.Context, p learner.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile %s: %w", p.UserID, err)
	}
	if err := r.store.Set(ctx, r.key(p.UserID), data); err != nil {
		return fmt.Errorf("set profile %s: %w", p.UserID, err)
	}
	return nil
}
