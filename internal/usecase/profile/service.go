// Package profile manages the stored learner profile of each user.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/learner"
)

// Repository persists profiles.
type Repository interface {
	Get(ctx context.Context, userID string) (learner.Profile, error)
	Save(ctx context.Context, p learner.Profile) error
}

// Users flags users that have completed their profile.
type Users interface {
	MarkProfileComplete(ctx context.Context, id string) error
}

// Service manages learner profiles.
type Service struct {
	repo   Repository
	users  Users
	logger *zap.Logger
	now    func() time.Time
}

// New creates the profile service.
func New(repo Repository, users Users, logger *zap.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger, now: time.Now}
}

// Get returns the user's profile or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, userID string) (learner.Profile, error) {
	return s.repo.Get(ctx, userID)
}

// Upsert creates or replaces the user's profile.
func (s *Service) Upsert(ctx context.Context, userID string, p learner.Profile) (learner.Profile, error) {
	created := s.now().UTC()
	existing, err := s.repo.Get(ctx, userID)
	switch {
	case err == nil:
		created = existing.CreatedAt
	case !errors.Is(err, domain.ErrNotFound):
		return learner.Profile{}, err
	}

	p.UserID = userID
	p.CreatedAt = created
	if err := s.save(ctx, &p); err != nil {
		return learner.Profile{}, err
	}

	if err := s.users.MarkProfileComplete(ctx, userID); err != nil {
		return learner.Profile{}, fmt.Errorf("mark profile complete: %w", err)
	}
	s.logger.Info("Profile saved", zap.String("user_id", userID))
	return p, nil
}

// Update applies a partial change to an existing profile. The result must
// still be a valid profile.
func (s *Service) Update(ctx context.Context, userID string, apply func(*learner.Profile) error) (learner.Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return learner.Profile{}, err
	}
	created := p.CreatedAt
	if err := apply(&p); err != nil {
		return learner.Profile{}, err
	}

	// Identity and creation time are not client-editable.
	p.UserID, p.CreatedAt = userID, created
	if err := s.save(ctx, &p); err != nil {
		return learner.Profile{}, err
	}
	return p, nil
}

func (s *Service) save(ctx context.Context, p *learner.Profile) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = s.now().UTC()
	return s.repo.Save(ctx, *p)
}
