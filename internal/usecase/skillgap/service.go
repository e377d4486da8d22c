// Package skillgap compares a learner's skills with a target job role and
// estimates job readiness with a random forest trained on synthetic profiles.
package skillgap

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
	"github.com/kailas-cloud/careersetu/internal/ml/forest"
	"github.com/kailas-cloud/careersetu/internal/usecase/modelstate"
)

// Service serves skill gap analyses.
type Service struct {
	model   *modelstate.Holder[Model]
	roles   RoleSource
	courses CourseSource
	logger  *zap.Logger
}

// New creates the analyzer.
func New(
	roles RoleSource,
	courses CourseSource,
	artifacts modelstate.ArtifactStore,
	cfg forest.Config,
	logger *zap.Logger,
) *Service {
	t := trainer{roles: roles, cfg: cfg}
	return &Service{
		model:   modelstate.New[Model](ModelName, t, artifacts, logger),
		roles:   roles,
		courses: courses,
		logger:  logger,
	}
}

// Analyze reports matched and missing skills for targetRole.
func (s *Service) Analyze(ctx context.Context, learnerSkills []string, targetRole string) (Analysis, error) {
	if strings.TrimSpace(targetRole) == "" {
		return Analysis{}, domain.NewValidation("target_role", "is required")
	}

	snap, err := s.model.Get(ctx)
	if err != nil {
		return Analysis{}, err
	}

	a := analyze(snap.Payload, learnerSkills, targetRole)
	a.Suggestions = []Suggestion{}
	if len(a.Missing) == 0 {
		return a, nil
	}

	courses, _, err := s.courses.Courses(ctx)
	if err != nil {
		s.logger.Warn("Course catalog unavailable, skipping suggestions", zap.Error(err))
		return a, nil
	}
	a.Suggestions = suggest(a.Missing, courses)
	return a, nil
}

// Rebuild retrains the forest and returns the number of roles indexed.
func (s *Service) Rebuild(ctx context.Context) (int, error) {
	snap, err := s.model.Rebuild(ctx)
	if err != nil {
		return 0, err
	}
	return len(snap.Payload.Roles), nil
}

// Warm loads or trains the model ahead of the first request.
func (s *Service) Warm(ctx context.Context) error {
	_, err := s.model.Get(ctx)
	return err
}

// Roles lists the job roles currently in the dataset.
func (s *Service) Roles(ctx context.Context) ([]catalog.JobRole, error) {
	roles, _, err := s.roles.JobRoles(ctx)
	if err != nil {
		return nil, err
	}
	return roles, nil
}
