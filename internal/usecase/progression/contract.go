package progression

import (
	"context"

	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
)

// LevelSource reads the NSQF rule table.
type LevelSource interface {
	Levels(ctx context.Context) ([]catalog.Level, error)
}

// RoleSource reads job roles for lateral mobility suggestions.
type RoleSource interface {
	JobRoles(ctx context.Context) ([]catalog.JobRole, string, error)
}
