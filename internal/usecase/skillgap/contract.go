package skillgap

import (
	"context"

	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
)

// RoleSource reads job roles and their fingerprint.
type RoleSource interface {
	JobRoles(ctx context.Context) ([]catalog.JobRole, string, error)
}

// CourseSource reads the course catalog for training suggestions.
type CourseSource interface {
	Courses(ctx context.Context) ([]catalog.Course, string, error)
}
