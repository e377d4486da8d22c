package recommend

import (
	"context"

	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
)

// CourseSource reads the course catalog and its fingerprint.
type CourseSource interface {
	Courses(ctx context.Context) ([]catalog.Course, string, error)
}
