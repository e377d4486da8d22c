package careersetu

import "github.com/kailas-cloud/careersetu/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrValidation         = domain.ErrValidation
	ErrModelUnavailable   = domain.ErrModelUnavailable
	ErrDatasetUnavailable = domain.ErrDatasetUnavailable
)
