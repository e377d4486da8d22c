// Package recommend ranks courses against a learner query with TF-IDF cosine
// similarity and preference boosts.
package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careersetu/internal/domain/recommendation"
	"github.com/kailas-cloud/careersetu/internal/metrics"
	"github.com/kailas-cloud/careersetu/internal/usecase/modelstate"
)

// Status describes the recommender model currently in memory.
type Status struct {
	Loaded            bool
	CoursesIndexed    int
	VocabularySize    int
	BuiltAt           time.Time
	SourceFingerprint string
}

// Service serves course recommendations.
type Service struct {
	model  *modelstate.Holder[Model]
	logger *zap.Logger
}

// New creates a recommender. maxFeatures caps the vocabulary (0 = tfidf default).
func New(courses CourseSource, artifacts modelstate.ArtifactStore, maxFeatures int, logger *zap.Logger) *Service {
	if maxFeatures <= 0 {
		maxFeatures = defaultMaxFeatures
	}
	t := trainer{courses: courses, maxFeatures: maxFeatures}
	return &Service{
		model:  modelstate.New[Model](ModelName, t, artifacts, logger),
		logger: logger,
	}
}

// Recommend returns the top-N courses for q.
func (s *Service) Recommend(ctx context.Context, q recommendation.Query) ([]recommendation.Recommendation, error) {
	snap, err := s.model.Get(ctx)
	if err != nil {
		return nil, err
	}

	recs := rank(snap.Payload, q)
	for _, r := range recs {
		metrics.RecommendationsServedTotal.WithLabelValues(string(r.Quality)).Inc()
	}
	return recs, nil
}

// Train rebuilds the model from the course catalog and returns the number of courses indexed.
func (s *Service) Train(ctx context.Context) (int, error) {
	snap, err := s.model.Rebuild(ctx)
	if err != nil {
		return 0, err
	}
	return len(snap.Payload.Courses), nil
}

// Warm loads or trains the model ahead of the first request.
func (s *Service) Warm(ctx context.Context) error {
	_, err := s.model.Get(ctx)
	return err
}

// Status reports the in-memory model without loading it.
func (s *Service) Status() Status {
	snap, ok := s.model.Loaded()
	if !ok {
		return Status{}
	}
	return Status{
		Loaded:            true,
		CoursesIndexed:    len(snap.Payload.Courses),
		VocabularySize:    snap.Payload.Vectorizer.Size(),
		BuiltAt:           snap.Info.BuiltAt,
		SourceFingerprint: snap.Info.Fingerprint,
	}
}
