package careersetu

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/careersetu/internal/domain/recommendation"
)

// RecommenderService ranks courses against a learner query.
type RecommenderService struct {
	svc recommenderUseCase
	obs *observer
}

// Recommend returns up to q.TopN courses, best first.
func (s *RecommenderService) Recommend(ctx context.Context, q RecommendQuery) (_ []Recommendation, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommend", start, err) }()

	topN := q.TopN
	if topN == 0 {
		topN = recommendation.DefaultTopN
	}
	query, err := recommendation.NewQuery(q.Skills, q.Interest, q.NSQFLevel, q.MaxDuration, q.JobRole, topN)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	recs, err := s.svc.Recommend(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	out := make([]Recommendation, len(recs))
	for i, r := range recs {
		out[i] = Recommendation{
			Rank:          r.Rank,
			CourseID:      r.Course.ID,
			CourseName:    r.Course.Name,
			Sector:        r.Course.Sector,
			SkillsCovered: r.Course.Skills,
			NSQFLevel:     r.Course.NSQFLevel,
			Duration:      r.Course.Duration,
			JobRole:       r.Course.JobRole,
			Similarity:    r.Similarity,
			Score:         r.Score,
			Normalized:    r.Normalized,
			MatchQuality:  string(r.Quality),
		}
	}
	s.obs.returned("recommend", len(out))
	return out, nil
}

// Train rebuilds the recommender from courses.csv and returns the number of
// courses indexed.
func (s *RecommenderService) Train(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("recommender_train", start, err) }()

	n, err := s.svc.Train(ctx)
	if err != nil {
		return 0, fmt.Errorf("train recommender: %w", err)
	}
	return n, nil
}

// Status reports the loaded model without loading it.
func (s *RecommenderService) Status() RecommenderStatus {
	st := s.svc.Status()
	return RecommenderStatus{
		Loaded:         st.Loaded,
		CoursesIndexed: st.CoursesIndexed,
		VocabularySize: st.VocabularySize,
		BuiltAt:        st.BuiltAt,
	}
}
