package chi

import (
	"fmt"
	"net/http"

	"github.com/kailas-cloud/careersetu/internal/domain/recommendation"
)

// Predict handles POST /api/v1/recommender/predict.
func (s *Server) Predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := decode(r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	topN := recommendation.DefaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}
	q, err := recommendation.NewQuery(req.Skills, req.Interest, req.NSQFLevel, req.MaxDuration, req.JobRole, topN)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	recs, err := s.svc.Recommender.Recommend(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsToDTO(recs, q))
}

// RecommendForProfile handles POST /api/v1/recommend. Query fields default
// to the caller's stored profile.
func (s *Server) RecommendForProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req profileRecommendRequest
	if err := decode(r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	p, err := s.svc.Profiles.Get(r.Context(), user.ID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	skills, interest, topN := p.SkillsQuery(), p.Interest(), recommendation.DefaultTopN
	if req.Skills != nil {
		skills = *req.Skills
	}
	if req.Interest != nil {
		interest = *req.Interest
	}
	if req.TopN != nil {
		topN = *req.TopN
	}

	q, err := recommendation.NewQuery(skills, interest, p.NSQFLevel, 0, "", topN)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	recs, err := s.svc.Recommender.Recommend(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsToDTO(recs, q))
}

// Train handles POST /api/v1/recommender/train.
func (s *Server) Train(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Recommender.Train(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trainResponse{
		Message:        fmt.Sprintf("Model trained on %d courses.", n),
		CoursesIndexed: n,
	})
}

// RecommenderStatus handles GET /api/v1/recommender/status.
func (s *Server) RecommenderStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, recommenderStatusToDTO(s.svc.Recommender.Status()))
}
