package chi

import "net/http"

// Progress handles POST /api/v1/nsqf/progress.
func (s *Server) Progress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := decode(r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	p, err := s.svc.Progression.Check(r.Context(), *req.CurrentLevel, req.LearnerSkills)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progressToDTO(p))
}

// PredictMarket handles POST /api/v1/job-market/predict.
func (s *Server) PredictMarket(w http.ResponseWriter, r *http.Request) {
	var req marketRequest
	if err := decode(r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	f, err := s.svc.Market.Predict(r.Context(), req.Skill, req.TargetYear)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, forecastToDTO(f))
}

// TrackedSkills handles GET /api/v1/job-market/skills.
func (s *Server) TrackedSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := s.svc.Market.Skills(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trackedSkillsResponse{TrackedSkills: skills})
}
