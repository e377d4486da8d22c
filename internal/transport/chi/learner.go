package chi

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/learner"
)

// LearnerPathway handles POST /api/v1/learner/profile.
func (s *Server) LearnerPathway(w http.ResponseWriter, r *http.Request) {
	var req pathwayRequest
	if err := decode(r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pathwayToDTO(s.svc.Profiling.Analyze(req.toInput())))
}

// GetProfile handles GET /api/v1/profile.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	p, err := s.svc.Profiles.Get(r.Context(), user.ID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProfile handles POST /api/v1/profile (create or replace).
func (s *Server) CreateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var p learner.Profile
	if err := decode(r, &p); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	saved, err := s.svc.Profiles.Upsert(r.Context(), user.ID, p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// UpdateProfile handles PUT /api/v1/profile. Fields present in the body are
// merged onto the stored profile.
func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.handleDomainError(w, r, domain.NewValidation("", "unreadable request body"))
		return
	}

	saved, err := s.svc.Profiles.Update(r.Context(), user.ID, func(p *learner.Profile) error {
		if err := json.Unmarshal(body, p); err != nil {
			return domain.NewValidation("", "invalid request body: "+err.Error())
		}
		return nil
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
