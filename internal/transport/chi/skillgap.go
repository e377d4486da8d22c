package chi

import (
	"fmt"
	"net/http"
)

// AnalyzeSkillGap handles POST /api/v1/skill-gap/analyze.
func (s *Server) AnalyzeSkillGap(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decode(r, &req); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	a, err := s.svc.SkillGap.Analyze(r.Context(), req.LearnerSkills, req.TargetRole)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysisToDTO(a))
}

// RebuildSkillGap handles POST /api/v1/skill-gap/rebuild.
func (s *Server) RebuildSkillGap(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.SkillGap.Rebuild(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rebuildResponse{
		Message:      fmt.Sprintf("Model retrained on %d job roles.", n),
		RolesIndexed: n,
	})
}

// ListRoles handles GET /api/v1/skill-gap/roles.
func (s *Server) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.svc.SkillGap.Roles(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rolesToDTO(roles))
}
