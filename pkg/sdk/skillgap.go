package careersetu

import (
	"context"
	"fmt"
	"time"

	skillgapuc "github.com/kailas-cloud/careersetu/internal/usecase/skillgap"
)

// SkillGapService compares learner skills with job role requirements.
type SkillGapService struct {
	svc skillGapUseCase
	obs *observer
}

// Analyze matches targetRole against job_roles.csv and reports matched and
// missing skills, job readiness and courses that close the gap.
func (s *SkillGapService) Analyze(ctx context.Context, skills []string, targetRole string) (_ SkillGapReport, err error) {
	start := time.Now()
	defer func() { s.obs.observe("skill_gap", start, err) }()

	a, err := s.svc.Analyze(ctx, skills, targetRole)
	if err != nil {
		return SkillGapReport{}, fmt.Errorf("analyze skill gap: %w", err)
	}
	s.obs.returned("skill_gap", len(a.Suggestions))
	return reportFromDomain(a), nil
}

// Rebuild retrains the readiness model and returns the number of roles indexed.
func (s *SkillGapService) Rebuild(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("skill_gap_rebuild", start, err) }()

	n, err := s.svc.Rebuild(ctx)
	if err != nil {
		return 0, fmt.Errorf("rebuild skill gap model: %w", err)
	}
	return n, nil
}

// Roles lists the known job roles.
func (s *SkillGapService) Roles(ctx context.Context) (_ []JobRole, err error) {
	start := time.Now()
	defer func() { s.obs.observe("job_roles", start, err) }()

	roles, err := s.svc.Roles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	out := make([]JobRole, len(roles))
	for i, r := range roles {
		out[i] = JobRole{Name: r.Name, Sector: r.Sector, NSQFLevel: r.NSQFLevel}
	}
	return out, nil
}

func reportFromDomain(a skillgapuc.Analysis) SkillGapReport {
	suggestions := make([]CourseSuggestion, len(a.Suggestions))
	for i, sg := range a.Suggestions {
		suggestions[i] = CourseSuggestion{
			CourseID:   sg.CourseID,
			CourseName: sg.CourseName,
			Sector:     sg.Sector,
			Duration:   sg.Duration,
			NSQFLevel:  sg.NSQFLevel,
			Overlap:    sg.Overlap,
		}
	}
	return SkillGapReport{
		RequestedRole: a.TargetRole,
		MatchedRole:   a.MatchedRole,
		Sector:        a.Sector,
		NSQFLevel:     a.NSQFLevel,
		Required:      a.Required,
		Matched:       a.Matched,
		Missing:       a.Missing,
		SkillMatchPct: a.SkillMatchPct,
		JobReadyPct:   a.JobReadyPct,
		JobReady:      a.JobReady,
		Suggestions:   suggestions,
	}
}
