package careersetu

import (
	"context"
	"fmt"
	"time"

	profilinguc "github.com/kailas-cloud/careersetu/internal/usecase/profiling"
)

// ProgressionService evaluates NSQF level progression.
type ProgressionService struct {
	svc progressionUseCase
	obs *observer
}

// Check scores the learner against the next level's required skills.
// An unknown current level wraps ErrNotFound.
func (s *ProgressionService) Check(ctx context.Context, currentLevel int, skills []string) (_ Progression, err error) {
	start := time.Now()
	defer func() { s.obs.observe("progression", start, err) }()

	p, err := s.svc.Check(ctx, currentLevel, skills)
	if err != nil {
		return Progression{}, fmt.Errorf("check progression: %w", err)
	}
	return Progression{
		CurrentLevel:    p.CurrentLevel,
		MaxLevelReached: p.MaxLevelReached,
		Status:          p.Status,
		Message:         p.Message,
		NextLevel:       p.NextLevel,
		NextLevelSkills: p.NextLevelSkills,
		SkillScorePct:   p.SkillScorePct,
		Verdict:         p.Verdict,
		TargetLevel:     p.TargetLevel,
		Recommendation:  p.Recommendation,
		LateralRoles:    p.Lateral,
		Pathway:         p.Pathway,
	}, nil
}

// MarketService forecasts skill demand and salaries.
type MarketService struct {
	svc marketUseCase
	obs *observer
}

// Predict fits the skill's history and extrapolates to targetYear.
// Skills without history return HasData false, not an error.
func (s *MarketService) Predict(ctx context.Context, skill string, targetYear int) (_ Forecast, err error) {
	start := time.Now()
	defer func() { s.obs.observe("market_predict", start, err) }()

	f, err := s.svc.Predict(ctx, skill, targetYear)
	if err != nil {
		return Forecast{}, fmt.Errorf("predict market: %w", err)
	}
	return Forecast{
		Skill:          f.Skill,
		TargetYear:     f.TargetYear,
		HasData:        f.HasData,
		Status:         f.Status,
		DemandScore:    f.DemandScore,
		SalaryEstimate: f.SalaryEstimate,
		GrowthPct:      f.GrowthPct,
		ModelType:      f.ModelType,
	}, nil
}

// Skills lists the skills that have market history.
func (s *MarketService) Skills(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("market_skills", start, err) }()

	skills, err := s.svc.Skills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list market skills: %w", err)
	}
	return skills, nil
}

func pathwayFromDomain(p profilinguc.Pathway) Pathway {
	steps := make([]PathwayStep, len(p.LearningPath))
	for i, st := range p.LearningPath {
		steps[i] = PathwayStep{Name: st.Name, Description: st.Description, Duration: st.Duration}
	}
	return Pathway{
		Summary:        p.Summary,
		NSQFLevel:      p.NSQFLevel,
		Justification:  p.Justification,
		Steps:          steps,
		SkillGap:       p.SkillGap,
		Timeline:       p.Timeline,
		EntryRole:      p.Outcomes.Entry,
		MidRole:        p.Outcomes.Mid,
		Specialization: p.Outcomes.Specialization,
	}
}
