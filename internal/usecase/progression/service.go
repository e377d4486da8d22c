// Package progression evaluates whether a learner is ready to move up the
// NSQF ladder.
package progression

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
)

// Verdicts.
const (
	Promote = "Promote to Next Level"
	Upskill = "Recommend Upskilling Course"
)

const (
	// PromoteThreshold is the skill score at which a learner is promoted.
	PromoteThreshold = 80.0

	maxLevelStatus  = "Max Level Reached"
	maxLevelMessage = "You have reached the highest defined NSQF level."
	maxLateral      = 5
)

// Progress is the outcome of a progression check. When MaxLevelReached is
// set only CurrentLevel, Status and Message are meaningful.
type Progress struct {
	CurrentLevel    int
	MaxLevelReached bool
	Status          string
	Message         string

	NextLevel       int
	NextLevelSkills string
	SkillScorePct   float64
	Verdict         string
	TargetLevel     int
	Recommendation  string
	Lateral         []string
	Pathway         []string
}

// Service evaluates NSQF progression.
type Service struct {
	levels LevelSource
	roles  RoleSource
}

// New creates the progression engine.
func New(levels LevelSource, roles RoleSource) *Service {
	return &Service{levels: levels, roles: roles}
}

// Check scores the learner against the next level's requirements.
func (s *Service) Check(ctx context.Context, current int, learnerSkills []string) (Progress, error) {
	levels, err := s.levels.Levels(ctx)
	if err != nil {
		return Progress{}, err
	}
	roles, _, err := s.roles.JobRoles(ctx)
	if err != nil {
		return Progress{}, err
	}

	row, ok := find(levels, current)
	if !ok {
		return Progress{}, fmt.Errorf("%w: NSQF Level %d", domain.ErrNotFound, current)
	}
	next, ok := find(levels, row.NextLevel)
	if !row.HasNext || !ok {
		return Progress{
			CurrentLevel:    current,
			MaxLevelReached: true,
			Status:          maxLevelStatus,
			Message:         maxLevelMessage,
		}, nil
	}

	score := SkillScore(learnerSkills, next.RequiredSkills)
	p := Progress{
		CurrentLevel:    current,
		NextLevel:       next.Level,
		NextLevelSkills: next.RequiredSkills,
		SkillScorePct:   round1(score),
		Verdict:         Verdict(score),
		Lateral:         lateral(roles, current),
		Pathway: []string{
			fmt.Sprintf("Level %d Foundation", current),
			fmt.Sprintf("Level %d Specialized Training", next.Level),
			fmt.Sprintf("Level %d Expert Certification", next.Level+1),
		},
	}
	if p.Verdict == Promote {
		p.TargetLevel = next.Level
		p.Recommendation = fmt.Sprintf(
			"You exhibit %.0f%% mastery of the next level skills. We recommend officially advancing to NSQF Level %d.",
			score, next.Level)
	} else {
		p.TargetLevel = current
		p.Recommendation = fmt.Sprintf(
			"You need %.0f%% more skill alignment to reach Level %d. Enroll in an upskilling course focusing on: %s.",
			100-score, next.Level, next.RequiredSkills)
	}
	return p, nil
}

// Verdict maps a skill score to a progression decision.
func Verdict(score float64) string {
	if score >= PromoteThreshold {
		return Promote
	}
	return Upskill
}

// SkillScore is the share of distinct required tokens (whitespace separated)
// contained in, or containing, some learner skill. No tokens scores 100.
func SkillScore(learnerSkills []string, required string) float64 {
	tokens := strings.Fields(strings.ToLower(required))
	if len(tokens) == 0 {
		return 100
	}

	learner := make([]string, 0, len(learnerSkills))
	for _, l := range learnerSkills {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			learner = append(learner, l)
		}
	}

	matched := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		for _, l := range learner {
			if strings.Contains(l, t) || strings.Contains(t, l) {
				matched[t] = struct{}{}
				break
			}
		}
	}
	return float64(len(matched)) / float64(len(tokens)) * 100
}

func find(levels []catalog.Level, n int) (catalog.Level, bool) {
	for _, l := range levels {
		if l.Level == n {
			return l, true
		}
	}
	return catalog.Level{}, false
}

func lateral(roles []catalog.JobRole, level int) []string {
	out := []string{}
	for _, r := range roles {
		if r.NSQFLevel == level {
			out = append(out, r.Name)
			if len(out) == maxLateral {
				break
			}
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
