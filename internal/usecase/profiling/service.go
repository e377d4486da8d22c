// Package profiling maps a learner's background to a starting NSQF level and
// a fixed learning pathway.
package profiling

import (
	"fmt"
	"slices"
	"strings"
)

// Input is what the pathway is derived from.
type Input struct {
	Qualification     string
	TechnicalSkills   []string
	TargetRole        string
	PreferredIndustry string
}

// Step is one stage of a learning path.
type Step struct {
	Name        string
	Description string
	Duration    string
}

// Outcomes are the career stages the pathway leads to.
type Outcomes struct {
	Entry          string
	Mid            string
	Specialization string
}

// Pathway is the generated plan for a learner.
type Pathway struct {
	Summary       string
	NSQFLevel     int
	Justification string
	LearningPath  []Step
	SkillGap      []string
	Timeline      string
	Outcomes      Outcomes
}

type qualificationRule struct {
	keywords      []string
	level         int
	justification string
}

var qualificationRules = []qualificationRule{
	{[]string{"8th", "below"}, 1, "Entry level due to basic schooling."},
	{[]string{"10th"}, 3, "Standard entry for trade roles."},
	{[]string{"12th"}, 4, "Higher secondary qualified."},
	{[]string{"diploma"}, 5, "Technical diploma holder."},
	{[]string{"graduate", "btech", "degree"}, 6, "Graduate level entry."},
}

type roleSkills struct {
	role   string
	skills []string
}

// Checked in order; the first role contained in the target wins.
var roleTable = []roleSkills{
	{"developer", []string{"python", "sql", "git"}},
	{"data scientist", []string{"python", "statistics", "ml"}},
	{"electrician", []string{"wiring", "safety", "tools"}},
}

var fallbackSkills = []string{"industry knowledge", "communication"}

const noGapSkill = "Advanced specialized skills"

// Service builds learner pathways.
type Service struct{}

// New creates the profiling service.
func New() *Service {
	return &Service{}
}

// Analyze derives the pathway for in.
func (s *Service) Analyze(in Input) Pathway {
	level, why := Level(in.Qualification)

	timeline := "6 Months"
	if level >= 5 {
		timeline = "1 Year"
	}

	return Pathway{
		Summary:       fmt.Sprintf("Learner with %s interested in %s.", in.Qualification, in.PreferredIndustry),
		NSQFLevel:     level,
		Justification: why,
		LearningPath:  learningPath(level, in.TargetRole),
		SkillGap:      SkillGap(in.TechnicalSkills, in.TargetRole),
		Timeline:      timeline,
		Outcomes: Outcomes{
			Entry:          "Junior " + in.TargetRole,
			Mid:            "Senior " + in.TargetRole,
			Specialization: "Lead " + in.TargetRole + " / Specialist",
		},
	}
}

// Level maps a free-text qualification to an NSQF level and its justification.
func Level(qualification string) (int, string) {
	q := strings.ToLower(qualification)
	for _, r := range qualificationRules {
		for _, k := range r.keywords {
			if strings.Contains(q, k) {
				return r.level, r.justification
			}
		}
	}
	return 1, "Default entry level."
}

// SkillGap lists the skills the target role needs that the learner lacks.
func SkillGap(skills []string, targetRole string) []string {
	target := strings.ToLower(targetRole)
	needed := fallbackSkills
	for _, r := range roleTable {
		if strings.Contains(target, r.role) {
			needed = r.skills
			break
		}
	}

	have := make([]string, len(skills))
	for i, s := range skills {
		have[i] = strings.ToLower(s)
	}

	var gaps []string
	for _, n := range needed {
		if !slices.Contains(have, n) {
			gaps = append(gaps, n)
		}
	}
	if len(gaps) == 0 {
		return []string{noGapSkill}
	}
	return gaps
}

func learningPath(level int, role string) []Step {
	steps := []Step{
		{Name: "Foundation", Description: "Basic industry orientation", Duration: "1 Month"},
		{Name: "Core Certification", Description: fmt.Sprintf("NSQF Level %d Certification in %s", level, role), Duration: "3 Months"},
		{Name: "Practical Training", Description: "On-job training or simulation", Duration: "2 Months"},
	}
	if level >= 4 {
		steps = append(steps, Step{
			Name:        "Advanced Certification",
			Description: fmt.Sprintf("NSQF Level %d Specialization", level+1),
			Duration:    "6 Months",
		})
	}
	return steps
}
