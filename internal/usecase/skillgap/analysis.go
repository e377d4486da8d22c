package skillgap

import (
	"math"
	"slices"
	"strings"

	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
)

const (
	readyThreshold = 60.0
	maxSuggestions = 5
	gapsConsidered = 5

	genericSector = "General"
	genericLevel  = 1
)

// Analysis is the skill gap report for one learner and target role.
type Analysis struct {
	TargetRole    string
	MatchedRole   string
	Sector        string
	NSQFLevel     int
	Required      []string
	Matched       []string
	Missing       []string
	SkillMatchPct float64
	JobReadyPct   float64
	JobReady      bool
	TotalRequired int
	Suggestions   []Suggestion
}

// Suggestion is a course covering some of the missing skills.
type Suggestion struct {
	CourseID   string
	CourseName string
	Sector     string
	Duration   string
	NSQFLevel  int
	Overlap    int
}

// roleScore rates how well a role name matches the requested role.
func roleScore(role, requested string) int {
	switch {
	case role == requested:
		return 10
	case strings.Contains(role, requested):
		return 8
	case strings.Contains(requested, role):
		return 6
	}
	score := 0
	for _, w := range strings.Fields(requested) {
		if len(w) > 2 && strings.Contains(role, w) {
			score += 2
		}
	}
	return score
}

// bestRole returns the first highest-scoring role, or false when nothing matches.
func bestRole(roles []Role, requested string) (Role, bool) {
	requested = strings.ToLower(strings.TrimSpace(requested))
	best, bestScore := -1, 0
	for i, r := range roles {
		if s := roleScore(strings.ToLower(strings.TrimSpace(r.Name)), requested); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return Role{}, false
	}
	return roles[best], true
}

func overlaps(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// analyze builds the report against a trained model. Course suggestions are
// added by the caller.
func analyze(m Model, learnerSkills []string, targetRole string) Analysis {
	learner := Normalize(strings.Join(learnerSkills, " "))

	a := Analysis{
		TargetRole:  targetRole,
		MatchedRole: targetRole,
		Sector:      genericSector,
		NSQFLevel:   genericLevel,
		Missing:     []string{},
	}
	if role, ok := bestRole(m.Roles, targetRole); ok {
		a.MatchedRole, a.Sector, a.NSQFLevel = role.Name, role.Sector, role.NSQFLevel
		a.Required = append([]string{}, role.Skills...)
		a.Matched = []string{}
		for _, r := range role.Skills {
			if slices.ContainsFunc(learner, func(l string) bool { return overlaps(r, l) }) {
				a.Matched = append(a.Matched, r)
			} else {
				a.Missing = append(a.Missing, r)
			}
		}
		a.Missing = prioritize(a.Missing, m.Roles)
	} else {
		// No role matched: the learner's own skills are the baseline.
		a.Required = append([]string{}, learnerSkills...)
		a.Matched = append([]string{}, learnerSkills...)
	}

	a.TotalRequired = max(len(a.Required), 1)
	a.SkillMatchPct = round1(float64(len(a.Matched)) / float64(a.TotalRequired) * 100)
	a.JobReadyPct = a.SkillMatchPct
	if p, ok := m.ReadyProbability(learner); ok {
		a.JobReadyPct = round1(p * 100)
	}
	a.JobReady = a.JobReadyPct >= readyThreshold
	return a
}

// prioritize orders gaps by how many roles require them, most demanded first.
func prioritize(gaps []string, roles []Role) []string {
	demand := make(map[string]int, len(gaps))
	for _, g := range gaps {
		if _, ok := demand[g]; ok {
			continue
		}
		for _, r := range roles {
			if slices.Contains(r.Skills, g) {
				demand[g]++
			}
		}
	}
	out := slices.Clone(gaps)
	slices.SortStableFunc(out, func(a, b string) int { return demand[b] - demand[a] })
	return out
}

// suggest picks courses covering the top prioritised gaps.
func suggest(gaps []string, courses []catalog.Course) []Suggestion {
	if len(gaps) == 0 {
		return []Suggestion{}
	}
	top := gaps[:min(len(gaps), gapsConsidered)]

	out := []Suggestion{}
	for _, c := range courses {
		skills := Normalize(c.Skills)
		n := 0
		for _, g := range top {
			if slices.ContainsFunc(skills, func(s string) bool { return overlaps(g, s) }) {
				n++
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, Suggestion{
			CourseID:   c.ID,
			CourseName: c.Name,
			Sector:     c.Sector,
			Duration:   c.Duration,
			NSQFLevel:  c.NSQFLevel,
			Overlap:    n,
		})
	}
	slices.SortStableFunc(out, func(a, b Suggestion) int { return b.Overlap - a.Overlap })
	return out[:min(len(out), maxSuggestions)]
}
