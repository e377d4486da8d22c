// Package catalog holds the records read from the CSV datasets.
// Records are plain values: they are loaded fresh for every training run
// and serialized verbatim into model artifacts.
package catalog

import (
	"strconv"
	"strings"
)

// UnparsedDuration is the duration assumed when a course's duration string has no leading integer.
const UnparsedDuration = 999

// Course is one row of courses.csv.
type Course struct {
	ID        string `json:"course_id"`
	Name      string `json:"course_name"`
	Sector    string `json:"sector"`
	Skills    string `json:"skills_covered"`
	NSQFLevel int    `json:"nsqf_level"`
	Duration  string `json:"duration"`
	JobRole   string `json:"job_role"`
}

// SkillsText returns the comma-separated skill list joined with spaces.
func (c Course) SkillsText() string {
	return strings.ReplaceAll(c.Skills, ",", " ")
}

// SkillList splits the skill list on commas, trimming blanks.
func (c Course) SkillList() []string {
	parts := strings.Split(c.Skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DurationMonths parses the leading integer of the duration ("6 Months" -> 6).
func (c Course) DurationMonths() int {
	fields := strings.Fields(c.Duration)
	if len(fields) == 0 {
		return UnparsedDuration
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return UnparsedDuration
	}
	return n
}

// JobRole is one row of job_roles.csv.
type JobRole struct {
	Name           string `json:"job_role"`
	Sector         string `json:"sector"`
	NSQFLevel      int    `json:"nsqf_level"`
	RequiredSkills string `json:"required_skills"`
}

// Level is one row of nsqf_levels.csv.
type Level struct {
	Level          int    `json:"nsqf_level"`
	NextLevel      int    `json:"next_level"`
	HasNext        bool   `json:"has_next"`
	RequiredSkills string `json:"required_skills"`
	Description    string `json:"description"`
}

// MarketPoint is one row of job_market.csv.
type MarketPoint struct {
	Skill       string  `json:"skill"`
	Year        int     `json:"year"`
	DemandCount float64 `json:"demand_count"`
	AvgSalary   float64 `json:"avg_salary"`
}
