package recommendation

import (
	"strings"

	"github.com/kailas-cloud/careersetu/internal/domain"
)

// Query limits.
const (
	DefaultTopN = 5
	MinTopN     = 1
	MaxTopN     = 10
	MaxNSQF     = 10
	// FallbackQuery replaces an empty query text.
	FallbackQuery = "general vocational training"
)

// Query is a validated, request-scoped recommendation query. It is never persisted.
type Query struct {
	skills      string
	interest    string
	nsqfLevel   int
	maxDuration int
	jobRole     string
	topN        int
}

// NewQuery validates and normalizes recommendation parameters.
// nsqfLevel and maxDuration of 0 mean "not requested". topN is clamped to [1, 10].
func NewQuery(skills, interest string, nsqfLevel, maxDuration int, jobRole string, topN int) (Query, error) {
	if nsqfLevel < 0 || nsqfLevel > MaxNSQF {
		return Query{}, domain.NewValidation("nsqf_level", "must be between 1 and 10")
	}
	if maxDuration < 0 {
		return Query{}, domain.NewValidation("max_duration", "must not be negative")
	}
	topN = min(max(topN, MinTopN), MaxTopN)

	return Query{
		skills:      strings.TrimSpace(skills),
		interest:    strings.TrimSpace(interest),
		nsqfLevel:   nsqfLevel,
		maxDuration: maxDuration,
		jobRole:     strings.TrimSpace(jobRole),
		topN:        topN,
	}, nil
}

// Skills returns the free-text learner skills.
func (q Query) Skills() string { return q.skills }

// Interest returns the free-text interest.
func (q Query) Interest() string { return q.interest }

// NSQFLevel returns the requested level, 0 when not requested.
func (q Query) NSQFLevel() int { return q.nsqfLevel }

// MaxDuration returns the duration ceiling in months, 0 when not requested.
func (q Query) MaxDuration() int { return q.maxDuration }

// JobRole returns the requested target job role.
func (q Query) JobRole() string { return q.jobRole }

// TopN returns the number of results to return.
func (q Query) TopN() int { return q.topN }

// Text builds the vectorizer input: skills weighted three times, then interest and job role.
func (q Query) Text() string {
	parts := []string{q.skills, q.skills, q.skills, q.interest, q.jobRole}
	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return FallbackQuery
	}
	return text
}
