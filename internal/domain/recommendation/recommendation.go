// Package recommendation models course recommendation queries and ranked results.
package recommendation

import "github.com/kailas-cloud/careersetu/internal/domain/catalog"

// MatchQuality buckets a normalized score.
type MatchQuality string

// Match quality buckets.
const (
	High   MatchQuality = "High"
	Medium MatchQuality = "Medium"
	Low    MatchQuality = "Low"
)

// Bucket thresholds on the normalized score.
const (
	HighThreshold   = 0.75
	MediumThreshold = 0.45
)

// QualityOf buckets a normalized score in [0, 1].
func QualityOf(normalized float64) MatchQuality {
	switch {
	case normalized >= HighThreshold:
		return High
	case normalized >= MediumThreshold:
		return Medium
	default:
		return Low
	}
}

// Recommendation is a single ranked course.
type Recommendation struct {
	Rank       int
	Course     catalog.Course
	Similarity float64 // cosine similarity before boosts
	Score      float64 // boosted score
	Normalized float64 // Score divided by the top boosted score
	Quality    MatchQuality
}
