package recommend

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
	"github.com/kailas-cloud/careersetu/internal/domain/recommendation"
	"github.com/kailas-cloud/careersetu/internal/ml/tfidf"
)

// Boost weights, summed then applied once as similarity × (1 + Σ).
const (
	LevelBoost    = 0.20
	DurationBoost = 0.15
	RoleBoost     = 0.25
	SkillBoost    = 0.35
)

// boost returns the summed boost for one course.
func boost(c catalog.Course, q recommendation.Query, skillTokens, roleTokens []string) float64 {
	var b float64

	if lvl := q.NSQFLevel(); lvl > 0 {
		if d := c.NSQFLevel - lvl; d >= -1 && d <= 1 {
			b += LevelBoost
		}
	}

	if maxDur := q.MaxDuration(); maxDur > 0 && c.DurationMonths() <= maxDur {
		b += DurationBoost
	}

	if len(roleTokens) > 0 {
		role := strings.ToLower(c.JobRole)
		for _, tok := range roleTokens {
			if strings.Contains(role, tok) {
				b += RoleBoost
				break
			}
		}
	}

	if len(skillTokens) > 0 {
		text := strings.ToLower(c.Skills)
		for _, tok := range skillTokens {
			if strings.Contains(text, tok) {
				b += SkillBoost
			}
		}
	}

	return b
}

// tokens lowercases and splits on commas and whitespace, keeping tokens longer than minLen.
func tokens(s string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) > minLen {
			out = append(out, f)
		}
	}
	return out
}

// rank scores every course and returns the top N, best first.
// Ties keep catalog order.
func rank(m Model, q recommendation.Query) []recommendation.Recommendation {
	if len(m.Courses) == 0 {
		return []recommendation.Recommendation{}
	}

	qv := m.Vectorizer.Transform(q.Text())
	skillTokens := tokens(q.Skills(), 1)
	roleTokens := tokens(q.JobRole(), 2)

	scored := make([]recommendation.Recommendation, len(m.Courses))
	for i, c := range m.Courses {
		sim := tfidf.Cosine(qv, m.Matrix[i])
		scored[i] = recommendation.Recommendation{
			Course:     c,
			Similarity: sim,
			Score:      sim * (1 + boost(c, q, skillTokens, roleTokens)),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	top := scored[0].Score
	n := min(q.TopN(), len(scored))
	out := scored[:n]
	for i := range out {
		if top > 0 {
			out[i].Normalized = out[i].Score / top
		}
		out[i].Rank = i + 1
		out[i].Quality = recommendation.QualityOf(out[i].Normalized)
	}
	return out
}
