package skillgap

import (
	"context"
	"math/rand/v2"
	"regexp"
	"slices"
	"strings"

	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
	"github.com/kailas-cloud/careersetu/internal/ml/forest"
)

// ModelName keys the skill gap artifact and its metrics.
const ModelName = "skill_gap"

// Readiness labels of the synthetic training set.
const (
	notReady = 0
	ready    = 1
)

var skillSplit = regexp.MustCompile(`[,\s]+`)

// Normalize lowercases a skill string and splits it on commas and whitespace.
func Normalize(text string) []string {
	parts := skillSplit.Split(strings.ToLower(text), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Role is a job role with its normalised required skills.
type Role struct {
	catalog.JobRole
	Skills []string `json:"skills"`
}

// Model is the persisted skill gap state. Forest is nil when no role lists
// any required skill.
type Model struct {
	Classes []string       `json:"classes"`
	Forest  *forest.Forest `json:"forest,omitempty"`
	Roles   []Role         `json:"roles"`
}

// binarize returns the 0/1 vector of skills over the sorted classes.
// Unknown skills are ignored.
func binarize(classes, skills []string) []float64 {
	v := make([]float64, len(classes))
	for _, s := range skills {
		if i, ok := slices.BinarySearch(classes, s); ok {
			v[i] = 1
		}
	}
	return v
}

// ReadyProbability returns P(ready) for the learner's skills.
func (m Model) ReadyProbability(skills []string) (float64, bool) {
	if m.Forest == nil {
		return 0, false
	}
	k, ok := m.Forest.ClassIndex(ready)
	if !ok {
		return 0, false
	}
	return m.Forest.PredictProba(binarize(m.Classes, skills))[k], true
}

// syntheticSet builds four rows per role: full and three-quarters coverage
// labelled ready, half and one-quarter coverage labelled not ready.
func syntheticSet(classes []string, roles []Role, rng *rand.Rand) ([][]float64, []int) {
	var (
		X [][]float64
		y []int
	)
	for _, r := range roles {
		full := binarize(classes, r.Skills)
		var idx []int
		for i, v := range full {
			if v == 1 {
				idx = append(idx, i)
			}
		}
		n := len(idx)
		if n == 0 {
			continue
		}

		X = append(X, slices.Clone(full))
		y = append(y, ready)

		X = append(X, withDropped(full, choose(rng, idx, max(1, n/4))))
		y = append(y, ready)

		X = append(X, withDropped(full, choose(rng, idx, max(1, n/2))))
		y = append(y, notReady)

		kept := make([]float64, len(full))
		for _, i := range choose(rng, idx, max(1, n/4)) {
			kept[i] = 1
		}
		X = append(X, kept)
		y = append(y, notReady)
	}
	return X, y
}

// choose picks k distinct elements of idx.
func choose(rng *rand.Rand, idx []int, k int) []int {
	perm := rng.Perm(len(idx))
	out := make([]int, min(k, len(idx)))
	for i := range out {
		out[i] = idx[perm[i]]
	}
	return out
}

func withDropped(full []float64, drop []int) []float64 {
	v := slices.Clone(full)
	for _, i := range drop {
		v[i] = 0
	}
	return v
}

// Fit trains the readiness forest over job roles.
func Fit(ctx context.Context, jobRoles []catalog.JobRole, cfg forest.Config) (Model, error) {
	roles := make([]Role, len(jobRoles))
	var classes []string
	for i, j := range jobRoles {
		roles[i] = Role{JobRole: j, Skills: Normalize(j.RequiredSkills)}
		classes = append(classes, roles[i].Skills...)
	}
	slices.Sort(classes)
	classes = slices.Compact(classes)

	m := Model{Classes: classes, Roles: roles}
	if m.Classes == nil {
		m.Classes = []string{}
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	X, y := syntheticSet(classes, roles, rng)
	if len(X) == 0 {
		return m, nil
	}

	f, err := forest.Train(ctx, X, y, cfg)
	if err != nil {
		return Model{}, err
	}
	m.Forest = f
	return m, nil
}

// trainer adapts the role source to modelstate.Trainer.
type trainer struct {
	roles RoleSource
	cfg   forest.Config
}

func (t trainer) Fingerprint(ctx context.Context) (string, error) {
	_, fp, err := t.roles.JobRoles(ctx)
	return fp, err
}

func (t trainer) Train(ctx context.Context) (Model, string, error) {
	roles, fp, err := t.roles.JobRoles(ctx)
	if err != nil {
		return Model{}, "", err
	}
	m, err := Fit(ctx, roles, t.cfg)
	if err != nil {
		return Model{}, "", err
	}
	return m, fp, nil
}
