// Package forest trains a random forest of CART classification trees.
//
// Each tree is grown on a bootstrap sample, considers sqrt(features) random
// candidate features per split and splits on Gini impurity. Probabilities are
// the mean of the per-tree leaf class distributions.
package forest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Defaults for Config zero values.
const (
	DefaultTrees    = 150
	DefaultMaxDepth = 8
	DefaultSeed     = 42
)

// Config controls training.
type Config struct {
	Trees    int
	MaxDepth int
	Seed     uint64
}

func (c Config) withDefaults() Config {
	if c.Trees <= 0 {
		c.Trees = DefaultTrees
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	return c
}

// Node is a tree node. Leaves have Feature == -1 and carry Value,
// the class distribution at the leaf in Forest.Classes order.
type Node struct {
	Feature   int       `json:"f"`
	Threshold float64   `json:"t,omitempty"`
	Left      int       `json:"l,omitempty"`
	Right     int       `json:"r,omitempty"`
	Value     []float64 `json:"v,omitempty"`
}

// Tree is a flattened decision tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is a trained ensemble.
type Forest struct {
	Classes  []int  `json:"classes"`
	Features int    `json:"features"`
	Trees    []Tree `json:"trees"`
}

// Train fits a forest on X (rows of equal width) and integer labels y.
// Trees are grown concurrently; each tree's RNG is derived from cfg.Seed,
// so the result is deterministic for a given input and seed.
func Train(ctx context.Context, X [][]float64, y []int, cfg Config) (*Forest, error) {
	if len(X) == 0 {
		return nil, errors.New("forest: empty training set")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("forest: %d rows but %d labels", len(X), len(y))
	}
	width := len(X[0])
	for i, row := range X {
		if len(row) != width {
			return nil, fmt.Errorf("forest: row %d has %d features, want %d", i, len(row), width)
		}
	}
	cfg = cfg.withDefaults()

	classes := slices.Clone(y)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	label := make([]int, len(y))
	for i, v := range y {
		label[i], _ = slices.BinarySearch(classes, v)
	}

	master := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	seeds := make([]uint64, cfg.Trees)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	f := &Forest{Classes: classes, Features: width, Trees: make([]Tree, cfg.Trees)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range cfg.Trees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b := &builder{
				x:        X,
				y:        label,
				nClasses: len(classes),
				maxDepth: cfg.MaxDepth,
				mtry:     max(1, int(math.Sqrt(float64(width)))),
				rng:      rand.New(rand.NewPCG(seeds[i], uint64(i))),
			}
			f.Trees[i] = b.grow(b.bootstrap())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("forest: %w", err)
	}
	return f, nil
}

// PredictProba returns the class distribution for x in Classes order.
func (f *Forest) PredictProba(x []float64) []float64 {
	out := make([]float64, len(f.Classes))
	if len(f.Trees) == 0 {
		return out
	}
	for _, t := range f.Trees {
		for k, p := range t.leaf(x) {
			out[k] += p
		}
	}
	for k := range out {
		out[k] /= float64(len(f.Trees))
	}
	return out
}

// ClassIndex returns the position of label in Classes.
func (f *Forest) ClassIndex(label int) (int, bool) {
	return slices.BinarySearch(f.Classes, label)
}

func (t Tree) leaf(x []float64) []float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return n.Value
		}
		var v float64
		if n.Feature < len(x) {
			v = x[n.Feature]
		}
		if v <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type builder struct {
	x        [][]float64
	y        []int
	nClasses int
	maxDepth int
	mtry     int
	rng      *rand.Rand
	nodes    []Node
}

func (b *builder) bootstrap() []int {
	idx := make([]int, len(b.x))
	for i := range idx {
		idx[i] = b.rng.IntN(len(b.x))
	}
	return idx
}

func (b *builder) grow(idx []int) Tree {
	b.nodes = b.nodes[:0]
	b.split(idx, 0)
	return Tree{Nodes: slices.Clone(b.nodes)}
}

// split appends the subtree for idx and returns its node index.
func (b *builder) split(idx []int, depth int) int {
	counts := b.counts(idx)
	at := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: -1})

	if depth >= b.maxDepth || len(idx) < 2 || gini(counts, len(idx)) == 0 {
		b.nodes[at].Value = distribution(counts, len(idx))
		return at
	}

	feature, threshold, ok := b.best(idx, gini(counts, len(idx)))
	if !ok {
		b.nodes[at].Value = distribution(counts, len(idx))
		return at
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.split(left, depth+1)
	r := b.split(right, depth+1)
	b.nodes[at] = Node{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return at
}

// best scans random features until mtry of them have been evaluated and at
// least one yields an impurity decrease, or every feature has been tried.
func (b *builder) best(idx []int, parent float64) (int, float64, bool) {
	var (
		bestFeature   = -1
		bestThreshold float64
		bestImpurity  = parent
	)
	features := b.rng.Perm(len(b.x[0]))
	for tried, f := range features {
		if tried >= b.mtry && bestFeature >= 0 {
			break
		}
		threshold, impurity, ok := b.bestThreshold(idx, f)
		if ok && impurity < bestImpurity-1e-12 {
			bestFeature, bestThreshold, bestImpurity = f, threshold, impurity
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

// bestThreshold returns the midpoint split on feature f with the lowest
// weighted child impurity.
func (b *builder) bestThreshold(idx []int, f int) (float64, float64, bool) {
	order := slices.Clone(idx)
	sort.SliceStable(order, func(i, j int) bool { return b.x[order[i]][f] < b.x[order[j]][f] })

	total := b.counts(order)
	left := make([]int, b.nClasses)
	right := slices.Clone(total)
	n := len(order)

	var (
		found         bool
		bestThreshold float64
		bestImpurity  = math.Inf(1)
	)
	for k := 0; k < n-1; k++ {
		c := b.y[order[k]]
		left[c]++
		right[c]--
		lo, hi := b.x[order[k]][f], b.x[order[k+1]][f]
		if lo == hi {
			continue
		}
		nl, nr := k+1, n-k-1
		imp := (float64(nl)*gini(left, nl) + float64(nr)*gini(right, nr)) / float64(n)
		if imp < bestImpurity {
			found, bestThreshold, bestImpurity = true, (lo+hi)/2, imp
		}
	}
	return bestThreshold, bestImpurity, found
}

func (b *builder) counts(idx []int) []int {
	c := make([]int, b.nClasses)
	for _, i := range idx {
		c[b.y[i]]++
	}
	return c
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		g -= p * p
	}
	return g
}

func distribution(counts []int, n int) []float64 {
	out := make([]float64, len(counts))
	if n == 0 {
		return out
	}
	for k, c := range counts {
		out[k] = float64(c) / float64(n)
	}
	return out
}
