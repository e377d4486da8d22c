package forest

import (
	"context"
	"errors"
	"math"
	"testing"
)

// xorish: label is 1 when feature 0 is set, regardless of noise features.
func separable() ([][]float64, []int) {
	var X [][]float64
	var y []int
	for i := range 40 {
		a := float64(i % 2)
		X = append(X, []float64{a, float64(i % 3 % 2), float64(i % 5 % 2)})
		y = append(y, int(a))
	}
	return X, y
}

func TestTrain_LearnsSeparableFeature(t *testing.T) {
	X, y := separable()
	f, err := Train(context.Background(), X, y, Config{Trees: 25, MaxDepth: 4, Seed: 42})
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	one, ok := f.ClassIndex(1)
	if !ok {
		t.Fatal("class 1 missing")
	}
	if p := f.PredictProba([]float64{1, 0, 0})[one]; p < 0.9 {
		t.Errorf("P(1|x0=1) = %f, want >= 0.9", p)
	}
	if p := f.PredictProba([]float64{0, 1, 1})[one]; p > 0.1 {
		t.Errorf("P(1|x0=0) = %f, want <= 0.1", p)
	}
}

func TestPredictProba_SumsToOne(t *testing.T) {
	X, y := separable()
	f, err := Train(context.Background(), X, y, Config{Trees: 10, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, p := range f.PredictProba([]float64{1, 1, 0}) {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %f", sum)
	}
}

func TestTrain_Deterministic(t *testing.T) {
	X, y := separable()
	a, _ := Train(context.Background(), X, y, Config{Trees: 15, Seed: 42})
	b, _ := Train(context.Background(), X, y, Config{Trees: 15, Seed: 42})

	for _, x := range X {
		pa, pb := a.PredictProba(x), b.PredictProba(x)
		for k := range pa {
			if pa[k] != pb[k] {
				t.Fatalf("same seed produced different predictions: %v vs %v", pa, pb)
			}
		}
	}
}

func TestTrain_SingleClass(t *testing.T) {
	X := [][]float64{{0, 1}, {1, 0}, {1, 1}}
	y := []int{0, 0, 0}
	f, err := Train(context.Background(), X, y, Config{Trees: 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.ClassIndex(1); ok {
		t.Error("class 1 should be absent")
	}
	if p := f.PredictProba([]float64{1, 1}); len(p) != 1 || p[0] != 1 {
		t.Errorf("PredictProba = %v, want [1]", p)
	}
}

func TestTrain_InvalidInput(t *testing.T) {
	if _, err := Train(context.Background(), nil, nil, Config{}); err == nil {
		t.Error("expected error for empty set")
	}
	if _, err := Train(context.Background(), [][]float64{{1}}, []int{1, 0}, Config{}); err == nil {
		t.Error("expected error for label mismatch")
	}
	if _, err := Train(context.Background(), [][]float64{{1}, {1, 0}}, []int{1, 0}, Config{}); err == nil {
		t.Error("expected error for ragged rows")
	}
}

func TestTrain_Canceled(t *testing.T) {
	X, y := separable()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Train(ctx, X, y, Config{Trees: 5}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGini(t *testing.T) {
	if g := gini([]int{5, 5}, 10); math.Abs(g-0.5) > 1e-12 {
		t.Errorf("gini(5,5) = %f, want 0.5", g)
	}
	if g := gini([]int{10, 0}, 10); g != 0 {
		t.Errorf("gini(pure) = %f, want 0", g)
	}
}
