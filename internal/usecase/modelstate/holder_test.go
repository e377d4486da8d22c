package modelstate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careersetu/internal/domain"
)

// --- Mocks ---

type mockTrainer struct {
	fp       string
	fpErr    error
	trainErr error
	calls    atomic.Int32
	delay    time.Duration
}

func (m *mockTrainer) Fingerprint(_ context.Context) (string, error) {
	return m.fp, m.fpErr
}

func (m *mockTrainer) Train(_ context.Context) (int, string, error) {
	n := m.calls.Add(1)
	time.Sleep(m.delay)
	if m.trainErr != nil {
		return 0, "", m.trainErr
	}
	return int(n), m.fp, nil
}

type mockArtifacts struct {
	mu        sync.Mutex
	stored    map[string]int
	fps       map[string]string
	saveErr   error
	deleteErr error
	deleted   []string
}

func newMockArtifacts() *mockArtifacts {
	return &mockArtifacts{stored: map[string]int{}, fps: map[string]string{}}
}

func (m *mockArtifacts) Load(_ context.Context, model, fingerprint string, v any) (domain.ArtifactInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.stored[model]
	if !ok || m.fps[model] != fingerprint {
		return domain.ArtifactInfo{}, false
	}
	*(v.(*int)) = val
	return domain.ArtifactInfo{Model: model, Fingerprint: fingerprint}, true
}

func (m *mockArtifacts) Save(_ context.Context, model, fingerprint string, v any) (domain.ArtifactInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return domain.ArtifactInfo{}, m.saveErr
	}
	m.stored[model] = v.(int)
	m.fps[model] = fingerprint
	return domain.ArtifactInfo{Model: model, Fingerprint: fingerprint, BuiltAt: time.Now()}, nil
}

func (m *mockArtifacts) Delete(_ context.Context, model string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, model)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.stored, model)
	delete(m.fps, model)
	return nil
}

// --- Tests ---

func TestGet_TrainsOnceAndPersists(t *testing.T) {
	tr := &mockTrainer{fp: "fp1"}
	arts := newMockArtifacts()
	h := New[int]("m", tr, arts, zap.NewNop())

	s, err := h.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Payload != 1 || s.Info.Fingerprint != "fp1" {
		t.Errorf("snapshot = %+v", s)
	}
	if _, err := h.Get(context.Background()); err != nil {
		t.Fatal(err)
	}
	if tr.calls.Load() != 1 {
		t.Errorf("train calls = %d, want 1", tr.calls.Load())
	}
	if arts.stored["m"] != 1 {
		t.Errorf("artifact not persisted: %v", arts.stored)
	}
}

func TestGet_LoadsExistingArtifact(t *testing.T) {
	tr := &mockTrainer{fp: "fp1"}
	arts := newMockArtifacts()
	arts.stored["m"], arts.fps["m"] = 42, "fp1"
	h := New[int]("m", tr, arts, zap.NewNop())

	s, err := h.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Payload != 42 {
		t.Errorf("payload = %d, want artifact value 42", s.Payload)
	}
	if tr.calls.Load() != 0 {
		t.Error("should not train when artifact is fresh")
	}
}

func TestGet_StaleArtifactRetrains(t *testing.T) {
	tr := &mockTrainer{fp: "fp2"}
	arts := newMockArtifacts()
	arts.stored["m"], arts.fps["m"] = 42, "fp1"
	h := New[int]("m", tr, arts, zap.NewNop())

	s, err := h.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Payload != 1 || tr.calls.Load() != 1 {
		t.Errorf("expected retrain, got payload %d calls %d", s.Payload, tr.calls.Load())
	}
}

func TestGet_ConcurrentFirstRequestsTrainOnce(t *testing.T) {
	tr := &mockTrainer{fp: "fp", delay: 50 * time.Millisecond}
	h := New[int]("m", tr, newMockArtifacts(), zap.NewNop())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.Get(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if tr.calls.Load() != 1 {
		t.Errorf("train calls = %d, want 1", tr.calls.Load())
	}
}

func TestGet_TrainErrorIsModelUnavailable(t *testing.T) {
	tr := &mockTrainer{fp: "fp", trainErr: errors.New("boom")}
	h := New[int]("m", tr, newMockArtifacts(), zap.NewNop())

	_, err := h.Get(context.Background())
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if _, ok := h.Loaded(); ok {
		t.Error("failed init must not publish a snapshot")
	}
}

func TestGet_FingerprintErrorKeepsCause(t *testing.T) {
	tr := &mockTrainer{fpErr: domain.ErrDatasetUnavailable}
	h := New[int]("m", tr, newMockArtifacts(), zap.NewNop())

	_, err := h.Get(context.Background())
	if !errors.Is(err, domain.ErrModelUnavailable) || !errors.Is(err, domain.ErrDatasetUnavailable) {
		t.Fatalf("expected both kinds in chain, got %v", err)
	}
}

func TestRebuild_SwapsSnapshot(t *testing.T) {
	tr := &mockTrainer{fp: "fp"}
	h := New[int]("m", tr, newMockArtifacts(), zap.NewNop())

	first, err := h.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := h.Rebuild(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.Payload != 2 || first.Payload != 1 {
		t.Errorf("first=%d second=%d", first.Payload, second.Payload)
	}
	cur, _ := h.Loaded()
	if cur != second {
		t.Error("Loaded should return the rebuilt snapshot")
	}
}

func TestRebuild_SaveErrorStillServes(t *testing.T) {
	arts := newMockArtifacts()
	arts.saveErr = errors.New("read-only fs")
	h := New[int]("m", &mockTrainer{fp: "fp"}, arts, zap.NewNop())

	s, err := h.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Payload != 1 {
		t.Errorf("payload = %d", s.Payload)
	}
}

func TestGet_CanceledCallerStopsWaiting(t *testing.T) {
	tr := &mockTrainer{fp: "fp", delay: 200 * time.Millisecond}
	h := New[int]("m", tr, newMockArtifacts(), zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := h.Get(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	// The detached run still completes and publishes the snapshot.
	s, err := h.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Payload != 1 || tr.calls.Load() != 1 {
		t.Errorf("payload=%d calls=%d", s.Payload, tr.calls.Load())
	}
}

func TestRebuild_DeletesArtifactBeforeTraining(t *testing.T) {
	arts := newMockArtifacts()
	arts.stored["m"], arts.fps["m"] = 42, "fp"
	h := New[int]("m", &mockTrainer{fp: "fp"}, arts, zap.NewNop())

	s, err := h.Rebuild(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(arts.deleted) != 1 || arts.deleted[0] != "m" {
		t.Errorf("deleted = %v, want [m]", arts.deleted)
	}
	if s.Payload != 1 || arts.stored["m"] != 1 {
		t.Errorf("payload=%d stored=%d, want the retrained value", s.Payload, arts.stored["m"])
	}
}

func TestRebuild_DeleteErrorStillTrains(t *testing.T) {
	arts := newMockArtifacts()
	arts.deleteErr = errors.New("store down")
	tr := &mockTrainer{fp: "fp"}
	h := New[int]("m", tr, arts, zap.NewNop())

	if _, err := h.Rebuild(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.calls.Load() != 1 {
		t.Errorf("train calls = %d, want 1", tr.calls.Load())
	}
}

func TestGet_DoesNotDeleteArtifact(t *testing.T) {
	arts := newMockArtifacts()
	h := New[int]("m", &mockTrainer{fp: "fp"}, arts, zap.NewNop())

	if _, err := h.Get(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(arts.deleted) != 0 {
		t.Errorf("deleted = %v, want none on first load", arts.deleted)
	}
}
