package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/careersetu/internal/db"
	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/learner"
)

// memStore implements the consumer interface for tests.
type memStore struct {
	data  map[string][]byte
	getFn func(ctx context.Context, key string) ([]byte, error)
}

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func TestSaveAndGet(t *testing.T) {
	ms := &memStore{data: map[string][]byte{}}
	repo := New(ms, "cs:")
	ctx := context.Background()

	p := learner.Profile{
		UserID:            "u-1",
		FullName:          "Asha",
		AcademicInfo:      learner.AcademicInfo{HighestQualification: "12th"},
		CareerAspirations: learner.CareerAspirations{TargetRole: "Electrician"},
		Skills:            learner.Skills{Technical: []string{"wiring"}},
		NSQFLevel:         4,
	}
	if err := repo.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	if _, ok := ms.data["cs:profile:u-1"]; !ok {
		t.Fatalf("expected key cs:profile:u-1, got %v", ms.data)
	}

	got, err := repo.Get(ctx, "u-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.FullName != "Asha" || got.NSQFLevel != 4 || got.Skills.Technical[0] != "wiring" {
		t.Errorf("unexpected profile %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(&memStore{data: map[string][]byte{}}, "cs:")
	if _, err := repo.Get(context.Background(), "u-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_StoreError(t *testing.T) {
	ms := &memStore{getFn: func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("timeout")
	}}
	repo := New(ms, "cs:")
	_, err := repo.Get(context.Background(), "u-1")
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestGet_CorruptDocument(t *testing.T) {
	ms := &memStore{data: map[string][]byte{"cs:profile:u-1": []byte("{")}}
	if _, err := New(ms, "cs:").Get(context.Background(), "u-1"); err == nil {
		t.Error("expected unmarshal error")
	}
}
