package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careersetu/internal/db"
)

func TestFileStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, err := fs.Get(ctx, "careersetu:model:recommender"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := fs.Set(ctx, "careersetu:model:recommender", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	if err := fs.Set(ctx, "careersetu:model:recommender", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	got, err := fs.Get(ctx, "careersetu:model:recommender")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v2" {
		t.Errorf("Get = %q, want v2", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "careersetu_model_recommender.json.br" {
		t.Errorf("unexpected dir contents %v", entries)
	}

	if err := fs.Del(ctx, "careersetu:model:recommender"); err != nil {
		t.Fatal(err)
	}
	if err := fs.Del(ctx, "careersetu:model:recommender"); err != nil {
		t.Errorf("second Del should be a no-op, got %v", err)
	}
}

func TestFileStore_WithRepo(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	repo := New(fs, "", nil, zap.NewNop())
	ctx := context.Background()

	if _, err := repo.Save(ctx, "skill_gap", "abc", testPayload{N: 7}); err != nil {
		t.Fatal(err)
	}
	var got testPayload
	if _, ok := repo.Load(ctx, "skill_gap", "abc", &got); !ok || got.N != 7 {
		t.Errorf("Load = %+v, %v", got, ok)
	}
}
