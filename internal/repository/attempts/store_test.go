package attempts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kailas-cloud/careersetu/internal/db"
	"github.com/kailas-cloud/careersetu/internal/db/sqlite"
)

type mockStore struct {
	getFn    func(ctx context.Context, key string) ([]byte, error)
	incrByFn func(ctx context.Context, key string, val int64) (int64, error)
	expireFn func(ctx context.Context, key string, ttl time.Duration, nx bool) error
	delFn    func(ctx context.Context, key string) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) IncrBy(ctx context.Context, key string, val int64) (int64, error) {
	if m.incrByFn != nil {
		return m.incrByFn(ctx, key, val)
	}
	return val, nil
}

func (m *mockStore) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	if m.expireFn != nil {
		return m.expireFn(ctx, key, ttl, nx)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func TestFail_SetsWindowNX(t *testing.T) {
	var gotKey string
	var gotTTL time.Duration
	var gotNX bool
	ms := &mockStore{
		incrByFn: func(_ context.Context, _ string, _ int64) (int64, error) { return 3, nil },
		expireFn: func(_ context.Context, key string, ttl time.Duration, nx bool) error {
			gotKey, gotTTL, gotNX = key, ttl, nx
			return nil
		},
	}
	s := New(ms, "cs:", 15*time.Minute)

	n, err := s.Fail(context.Background(), "asha")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
	if gotKey != "cs:login_failures:asha" || gotTTL != 15*time.Minute || !gotNX {
		t.Errorf("Expire(%q, %v, %v)", gotKey, gotTTL, gotNX)
	}
}

func TestFail_IncrError(t *testing.T) {
	ms := &mockStore{incrByFn: func(_ context.Context, _ string, _ int64) (int64, error) {
		return 0, errors.New("down")
	}}
	if _, err := New(ms, "", time.Minute).Fail(context.Background(), "asha"); err == nil {
		t.Fatal("expected error")
	}
}

func TestCount(t *testing.T) {
	ms := &mockStore{}
	s := New(ms, "", time.Minute)

	n, err := s.Count(context.Background(), "asha")
	if err != nil || n != 0 {
		t.Fatalf("Count on missing key = %d, %v", n, err)
	}

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) { return []byte("4"), nil }
	n, err = s.Count(context.Background(), "asha")
	if err != nil || n != 4 {
		t.Fatalf("Count = %d, %v", n, err)
	}

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) { return []byte("x"), nil }
	if _, err := s.Count(context.Background(), "asha"); err == nil {
		t.Error("expected parse error")
	}
}

func TestWithSQLiteStore(t *testing.T) {
	st, err := sqlite.NewStore(sqlite.Config{Path: filepath.Join(t.TempDir(), "a.db")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(st.Close)

	s := New(st, "cs:", time.Hour)
	ctx := context.Background()
	for range 3 {
		if _, err := s.Fail(ctx, "asha"); err != nil {
			t.Fatal(err)
		}
	}
	if n, _ := s.Count(ctx, "asha"); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
	if err := s.Reset(ctx, "asha"); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.Count(ctx, "asha"); n != 0 {
		t.Errorf("Count after reset = %d, want 0", n)
	}
}
