package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/account"
)

// --- Mocks ---

type mockUsers struct {
	mu     sync.Mutex
	byID   map[string]account.User
	byName map[string]string
	getErr error
}

func newMockUsers() *mockUsers {
	return &mockUsers{byID: map[string]account.User{}, byName: map[string]string{}}
}

func (m *mockUsers) Create(_ context.Context, u account.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[u.Username]; ok {
		return domain.ErrAlreadyExists
	}
	m.byID[u.ID] = u
	m.byName[u.Username] = u.ID
	return nil
}

func (m *mockUsers) GetByID(_ context.Context, id string) (account.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return account.User{}, m.getErr
	}
	u, ok := m.byID[id]
	if !ok {
		return account.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUsers) GetByUsername(ctx context.Context, username string) (account.User, error) {
	m.mu.Lock()
	id, ok := m.byName[username]
	m.mu.Unlock()
	if !ok {
		return account.User{}, domain.ErrNotFound
	}
	return m.GetByID(ctx, id)
}

type mockAttempts struct {
	mu     sync.Mutex
	counts map[string]int64
	failFn func(ctx context.Context, username string) (int64, error)
}

func newMockAttempts() *mockAttempts {
	return &mockAttempts{counts: map[string]int64{}}
}

func (m *mockAttempts) Fail(ctx context.Context, username string) (int64, error) {
	if m.failFn != nil {
		return m.failFn(ctx, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[username]++
	return m.counts[username], nil
}

func (m *mockAttempts) Count(_ context.Context, username string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[username], nil
}

func (m *mockAttempts) Reset(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.counts, username)
	return nil
}

func testConfig() Config {
	return Config{
		Secret:            "test-secret-test-secret-test-secret",
		TokenTTL:          30 * time.Minute,
		BcryptCost:        bcrypt.MinCost,
		MaxFailedLogins:   3,
		MinPasswordLength: 6,
	}
}

func newTestService(t *testing.T) (*Service, *mockUsers, *mockAttempts) {
	t.Helper()
	users, attempts := newMockUsers(), newMockAttempts()
	svc, err := New(users, attempts, testConfig(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return svc, users, attempts
}
