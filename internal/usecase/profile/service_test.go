package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/learner"
)

// --- Mocks ---

type mockRepo struct {
	profiles map[string]learner.Profile
	getErr   error
	saveErr  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{profiles: map[string]learner.Profile{}}
}

func (m *mockRepo) Get(_ context.Context, userID string) (learner.Profile, error) {
	if m.getErr != nil {
		return learner.Profile{}, m.getErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return learner.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Save(_ context.Context, p learner.Profile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.profiles[p.UserID] = p
	return nil
}

type mockUsers struct {
	completed map[string]bool
	err       error
}

func (m *mockUsers) MarkProfileComplete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.completed[id] = true
	return nil
}

func newTestService() (*Service, *mockRepo, *mockUsers) {
	repo, users := newMockRepo(), &mockUsers{completed: map[string]bool{}}
	svc := New(repo, users, zap.NewNop())
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc, repo, users
}

func validProfile() learner.Profile {
	return learner.Profile{
		FullName:          "Asha K",
		AcademicInfo:      learner.AcademicInfo{HighestQualification: "12th"},
		CareerAspirations: learner.CareerAspirations{TargetRole: "Electrician", PreferredIndustry: "Construction"},
		Skills:            learner.Skills{Technical: []string{"wiring"}},
	}
}

// --- Tests ---

func TestUpsert_CreatesAndMarksComplete(t *testing.T) {
	svc, repo, users := newTestService()

	p, err := svc.Upsert(context.Background(), "u1", validProfile())
	if err != nil {
		t.Fatal(err)
	}
	if p.UserID != "u1" || p.PreferredLanguage != learner.DefaultLanguage || p.NSQFLevel != learner.DefaultNSQFLevel {
		t.Errorf("profile = %+v", p)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
	if _, ok := repo.profiles["u1"]; !ok {
		t.Error("profile not stored")
	}
	if !users.completed["u1"] {
		t.Error("user not marked complete")
	}
}

func TestUpsert_ReplaceKeepsCreatedAt(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Upsert(ctx, "u1", validProfile())
	if err != nil {
		t.Fatal(err)
	}
	next := validProfile()
	next.FullName = "Asha Kumari"
	second, err := svc.Upsert(ctx, "u1", next)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) || !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("created %v -> %v, updated %v -> %v", first.CreatedAt, second.CreatedAt, first.UpdatedAt, second.UpdatedAt)
	}
	if second.FullName != "Asha Kumari" {
		t.Errorf("full name = %q", second.FullName)
	}
}

func TestUpsert_Validation(t *testing.T) {
	svc, repo, users := newTestService()

	p := validProfile()
	p.CareerAspirations.TargetRole = ""
	if _, err := svc.Upsert(context.Background(), "u1", p); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.profiles) != 0 || users.completed["u1"] {
		t.Error("invalid profile must not be stored")
	}
}

func TestUpsert_StoreErrors(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.getErr = errors.New("connection refused")
	if _, err := svc.Upsert(context.Background(), "u1", validProfile()); err == nil {
		t.Error("expected get error")
	}

	svc, _, users := newTestService()
	users.err = errors.New("connection refused")
	if _, err := svc.Upsert(context.Background(), "u1", validProfile()); err == nil {
		t.Error("expected mark complete error")
	}
}

func TestUpdate_Merges(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	orig, err := svc.Upsert(ctx, "u1", validProfile())
	if err != nil {
		t.Fatal(err)
	}

	p, err := svc.Update(ctx, "u1", func(p *learner.Profile) error {
		p.Skills.Technical = append(p.Skills.Technical, "safety")
		p.UserID = "someone-else"
		p.CreatedAt = time.Time{}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.UserID != "u1" || !p.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("identity changed: %+v", p)
	}
	if len(p.Skills.Technical) != 2 || p.CareerAspirations.TargetRole != "Electrician" {
		t.Errorf("merge lost fields: %+v", p)
	}
	if got := repo.profiles["u1"]; len(got.Skills.Technical) != 2 {
		t.Errorf("stored = %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), "u1", func(*learner.Profile) error { return nil })
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_MustStayValid(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Upsert(ctx, "u1", validProfile()); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Update(ctx, "u1", func(p *learner.Profile) error {
		p.AcademicInfo.HighestQualification = ""
		return nil
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.profiles["u1"].AcademicInfo.HighestQualification != "12th" {
		t.Error("invalid update must not be stored")
	}
}

func TestUpdate_ApplyError(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	if _, err := svc.Upsert(ctx, "u1", validProfile()); err != nil {
		t.Fatal(err)
	}

	bad := domain.NewValidation("body", "malformed")
	if _, err := svc.Update(ctx, "u1", func(*learner.Profile) error { return bad }); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v", err)
	}
}

func TestGet(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Get(ctx, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Upsert(ctx, "u1", validProfile()); err != nil {
		t.Fatal(err)
	}
	p, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if p.FullName != "Asha K" {
		t.Errorf("profile = %+v", p)
	}
}
