package chi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/account"
	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
	"github.com/kailas-cloud/careersetu/internal/domain/learner"
	"github.com/kailas-cloud/careersetu/internal/domain/recommendation"
	authuc "github.com/kailas-cloud/careersetu/internal/usecase/auth"
	healthuc "github.com/kailas-cloud/careersetu/internal/usecase/health"
	marketuc "github.com/kailas-cloud/careersetu/internal/usecase/market"
	profilinguc "github.com/kailas-cloud/careersetu/internal/usecase/profiling"
	progressionuc "github.com/kailas-cloud/careersetu/internal/usecase/progression"
	recommenduc "github.com/kailas-cloud/careersetu/internal/usecase/recommend"
	skillgapuc "github.com/kailas-cloud/careersetu/internal/usecase/skillgap"
)

// --- Mocks ---

type mockRecommender struct {
	recommendFn func(ctx context.Context, q recommendation.Query) ([]recommendation.Recommendation, error)
	trainFn     func(ctx context.Context) (int, error)
	status      recommenduc.Status
}

func (m *mockRecommender) Recommend(ctx context.Context, q recommendation.Query) ([]recommendation.Recommendation, error) {
	if m.recommendFn != nil {
		return m.recommendFn(ctx, q)
	}
	return nil, nil
}

func (m *mockRecommender) Train(ctx context.Context) (int, error) {
	if m.trainFn != nil {
		return m.trainFn(ctx)
	}
	return 0, nil
}

func (m *mockRecommender) Status() recommenduc.Status { return m.status }

type mockSkillGap struct {
	analyzeFn func(ctx context.Context, skills []string, role string) (skillgapuc.Analysis, error)
	rebuildFn func(ctx context.Context) (int, error)
	rolesFn   func(ctx context.Context) ([]catalog.JobRole, error)
}

func (m *mockSkillGap) Analyze(ctx context.Context, skills []string, role string) (skillgapuc.Analysis, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, skills, role)
	}
	return skillgapuc.Analysis{}, nil
}

func (m *mockSkillGap) Rebuild(ctx context.Context) (int, error) {
	if m.rebuildFn != nil {
		return m.rebuildFn(ctx)
	}
	return 0, nil
}

func (m *mockSkillGap) Roles(ctx context.Context) ([]catalog.JobRole, error) {
	if m.rolesFn != nil {
		return m.rolesFn(ctx)
	}
	return nil, nil
}

type mockProgression struct {
	checkFn func(ctx context.Context, current int, skills []string) (progressionuc.Progress, error)
}

func (m *mockProgression) Check(ctx context.Context, current int, skills []string) (progressionuc.Progress, error) {
	if m.checkFn != nil {
		return m.checkFn(ctx, current, skills)
	}
	return progressionuc.Progress{}, nil
}

type mockMarket struct {
	predictFn func(ctx context.Context, skill string, year int) (marketuc.Forecast, error)
	skillsFn  func(ctx context.Context) ([]string, error)
}

func (m *mockMarket) Predict(ctx context.Context, skill string, year int) (marketuc.Forecast, error) {
	if m.predictFn != nil {
		return m.predictFn(ctx, skill, year)
	}
	return marketuc.Forecast{}, nil
}

func (m *mockMarket) Skills(ctx context.Context) ([]string, error) {
	if m.skillsFn != nil {
		return m.skillsFn(ctx)
	}
	return []string{}, nil
}

type mockProfiles struct {
	profiles map[string]learner.Profile
	getErr   error
}

func newMockProfiles() *mockProfiles {
	return &mockProfiles{profiles: map[string]learner.Profile{}}
}

func (m *mockProfiles) Get(_ context.Context, userID string) (learner.Profile, error) {
	if m.getErr != nil {
		return learner.Profile{}, m.getErr
	}
	p, ok := m.profiles[userID]
	if !ok {
		return learner.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProfiles) Upsert(_ context.Context, userID string, p learner.Profile) (learner.Profile, error) {
	p.UserID = userID
	p.Normalize()
	if err := p.Validate(); err != nil {
		return learner.Profile{}, err
	}
	m.profiles[userID] = p
	return p, nil
}

func (m *mockProfiles) Update(
	_ context.Context, userID string, apply func(*learner.Profile) error,
) (learner.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return learner.Profile{}, domain.ErrNotFound
	}
	if err := apply(&p); err != nil {
		return learner.Profile{}, err
	}
	p.UserID = userID
	m.profiles[userID] = p
	return p, nil
}

type mockAccounts struct {
	signupFn func(ctx context.Context, username, email, password string) (authuc.Token, error)
	loginFn  func(ctx context.Context, username, password string) (authuc.Token, error)
	// tokens maps a bearer token to its user.
	tokens map[string]account.User
	authErr error
}

func (m *mockAccounts) Signup(ctx context.Context, username, email, password string) (authuc.Token, error) {
	if m.signupFn != nil {
		return m.signupFn(ctx, username, email, password)
	}
	return authuc.Token{AccessToken: "tok", TokenType: authuc.TokenType, Username: username}, nil
}

func (m *mockAccounts) Login(ctx context.Context, username, password string) (authuc.Token, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return authuc.Token{AccessToken: "tok", TokenType: authuc.TokenType, Username: username}, nil
}

func (m *mockAccounts) Authenticate(_ context.Context, token string) (account.User, error) {
	if m.authErr != nil {
		return account.User{}, m.authErr
	}
	u, ok := m.tokens[token]
	if !ok {
		return account.User{}, domain.ErrUnauthorized
	}
	return u, nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

// --- Helpers ---

const testToken = "valid-token"

var testUser = account.User{ID: "u1", Username: "asha"}

type testDeps struct {
	recommender *mockRecommender
	skillGap    *mockSkillGap
	progression *mockProgression
	market      *mockMarket
	profiles    *mockProfiles
	accounts    *mockAccounts
	health      *mockHealth
}

func newTestDeps() *testDeps {
	return &testDeps{
		recommender: &mockRecommender{},
		skillGap:    &mockSkillGap{},
		progression: &mockProgression{},
		market:      &mockMarket{},
		profiles:    newMockProfiles(),
		accounts:    &mockAccounts{tokens: map[string]account.User{testToken: testUser}},
		health:      &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}},
	}
}

func (d *testDeps) router(opts Options) http.Handler {
	s := NewServer(Services{
		Recommender: d.recommender,
		SkillGap:    d.skillGap,
		Progression: d.progression,
		Market:      d.market,
		Profiling:   profilinguc.New(),
		Profiles:    d.profiles,
		Accounts:    d.accounts,
		Health:      d.health,
	}, opts, zap.NewNop())
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return v
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	resp := decodeBody[ErrorResponse](t, rr)
	if resp.Code != code {
		t.Errorf("code = %q, want %q", resp.Code, code)
	}
}
