package chi

import (
	"context"

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

// Recommender ranks courses.
type Recommender interface {
	Recommend(ctx context.Context, q recommendation.Query) ([]recommendation.Recommendation, error)
	Train(ctx context.Context) (int, error)
	Status() recommenduc.Status
}

// SkillGapAnalyzer compares learner skills with job roles.
type SkillGapAnalyzer interface {
	Analyze(ctx context.Context, learnerSkills []string, targetRole string) (skillgapuc.Analysis, error)
	Rebuild(ctx context.Context) (int, error)
	Roles(ctx context.Context) ([]catalog.JobRole, error)
}

// ProgressionEngine evaluates NSQF progression.
type ProgressionEngine interface {
	Check(ctx context.Context, current int, learnerSkills []string) (progressionuc.Progress, error)
}

// MarketPredictor forecasts skill demand.
type MarketPredictor interface {
	Predict(ctx context.Context, skill string, targetYear int) (marketuc.Forecast, error)
	Skills(ctx context.Context) ([]string, error)
}

// Profiler builds learner pathways.
type Profiler interface {
	Analyze(in profilinguc.Input) profilinguc.Pathway
}

// Profiles stores learner profiles.
type Profiles interface {
	Get(ctx context.Context, userID string) (learner.Profile, error)
	Upsert(ctx context.Context, userID string, p learner.Profile) (learner.Profile, error)
	Update(ctx context.Context, userID string, apply func(*learner.Profile) error) (learner.Profile, error)
}

// Accounts registers and authenticates users.
type Accounts interface {
	Signup(ctx context.Context, username, email, password string) (authuc.Token, error)
	Login(ctx context.Context, username, password string) (authuc.Token, error)
	Authenticator
}

// Authenticator resolves bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (account.User, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
