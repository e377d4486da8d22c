package careersetu

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careersetu/internal/db"
	dbRedis "github.com/kailas-cloud/careersetu/internal/db/redis"
	dbSqlite "github.com/kailas-cloud/careersetu/internal/db/sqlite"
	"github.com/kailas-cloud/careersetu/internal/domain"
	"github.com/kailas-cloud/careersetu/internal/domain/catalog"
	"github.com/kailas-cloud/careersetu/internal/domain/recommendation"
	"github.com/kailas-cloud/careersetu/internal/ml/forest"
	artifactrepo "github.com/kailas-cloud/careersetu/internal/repository/artifact"
	"github.com/kailas-cloud/careersetu/internal/repository/dataset"
	healthuc "github.com/kailas-cloud/careersetu/internal/usecase/health"
	marketuc "github.com/kailas-cloud/careersetu/internal/usecase/market"
	"github.com/kailas-cloud/careersetu/internal/usecase/modelstate"
	profilinguc "github.com/kailas-cloud/careersetu/internal/usecase/profiling"
	progressionuc "github.com/kailas-cloud/careersetu/internal/usecase/progression"
	recommenduc "github.com/kailas-cloud/careersetu/internal/usecase/recommend"
	skillgapuc "github.com/kailas-cloud/careersetu/internal/usecase/skillgap"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces, replaced by mocks in tests.
type recommenderUseCase interface {
	Recommend(ctx context.Context, q recommendation.Query) ([]recommendation.Recommendation, error)
	Train(ctx context.Context) (int, error)
	Status() recommenduc.Status
}

type skillGapUseCase interface {
	Analyze(ctx context.Context, learnerSkills []string, targetRole string) (skillgapuc.Analysis, error)
	Rebuild(ctx context.Context) (int, error)
	Roles(ctx context.Context) ([]catalog.JobRole, error)
}

type progressionUseCase interface {
	Check(ctx context.Context, current int, learnerSkills []string) (progressionuc.Progress, error)
}

type marketUseCase interface {
	Predict(ctx context.Context, skill string, targetYear int) (marketuc.Forecast, error)
	Skills(ctx context.Context) ([]string, error)
}

type profilingUseCase interface {
	Analyze(in profilinguc.Input) profilinguc.Pathway
}

// Client is the Career Setu SDK entry point.
type Client struct {
	store          db.Store // nil unless WithRedis or WithSQLite
	recommenderSvc recommenderUseCase
	skillGapSvc    skillGapUseCase
	progressionSvc progressionUseCase
	marketSvc      marketUseCase
	profilingSvc   profilingUseCase
	healthSvc      healthUseCase
	obs            *observer
}

// New creates a Client. The provided context is used for the store
// readiness check when a store is configured.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.dataDir == "" {
		return nil, errors.New("careersetu: data directory required (use WithDataDir)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if cfg.driver != "" {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("careersetu: database not ready: %w", err)
		}
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("careersetu: create redis store: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := dbSqlite.NewStore(dbSqlite.Config{Path: cfg.dbPath})
		if err != nil {
			return nil, fmt.Errorf("careersetu: create sqlite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("careersetu: unknown driver %q", cfg.driver)
	}
}

func artifactStore(store db.Store, cfg *clientConfig, logger *zap.Logger) (modelstate.ArtifactStore, error) {
	switch {
	case store != nil:
		return artifactrepo.New(store, cfg.keyPrefix, nil, logger), nil
	case cfg.modelDir != "":
		files, err := artifactrepo.NewFileStore(cfg.modelDir)
		if err != nil {
			return nil, fmt.Errorf("careersetu: open model dir: %w", err)
		}
		return artifactrepo.New(files, "", nil, logger), nil
	default:
		return memoryArtifacts{}, nil
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	// Internal services log through zap; SDK callers observe operations via slog.
	logger := zap.NewNop()

	artifacts, err := artifactStore(store, cfg, logger)
	if err != nil {
		return nil, err
	}

	datasets := dataset.New(dataset.Paths{
		Courses:    filepath.Join(cfg.dataDir, cfg.files.courses),
		JobRoles:   filepath.Join(cfg.dataDir, cfg.files.jobRoles),
		NSQFLevels: filepath.Join(cfg.dataDir, cfg.files.nsqfLevels),
		JobMarket:  filepath.Join(cfg.dataDir, cfg.files.jobMarket),
	})

	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}

	return &Client{
		store:          store,
		recommenderSvc: recommenduc.New(datasets, artifacts, cfg.maxFeatures, logger),
		skillGapSvc: skillgapuc.New(datasets, datasets, artifacts, forest.Config{
			Trees:    cfg.forestTrees,
			MaxDepth: cfg.forestDepth,
			Seed:     cfg.forestSeed,
		}, logger),
		progressionSvc: progressionuc.New(datasets, datasets),
		marketSvc:      marketuc.New(datasets),
		profilingSvc:   profilinguc.New(),
		healthSvc:      healthuc.New(pinger, datasets),
		obs:            obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Recommender returns the course recommender.
func (c *Client) Recommender() *RecommenderService {
	return &RecommenderService{svc: c.recommenderSvc, obs: c.obs}
}

// SkillGap returns the skill gap analyzer.
func (c *Client) SkillGap() *SkillGapService {
	return &SkillGapService{svc: c.skillGapSvc, obs: c.obs}
}

// Progression returns the NSQF progression engine.
func (c *Client) Progression() *ProgressionService {
	return &ProgressionService{svc: c.progressionSvc, obs: c.obs}
}

// Market returns the job market predictor.
func (c *Client) Market() *MarketService {
	return &MarketService{svc: c.marketSvc, obs: c.obs}
}

// Pathway builds a learning pathway from the learner's background.
func (c *Client) Pathway(in LearnerInput) Pathway {
	start := time.Now()
	defer func() { c.obs.observe("pathway", start, nil) }()

	p := c.profilingSvc.Analyze(profilinguc.Input{
		Qualification:     in.Qualification,
		TechnicalSkills:   in.TechnicalSkills,
		TargetRole:        in.TargetRole,
		PreferredIndustry: in.PreferredIndustry,
	})
	return pathwayFromDomain(p)
}

// memoryArtifacts keeps nothing between runs: every Load misses, so models
// are trained once per Client.
type memoryArtifacts struct{}

func (memoryArtifacts) Load(context.Context, string, string, any) (domain.ArtifactInfo, bool) {
	return domain.ArtifactInfo{}, false
}

func (memoryArtifacts) Delete(context.Context, string) error { return nil }

func (memoryArtifacts) Save(_ context.Context, model, fingerprint string, _ any) (domain.ArtifactInfo, error) {
	return domain.ArtifactInfo{
		Version:     artifactrepo.FormatVersion,
		Model:       model,
		Fingerprint: fingerprint,
		BuiltAt:     time.Now().UTC(),
	}, nil
}
