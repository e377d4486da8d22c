package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/careersetu/internal/config"
	"github.com/kailas-cloud/careersetu/internal/db"
	dbRedis "github.com/kailas-cloud/careersetu/internal/db/redis"
	dbSqlite "github.com/kailas-cloud/careersetu/internal/db/sqlite"
	logpkg "github.com/kailas-cloud/careersetu/internal/logger"
	"github.com/kailas-cloud/careersetu/internal/metrics"
	"github.com/kailas-cloud/careersetu/internal/ml/forest"
	artifactrepo "github.com/kailas-cloud/careersetu/internal/repository/artifact"
	attemptsrepo "github.com/kailas-cloud/careersetu/internal/repository/attempts"
	"github.com/kailas-cloud/careersetu/internal/repository/dataset"
	profilerepo "github.com/kailas-cloud/careersetu/internal/repository/profile"
	userrepo "github.com/kailas-cloud/careersetu/internal/repository/user"
	chiTransport "github.com/kailas-cloud/careersetu/internal/transport/chi"
	authuc "github.com/kailas-cloud/careersetu/internal/usecase/auth"
	healthuc "github.com/kailas-cloud/careersetu/internal/usecase/health"
	marketuc "github.com/kailas-cloud/careersetu/internal/usecase/market"
	"github.com/kailas-cloud/careersetu/internal/usecase/modelstate"
	profileuc "github.com/kailas-cloud/careersetu/internal/usecase/profile"
	profilinguc "github.com/kailas-cloud/careersetu/internal/usecase/profiling"
	progressionuc "github.com/kailas-cloud/careersetu/internal/usecase/progression"
	recommenduc "github.com/kailas-cloud/careersetu/internal/usecase/recommend"
	skillgapuc "github.com/kailas-cloud/careersetu/internal/usecase/skillgap"
	"github.com/kailas-cloud/careersetu/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting careersetu API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("data_dir", cfg.Data.Dir),
	)

	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "sqlite":
		store, err = dbSqlite.NewStore(dbSqlite.Config{Path: cfg.Database.Path})
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register model metrics explicitly (no init())
	metrics.RegisterModelMetrics()

	datasets := dataset.New(dataset.Paths{
		Courses:    cfg.DataPath(cfg.Data.Courses),
		JobRoles:   cfg.DataPath(cfg.Data.JobRoles),
		NSQFLevels: cfg.DataPath(cfg.Data.NSQFLevels),
		JobMarket:  cfg.DataPath(cfg.Data.JobMarket),
	})
	artifacts := buildArtifactStore(cfg, store, logger)

	// Repositories
	prefix := cfg.Storage.KeyPrefix
	users := userrepo.New(store, prefix)
	profiles := profilerepo.New(store, prefix)
	attempts := attemptsrepo.New(store, prefix, time.Duration(cfg.Auth.LockoutWindowSec)*time.Second)

	// Use case services
	recommendSvc := recommenduc.New(datasets, artifacts, cfg.Models.MaxFeatures, logger)
	skillGapSvc := skillgapuc.New(datasets, datasets, artifacts, forest.Config{
		Trees:    cfg.Models.Forest.Trees,
		MaxDepth: cfg.Models.Forest.MaxDepth,
		Seed:     uint64(cfg.Models.Forest.Seed), //nolint:gosec // seed is a config constant
	}, logger)
	authSvc, err := authuc.New(users, attempts, authuc.Config{
		Secret:            cfg.Auth.JWTSecret,
		TokenTTL:          time.Duration(cfg.Auth.TokenTTLMin) * time.Minute,
		BcryptCost:        cfg.Auth.BcryptCost,
		MaxFailedLogins:   cfg.Auth.MaxFailedLogins,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create auth service", zap.Error(err))
	}

	if cfg.Models.WarmUp {
		warmUp(ctx, logger, recommendSvc, skillGapSvc)
	}

	server := chiTransport.NewServer(chiTransport.Services{
		Recommender: recommendSvc,
		SkillGap:    skillGapSvc,
		Progression: progressionuc.New(datasets, datasets),
		Market:      marketuc.New(datasets),
		Profiling:   profilinguc.New(),
		Profiles:    profileuc.New(profiles, users, logger),
		Accounts:    authSvc,
		Health:      healthuc.New(store, datasets),
	}, chiTransport.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AuthRequests:   cfg.RateLimit.AuthRequests,
		AuthWindow:     time.Duration(cfg.RateLimit.AuthWindowSec) * time.Second,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildArtifactStore picks where trained models are persisted: the local
// models directory or the shared database.
func buildArtifactStore(cfg config.Config, store db.Store, logger *zap.Logger) modelstate.ArtifactStore {
	if cfg.Models.Cache == "store" {
		return artifactrepo.New(store, cfg.Storage.KeyPrefix, metrics.ModelArtifactCacheTotal, logger)
	}
	files, err := artifactrepo.NewFileStore(cfg.Models.Dir)
	if err != nil {
		logger.Fatal("Failed to open model directory", zap.String("dir", cfg.Models.Dir), zap.Error(err))
	}
	return artifactrepo.New(files, "", metrics.ModelArtifactCacheTotal, logger)
}

type warmer interface {
	Warm(ctx context.Context) error
}

// warmUp loads or trains every model before the server accepts traffic.
// A failed model is logged and retried lazily on first request.
func warmUp(ctx context.Context, logger *zap.Logger, models ...warmer) {
	start := time.Now()
	var g errgroup.Group
	for _, m := range models {
		g.Go(func() error {
			if err := m.Warm(ctx); err != nil {
				logger.Warn("Model warm-up failed", zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
	logger.Info("Models warmed up", zap.Duration("took", time.Since(start)))
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    chiTransport.CodeInternalError,
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
