// Package chi serves the HTTP API on a chi router.
package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	healthuc "github.com/kailas-cloud/careersetu/internal/usecase/health"
	"github.com/kailas-cloud/careersetu/internal/version"
)

const welcomeMessage = "Welcome to Career Setu AI Engine"

// Services are the use cases behind the API.
type Services struct {
	Recommender Recommender
	SkillGap    SkillGapAnalyzer
	Progression ProgressionEngine
	Market      MarketPredictor
	Profiling   Profiler
	Profiles    Profiles
	Accounts    Accounts
	Health      HealthChecker
}

// Options configure cross-cutting HTTP behaviour.
type Options struct {
	AllowedOrigins []string
	// AuthRequests per AuthWindow per client IP on /api/v1/auth. Zero disables the limit.
	AuthRequests int
	AuthWindow   time.Duration
}

// Server is the HTTP API.
type Server struct {
	svc           Services
	opts          Options
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, opts Options, logger *zap.Logger) *Server {
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{
		svc:           svc,
		opts:          opts,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Register mounts the API on r. It must be called before any route is added to r.
func (s *Server) Register(r chi.Router) {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found", "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed", "")
	})

	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if s.opts.AuthRequests > 0 {
				r.Use(httprate.Limit(s.opts.AuthRequests, s.opts.AuthWindow,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(rateLimited),
				))
			}
			r.Post("/signup", s.Signup)
			r.Post("/token", s.Token)
			r.With(BearerAuthMiddleware(s.svc.Accounts)).Get("/me", s.Me)
		})

		r.Post("/recommender/predict", s.Predict)
		r.Post("/recommender/train", s.Train)
		r.Get("/recommender/status", s.RecommenderStatus)

		r.Post("/skill-gap/analyze", s.AnalyzeSkillGap)
		r.Post("/skill-gap/rebuild", s.RebuildSkillGap)
		r.Get("/skill-gap/roles", s.ListRoles)

		r.Post("/nsqf/progress", s.Progress)

		r.Post("/job-market/predict", s.PredictMarket)
		r.Get("/job-market/skills", s.TrackedSkills)

		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(s.svc.Accounts))
			r.Post("/recommend", s.RecommendForProfile)
			r.Post("/learner/profile", s.LearnerPathway)
			r.Get("/profile", s.GetProfile)
			r.Post("/profile", s.CreateProfile)
			r.Put("/profile", s.UpdateProfile)
		})
	})
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":  report.Status,
		"checks":  report.Checks,
		"version": version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func rateLimited(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded", "")
}
