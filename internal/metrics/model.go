package metrics

import "github.com/prometheus/client_golang/prometheus"

// Model Prometheus metrics.
var (
	ModelTrainingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_trainings_total",
			Help:      "Total number of model training runs",
		},
		[]string{"model", "status"},
	)

	ModelTrainingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_training_duration_seconds",
			Help:      "Model training duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	ModelArtifactCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_artifact_cache_total",
			Help:      "Model artifact cache hits, misses and stale artifacts",
		},
		[]string{"model", "result"}, // "hit" / "miss" / "stale"
	)

	RecommendationsServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_served_total",
			Help:      "Recommended courses returned, by match quality",
		},
		[]string{"quality"},
	)

	FailedLoginsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failed_logins_total",
			Help:      "Rejected login attempts",
		},
	)
)

var modelMetricsRegistered bool

// RegisterModelMetrics registers model and domain metrics. Must be called once from main.
func RegisterModelMetrics() {
	if modelMetricsRegistered {
		return
	}
	prometheus.MustRegister(ModelTrainingsTotal)
	prometheus.MustRegister(ModelTrainingDuration)
	prometheus.MustRegister(ModelArtifactCacheTotal)
	prometheus.MustRegister(RecommendationsServedTotal)
	prometheus.MustRegister(FailedLoginsTotal)
	modelMetricsRegistered = true
}
