package careersetu

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/careersetu/internal/ml/forest"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	dataDir string
	files   dataFiles

	modelDir  string
	driver    string // "redis" or "sqlite"; empty keeps models in memory or modelDir
	addrs     []string
	password  string
	dbPath    string
	keyPrefix string

	maxFeatures int
	forestTrees int
	forestDepth int
	forestSeed  uint64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

type dataFiles struct {
	courses    string
	jobRoles   string
	nsqfLevels string
	jobMarket  string
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		files: dataFiles{
			courses:    "courses.csv",
			jobRoles:   "job_roles.csv",
			nsqfLevels: "nsqf_levels.csv",
			jobMarket:  "job_market.csv",
		},
		keyPrefix:   "careersetu:",
		maxFeatures: 5000,
		forestSeed:  forest.DefaultSeed,
	}
}

// WithDataDir sets the directory holding courses.csv, job_roles.csv,
// nsqf_levels.csv and job_market.csv. Required.
func WithDataDir(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dataDir = dir
	})
}

// WithDataFiles overrides the dataset file names inside the data directory.
// Empty names keep the defaults.
func WithDataFiles(courses, jobRoles, nsqfLevels, jobMarket string) Option {
	return optionFunc(func(c *clientConfig) {
		if courses != "" {
			c.files.courses = courses
		}
		if jobRoles != "" {
			c.files.jobRoles = jobRoles
		}
		if nsqfLevels != "" {
			c.files.nsqfLevels = nsqfLevels
		}
		if jobMarket != "" {
			c.files.jobMarket = jobMarket
		}
	})
}

// WithModelDir persists trained models as files in dir.
// Without it (and without a store) models live in memory only.
func WithModelDir(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.modelDir = dir
	})
}

// WithRedis persists trained models in a Redis instance shared with the API.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithSQLite persists trained models in a local SQLite file.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sqlite"
		c.dbPath = path
	})
}

// WithKeyPrefix namespaces store keys. Default: "careersetu:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithMaxFeatures caps the recommender vocabulary. Default: 5000.
func WithMaxFeatures(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxFeatures = n
	})
}

// WithForest sets the skill-gap random forest size and seed.
// Zero trees or depth keep the engine defaults.
func WithForest(trees, maxDepth int, seed uint64) Option {
	return optionFunc(func(c *clientConfig) {
		c.forestTrees = trees
		c.forestDepth = maxDepth
		c.forestSeed = seed
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
