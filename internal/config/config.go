package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the careersetu API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Data      DataConfig      `yaml:"data"`
	Models    ModelsConfig    `yaml:"models"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds user authentication settings.
type AuthConfig struct {
	JWTSecret         string `yaml:"jwt_secret"`
	TokenTTLMin       int    `yaml:"token_ttl_min"`
	BcryptCost        int    `yaml:"bcrypt_cost"`
	MaxFailedLogins   int    `yaml:"max_failed_logins"`
	LockoutWindowSec  int    `yaml:"lockout_window_sec"`
	MinPasswordLength int    `yaml:"min_password_length"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, sqlite (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Path             string   `yaml:"path"` // sqlite file path
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// DataConfig locates the CSV datasets.
type DataConfig struct {
	Dir        string `yaml:"dir"`
	Courses    string `yaml:"courses"`
	JobRoles   string `yaml:"job_roles"`
	NSQFLevels string `yaml:"nsqf_levels"`
	JobMarket  string `yaml:"job_market"`
}

// ModelsConfig holds trained model settings.
type ModelsConfig struct {
	Cache       string       `yaml:"cache"` // file, store (default: file)
	Dir         string       `yaml:"dir"`
	MaxFeatures int          `yaml:"max_features"`
	Forest      ForestConfig `yaml:"forest"`
	WarmUp      bool         `yaml:"warm_up"`
}

// ForestConfig holds random forest hyperparameters.
type ForestConfig struct {
	Trees    int   `yaml:"trees"`
	MaxDepth int   `yaml:"max_depth"`
	Seed     int64 `yaml:"seed"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RateLimitConfig limits requests to the auth endpoints per client IP.
type RateLimitConfig struct {
	AuthRequests  int `yaml:"auth_requests"`
	AuthWindowSec int `yaml:"auth_window_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.Path == "" {
		c.Database.Path = "careersetu.db"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Auth.TokenTTLMin <= 0 {
		c.Auth.TokenTTLMin = 30
	}
	if c.Auth.BcryptCost <= 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Auth.MaxFailedLogins <= 0 {
		c.Auth.MaxFailedLogins = 5
	}
	if c.Auth.LockoutWindowSec <= 0 {
		c.Auth.LockoutWindowSec = 900
	}
	if c.Auth.MinPasswordLength <= 0 {
		c.Auth.MinPasswordLength = 6
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.Courses == "" {
		c.Data.Courses = "courses.csv"
	}
	if c.Data.JobRoles == "" {
		c.Data.JobRoles = "job_roles.csv"
	}
	if c.Data.NSQFLevels == "" {
		c.Data.NSQFLevels = "nsqf_levels.csv"
	}
	if c.Data.JobMarket == "" {
		c.Data.JobMarket = "job_market.csv"
	}
	if c.Models.Cache == "" {
		c.Models.Cache = "file"
	}
	if c.Models.Dir == "" {
		c.Models.Dir = "models"
	}
	if c.Models.MaxFeatures <= 0 {
		c.Models.MaxFeatures = 5000
	}
	if c.Models.Forest.Trees <= 0 {
		c.Models.Forest.Trees = 150
	}
	if c.Models.Forest.MaxDepth <= 0 {
		c.Models.Forest.MaxDepth = 8
	}
	if c.Models.Forest.Seed == 0 {
		c.Models.Forest.Seed = 42
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.RateLimit.AuthRequests <= 0 {
		c.RateLimit.AuthRequests = 20
	}
	if c.RateLimit.AuthWindowSec <= 0 {
		c.RateLimit.AuthWindowSec = 60
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "careersetu:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	case "sqlite":
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"sqlite\", got %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	switch c.Models.Cache {
	case "file", "store":
	default:
		return fmt.Errorf("models.cache must be \"file\" or \"store\", got %q", c.Models.Cache)
	}
	return nil
}

// DataPath joins the dataset directory with a file name.
func (c *Config) DataPath(name string) string {
	return filepath.Join(c.Data.Dir, name)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
