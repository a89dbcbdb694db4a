package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Black-And-White-Club/majors-pool/pkg/observability"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	HTTP          HTTPConfig          `yaml:"http"`
	Auth          AuthConfig          `yaml:"auth"`
	Live          LiveConfig          `yaml:"live"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn" envconfig:"DATABASE_URL"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Address        string   `yaml:"address" envconfig:"HTTP_ADDRESS"`
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"HTTP_ALLOWED_ORIGINS"`
}

// AuthConfig holds the admin gate configuration.
type AuthConfig struct {
	AdminPassword string        `yaml:"admin_password" envconfig:"ADMIN_PASSWORD"`
	JWTSecret     string        `yaml:"jwt_secret" envconfig:"JWT_SECRET"`
	TokenTTL      time.Duration `yaml:"token_ttl" envconfig:"JWT_TOKEN_TTL"`
}

// LiveConfig holds the live-scores source and refresh schedule.
type LiveConfig struct {
	Enabled           bool          `yaml:"enabled" envconfig:"LIVE_ENABLED"`
	APIKey            string        `yaml:"api_key" envconfig:"RAPIDAPI_KEY"`
	APIHost           string        `yaml:"api_host" envconfig:"RAPIDAPI_HOST"`
	BaseURL           string        `yaml:"base_url" envconfig:"LIVE_BASE_URL"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"LIVE_REQUESTS_PER_SECOND"`
	RefreshInterval   time.Duration `yaml:"refresh_interval" envconfig:"LIVE_REFRESH_INTERVAL"`
	RefreshCron       string        `yaml:"refresh_cron" envconfig:"LIVE_REFRESH_CRON"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment    string `yaml:"environment" envconfig:"ENV"`
	MetricsAddress string `yaml:"metrics_address" envconfig:"METRICS_ADDRESS"`
	LogLevel       string `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

const (
	DefaultHTTPAddress       = ":8080"
	DefaultTokenTTL          = 12 * time.Hour
	DefaultLiveAPIHost       = "live-golf-data.p.rapidapi.com"
	DefaultLiveBaseURL       = "https://live-golf-data.p.rapidapi.com"
	DefaultRequestsPerSecond = 1
	DefaultRefreshInterval   = 10 * time.Minute
)

// LoadConfig loads the configuration from a YAML file, then applies any
// environment variables that are set. A .env file in the working directory is
// loaded first when present.
func LoadConfig(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, cfg.Validate()
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg.applyDefaults()
	return &cfg, cfg.Validate()
}

// applyEnv processes each section separately so variable names stay flat.
// Unset variables leave the field untouched.
func applyEnv(cfg *Config) error {
	sections := []any{
		&cfg.Postgres,
		&cfg.HTTP,
		&cfg.Auth,
		&cfg.Live,
		&cfg.Observability,
	}
	for _, s := range sections {
		if err := envconfig.Process("", s); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = DefaultHTTPAddress
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = DefaultTokenTTL
	}
	if c.Live.APIHost == "" {
		c.Live.APIHost = DefaultLiveAPIHost
	}
	if c.Live.BaseURL == "" {
		c.Live.BaseURL = DefaultLiveBaseURL
	}
	if c.Live.RequestsPerSecond <= 0 {
		c.Live.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.Live.RefreshInterval <= 0 {
		c.Live.RefreshInterval = DefaultRefreshInterval
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = "development"
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
}

// Validate checks settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if c.Auth.AdminPassword != "" && c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required when auth.admin_password is set")
	}
	if c.Live.Enabled && c.Live.APIKey == "" {
		return errors.New("live.api_key is required when live.enabled is true")
	}
	return nil
}

// ToObsConfig maps the observability section onto the observability package config.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		Environment: appCfg.Observability.Environment,
		LogLevel:    appCfg.Observability.LogLevel,
	}
}
