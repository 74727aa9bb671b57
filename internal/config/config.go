package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults for configuration values.
const (
	DefaultDatabaseURL       = "sports_intel.db"
	DefaultLeague            = "NBA"
	DefaultSportsbook        = "DraftKings"
	DefaultEdgeMargin        = 0.05
	DefaultInitialBankroll   = 1000.0
	DefaultPollInterval      = 5 * time.Minute
	DefaultRequestsPerMinute = 30
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultMaxRetries        = 3
)

// Config holds all application configuration. Values resolve in order:
// defaults, then the YAML config file if present, then environment
// variables.
type Config struct {
	DatabaseURL string `yaml:"database_url"`
	League      string `yaml:"league"`
	Sportsbook  string `yaml:"sportsbook"`

	// Simulation settings. EdgeMargin is the assumed edge over the
	// market-implied probability, in probability points.
	EdgeMargin      float64 `yaml:"edge_margin"`
	InitialBankroll float64 `yaml:"initial_bankroll"`
	MaxBet          float64 `yaml:"max_bet"`

	// Ingestion settings
	PollInterval      time.Duration `yaml:"poll_interval"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	MaxRetries        int           `yaml:"max_retries"`

	// UseFixtures routes the props path to the canned fixture dataset
	// instead of live payloads. Never enabled implicitly.
	UseFixtures bool `yaml:"use_fixtures"`
}

// Load reads configuration from the optional YAML file and environment
// variables (and .env file if present).
func Load() Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Config{
		DatabaseURL:       DefaultDatabaseURL,
		League:            DefaultLeague,
		Sportsbook:        DefaultSportsbook,
		EdgeMargin:        DefaultEdgeMargin,
		InitialBankroll:   DefaultInitialBankroll,
		MaxBet:            0, // 0 = no cap
		PollInterval:      DefaultPollInterval,
		RequestsPerMinute: DefaultRequestsPerMinute,
		HTTPTimeout:       DefaultHTTPTimeout,
		MaxRetries:        DefaultMaxRetries,
	}

	path := os.Getenv("SPORTS_INTEL_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, &cfg)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LEAGUE"); v != "" {
		cfg.League = v
	}
	if v := os.Getenv("SPORTSBOOK"); v != "" {
		cfg.Sportsbook = v
	}
	if v := os.Getenv("EDGE_MARGIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.EdgeMargin = f
		}
	}
	if v := os.Getenv("INITIAL_BANKROLL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.InitialBankroll = f
		}
	}
	if v := os.Getenv("MAX_BET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaxBet = f
		}
	}
	if v := os.Getenv("POLL_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.PollInterval = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("REQUESTS_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestsPerMinute = n
		}
	}
	if v := os.Getenv("HTTP_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.HTTPTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}
	if os.Getenv("USE_FIXTURES") == "true" {
		cfg.UseFixtures = true
	}

	return cfg
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL must not be empty")
	}
	if cfg.EdgeMargin < 0 || cfg.EdgeMargin > 1 {
		return fmt.Errorf("EDGE_MARGIN must be between 0 and 1, got %f", cfg.EdgeMargin)
	}
	if cfg.InitialBankroll <= 0 {
		return fmt.Errorf("INITIAL_BANKROLL must be positive, got %f", cfg.InitialBankroll)
	}
	if cfg.MaxBet < 0 {
		return fmt.Errorf("MAX_BET must be non-negative, got %f", cfg.MaxBet)
	}
	if cfg.PollInterval < time.Second {
		return fmt.Errorf("POLL_INTERVAL_MS must be at least 1s, got %v", cfg.PollInterval)
	}
	if cfg.RequestsPerMinute <= 0 {
		return fmt.Errorf("REQUESTS_PER_MINUTE must be positive, got %d", cfg.RequestsPerMinute)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must be non-negative, got %d", cfg.MaxRetries)
	}
	return nil
}
