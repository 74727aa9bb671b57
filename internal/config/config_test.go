package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPORTS_INTEL_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg := Load()
	if cfg.DatabaseURL != DefaultDatabaseURL {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, DefaultDatabaseURL)
	}
	if cfg.EdgeMargin != DefaultEdgeMargin {
		t.Errorf("EdgeMargin = %v, want %v", cfg.EdgeMargin, DefaultEdgeMargin)
	}
	if cfg.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, DefaultPollInterval)
	}
	if cfg.MaxBet != 0 {
		t.Errorf("MaxBet = %v, want 0 (uncapped)", cfg.MaxBet)
	}
	if cfg.UseFixtures {
		t.Error("UseFixtures enabled by default")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("league: WNBA\nedge_margin: 0.02\nuse_fixtures: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("SPORTS_INTEL_CONFIG", path)

	cfg := Load()
	if cfg.League != "WNBA" {
		t.Errorf("League = %q, want WNBA", cfg.League)
	}
	if cfg.EdgeMargin != 0.02 {
		t.Errorf("EdgeMargin = %v, want 0.02", cfg.EdgeMargin)
	}
	if !cfg.UseFixtures {
		t.Error("UseFixtures not read from file")
	}
	// Untouched keys keep their defaults.
	if cfg.Sportsbook != DefaultSportsbook {
		t.Errorf("Sportsbook = %q, want default", cfg.Sportsbook)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("edge_margin: 0.02\n"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("SPORTS_INTEL_CONFIG", path)
	t.Setenv("EDGE_MARGIN", "0.08")
	t.Setenv("DATABASE_URL", "postgres://localhost/sports")
	t.Setenv("POLL_INTERVAL_MS", "60000")
	t.Setenv("USE_FIXTURES", "true")

	cfg := Load()
	if cfg.EdgeMargin != 0.08 {
		t.Errorf("EdgeMargin = %v, env should win over file", cfg.EdgeMargin)
	}
	if cfg.DatabaseURL != "postgres://localhost/sports" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.PollInterval != time.Minute {
		t.Errorf("PollInterval = %v, want 1m", cfg.PollInterval)
	}
	if !cfg.UseFixtures {
		t.Error("USE_FIXTURES=true not applied")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		DatabaseURL:       DefaultDatabaseURL,
		EdgeMargin:        DefaultEdgeMargin,
		InitialBankroll:   DefaultInitialBankroll,
		PollInterval:      DefaultPollInterval,
		RequestsPerMinute: DefaultRequestsPerMinute,
		MaxRetries:        DefaultMaxRetries,
	}
	if err := Validate(base); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty database url", func(c *Config) { c.DatabaseURL = "" }},
		{"edge margin above 1", func(c *Config) { c.EdgeMargin = 1.5 }},
		{"negative edge margin", func(c *Config) { c.EdgeMargin = -0.1 }},
		{"zero bankroll", func(c *Config) { c.InitialBankroll = 0 }},
		{"negative max bet", func(c *Config) { c.MaxBet = -5 }},
		{"sub-second poll interval", func(c *Config) { c.PollInterval = 100 * time.Millisecond }},
		{"zero request rate", func(c *Config) { c.RequestsPerMinute = 0 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if Validate(cfg) == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}
