// Package config loads the application configuration from YAML files with
// environment variable overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so values can be written as "30s" or "24h"
// in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ServerConfig is the top-level application configuration.
type ServerConfig struct {
	Server struct {
		Port           int      `yaml:"port"`
		ReadTimeout    Duration `yaml:"read_timeout"`
		WriteTimeout   Duration `yaml:"write_timeout"`
		RequestTimeout Duration `yaml:"request_timeout"`
		MaxBodyBytes   int64    `yaml:"max_body_bytes"`
	} `yaml:"server"`

	Database struct {
		// Env var names holding the pool DSNs, not the DSNs themselves,
		// so credentials stay out of the config file.
		ProductionDSNEnv string   `yaml:"production_dsn_env"`
		SimulationDSNEnv string   `yaml:"simulation_dsn_env"`
		MaxOpenConns     int      `yaml:"max_open_conns"`
		MaxIdleConns     int      `yaml:"max_idle_conns"`
		ConnMaxLifetime  Duration `yaml:"conn_max_lifetime"`
	} `yaml:"database"`

	Session struct {
		TTL           Duration `yaml:"ttl"`
		PruneSchedule string   `yaml:"prune_schedule"`
	} `yaml:"session"`

	Simulation struct {
		CacheTTL        Duration `yaml:"cache_ttl"`
		RefreshSchedule string   `yaml:"refresh_schedule"`
	} `yaml:"simulation"`

	RateLimit struct {
		Enabled bool    `yaml:"enabled"`
		RPS     float64 `yaml:"rps"`
		Burst   int     `yaml:"burst"`
	} `yaml:"ratelimit"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// DefaultServerConfig returns the configuration used when no YAML file is present.
func DefaultServerConfig() *ServerConfig {
	cfg := &ServerConfig{}

	cfg.Server.Port = 8080
	cfg.Server.ReadTimeout = Duration(15 * time.Second)
	cfg.Server.WriteTimeout = Duration(30 * time.Second)
	cfg.Server.RequestTimeout = Duration(30 * time.Second)
	cfg.Server.MaxBodyBytes = 10 << 20

	cfg.Database.ProductionDSNEnv = "PROD_DB_URL"
	cfg.Database.SimulationDSNEnv = "SIM_DB_URL"
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = Duration(30 * time.Minute)

	cfg.Session.TTL = Duration(24 * time.Hour)
	cfg.Session.PruneSchedule = "*/10 * * * *"

	cfg.Simulation.CacheTTL = Duration(30 * time.Second)
	cfg.Simulation.RefreshSchedule = "@every 1m"

	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RPS = 50
	cfg.RateLimit.Burst = 100

	return cfg
}

// LoadServerConfig loads configuration from the given YAML file, applying
// defaults for anything the file omits. An empty path returns the defaults.
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}

	// #nosec G304 -- path is provided by trusted source (CLI arg or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateServerConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateServerConfig(cfg *ServerConfig) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Database.ProductionDSNEnv == "" {
		return fmt.Errorf("database production_dsn_env is required")
	}
	if cfg.Database.SimulationDSNEnv == "" {
		return fmt.Errorf("database simulation_dsn_env is required")
	}
	if cfg.Session.TTL.Std() <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.RPS <= 0 {
		return fmt.Errorf("ratelimit rps must be positive when enabled")
	}
	return nil
}
