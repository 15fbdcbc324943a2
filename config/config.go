package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Driver names accepted by PostgresConfig.Driver.
const (
	DriverPgdriver = "pgdriver"
	DriverPgx      = "pgx"
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// HTTPConfig holds the public listener settings.
type HTTPConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RateLimit       float64       `yaml:"rate_limit"` // requests per second per client IP; 0 disables
	RateBurst       int           `yaml:"rate_burst"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"`
	Driver          string        `yaml:"driver"`
	MaxConnections  int           `yaml:"max_connections"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	QueryTimeout    time.Duration `yaml:"query_timeout"` // 0 means no limit beyond the request
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`      // json|text
	MetricsAddress string `yaml:"metrics_address"` // optional; empty disables metrics
	Environment    string `yaml:"environment"`
}

// ConfigError reports a missing or invalid setting. It is fatal at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// Defaults returns a Config populated with every default value.
func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateBurst:       20,
		},
		Postgres: PostgresConfig{
			Driver:          DriverPgdriver,
			MaxConnections:  1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// LoadConfig loads the configuration from a YAML file, then applies
// environment overrides. A missing file falls back to environment only.
// A .env file in the working directory is loaded first when present.
func LoadConfig(filename string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides values with environment variables when they are set.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigError{Field: "PORT", Reason: fmt.Sprintf("not an integer: %q", v)}
		}
		cfg.HTTP.Port = port
	}
	if err := envDuration("HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return err
	}
	if err := envDuration("HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return err
	}
	if err := envDuration("HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return err
	}
	if err := envDuration("HTTP_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout); err != nil {
		return err
	}
	if v := os.Getenv("HTTP_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &ConfigError{Field: "HTTP_RATE_LIMIT", Reason: fmt.Sprintf("not a number: %q", v)}
		}
		cfg.HTTP.RateLimit = f
	}
	if v := os.Getenv("HTTP_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigError{Field: "HTTP_RATE_BURST", Reason: fmt.Sprintf("not an integer: %q", v)}
		}
		cfg.HTTP.RateBurst = n
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Postgres.Driver = v
	}
	if v := os.Getenv("MAX_DATABASE_CONNECTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigError{Field: "MAX_DATABASE_CONNECTIONS", Reason: fmt.Sprintf("not an integer: %q", v)}
		}
		cfg.Postgres.MaxConnections = n
	}
	if err := envDuration("DATABASE_CONN_MAX_LIFETIME", &cfg.Postgres.ConnMaxLifetime); err != nil {
		return err
	}
	if err := envDuration("DATABASE_QUERY_TIMEOUT", &cfg.Postgres.QueryTimeout); err != nil {
		return err
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return &ConfigError{Field: key, Reason: fmt.Sprintf("not a duration: %q", v)}
	}
	*dst = d
	return nil
}

// Validate checks required values and ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Postgres.DSN) == "" {
		return &ConfigError{Field: "postgres.dsn", Reason: "DATABASE_URL environment variable not set"}
	}
	if c.Postgres.Driver != DriverPgdriver && c.Postgres.Driver != DriverPgx {
		return &ConfigError{Field: "postgres.driver", Reason: fmt.Sprintf("unknown driver %q", c.Postgres.Driver)}
	}
	if c.Postgres.MaxConnections < 1 {
		return &ConfigError{Field: "postgres.max_connections", Reason: "must be at least 1"}
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return &ConfigError{Field: "http.port", Reason: fmt.Sprintf("%d is out of range", c.HTTP.Port)}
	}
	if c.HTTP.RateLimit < 0 {
		return &ConfigError{Field: "http.rate_limit", Reason: "must not be negative"}
	}
	if c.HTTP.RateLimit > 0 && c.HTTP.RateBurst < 1 {
		return &ConfigError{Field: "http.rate_burst", Reason: "must be at least 1 when rate limiting is enabled"}
	}

	durations := map[string]time.Duration{
		"http.read_timeout":          c.HTTP.ReadTimeout,
		"http.write_timeout":         c.HTTP.WriteTimeout,
		"http.idle_timeout":          c.HTTP.IdleTimeout,
		"http.shutdown_timeout":      c.HTTP.ShutdownTimeout,
		"postgres.conn_max_lifetime": c.Postgres.ConnMaxLifetime,
		"postgres.query_timeout":     c.Postgres.QueryTimeout,
	}
	for field, d := range durations {
		if d < 0 {
			return &ConfigError{Field: field, Reason: "must not be negative"}
		}
	}

	switch strings.ToLower(c.Observability.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "observability.log_level", Reason: fmt.Sprintf("unknown level %q", c.Observability.LogLevel)}
	}
	switch c.Observability.LogFormat {
	case "json", "text":
	default:
		return &ConfigError{Field: "observability.log_format", Reason: fmt.Sprintf("unknown format %q", c.Observability.LogFormat)}
	}
	return nil
}

// ListenAddr is the public listener address on all interfaces.
func (c HTTPConfig) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}
