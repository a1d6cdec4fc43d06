package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"peerraise"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Auth      AuthConfig
	Telemetry TelemetryConfig

	EnableEvents bool `env:"EVENTS_ENABLED" envDefault:"true"`
}

// AuthConfig selects how callers are identified. With an empty JWTSecret the
// service trusts the X-User-Id header set by an upstream proxy.
type AuthConfig struct {
	JWTSecret      string `env:"AUTH_JWT_SECRET"`
	JWTIssuer      string `env:"AUTH_JWT_ISSUER"`
	AllowAnonymous bool   `env:"AUTH_ALLOW_ANONYMOUS" envDefault:"false"`
}

type TelemetryConfig struct {
	Enabled      bool    `env:"OTEL_ENABLED" envDefault:"false"`
	Exporter     string  `env:"OTEL_EXPORTER" envDefault:"stdout"`
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SampleRatio  float64 `env:"OTEL_SAMPLER_RATIO" envDefault:"1.0"`
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Telemetry.Exporter)) {
	case "stdout", "otlp":
	default:
		return fmt.Errorf("unsupported OTEL_EXPORTER %q", c.Telemetry.Exporter)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLER_RATIO must be within [0,1], got %v", c.Telemetry.SampleRatio)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// HTTPAddr normalizes HTTP_PORT into a listen address.
func (c Config) HTTPAddr() string {
	value := strings.TrimSpace(c.HTTPPort)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

func ParseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported LOG_LEVEL %q", raw)
	}
}
