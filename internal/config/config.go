// Package config manages environment configuration.
//
// It loads environment variables (optionally from a .env file), maps them
// into structured Go types with koanf, and validates that required values
// are present so the application fails fast on bad or missing config.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a .env file into the process environment
	// before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// Config is the root configuration object for the application.
//
// The koanf tags map env keys into nested fields using "." as the path
// delimiter: DECKWISE_SERVER.PORT -> server.port -> Config.Server.Port.
// Observability is a pointer because it is optional; defaults are injected
// when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs and traces and to switch env-dependent behavior.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are stored as integer seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimitRequests / RateLimitWindow bound how many generation
	// requests a user may start per fixed window (window in seconds).
	// Zero values fall back to 10 requests per 60 seconds.
	RateLimitRequests int `koanf:"rate_limit_requests"`
	RateLimitWindow   int `koanf:"rate_limit_window"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores authentication secrets (Clerk secret key).
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
}

// IntegrationConfig holds credentials for external service integrations:
// Resend for transactional email and Gemini for card generation.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
	GeminiAPIKey string `koanf:"gemini_api_key" validate:"required"`
	GeminiModel  string `koanf:"gemini_model"`
}

// New loads configuration from environment variables, unmarshals it into
// Config, validates it, and applies observability defaults.
//
// Any missing required value logs fatally: a process with broken config
// should never reach the point of serving requests.
func New() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	// Only env vars with the DECKWISE_ prefix are read; the prefix is
	// stripped and keys are lowercased before koanf resolves nesting.
	err := k.Load(env.Provider("DECKWISE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DECKWISE_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load environment variables")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("could not unmarshal config")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced from primary config so
	// telemetry sees consistent naming regardless of env var typos.
	mainConfig.Observability.ServiceName = "deckwise"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	if mainConfig.Integration.GeminiModel == "" {
		mainConfig.Integration.GeminiModel = "gemini-2.0-flash"
	}

	if mainConfig.Server.RateLimitRequests <= 0 {
		mainConfig.Server.RateLimitRequests = 10
	}
	if mainConfig.Server.RateLimitWindow <= 0 {
		mainConfig.Server.RateLimitWindow = 60
	}

	return mainConfig, nil
}
