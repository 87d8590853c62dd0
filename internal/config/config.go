// Package config manages environment-driven configuration.
//
// It reads variables (optionally from a .env file via godotenv autoload),
// maps them into structured Go types with koanf, validates required values
// so the app fails fast on bad config, and injects defaults for optional
// blocks such as observability.
package config

import (
	"fmt"
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

// Storage driver names accepted by StorageConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root configuration object.
//
// Env vars use the USERAPI_ prefix and dot-delimited nesting, e.g.
// USERAPI_SERVER.PORT -> server.port -> Config.Server.Port.
//
// Database is a pointer because it is only required when the storage
// driver is "postgres". Observability is optional; defaults are injected
// when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Database      *DatabaseConfig      `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups HTTP server runtime settings. Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// StorageConfig selects the user store backing implementation.
type StorageConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=postgres memory"`
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
// Redis backs the asynq job queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// IntegrationConfig stores credentials for third-party integrations.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
}

// Load reads configuration from environment variables, unmarshals it into
// Config, validates it, and applies observability defaults.
//
// Missing or malformed required values log fatally: there is no point in
// limping onward with a broken config.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	// Only env vars with the USERAPI_ prefix are read; the prefix is
	// stripped and the remainder lowercased to form dot-delimited keys.
	err := k.Load(env.Provider("USERAPI_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "USERAPI_"))
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	// The database block is only mandatory for the postgres driver; the
	// in-memory store runs without one.
	if mainConfig.Storage.Driver == DriverPostgres {
		if mainConfig.Database == nil {
			logger.Fatal().Msg("storage driver is postgres but no database config was provided")
		}
		if err := validate.Struct(mainConfig.Database); err != nil {
			logger.Fatal().Err(err).Msg("Database config validation failed.")
		}
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are forced so telemetry naming stays
	// consistent regardless of what was configured.
	mainConfig.Observability.ServiceName = "user-api"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}

// UsesPostgres reports whether the relational store is configured.
func (c *Config) UsesPostgres() bool {
	return c.Storage.Driver == DriverPostgres
}

// Validate applies cross-field rules not expressible via struct tags.
func (c *Config) Validate() error {
	if c.Storage.Driver == DriverPostgres && c.Database == nil {
		return fmt.Errorf("database config is required for the postgres driver")
	}
	return nil
}
