// Package config manages environment variables.
//
// It loads built-in defaults first, then overlays variables from the
// process environment (optionally populated from a `.env` file), maps
// them into structured Go types and validates them so the service
// fails fast on bad configuration.
//
// Env vars use the USERSAPI_ prefix and a double underscore for
// nesting:
//
//	USERSAPI_SERVER__PORT=5000          -> server.port
//	USERSAPI_DATABASE__URL=mongodb://.. -> database.url
package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before
	// anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix every configuration env var must carry.
	EnvPrefix = "USERSAPI_"

	// ServiceName labels logs, traces and metrics.
	ServiceName = "users-api"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Host               string   `koanf:"host"`
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// RateLimit is the per-client request rate in requests per second.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`

	// BodyLimit caps request bodies, e.g. "1M". Larger bodies get a 413.
	BodyLimit string `koanf:"body_limit"`
}

// DatabaseConfig holds the connection URL of the database plugin.
// The URL scheme selects the driver (mongodb, mongodb+srv, postgres, postgresql).
type DatabaseConfig struct {
	URL string `koanf:"url" validate:"required"`
}

// RedisConfig contains Redis connection details.
// An empty Address disables Redis entirely.
type RedisConfig struct {
	Address string `koanf:"address" validate:"omitempty,hostname_port"`
}

// defaults mirrors the fixed values the service historically ran with:
// port 5000 and a local MongoDB database named "fastify".
func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "development",
		"server.host":                 "",
		"server.port":                 "5000",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.shutdown_timeout":     10,
		"server.cors_allowed_origins": []string{"*"},
		"server.rate_limit":           0,
		"server.body_limit":           "1M",
		"database.url":                "mongodb://localhost:27017/fastify",
		"redis.address":               "",

		"observability.logging.level":                         "info",
		"observability.logging.format":                        "console",
		"observability.logging.slow_query_threshold":          "100ms",
		"observability.new_relic.license_key":                 "",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.new_relic.debug_logging":               false,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.timeout":                 "5s",
		"observability.health_checks.checks":                  []string{"database", "redis"},
	}
}

// envKey turns USERSAPI_SERVER__READ_TIMEOUT into server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// envValue splits comma separated values into lists so slice fields
// such as server.cors_allowed_origins can be set from a single variable.
func envValue(key, value string) (string, any) {
	key = envKey(key)
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return key, parts
	}
	return key, value
}

// LoadConfig builds the configuration from defaults and env vars,
// validates it and applies observability defaults.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces agree with each other.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// Address returns the host:port the HTTP server binds to.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, s.Port)
}
