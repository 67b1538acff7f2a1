package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Server.Address())
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "mongodb://localhost:27017/fastify", cfg.Database.URL)
	assert.Empty(t, cfg.Redis.Address)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, "console", cfg.Observability.Logging.Format)
	assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("USERSAPI_PRIMARY__ENV", "production")
	t.Setenv("USERSAPI_SERVER__HOST", "127.0.0.1")
	t.Setenv("USERSAPI_SERVER__PORT", "8080")
	t.Setenv("USERSAPI_SERVER__READ_TIMEOUT", "5")
	t.Setenv("USERSAPI_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("USERSAPI_DATABASE__URL", "postgres://app:secret@db:5432/users")
	t.Setenv("USERSAPI_REDIS__ADDRESS", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Address())
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "postgres://app:secret@db:5432/users", cfg.Database.URL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non numeric port", key: "USERSAPI_SERVER__PORT", value: "http"},
		{name: "unknown environment", key: "USERSAPI_PRIMARY__ENV", value: "moon"},
		{name: "empty database url", key: "USERSAPI_DATABASE__URL", value: ""},
		{name: "bad redis address", key: "USERSAPI_REDIS__ADDRESS", value: "no-port"},
		{name: "unknown log level", key: "USERSAPI_OBSERVABILITY__LOGGING__LEVEL", value: "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestObservabilityConfig(t *testing.T) {
	obs := DefaultObservabilityConfig()
	require.NoError(t, obs.Validate())

	assert.True(t, obs.HealthCheckEnabled("database"))
	assert.False(t, obs.HealthCheckEnabled("kafka"))

	obs.Logging.Level = ""
	assert.Equal(t, "debug", obs.GetLogLevel())
	obs.Environment = "production"
	assert.Equal(t, "info", obs.GetLogLevel())

	obs.HealthChecks.Enabled = false
	assert.False(t, obs.HealthCheckEnabled("database"))

	obs.Logging.Format = "xml"
	assert.Error(t, obs.Validate())
}
