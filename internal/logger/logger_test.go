package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/users-api/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerServiceWithoutLicense(t *testing.T) {
	svc := NewLoggerService(config.DefaultObservabilityConfig())

	require.NotNil(t, svc)
	assert.Nil(t, svc.GetApplication())
	assert.NotPanics(t, svc.Shutdown)
}

func TestNilLoggerServiceHasNoApplication(t *testing.T) {
	var svc *LoggerService
	assert.Nil(t, svc.GetApplication())
}

func TestJSONLoggerWritesServiceFields(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, config.ServiceName, line["service"])
	assert.Equal(t, "development", line["environment"])
	assert.Equal(t, "warn", line["level"])
}

func TestConsoleLoggerIsDefault(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.DefaultObservabilityConfig(), nil, &buf)

	log.Info().Msg("Connected to DB")

	assert.Contains(t, buf.String(), "Connected to DB")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, int(tracelog.LogLevelDebug), GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, int(tracelog.LogLevelInfo), GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, int(tracelog.LogLevelError), GetPgxTraceLogLevel(zerolog.FatalLevel))
	assert.Equal(t, int(tracelog.LogLevelNone), GetPgxTraceLogLevel(zerolog.Disabled))
}

func TestWithTraceContextNilTransaction(t *testing.T) {
	var buf bytes.Buffer
	log := WithTraceContext(zerolog.New(&buf), nil)

	log.Info().Msg("x")
	assert.NotContains(t, buf.String(), "trace.id")
}
