package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/users-api/internal/config"
	loggerPkg "github.com/deppfellow/users-api/internal/logger"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/event"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"
)

type mongoPlugin struct {
	client *mongo.Client
	db     *mongo.Database
	dbName string
}

func newMongoPlugin(url string, cfg *config.Config, logger *zerolog.Logger, _ *loggerPkg.LoggerService) (plugin, error) {
	cs, err := connstring.ParseAndValidate(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mongodb url: %w", err)
	}

	opts := options.Client().
		ApplyURI(url).
		SetAppName(config.ServiceName)

	// Command logging is noisy, so it is only wired in local env.
	if cfg.Primary.Env == "local" {
		opts.SetMonitor(commandMonitor(logger, cfg.Observability))
	}

	// Connect only validates options and starts background monitoring.
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}

	return &mongoPlugin{
		client: client,
		db:     client.Database(cs.Database),
		dbName: cs.Database,
	}, nil
}

func (p *mongoPlugin) name() string {
	return DriverMongo
}

func (p *mongoPlugin) database() string {
	return p.dbName
}

func (p *mongoPlugin) ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

func (p *mongoPlugin) close(ctx context.Context) error {
	if err := p.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect mongodb client: %w", err)
	}
	return nil
}

// commandMonitor logs every command at debug level and slow ones at warn.
func commandMonitor(logger *zerolog.Logger, obs *config.ObservabilityConfig) *event.CommandMonitor {
	threshold := obs.Logging.SlowQueryThreshold

	return &event.CommandMonitor{
		Started: func(_ context.Context, e *event.CommandStartedEvent) {
			logger.Debug().
				Str("command", e.CommandName).
				Str("database", e.DatabaseName).
				Int64("request_id", e.RequestID).
				Msg("mongodb command started")
		},
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			ev := logger.Debug()
			if threshold > 0 && e.Duration > threshold {
				ev = logger.Warn()
			}
			ev.Str("command", e.CommandName).
				Dur("duration", e.Duration).
				Msg("mongodb command succeeded")
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			logger.Warn().
				Str("command", e.CommandName).
				Dur("duration", e.Duration).
				Msg("mongodb command failed")
		},
	}
}
