// Package database registers the database plugin the service runs
// against.
//
// The plugin is chosen from the scheme of the configured URL:
//   - mongodb, mongodb+srv: MongoDB driver client
//   - postgres, postgresql: pgx connection pool
//
// Both drivers connect lazily. Registration never waits for the server
// to answer; an unreachable database surfaces on the first ping or
// query instead of at startup.
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/users-api/internal/config"
	loggerPkg "github.com/deppfellow/users-api/internal/logger"
	"github.com/rs/zerolog"
)

// Driver names reported by Database.Driver.
const (
	DriverMongo    = "mongodb"
	DriverPostgres = "postgres"
)

// plugin is implemented by each supported driver.
type plugin interface {
	name() string
	database() string
	ping(ctx context.Context) error
	close(ctx context.Context) error
}

type pluginFactory func(url string, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (plugin, error)

var plugins = map[string]pluginFactory{
	"mongodb":     newMongoPlugin,
	"mongodb+srv": newMongoPlugin,
	"postgres":    newPostgresPlugin,
	"postgresql":  newPostgresPlugin,
}

// Database wraps the registered plugin and a logger.
type Database struct {
	plugin plugin
	log    *zerolog.Logger
}

// New registers the plugin matching cfg.Database.URL.
//
// It logs "Connected to DB" as soon as the plugin is registered; the
// message does not mean the server was reached.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Database, error) {
	scheme, err := Scheme(cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	factory, ok := plugins[scheme]
	if !ok {
		return nil, fmt.Errorf("unsupported database scheme %q", scheme)
	}

	p, err := factory(cfg.Database.URL, cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to register %s plugin: %w", scheme, err)
	}

	logger.Info().
		Str("driver", p.name()).
		Str("database", p.database()).
		Msg("Connected to DB")

	return &Database{plugin: p, log: logger}, nil
}

// Scheme returns the lower-cased URL scheme of a connection string.
func Scheme(url string) (string, error) {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok || scheme == "" || rest == "" {
		return "", fmt.Errorf("invalid database url: missing scheme")
	}
	return strings.ToLower(scheme), nil
}

// Driver returns the registered driver name.
func (db *Database) Driver() string {
	return db.plugin.name()
}

// Name returns the database name taken from the URL.
func (db *Database) Name() string {
	return db.plugin.database()
}

// Ping round-trips to the server.
func (db *Database) Ping(ctx context.Context) error {
	return db.plugin.ping(ctx)
}

// Close releases the plugin's connections.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Str("driver", db.plugin.name()).Msg("closing database connection")
	return db.plugin.close(ctx)
}
