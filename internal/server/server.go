// Package server defines the Server container that owns the
// application's shared dependencies and the HTTP listener lifecycle.
//
// It owns:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database plugin
//   - optional redis client
//   - Prometheus metrics
//   - the JWT decorations and the schema registry
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/deppfellow/users-api/internal/auth"
	"github.com/deppfellow/users-api/internal/config"
	"github.com/deppfellow/users-api/internal/database"
	loggerPkg "github.com/deppfellow/users-api/internal/logger"
	"github.com/deppfellow/users-api/internal/metrics"
	"github.com/deppfellow/users-api/internal/validation"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const redisPingTimeout = 5 * time.Second

// ErrNotListening is returned by Serve before Listen succeeded.
var ErrNotListening = errors.New("HTTP server not listening")

// Server is the application instance: the container every route,
// hook and decoration is registered against.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	DB *database.Database

	// Redis is nil when no redis address is configured.
	Redis *redis.Client

	Metrics *metrics.Metrics

	// JWT carries the signJWT/verifyJWT decorations.
	JWT auth.JWT

	// Schemas is the shared schema registry routes validate against.
	Schemas *validation.Registry

	state      atomic.Int32
	httpServer *http.Server
	listener   net.Listener
}

// New builds the Server and registers its plugins.
//
// Redis is optional: a failed ping is logged and startup continues.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Metrics:       metrics.New(),
		JWT:           auth.NewStub(),
		Schemas:       validation.NewRegistry(),
	}
	s.transition(StateUninitialized, StateRegistering)

	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	s.DB = db

	if cfg.Redis.Address != "" {
		s.Redis = newRedisClient(cfg, logger, loggerService)
	}

	return s, nil
}

func newRedisClient(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	return redisClient
}

// SetupHTTPServer wraps handler in an http.Server using the configured
// timeouts.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         s.Config.Server.Address(),
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Listen binds the configured address. Bind failures are returned so
// the caller can exit with a failure status.
func (s *Server) Listen() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln

	s.transition(StateRegistering, StateListening)
	s.Logger.Info().
		Str("address", ln.Addr().String()).
		Str("env", s.Config.Primary.Env).
		Msg("server listening")

	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until Shutdown. It returns nil after a
// graceful shutdown.
func (s *Server) Serve() error {
	if s.listener == nil {
		return ErrNotListening
	}

	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then closes the plugins. Every step runs even if an earlier
// one failed.
func (s *Server) Shutdown(ctx context.Context) error {
	prev := s.State()
	if prev == StateShuttingDown || prev == StateTerminated {
		return nil
	}
	s.transition(prev, StateShuttingDown)
	defer s.state.Store(int32(StateTerminated))

	var errList []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	// Serve may never have taken ownership of the listener.
	if s.listener != nil {
		_ = s.listener.Close()
	}

	if s.DB != nil {
		if err := s.DB.Close(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	return errors.Join(errList...)
}
