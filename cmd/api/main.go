package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/users-api/internal/config"
	"github.com/deppfellow/users-api/internal/handler"
	"github.com/deppfellow/users-api/internal/logger"
	"github.com/deppfellow/users-api/internal/router"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/deppfellow/users-api/internal/service"
	"github.com/rs/zerolog"
)

const (
	exitOK      = 0
	exitFailure = 1
)

// shutdownSignals stop the server gracefully with exit code 0.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

//	@title			Users API
//	@version		1.0
//	@description	Schema-validated user endpoints.
//	@BasePath		/
func main() {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	os.Exit(run(ctx))
}

// notifyContext returns a context cancelled on the first shutdown signal.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}

// run starts the service and blocks until ctx is cancelled or the
// listener fails. It returns the process exit code.
func run(ctx context.Context) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		bootstrap.Error().Err(err).Msg("failed to load config")
		return exitFailure
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return exitFailure
	}

	services := service.NewServices(srv)
	handlers := handler.NewHandlers(srv, services)

	r, err := router.NewRouter(srv, handlers)
	if err != nil {
		log.Error().Err(err).Msg("failed to build router")
		shutdown(srv, &log)
		return exitFailure
	}

	srv.SetupHTTPServer(r)

	if err := srv.Listen(); err != nil {
		log.Error().Err(err).Msg("failed to start server")
		shutdown(srv, &log)
		return exitFailure
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		log.Error().Err(err).Msg("server stopped unexpectedly")
		shutdown(srv, &log)
		return exitFailure
	}

	shutdown(srv, &log)
	log.Info().Msg("server exited properly")

	return exitOK
}

// shutdown closes the server within the configured timeout. Errors are
// logged but do not change the exit code.
func shutdown(srv *server.Server, log *zerolog.Logger) {
	timeout := time.Duration(srv.Config.Server.ShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}
