package middleware

import (
	"context"

	"github.com/deppfellow/users-api/internal/logger"
	"github.com/deppfellow/users-api/internal/model"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// LoggerKey stores the request-scoped logger in the echo context.
	LoggerKey = "logger"

	// RequestContextKey stores the *RequestContext in the echo context.
	RequestContextKey = "request_context"
)

type ctxKey int

const (
	loggerCtxKey ctxKey = iota
	requestCtxKey
)

// RequestContext holds per-request state shared by hooks and handlers.
// User is nil until a hook attaches one.
type RequestContext struct {
	User *model.User
}

// ContextEnhancer creates the request-scoped logger and RequestContext.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext stores a logger carrying request_id, method, path, ip
// and New Relic trace ids, plus an empty RequestContext, in both the
// echo context and the request's context.Context.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := context.WithValue(c.Request().Context(), loggerCtxKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(ctx))

			setRequestContext(c, &RequestContext{})

			return next(c)
		}
	}
}

func setRequestContext(c echo.Context, rc *RequestContext) {
	c.Set(RequestContextKey, rc)
	ctx := context.WithValue(c.Request().Context(), requestCtxKey, rc)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetRequestContext returns the request's RequestContext, creating it
// when EnhanceContext did not run.
func GetRequestContext(c echo.Context) *RequestContext {
	if rc, ok := c.Get(RequestContextKey).(*RequestContext); ok {
		return rc
	}
	rc := &RequestContext{}
	setRequestContext(c, rc)
	return rc
}

// GetUser returns the request user, or nil.
func GetUser(c echo.Context) *model.User {
	if rc, ok := c.Get(RequestContextKey).(*RequestContext); ok {
		return rc.User
	}
	return nil
}

// UserFromContext returns the request user from a context.Context, for
// code below the handler layer.
func UserFromContext(ctx context.Context) *model.User {
	if rc, ok := ctx.Value(requestCtxKey).(*RequestContext); ok {
		return rc.User
	}
	return nil
}

// GetLogger returns the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}
	logger := zerolog.Nop()
	return &logger
}

// LoggerFromContext is GetLogger for a context.Context.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*zerolog.Logger); ok {
		return logger
	}
	logger := zerolog.Nop()
	return &logger
}
