// Package router builds the Echo instance: global middleware, the
// shared schemas, pre-handler hooks and every route.
package router

import (
	"fmt"

	"github.com/deppfellow/users-api/internal/handler"
	"github.com/deppfellow/users-api/internal/middleware"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter registers everything against s and returns the Echo
// instance to serve. Schema or route registration errors are returned
// and must abort startup.
func NewRouter(s *server.Server, h *handler.Handlers) (*echo.Echo, error) {
	mws := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	router.Use(
		mws.Tracing.NewRelicMiddleware(),
		middleware.RequestID(),
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Global.RequestLogger(),
		mws.Global.Metrics(),
		mws.Global.Recover(),
		mws.Global.BodyLimit(),
		mws.RateLimit.Limit(systemPaths...),
		mws.Global.CORS(),
		mws.Global.Secure(),
	)

	if err := registerSchemas(s.Schemas); err != nil {
		return nil, fmt.Errorf("failed to register schemas: %w", err)
	}

	mws.Hooks.AddPreHandler(mws.Auth.AttachUser)

	registerSystemRoutes(newRoutes(router, mws.Hooks), s, h)

	if err := registerAppRoutes(router, s, h, mws.Hooks); err != nil {
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return router, nil
}
