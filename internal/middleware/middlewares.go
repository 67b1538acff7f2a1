package middleware

import (
	"github.com/deppfellow/users-api/internal/server"
)

// Middlewares groups every middleware component the router wires.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware

	// Hooks holds the pre-handler hooks applied to every route.
	Hooks *Hooks
}

// NewMiddlewares builds all middleware components from the server.
// Tracing degrades to a no-op when New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
		Hooks:           NewHooks(),
	}
}
