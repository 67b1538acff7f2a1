package router

import (
	"net/http"

	_ "github.com/deppfellow/users-api/docs"
	"github.com/deppfellow/users-api/internal/handler"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// systemPaths are exempt from rate limiting.
var systemPaths = []string{"/status", "/metrics"}

// registerSystemRoutes registers endpoints that are not business logic:
// health, Prometheus metrics and the Swagger UI with its doc.json.
func registerSystemRoutes(r routes, s *server.Server, h *handler.Handlers) {
	r.add(http.MethodGet, "/status", h.Health.CheckHealth)
	r.add(http.MethodGet, "/metrics", echo.WrapHandler(s.Metrics.Handler()))
	r.add(http.MethodGet, "/docs/*", echoSwagger.WrapHandler)
}
