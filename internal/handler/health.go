package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/users-api/internal/dberr"
	"github.com/deppfellow/users-api/internal/middleware"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthHandler serves GET /status for load balancers and uptime checks.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckResult is one dependency probe.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	State       string                 `json:"state"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckHealth pings the configured dependencies. It answers 503 when a
// check fails or the server is shutting down.
//
//	@Summary	Service health
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	handler.HealthResponse
//	@Failure	503	{object}	handler.HealthResponse
//	@Router		/status [get]
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	obs := h.server.Config.Observability
	response := HealthResponse{
		Status:      statusHealthy,
		State:       h.server.State().String(),
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	if obs.HealthCheckEnabled("database") && h.server.DB != nil {
		response.Checks["database"] = h.probe(c.Request().Context(), "database", h.server.DB.Ping, databaseError)
	}

	if obs.HealthCheckEnabled("redis") && h.server.Redis != nil {
		response.Checks["redis"] = h.probe(c.Request().Context(), "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}, error.Error)
	}

	healthy := h.server.State() != server.StateShuttingDown
	for _, check := range response.Checks {
		if check.Status != statusHealthy {
			healthy = false
		}
	}

	if !healthy {
		response.Status = statusUnhealthy
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		h.recordHealthEvent("overall", time.Since(start), nil)
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

// databaseError hides driver details, which carry hosts and credentials.
func databaseError(err error) string {
	return dberr.HandleError(err).Error()
}

func (h *HealthHandler) probe(parent context.Context, name string, ping func(context.Context) error, describe func(error) string) CheckResult {
	ctx, cancel := context.WithTimeout(parent, h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err != nil {
		h.server.Logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check dependency unreachable")
		h.recordHealthEvent(name, elapsed, err)

		return CheckResult{
			Status:       statusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        describe(err),
		}
	}

	return CheckResult{
		Status:       statusHealthy,
		ResponseTime: elapsed.String(),
	}
}

func (h *HealthHandler) recordHealthEvent(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs := map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"response_time_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		attrs["error_message"] = err.Error()
	}
	app.RecordCustomEvent("HealthCheckError", attrs)
}
