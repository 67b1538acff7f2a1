package handler

import (
	"time"

	"github.com/deppfellow/users-api/internal/middleware"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/deppfellow/users-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the shared application dependencies for concrete handlers.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint. req is freshly allocated per request
// and holds whatever the body could be bound into.
type HandlerFunc[Req, Res any] func(c echo.Context, req *Req) (Res, error)

// ResponseOption customizes how a handler's result is written.
type ResponseOption func(*responseHandler)

// WithResponseSchema declares the response schema for one status code.
// The result is filtered through it only when the handler responds with
// that exact status.
func WithResponseSchema(status int, schema *validation.Schema) ResponseOption {
	return func(h *responseHandler) {
		h.schemas[status] = schema
	}
}

// responseHandler writes string results as text/plain and everything
// else as JSON.
type responseHandler struct {
	status   int
	registry *validation.Registry
	schemas  map[int]*validation.Schema
}

func newResponseHandler(registry *validation.Registry, status int, opts []ResponseOption) responseHandler {
	h := responseHandler{
		status:   status,
		registry: registry,
		schemas:  make(map[int]*validation.Schema),
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

func (h responseHandler) Handle(c echo.Context, result any) error {
	if schema, ok := h.schemas[h.status]; ok {
		filtered, err := h.registry.Filter(schema, result)
		if err != nil {
			return err
		}
		result = filtered
	}

	if text, ok := result.(string); ok {
		return c.String(h.status, text)
	}
	return c.JSON(h.status, result)
}

// handleRequest is the shared pipeline: lenient bind, handler call,
// logging and New Relic attributes, response write.
//
// Bind failures are logged and ignored. Routes that need a valid body
// declare a schema and are rejected before reaching this point.
func handleRequest[Req any](
	c echo.Context,
	handler func(c echo.Context, req *Req) (any, error),
	response responseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("route", route).
		Logger()

	logger.Info().Msg("handling request")

	req := new(Req)
	if err := c.Bind(req); err != nil {
		logger.Debug().Err(err).Msg("request body not bound, continuing")
		if txn != nil {
			txn.AddAttribute("bind.status", "ignored")
		}
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return response.Handle(c, result)
}

// Handle wraps a typed handler into an echo.HandlerFunc responding with
// status on success.
//
//	g.POST("/items", handler.Handle(h, itemFn, http.StatusCreated))
func Handle[Req, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	opts ...ResponseOption,
) echo.HandlerFunc {
	response := newResponseHandler(h.server.Schemas, status, opts)

	return func(c echo.Context) error {
		return handleRequest(c, func(c echo.Context, req *Req) (any, error) {
			return handler(c, req)
		}, response)
	}
}
