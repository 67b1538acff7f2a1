package router

import (
	"net/http"

	"github.com/deppfellow/users-api/internal/handler"
	"github.com/deppfellow/users-api/internal/middleware"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/deppfellow/users-api/internal/validation"
	"github.com/labstack/echo/v4"
)

func registerAppRoutes(router *echo.Echo, s *server.Server, h *handler.Handlers, hooks *middleware.Hooks) error {
	body, err := s.Schemas.Compile(validation.Ref(createUserSchemaID))
	if err != nil {
		return err
	}

	root := newRoutes(router, hooks)
	// The response schema is declared for 201 while the handler answers
	// with the default 200, so it is never applied.
	root.add(http.MethodGet, "/",
		handler.Handle(h.Root.Handler, h.Root.Verify, http.StatusOK,
			handler.WithResponseSchema(http.StatusCreated, itemSchema()),
		),
		validation.Body(body, s.Metrics.ValidationFailed),
	)

	users := newRoutes(router.Group("/api/users"), hooks)
	users.add(http.MethodPost, "/items",
		handler.Handle(h.Item.Handler, h.Item.CreateItem, http.StatusCreated),
	)

	return nil
}
