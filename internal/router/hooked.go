package router

import (
	"github.com/deppfellow/users-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registrar is satisfied by *echo.Echo and *echo.Group.
type registrar interface {
	Add(method, path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// routes registers handlers with the pre-handler hooks appended, so the
// hooks run on every route after its own middleware (body validation
// included) and right before the handler.
type routes struct {
	target registrar
	hooks  *middleware.Hooks
}

func newRoutes(target registrar, hooks *middleware.Hooks) routes {
	return routes{target: target, hooks: hooks}
}

func (r routes) add(method, path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	chain := make([]echo.MiddlewareFunc, 0, len(m)+1)
	chain = append(chain, m...)
	chain = append(chain, r.hooks.PreHandler())
	return r.target.Add(method, path, h, chain...)
}
