package middleware

import (
	"sync"

	"github.com/labstack/echo/v4"
)

// HookFunc runs before a route handler. Returning an error stops the
// request and hands the error to the global error handler.
type HookFunc func(c echo.Context) error

// Hooks is the ordered set of pre-handler hooks.
//
// Hooks are read when a request arrives, so a hook added after a route
// was registered still applies to that route.
type Hooks struct {
	mu          sync.RWMutex
	preHandlers []HookFunc
}

func NewHooks() *Hooks {
	return &Hooks{}
}

// AddPreHandler appends a hook. Hooks run in the order they were added.
func (h *Hooks) AddPreHandler(hook HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.preHandlers = append(h.preHandlers, hook)
}

// PreHandler returns route middleware running every hook before next.
// Attach it after any body validation middleware on the route.
func (h *Hooks) PreHandler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h.mu.RLock()
			hooks := h.preHandlers
			h.mu.RUnlock()

			for _, hook := range hooks {
				if err := hook(c); err != nil {
					return err
				}
			}
			return next(c)
		}
	}
}
