package middleware

import (
	"github.com/deppfellow/users-api/internal/auth"
	"github.com/deppfellow/users-api/internal/model"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware attaches the request user.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// AttachUser is a pre-handler hook that sets the request user.
//
// No credentials are read: every request gets the placeholder user and
// the hook never fails.
func (a *AuthMiddleware) AttachUser(c echo.Context) error {
	user := &model.User{Name: auth.PlaceholderUserName}
	GetRequestContext(c).User = user

	GetLogger(c).Debug().
		Str("function", "AttachUser").
		Str("user", user.Name).
		Msg("request user attached")

	return nil
}
