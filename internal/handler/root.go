package handler

import (
	"github.com/deppfellow/users-api/internal/model"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/deppfellow/users-api/internal/service"
	"github.com/labstack/echo/v4"
)

// RootHandler serves GET /.
type RootHandler struct {
	Handler
	auth *service.AuthService
}

func NewRootHandler(s *server.Server, auth *service.AuthService) *RootHandler {
	return &RootHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// Verify returns the JWT verification result as plain text.
//
//	@Summary		Verify JWT
//	@Tags			root
//	@Accept			json
//	@Produce		plain
//	@Param			request	body		model.CreateUser	true	"createUseSchema"
//	@Success		200		{string}	string				"Verified JWT"
//	@Success		201		{object}	model.Item
//	@Failure		400		{object}	errs.HTTPError
//	@Router			/ [get]
func (h *RootHandler) Verify(c echo.Context, _ *model.CreateUser) (string, error) {
	return h.auth.VerifyJWT(), nil
}
