package service

import (
	"github.com/deppfellow/users-api/internal/server"
)

// AuthService fronts the JWT decorations registered on the server.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	return &AuthService{
		server: s,
	}
}

// SignJWT returns the placeholder signed token.
func (a *AuthService) SignJWT() string {
	return a.server.JWT.SignJWT()
}

// VerifyJWT returns the placeholder verification result.
func (a *AuthService) VerifyJWT() string {
	return a.server.JWT.VerifyJWT()
}
