package service

import (
	"github.com/deppfellow/users-api/internal/server"
)

type Services struct {
	Auth *AuthService
	Item *ItemService
}

func NewServices(s *server.Server) *Services {
	return &Services{
		Auth: NewAuthService(s),
		Item: NewItemService(s),
	}
}
