package handler

import (
	"github.com/deppfellow/users-api/internal/server"
	"github.com/deppfellow/users-api/internal/service"
)

type Handlers struct {
	Root   *RootHandler
	Item   *ItemHandler
	Health *HealthHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Root:   NewRootHandler(s, services.Auth),
		Item:   NewItemHandler(s, services.Item),
		Health: NewHealthHandler(s),
	}
}
