package service

import (
	"context"

	"github.com/deppfellow/users-api/internal/middleware"
	"github.com/deppfellow/users-api/internal/model"
	"github.com/deppfellow/users-api/internal/server"
)

const itemCreatedMessage = "Hello"

type ItemService struct {
	server *server.Server
}

func NewItemService(s *server.Server) *ItemService {
	return &ItemService{
		server: s,
	}
}

// Create acknowledges an item. Nothing is stored and the item's
// contents do not affect the result.
func (s *ItemService) Create(ctx context.Context, item *model.Item) (*model.ItemCreated, error) {
	event := middleware.LoggerFromContext(ctx).Debug().
		Str("item_name", item.Name).
		Float64("item_age", item.Age)
	if user := middleware.UserFromContext(ctx); user != nil {
		event = event.Str("user", user.Name)
	}
	event.Msg("item received")

	return &model.ItemCreated{Test: itemCreatedMessage}, nil
}
