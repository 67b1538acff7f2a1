package handler

import (
	"github.com/deppfellow/users-api/internal/model"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/deppfellow/users-api/internal/service"
	"github.com/labstack/echo/v4"
)

// ItemHandler serves the /api/users item routes.
type ItemHandler struct {
	Handler
	items *service.ItemService
}

func NewItemHandler(s *server.Server, items *service.ItemService) *ItemHandler {
	return &ItemHandler{
		Handler: NewHandler(s),
		items:   items,
	}
}

// CreateItem acknowledges an item. The body is not validated.
//
//	@Summary		Create item
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Param			request	body		model.Item	false	"item"
//	@Success		201		{object}	model.ItemCreated
//	@Router			/api/users/items [post]
func (h *ItemHandler) CreateItem(c echo.Context, req *model.Item) (*model.ItemCreated, error) {
	return h.items.Create(c.Request().Context(), req)
}
