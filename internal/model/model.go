// Package model holds the plain data types shared across layers.
package model

// Item is the payload accepted by POST /api/users/items.
// It is never persisted.
type Item struct {
	Name string  `json:"name"`
	Age  float64 `json:"age"`
}

// CreateUser is the body GET / validates against createUseSchema.
type CreateUser struct {
	Name string `json:"name" validate:"required"`
}

// User identifies the caller of a request.
type User struct {
	Name string `json:"name"`
}

// ItemCreated is the fixed acknowledgement returned for a created item.
type ItemCreated struct {
	Test string `json:"test"`
}
