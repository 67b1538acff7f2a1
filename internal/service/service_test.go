package service

import (
	"context"
	"testing"

	"github.com/deppfellow/users-api/internal/auth"
	"github.com/deppfellow/users-api/internal/model"
	"github.com/deppfellow/users-api/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJWT struct{}

func (fakeJWT) SignJWT() string   { return "signed-by-fake" }
func (fakeJWT) VerifyJWT() string { return "verified-by-fake" }

func TestAuthServiceUsesServerDecorations(t *testing.T) {
	svc := NewServices(&server.Server{JWT: auth.NewStub()})

	assert.Equal(t, "Signed JWT", svc.Auth.SignJWT())
	assert.Equal(t, "Verified JWT", svc.Auth.VerifyJWT())

	swapped := NewAuthService(&server.Server{JWT: fakeJWT{}})
	assert.Equal(t, "verified-by-fake", swapped.VerifyJWT())
}

func TestItemServiceCreateIgnoresContents(t *testing.T) {
	svc := NewItemService(&server.Server{})

	for _, item := range []*model.Item{
		{},
		{Name: "apple", Age: 3},
		{Name: "", Age: -1.5},
	} {
		got, err := svc.Create(context.Background(), item)
		require.NoError(t, err)
		assert.Equal(t, &model.ItemCreated{Test: "Hello"}, got)
	}
}
