package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/users-api/internal/server"
	"github.com/deppfellow/users-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string  `json:"name"`
	Age  float64 `json:"age"`
}

func newTestHandler() Handler {
	return NewHandler(&server.Server{Schemas: validation.NewRegistry()})
}

func serve(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(echo.New().NewContext(req, rec)))
	return rec
}

func namedSchema() *validation.Schema {
	return &validation.Schema{
		Type:       validation.TypeObject,
		Properties: map[string]*validation.Schema{"name": {Type: validation.TypeString}},
	}
}

func TestHandleIgnoresBindErrors(t *testing.T) {
	var seen *payload
	h := Handle(newTestHandler(), func(c echo.Context, req *payload) (map[string]string, error) {
		seen = req
		return map[string]string{"test": "Hello"}, nil
	}, http.StatusCreated)

	rec := serve(t, h, `{"name":`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"test":"Hello"}`, rec.Body.String())
	require.NotNil(t, seen)
	assert.Equal(t, payload{}, *seen)
}

func TestHandleBindsWhenPossible(t *testing.T) {
	h := Handle(newTestHandler(), func(c echo.Context, req *payload) (*payload, error) {
		return req, nil
	}, http.StatusOK)

	rec := serve(t, h, `{"name":"apple","age":3}`)

	assert.JSONEq(t, `{"name":"apple","age":3}`, rec.Body.String())
}

func TestHandleWritesStringsAsText(t *testing.T) {
	h := Handle(newTestHandler(), func(echo.Context, *struct{}) (string, error) {
		return "Verified JWT", nil
	}, http.StatusOK)

	rec := serve(t, h, `{}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Verified JWT", rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain))
}

func TestResponseSchemaAppliesOnlyToItsStatus(t *testing.T) {
	result := func(echo.Context, *struct{}) (payload, error) {
		return payload{Name: "apple", Age: 3}, nil
	}

	filtered := Handle(newTestHandler(), result, http.StatusCreated,
		WithResponseSchema(http.StatusCreated, namedSchema()))
	assert.JSONEq(t, `{"name":"apple"}`, serve(t, filtered, `{}`).Body.String())

	untouched := Handle(newTestHandler(), result, http.StatusOK,
		WithResponseSchema(http.StatusCreated, namedSchema()))
	assert.JSONEq(t, `{"name":"apple","age":3}`, serve(t, untouched, `{}`).Body.String())
}
