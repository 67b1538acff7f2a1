package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/users-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserSchema() *Schema {
	return &Schema{
		ID:       "createUseSchema",
		Type:     TypeObject,
		Required: []string{"name"},
		Properties: map[string]*Schema{
			"name": {Type: TypeString},
		},
	}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Add(createUserSchema()))
	return r
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Add(createUserSchema()))

	got, ok := r.Get("createUseSchema")
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, got.Required)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistryAddRejectsMalformedSchemas(t *testing.T) {
	r := newTestRegistry(t)

	assert.ErrorIs(t, r.Add(&Schema{Type: TypeObject}), ErrMissingSchemaID)
	assert.ErrorIs(t, r.Add(nil), ErrMissingSchemaID)
	assert.ErrorIs(t, r.Add(createUserSchema()), ErrSchemaAlreadyPresent)
	assert.Error(t, r.Add(&Schema{ID: "weird", Type: "date"}))
	assert.Error(t, r.Add(&Schema{
		ID:         "nested",
		Type:       TypeObject,
		Properties: map[string]*Schema{"when": {Type: "timestamp"}},
	}))
}

func TestResolveFollowsRefs(t *testing.T) {
	r := newTestRegistry(t)

	s, err := r.Resolve(Ref("createUseSchema"))
	require.NoError(t, err)
	assert.Equal(t, "createUseSchema", s.ID)

	_, err = r.Resolve(&Schema{Ref: "missing#"})
	assert.ErrorIs(t, err, ErrSchemaNotFound)
}

func TestCompileReportsNestedUnknownRefs(t *testing.T) {
	r := newTestRegistry(t)
	require.NoError(t, r.Add(&Schema{
		ID:         "wrapper",
		Type:       TypeObject,
		Properties: map[string]*Schema{"user": Ref("nobody")},
	}))

	_, err := r.Compile(Ref("wrapper"))
	assert.ErrorIs(t, err, ErrSchemaNotFound)

	v, err := r.Compile(Ref("createUseSchema"))
	require.NoError(t, err)
	assert.Equal(t, "createUseSchema", v.Name())
}

func TestCompileToleratesCycles(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(&Schema{
		ID:         "node",
		Type:       TypeObject,
		Properties: map[string]*Schema{"next": Ref("node")},
	}))

	v, err := r.Compile(Ref("node"))
	require.NoError(t, err)

	assert.Nil(t, v.Validate(map[string]any{"next": map[string]any{"next": map[string]any{}}}))
	violations := v.Validate(map[string]any{"next": map[string]any{"next": "end"}})
	require.Len(t, violations, 1)
	assert.Equal(t, "body/next/next must be object", violations[0].Detail)
}

func TestValidate(t *testing.T) {
	r := newTestRegistry(t)
	v, err := r.Compile(Ref("createUseSchema"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		value   any
		field   string
		message string
		detail  string
	}{
		{name: "valid", value: map[string]any{"name": "Alice"}},
		{name: "empty name is still a string", value: map[string]any{"name": ""}},
		{name: "extra properties allowed", value: map[string]any{"name": "Alice", "age": 3.0}},
		{
			name: "missing name", value: map[string]any{},
			field: "name", message: "is required", detail: "body must have required property 'name'",
		},
		{
			name: "numeric name", value: map[string]any{"name": 42.0},
			field: "name", message: "must be string", detail: "body/name must be string",
		},
		{
			name: "null name", value: map[string]any{"name": nil},
			field: "name", message: "must be string", detail: "body/name must be string",
		},
		{
			name: "no body", value: nil,
			field: "body", message: "must be object", detail: "body must be object",
		},
		{
			name: "array body", value: []any{"Alice"},
			field: "body", message: "must be object", detail: "body must be object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := v.Validate(tt.value)
			if tt.detail == "" {
				assert.Nil(t, violations)
				return
			}
			require.Len(t, violations, 1)
			assert.Equal(t, tt.field, violations[0].Field)
			assert.Equal(t, tt.message, violations[0].Message)
			assert.Equal(t, tt.detail, violations[0].Detail)
			assert.Equal(t, tt.detail, violations.Error())
		})
	}
}

func TestValidateNestedAndTypes(t *testing.T) {
	r := NewRegistry()
	schema := &Schema{
		Type:     TypeObject,
		Required: []string{"address", "tags"},
		Properties: map[string]*Schema{
			"age":     {Type: TypeInteger},
			"active":  {Type: TypeBoolean},
			"address": {Type: TypeObject, Required: []string{"city"}},
			"tags":    {Type: TypeArray, Items: &Schema{Type: TypeString}},
		},
	}

	v, err := r.Compile(schema)
	require.NoError(t, err)

	violations := v.Validate(map[string]any{
		"age":     2.5,
		"active":  "yes",
		"address": map[string]any{},
		"tags":    []any{"a", 1.0},
	})

	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"active", "address.city", "age", "tags.1"}, fields)
	assert.Equal(t, "body/active must be boolean", violations.Error())

	assert.Nil(t, v.Validate(map[string]any{
		"age":     30.0,
		"address": map[string]any{"city": "Lyon"},
		"tags":    []any{},
	}))
}

func TestFilterKeepsDeclaredProperties(t *testing.T) {
	r := NewRegistry()
	schema := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"name": {Type: TypeString},
			"age":  {Type: TypeNumber},
		},
	}

	out, err := r.Filter(schema, map[string]any{"name": "Bob", "age": 3, "password": "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Bob", "age": 3.0}, out)

	out, err = r.Filter(schema, "Verified JWT")
	require.NoError(t, err)
	assert.Equal(t, "Verified JWT", out)
}

func compileCreateUser(t *testing.T) *Validator {
	t.Helper()
	v, err := newTestRegistry(t).Compile(Ref("createUseSchema"))
	require.NoError(t, err)
	return v
}

func TestBodyMiddleware(t *testing.T) {
	mw := Body(compileCreateUser(t))

	tests := []struct {
		name       string
		body       string
		wantCalled bool
		wantMsg    string
	}{
		{name: "valid body", body: `{"name":"Alice"}`, wantCalled: true},
		{name: "missing name", body: `{}`, wantMsg: "body must have required property 'name'"},
		{name: "wrong type", body: `{"name":1}`, wantMsg: "body/name must be string"},
		{name: "empty body", body: ``, wantMsg: "body must be object"},
		{name: "invalid json", body: `{"name":`, wantMsg: "Body is not valid JSON"},
		{name: "trailing data", body: `{"name":"Alice"} {}`, wantMsg: "Body is not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			c := e.NewContext(req, httptest.NewRecorder())

			called := false
			var seenName string
			err := mw(func(c echo.Context) error {
				called = true
				var payload struct {
					Name string `json:"name"`
				}
				if err := c.Bind(&payload); err != nil {
					return err
				}
				seenName = payload.Name
				return nil
			})(c)

			assert.Equal(t, tt.wantCalled, called)
			if tt.wantCalled {
				require.NoError(t, err)
				assert.Equal(t, "Alice", seenName)
				return
			}

			var httpErr *errs.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
		})
	}
}

func TestBodyMiddlewareNotifiesObservers(t *testing.T) {
	var rejected []string
	mw := Body(compileCreateUser(t), func(name string) { rejected = append(rejected, name) })
	next := func(echo.Context) error { return nil }

	for _, body := range []string{`{"name":"Alice"}`, `{}`} {
		req := httptest.NewRequest(http.MethodGet, "/", strings.NewReader(body))
		c := echo.New().NewContext(req, httptest.NewRecorder())
		_ = mw(next)(c)
	}

	assert.Equal(t, []string{"createUseSchema"}, rejected)
}

func TestSchemaName(t *testing.T) {
	assert.Equal(t, "createUseSchema", createUserSchema().Name())
	assert.Equal(t, "createUseSchema", Ref("createUseSchema").Name())
	assert.Equal(t, "inline", (&Schema{Type: TypeString}).Name())
}

func TestBodyMiddlewarePropagatesSizeLimit(t *testing.T) {
	called := false
	next := func(echo.Context) error {
		called = true
		return nil
	}
	chain := middleware.BodyLimit("8B")(Body(compileCreateUser(t))(next))

	req := httptest.NewRequest(http.MethodGet, "/", strings.NewReader(`{"name":"Alice Liddell"}`))
	req.ContentLength = -1
	c := echo.New().NewContext(req, httptest.NewRecorder())

	err := chain(c)

	assert.False(t, called)
	assert.ErrorIs(t, err, echo.ErrStatusRequestEntityTooLarge)
}
