package router

import (
	"github.com/deppfellow/users-api/internal/validation"
)

const createUserSchemaID = "createUseSchema"

// createUserSchema is the body every schema-validated route requires.
func createUserSchema() *validation.Schema {
	return &validation.Schema{
		ID:       createUserSchemaID,
		Type:     validation.TypeObject,
		Required: []string{"name"},
		Properties: map[string]*validation.Schema{
			"name": {Type: validation.TypeString},
		},
	}
}

// itemSchema describes model.Item. It is declared as the 201 response
// of GET /.
func itemSchema() *validation.Schema {
	return &validation.Schema{
		Type: validation.TypeObject,
		Properties: map[string]*validation.Schema{
			"name": {Type: validation.TypeString},
			"age":  {Type: validation.TypeNumber},
		},
	}
}

func registerSchemas(registry *validation.Registry) error {
	return registry.Add(createUserSchema())
}
