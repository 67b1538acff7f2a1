package validation

import (
	"fmt"
	"strings"
)

// Supported values of Schema.Type.
const (
	TypeObject  = "object"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
)

var knownTypes = map[string]bool{
	TypeObject:  true,
	TypeString:  true,
	TypeNumber:  true,
	TypeInteger: true,
	TypeBoolean: true,
	TypeArray:   true,
}

// Schema is the subset of JSON Schema the service understands.
//
// A schema either declares its own shape (Type, Required, Properties)
// or points at a registered schema through Ref ("createUseSchema#").
type Schema struct {
	ID         string             `json:"$id,omitempty"`
	Ref        string             `json:"$ref,omitempty"`
	Type       string             `json:"type,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
}

// Ref builds a reference to a registered schema id.
func Ref(id string) *Schema {
	return &Schema{Ref: id + "#"}
}

// Name identifies s in logs and metrics: its $id, the id it
// references, or "inline".
func (s *Schema) Name() string {
	switch {
	case s.ID != "":
		return s.ID
	case s.Ref != "":
		return refID(s.Ref)
	default:
		return "inline"
	}
}

// refID strips the JSON pointer fragment from a $ref.
func refID(ref string) string {
	id, _, _ := strings.Cut(ref, "#")
	return id
}

// check reports structural problems in s and its children.
func (s *Schema) check(path string) error {
	if s == nil {
		return fmt.Errorf("%s: schema is nil", path)
	}
	if s.Ref != "" {
		if refID(s.Ref) == "" {
			return fmt.Errorf("%s: invalid $ref %q", path, s.Ref)
		}
		return nil
	}
	if s.Type != "" && !knownTypes[s.Type] {
		return fmt.Errorf("%s: unknown type %q", path, s.Type)
	}
	for name, prop := range s.Properties {
		if err := prop.check(path + "/properties/" + name); err != nil {
			return err
		}
	}
	if s.Items != nil {
		if err := s.Items.check(path + "/items"); err != nil {
			return err
		}
	}
	return nil
}
