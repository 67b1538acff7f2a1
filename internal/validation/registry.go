package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	// ErrMissingSchemaID is returned when a schema without $id is registered.
	ErrMissingSchemaID = errors.New("schema is missing $id")

	// ErrSchemaAlreadyPresent is returned when an $id is registered twice.
	ErrSchemaAlreadyPresent = errors.New("schema with this $id already present")

	// ErrSchemaNotFound is returned when a $ref points at an unknown id.
	ErrSchemaNotFound = errors.New("schema not found")
)

// schemaBase is the URL every $id and $ref is resolved against, so that
// "createUseSchema#" always names the registered resource.
const schemaBase = "https://users-api.local/schemas/"

// maxRefDepth bounds $ref chains so cyclic references fail instead of looping.
const maxRefDepth = 32

// Registry is the process-wide table of named schemas.
//
// Schemas are registered during startup and read concurrently while
// serving requests.
type Registry struct {
	mu       sync.RWMutex
	schemas  map[string]*Schema
	compiler *jsonschema.Compiler
	inline   int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)

	return &Registry{
		schemas:  make(map[string]*Schema),
		compiler: c,
	}
}

// Add registers s under s.ID.
func (r *Registry) Add(s *Schema) error {
	if s == nil || s.ID == "" {
		return ErrMissingSchemaID
	}
	if err := s.check(s.ID); err != nil {
		return fmt.Errorf("invalid schema %q: %w", s.ID, err)
	}

	doc, err := s.document()
	if err != nil {
		return fmt.Errorf("invalid schema %q: %w", s.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schemas[s.ID]; ok {
		return fmt.Errorf("%w: %s", ErrSchemaAlreadyPresent, s.ID)
	}
	if err := r.compiler.AddResource(schemaBase+s.ID, doc); err != nil {
		return fmt.Errorf("invalid schema %q: %w", s.ID, err)
	}
	r.schemas[s.ID] = s
	return nil
}

// Get returns the schema registered under id.
func (r *Registry) Get(id string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[id]
	return s, ok
}

// Resolve follows $ref until it reaches a concrete schema.
func (r *Registry) Resolve(s *Schema) (*Schema, error) {
	for depth := 0; s != nil && s.Ref != ""; depth++ {
		if depth == maxRefDepth {
			return nil, fmt.Errorf("$ref chain too deep at %q", s.Ref)
		}
		target, ok := r.Get(refID(s.Ref))
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, s.Ref)
		}
		s = target
	}
	if s == nil {
		return nil, ErrSchemaNotFound
	}
	return s, nil
}

// Compile checks that s and every nested $ref resolve, then compiles s
// into a Validator. Unknown references fail here, at route
// registration, rather than on the first request.
func (r *Registry) Compile(s *Schema) (*Validator, error) {
	if _, err := r.checkRefs(s, make(map[*Schema]bool)); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	url := schemaBase + s.ID
	if s.ID == "" || r.schemas[s.ID] != s {
		doc, err := s.document()
		if err != nil {
			return nil, err
		}
		r.inline++
		// Inline schemas live next to the registered ones so relative
		// refs resolve the same way.
		url = fmt.Sprintf("%sinline-%d", schemaBase, r.inline)
		if err := r.compiler.AddResource(url, doc); err != nil {
			return nil, err
		}
	}

	compiled, err := r.compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %q: %w", s.Name(), err)
	}

	return &Validator{name: s.Name(), schema: compiled}, nil
}

func (r *Registry) checkRefs(s *Schema, seen map[*Schema]bool) (*Schema, error) {
	resolved, err := r.Resolve(s)
	if err != nil {
		return nil, err
	}
	if seen[resolved] {
		return resolved, nil
	}
	seen[resolved] = true

	for _, name := range sortedKeys(resolved.Properties) {
		if _, err := r.checkRefs(resolved.Properties[name], seen); err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
	}
	if resolved.Items != nil {
		if _, err := r.checkRefs(resolved.Items, seen); err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
	}
	return resolved, nil
}

// document renders s as the generic JSON value the compiler loads.
func (s *Schema) document() (any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
