package validation

import (
	"encoding/json"
	"fmt"
)

// Filter shapes a response value by s: object schemas with declared
// properties keep only those properties, recursively. Values without a
// matching shape are passed through unchanged.
func (r *Registry) Filter(s *Schema, value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return r.filter(s, generic)
}

func (r *Registry) filter(s *Schema, value any) (any, error) {
	resolved, err := r.Resolve(s)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case map[string]any:
		if len(resolved.Properties) == 0 {
			return v, nil
		}
		out := make(map[string]any, len(resolved.Properties))
		for name, prop := range resolved.Properties {
			child, ok := v[name]
			if !ok {
				continue
			}
			filtered, err := r.filter(prop, child)
			if err != nil {
				return nil, err
			}
			out[name] = filtered
		}
		return out, nil
	case []any:
		if resolved.Items == nil {
			return v, nil
		}
		out := make([]any, 0, len(v))
		for _, child := range v {
			filtered, err := r.filter(resolved.Items, child)
			if err != nil {
				return nil, err
			}
			out = append(out, filtered)
		}
		return out, nil
	default:
		return v, nil
	}
}
