package tools

import (
	"encoding/json"
	"fmt"

	"github.com/monadtools/monad-mcp-go/mcp"
)

// ValidationError describes the first schema constraint an argument
// object violates.
type ValidationError struct {
	Field   string
	Problem string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Problem)
}

// ValidateArgs checks raw arguments against a tool's input schema and
// returns the validated set. Checks are purely structural: required
// fields must be present and every declared field must carry its declared
// JSON type. Semantic checks (address format, amount parsing) belong to
// the handlers. The function is pure; raw is never mutated.
func ValidateArgs(schema mcp.InputSchema, raw map[string]any) (map[string]any, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	for _, field := range schema.Required {
		if _, present := raw[field]; !present {
			return nil, &ValidationError{Field: field, Problem: "missing required field"}
		}
	}

	validated := make(map[string]any, len(schema.Properties))
	for field, spec := range schema.Properties {
		value, present := raw[field]
		if !present {
			continue
		}

		declared := declaredType(spec)
		if declared != "" && !matchesType(value, declared) {
			return nil, &ValidationError{
				Field:   field,
				Problem: fmt.Sprintf("expected %s, got %T", declared, value),
			}
		}
		validated[field] = value
	}

	return validated, nil
}

func declaredType(spec any) string {
	props, ok := spec.(map[string]any)
	if !ok {
		return ""
	}
	declared, _ := props["type"].(string)
	return declared
}

func matchesType(value any, declared string) bool {
	switch declared {
	case "string":
		_, ok := value.(string)
		return ok
	case "number", "integer":
		switch value.(type) {
		case float64, int, int64, json.Number:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	default:
		return true
	}
}
