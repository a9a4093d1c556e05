package operation

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

var enumValidator = validator.New()

// FieldProblem describes why a single argument was rejected.
type FieldProblem struct {
	Field   string
	Message string
}

// ValidationError lists every rejected argument of one invocation.
type ValidationError struct {
	Problems []FieldProblem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.Field + ": " + p.Message
	}
	return "invalid arguments: " + strings.Join(parts, "; ")
}

// Validate checks raw arguments against the schema, coerces them to the
// field types and fills in defaults. Unknown arguments are dropped.
func Validate(schema Schema, raw map[string]any) (Args, error) {
	args := make(Args, len(schema))
	var problems []FieldProblem

	for _, f := range schema {
		v, present := raw[f.Name]
		if present && v == nil {
			present = false
		}
		if !present {
			switch {
			case f.Default != nil:
				v = f.Default
			case f.Required:
				problems = append(problems, FieldProblem{Field: f.Name, Message: "is required"})
				continue
			default:
				continue
			}
		}

		value, err := coerce(f, v)
		if err != nil {
			problems = append(problems, FieldProblem{Field: f.Name, Message: err.Error()})
			continue
		}
		args[f.Name] = value
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return args, nil
}

func coerce(f Field, v any) (any, error) {
	switch f.Type {
	case TypeInteger:
		if fl, ok := v.(float64); ok && fl != math.Trunc(fl) {
			return nil, fmt.Errorf("must be an integer, got %v", fl)
		}
		n, err := cast.ToInt64E(v)
		if err != nil {
			return nil, fmt.Errorf("must be an integer")
		}
		return n, nil

	case TypeBoolean:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, fmt.Errorf("must be a boolean")
		}
		return b, nil

	case TypeStringArray:
		items, err := toStrings(v)
		if err != nil {
			return nil, err
		}
		if err := checkEnum(f.Enum, "dive,", items); err != nil {
			return nil, err
		}
		return items, nil

	case TypeStringMatrix:
		rows, ok := v.([]any)
		if !ok {
			if typed, ok := v.([][]string); ok {
				return typed, nil
			}
			return nil, fmt.Errorf("must be an array of arrays")
		}
		matrix := make([][]string, len(rows))
		for i, row := range rows {
			items, err := toStrings(row)
			if err != nil {
				return nil, fmt.Errorf("row %d %w", i, err)
			}
			matrix[i] = items
		}
		return matrix, nil

	default:
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("must be a string")
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, fmt.Errorf("must be a string")
		}
		if err := checkEnum(f.Enum, "", s); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// toStrings accepts only real arrays; cast would split a bare string on
// whitespace.
func toStrings(v any) ([]string, error) {
	switch v.(type) {
	case []any, []string:
	default:
		return nil, fmt.Errorf("must be an array")
	}
	items, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("must be an array of strings")
	}
	return items, nil
}

func checkEnum(enum []string, prefix string, v any) error {
	if len(enum) == 0 {
		return nil
	}
	if err := enumValidator.Var(v, prefix+"oneof="+strings.Join(enum, " ")); err != nil {
		return fmt.Errorf("must be one of: %s", strings.Join(enum, ", "))
	}
	return nil
}
