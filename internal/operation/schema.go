package operation

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// FieldType is the JSON type of an input field.
type FieldType string

const (
	TypeString      FieldType = "string"
	TypeInteger     FieldType = "integer"
	TypeBoolean     FieldType = "boolean"
	TypeStringArray FieldType = "string_array"
	// TypeStringMatrix is an array of rows, each an array of strings.
	TypeStringMatrix FieldType = "string_matrix"
)

// Field describes one input argument.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Default     any
	Description string
	// Enum restricts string values, or the items of a string array.
	Enum []string
}

// Schema is the ordered list of input fields of an operation.
type Schema []Field

// Lookup returns the field with the given name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ToolOptions converts the schema into mcp-go tool options.
func (s Schema) ToolOptions() []mcp.ToolOption {
	opts := make([]mcp.ToolOption, 0, len(s))
	for _, f := range s {
		opts = append(opts, f.toolOption())
	}
	return opts
}

func (f Field) toolOption() mcp.ToolOption {
	props := []mcp.PropertyOption{mcp.Description(f.Description)}
	if f.Required {
		props = append(props, mcp.Required())
	}

	switch f.Type {
	case TypeInteger:
		if d, ok := f.Default.(int); ok {
			props = append(props, mcp.DefaultNumber(float64(d)))
		}
		return mcp.WithNumber(f.Name, props...)

	case TypeBoolean:
		if d, ok := f.Default.(bool); ok {
			props = append(props, mcp.DefaultBool(d))
		}
		return mcp.WithBoolean(f.Name, props...)

	case TypeStringArray:
		items := map[string]any{"type": "string"}
		if len(f.Enum) > 0 {
			items["enum"] = f.Enum
		}
		props = append(props, mcp.Items(items))
		return mcp.WithArray(f.Name, props...)

	case TypeStringMatrix:
		props = append(props, mcp.Items(map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}))
		return mcp.WithArray(f.Name, props...)

	default:
		if d, ok := f.Default.(string); ok {
			props = append(props, mcp.DefaultString(d))
		}
		if len(f.Enum) > 0 {
			props = append(props, mcp.Enum(f.Enum...))
		}
		return mcp.WithString(f.Name, props...)
	}
}
