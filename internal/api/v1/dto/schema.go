package dto

import (
	"fmt"
	"time"
)

// FieldType is the JSON type a schema field must carry.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeInteger  FieldType = "integer"
	TypeBoolean  FieldType = "boolean"
	TypeDateTime FieldType = "date-time"
)

// Field describes one property of a response schema.
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Hidden      bool // never serialized
	Example     any
	Description string
}

// Schema is an explicit response shape. Serialize enforces it at runtime and Example feeds the
// API docs.
type Schema struct {
	Name   string
	Fields []Field
}

// SchemaError reports a value that does not fit its schema.
type SchemaError struct {
	Schema string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Schema, e.Field, e.Reason)
}

// Serialize returns the visible subset of values. Missing required fields and values of the wrong
// type are errors; keys the schema does not declare are dropped.
func (s Schema) Serialize(values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		var v any
		if raw, ok := values[f.Name]; ok && raw != nil {
			var err error
			if v, err = f.normalize(raw); err != nil {
				return nil, &SchemaError{Schema: s.Name, Field: f.Name, Reason: err.Error()}
			}
		}
		// A nil pointer counts as missing.
		if v == nil {
			if f.Required {
				return nil, &SchemaError{Schema: s.Name, Field: f.Name, Reason: "is required"}
			}
			continue
		}
		if f.Hidden {
			continue
		}
		out[f.Name] = v
	}
	return out, nil
}

// Example builds a sample document from the visible fields.
func (s Schema) Example() map[string]any {
	out := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		if f.Hidden || f.Example == nil {
			continue
		}
		out[f.Name] = f.Example
	}
	return out
}

func (f Field) normalize(v any) (any, error) {
	switch f.Type {
	case TypeString:
		switch s := v.(type) {
		case string:
			return s, nil
		case *string:
			if s == nil {
				return nil, nil
			}
			return *s, nil
		}
	case TypeInteger:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		}
	case TypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeDateTime:
		switch t := v.(type) {
		case time.Time:
			return t.UTC().Format(time.RFC3339), nil
		case string:
			if _, err := time.Parse(time.RFC3339, t); err != nil {
				return nil, fmt.Errorf("expected RFC3339 timestamp")
			}
			return t, nil
		}
	default:
		return nil, fmt.Errorf("unknown field type %q", f.Type)
	}
	return nil, fmt.Errorf("expected %s, got %T", f.Type, v)
}
