package llmtool

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldsFromStruct derives output fields from a struct's exported fields.
// The name comes from the json tag, and a field tagged omitempty is
// optional. The description comes from the prompt tag; prompt:"-" skips
// the field.
func FieldsFromStruct(v any) ([]PromptField, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("llmtool: expected struct, got %T", v)
	}
	fields := make([]PromptField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		desc := strings.TrimSpace(f.Tag.Get("prompt"))
		if !f.IsExported() || desc == "-" {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields = append(fields, PromptField{
			Name:        name,
			Type:        typeName(f.Type),
			Required:    !strings.Contains(opts, "omitempty"),
			Description: desc,
		})
	}
	return fields, nil
}

// MustFieldsFromStruct is FieldsFromStruct for package-level prompt literals.
func MustFieldsFromStruct(v any) []PromptField {
	fields, err := FieldsFromStruct(v)
	if err != nil {
		panic(err)
	}
	return fields
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "[]" + typeName(t.Elem())
	case reflect.Map, reflect.Struct:
		return "object"
	}
	return "any"
}
