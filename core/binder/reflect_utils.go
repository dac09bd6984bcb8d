package binder

import (
	"fmt"
	"reflect"
	"strings"
)

// bindToStruct binds values to a struct using reflection.
// tagName specifies which struct tag to use.
// bindErr is the specific error to use for binding failures.
func bindToStruct(v any, tagName string, values map[string]any, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		paramName, opts, skip := parseFieldTag(fieldType, tagName)
		if skip {
			continue
		}

		value, exists := values[paramName]
		if !exists || value == nil {
			if optionalField(fieldType.Type, opts) {
				continue
			}
			return fmt.Errorf("%w: field %s: missing param %q", bindErr, fieldType.Name, paramName)
		}

		if err := setFieldValue(field, fieldType.Type, value); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, fieldType.Name, err)
		}
	}

	return nil
}

// parseFieldTag extracts the parameter name and tag options and determines if the field should be skipped.
// An empty name defaults to the lowercase field name.
func parseFieldTag(field reflect.StructField, tagName string) (paramName, opts string, skip bool) {
	tag := field.Tag.Get(tagName)
	if tag == "-" {
		return "", "", true
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = strings.ToLower(field.Name)
	}
	return name, opts, false
}

// optionalField reports whether a field may stay unset when its param is absent.
// Pointer and interface fields are optional, as are fields tagged omitempty or omitzero.
func optionalField(t reflect.Type, opts string) bool {
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return true
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			return true
		}
	}
	return false
}

// missingJSONField returns the first required field of struct type t whose
// key is absent from params. Keys match the json tag name, or the field name
// case-insensitively, the way the JSON decoder resolves them.
func missingJSONField(t reflect.Type, params map[string]any) (string, bool) {
	if t.Kind() != reflect.Struct {
		return "", false
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}

		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		if optionalField(f.Type, opts) || hasKey(params, name) {
			continue
		}
		return name, true
	}

	return "", false
}

func hasKey(params map[string]any, name string) bool {
	if v, ok := params[name]; ok {
		return v != nil
	}
	for k, v := range params {
		if strings.EqualFold(k, name) {
			return v != nil
		}
	}
	return false
}

// setFieldValue stores a converted parameter value in field.
// Values are int, string, bool or []any of those.
func setFieldValue(field reflect.Value, fieldType reflect.Type, value any) error {
	// Dereference pointers, creating new instances for nil pointers
	if fieldType.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(fieldType.Elem()))
		}
		return setFieldValue(field.Elem(), fieldType.Elem(), value)
	}

	if fieldType.Kind() == reflect.Interface {
		rv := reflect.ValueOf(value)
		if !rv.Type().AssignableTo(fieldType) {
			return fmt.Errorf("cannot assign %T to %s", value, fieldType)
		}
		field.Set(rv)
		return nil
	}

	if fieldType.Kind() == reflect.Slice {
		return setSliceValue(field, fieldType, value)
	}

	switch fieldType.Kind() {
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(s)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := value.(int)
		if !ok {
			return fmt.Errorf("expected int, got %T", value)
		}
		if field.OverflowInt(int64(n)) {
			return fmt.Errorf("value %d overflows %s", n, fieldType)
		}
		field.SetInt(int64(n))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := value.(int)
		if !ok {
			return fmt.Errorf("expected int, got %T", value)
		}
		if n < 0 || field.OverflowUint(uint64(n)) {
			return fmt.Errorf("value %d does not fit %s", n, fieldType)
		}
		field.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		n, ok := value.(int)
		if !ok {
			return fmt.Errorf("expected int, got %T", value)
		}
		field.SetFloat(float64(n))

	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", fieldType.Kind())
	}

	return nil
}

// setSliceValue sets slice field values from an array param.
func setSliceValue(field reflect.Value, fieldType reflect.Type, value any) error {
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("expected list, got %T", value)
	}

	elemType := fieldType.Elem()
	slice := reflect.MakeSlice(fieldType, len(items), len(items))

	for i, item := range items {
		if err := setFieldValue(slice.Index(i), elemType, item); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}

	field.Set(slice)
	return nil
}
