package binder

import (
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
)

// Bind copies params into the struct pointed to by v.
//
// Fields are matched by their `param` tag, or by the lower-cased field name
// when the tag carries no name; `param:"-"` skips a field. Keys without a
// matching field are ignored. A missing key fails with ErrFailedToBind unless
// the field is a pointer, an interface, or tagged `omitempty`; such fields
// keep their value.
func Bind(params map[string]any, v any) error {
	return bindToStruct(v, "param", params, ErrFailedToBind)
}

// Struct returns a decoder that binds params into a new T with Bind.
func Struct[T any]() func(params map[string]any) (T, error) {
	return func(params map[string]any) (T, error) {
		var out T
		if err := Bind(params, &out); err != nil {
			var zero T
			return zero, err
		}
		return out, nil
	}
}

// JSON returns a decoder that marshals params to JSON and unmarshals the
// result into a new T, so the target's `json` tags decide the mapping.
// Required fields follow the same rule as Bind: when T is a struct, a missing
// key for a field that is not a pointer, an interface or tagged `omitempty`
// fails with ErrFailedToDecodeJSON.
func JSON[T any]() func(params map[string]any) (T, error) {
	return func(params map[string]any) (T, error) {
		var out T
		if name, missing := missingJSONField(reflect.TypeFor[T](), params); missing {
			return out, fmt.Errorf("%w: missing param %q", ErrFailedToDecodeJSON, name)
		}
		data, err := json.Marshal(params)
		if err != nil {
			return out, fmt.Errorf("%w: %v", ErrFailedToDecodeJSON, err)
		}
		if err := json.Unmarshal(data, &out); err != nil {
			var zero T
			return zero, fmt.Errorf("%w: %v", ErrFailedToDecodeJSON, err)
		}
		return out, nil
	}
}
