package paramtype

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Converter turns a raw URL value into a typed value.
// The boolean result reports whether the conversion succeeded.
type Converter interface {
	Convert(value string) (any, bool)
}

// Type is a named Converter that can be referenced from an expression.
type Type interface {
	Converter
	Name() string
}

// Built-in type names.
const (
	IntName    = "int"
	StringName = "string"
	BoolName   = "bool"
)

type funcType struct {
	name string
	fn   func(string) (any, bool)
}

func (t funcType) Name() string                     { return t.name }
func (t funcType) Convert(value string) (any, bool) { return t.fn(value) }

// Func creates a custom type from a conversion function.
func Func(name string, fn func(value string) (any, bool)) Type {
	return funcType{name: name, fn: fn}
}

// Int returns the built-in integer type.
func Int() Type {
	return Func(IntName, func(value string) (any, bool) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, false
		}
		return n, true
	})
}

// String returns the built-in identity type.
func String() Type {
	return Func(StringName, func(value string) (any, bool) {
		return value, true
	})
}

// Bool returns the built-in boolean type.
// Matching is case-sensitive.
func Bool() Type {
	return Func(BoolName, func(value string) (any, bool) {
		switch value {
		case "True", "true", "yes", "1":
			return true, true
		case "False", "false", "no", "0":
			return false, true
		default:
			return nil, false
		}
	})
}

// Pattern creates a string type whose values must fully match expr.
func Pattern(name, expr string) (Type, error) {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRegexp, name, err)
	}
	return Func(name, func(value string) (any, bool) {
		if !re.MatchString(value) {
			return nil, false
		}
		return value, true
	}), nil
}

// Enum creates a string type that accepts only the listed values.
func Enum(name string, values ...string) Type {
	allowed := slices.Clone(values)
	return Func(name, func(value string) (any, bool) {
		if !slices.Contains(allowed, value) {
			return nil, false
		}
		return value, true
	})
}

// UUID returns a type named "uuid" that accepts any UUID form understood by
// uuid.Parse and produces its canonical lower-case string.
func UUID() Type {
	return Func("uuid", func(value string) (any, bool) {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, false
		}
		return id.String(), true
	})
}

type arrayConverter struct {
	elem Converter
}

// Array wraps a converter so that comma-separated values are converted
// element by element into a []any. Partial results are never returned.
func Array(of Converter) Converter {
	return arrayConverter{elem: of}
}

func (a arrayConverter) Convert(value string) (any, bool) {
	parts := strings.Split(value, ",")
	items := make([]any, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, false
		}
		item, ok := a.elem.Convert(part)
		if !ok {
			return nil, false
		}
		items = append(items, item)
	}
	return items, true
}
