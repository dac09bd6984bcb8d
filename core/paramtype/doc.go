// Package paramtype provides the named scalar conversions used by URL pattern
// parameters.
//
// A Registry holds the built-in types together with any custom types supplied
// at construction time. The built-ins are:
//
//   - int: base-10 integer, produces int
//   - string: identity, the inferred type for parameters without an annotation
//   - bool: "True", "true", "yes", "1" are true; "False", "false", "no", "0" are false
//
// Custom types are created with Func, Pattern, Enum or UUID:
//
//	slug, err := paramtype.Pattern("slug", `[a-z0-9-]+`)
//	if err != nil {
//		return err
//	}
//
//	reg, err := paramtype.New(slug, paramtype.UUID(), paramtype.Enum("color", "red", "green"))
//	if err != nil {
//		// errors.Is(err, paramtype.ErrInvalidName) or errors.Is(err, paramtype.ErrDuplicateName)
//		return err
//	}
//
// Type names must be alphabetic and unique across built-ins and custom types.
//
// Array wraps any converter so that a comma-separated value is converted element
// by element. The conversion fails as a unit: an empty element or an element that
// fails to convert rejects the whole value.
//
// Conversions only ever produce int, string, bool or []any of those values.
// A Registry is immutable after New returns and is safe for concurrent use.
package paramtype
