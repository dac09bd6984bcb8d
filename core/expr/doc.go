// Package expr compiles URL pattern expressions into immutable Patterns.
//
// An expression describes the path shape of a URL and, optionally, the query
// parameters it carries:
//
//	/newsfeed/:postId{int}/comment/:commentId?:source{'deeplink'}&:ref{string?}
//
// Path tokens occupy a whole segment and are always required:
//
//	:name          inferred (string) type
//	:name{type}    explicit type
//
// Query tokens are joined with "&" after a "?":
//
//	:name            required, inferred type
//	:name{type}      required
//	:name{[type]}    required, comma-separated array
//	:name{type?}     optional
//	:name{[type]?}   optional array
//	:name{'value'}   literal, the raw value must equal value
//
// Text that does not form a token is kept as literal path text, so regular
// expression fragments such as "/newsfeed/.*" act as wildcards. Optional,
// literal and array forms are not recognised in the path.
//
// A Compiler is bound to a paramtype.Registry and to the router-wide global
// query parameter names. Names must be unique across the path, the global
// parameters and the query of a single expression.
package expr
