// Package routefile loads declarative route tables and builds routers from them.
//
// A table lists global params, custom types and routes in priority order:
//
//	global_params: [source_id]
//	types:
//	  - name: color
//	    kind: enum
//	    values: [red, green]
//	  - name: slug
//	    kind: pattern
//	    pattern: "[a-z0-9-]+"
//	routes:
//	  - name: post
//	    expression: /newsfeed/:postId{int}
//	  - name: feed
//	    expression: /newsfeed/.*
//
// YAML (.yaml, .yml) and JSON (.json) are accepted; the format follows the
// file extension. Table.Router returns a router whose values carry the route
// name and the matched params.
//
// Watch reloads a table file on change. Routers are not mutated after
// registration, so callers build a new router per table and swap it in,
// for example behind an atomic.Pointer.
package routefile
