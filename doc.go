// Package deeplink maps URLs to typed application routes.
//
// Routes are described with a small expression language. The path part names
// typed segments and the query part names required, optional and literal
// query parameters:
//
//	/newsfeed/:postId{int}/comment/:commentId
//	/newsfeed/?:postIds{[int]}&:source{'deeplink'}&:ref{string?}
//	/profile/.*
//
// Built-in types are int, string (the default) and bool; [type] accepts a
// comma-separated list. Custom types are registered through the
// core/paramtype package and handed to the router with WithTypes.
//
// A Router holds registrations in order. Each registration pairs an
// expression with a Decoder that turns the matched parameters into an
// application value. The first registration that matches and decodes wins;
// a decode failure moves on to the next registration.
//
//	type Route interface{}
//
//	type Post struct{ ID int }
//
//	router := deeplink.MustNew[Route, struct{}]()
//	router.MustRegister("/newsfeed/:postId{int}", func(p matcher.Params) (Route, error) {
//		return Post{ID: p["postId"].(int)}, nil
//	})
//
//	res, ok := router.MatchString("https://example.com/newsfeed/42")
//
// Global params are optional query parameters extracted for every match,
// independently of the matched expression, and decoded with the decoder set
// by WithGlobalDecoder. If any present global param fails to convert, the
// global map handed to that decoder is empty.
//
// Registration must complete before concurrent matching starts.
package deeplink
