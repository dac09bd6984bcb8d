// Package middleware provides net/http middleware around a deeplink Router.
//
// Resolve matches each request URL and stores the result in the request
// context:
//
//	mux := http.NewServeMux()
//	mux.Handle("/", middleware.Resolve(router, middleware.ResolveConfig{
//		NotFound: http.NotFoundHandler(),
//	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//		res, _ := middleware.FromContext[Route, Tracking](r.Context())
//		// render or redirect for res.Route
//	})))
//
// QueryURL resolves a link carried in a query parameter instead of the
// request URL, e.g. a single /open endpoint fronting app links.
//
// RequestID assigns each request an identifier (UUID v4 by default) that
// Resolve and Logging include in their log records. Logging writes one
// access record per request; wrap it inside RequestID:
//
//	h := middleware.RequestID()(middleware.Logging(middleware.LoggingConfig{Logger: log})(mux))
package middleware
