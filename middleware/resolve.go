package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/deeplink"
	"github.com/dmitrymomot/deeplink/core/logger"
)

// resolvedContextKey is used as a key for storing the match result in request context.
type resolvedContextKey struct{}

// ResolveConfig configures the resolve middleware.
type ResolveConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Extract picks the URL to resolve (default: the request URL).
	// Returning nil counts as a miss.
	Extract func(r *http.Request) *url.URL
	// NotFound handles requests no route matched. When nil the request
	// continues to the next handler without a result in context.
	NotFound http.Handler
	// Logger receives one debug record per resolved request (default: discard)
	Logger *slog.Logger
}

// Resolve creates middleware that resolves each request through router and
// stores the result in the request context for FromContext.
func Resolve[R, G any](router *deeplink.Router[R, G], cfg ResolveConfig) func(http.Handler) http.Handler {
	if cfg.Extract == nil {
		cfg.Extract = func(r *http.Request) *url.URL { return r.URL }
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	log := cfg.Logger.With(logger.Component("resolve"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			res, ok := router.Match(cfg.Extract(r))

			requestID, _ := GetRequestID(r.Context())
			if !ok {
				log.DebugContext(r.Context(), "no route matched",
					logger.Path(r.URL.Path),
					logger.Result("miss"),
					logger.RequestID(requestID),
				)
				if cfg.NotFound != nil {
					cfg.NotFound.ServeHTTP(w, r)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			log.DebugContext(r.Context(), "route matched",
				logger.Path(r.URL.Path),
				logger.Expression(res.Expression),
				logger.Result("match"),
				logger.RequestID(requestID),
			)
			ctx := context.WithValue(r.Context(), resolvedContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the result stored by Resolve.
// The type parameters must match the router's.
func FromContext[R, G any](ctx context.Context) (deeplink.Result[R, G], bool) {
	res, ok := ctx.Value(resolvedContextKey{}).(deeplink.Result[R, G])
	return res, ok
}

// QueryURL returns an Extract function that resolves the URL carried in
// the named query parameter, e.g. /open?link=https%3A%2F%2Fexample.com%2Fnewsfeed.
func QueryURL(param string) func(r *http.Request) *url.URL {
	return func(r *http.Request) *url.URL {
		raw := r.URL.Query().Get(param)
		if raw == "" {
			return nil
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil
		}
		return u
	}
}
