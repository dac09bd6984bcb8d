package deeplink

import (
	"log/slog"

	"github.com/dmitrymomot/deeplink/core/paramtype"
)

// Option configures a Router during creation.
type Option[R, G any] func(*Router[R, G])

// WithTypes sets the type registry used to resolve type names.
func WithTypes[R, G any](types *paramtype.Registry) Option[R, G] {
	return func(r *Router[R, G]) {
		if types != nil {
			r.types = types
		}
	}
}

// WithGlobalParams adds optional query parameters extracted for every match.
func WithGlobalParams[R, G any](names ...string) Option[R, G] {
	return func(r *Router[R, G]) {
		r.globalNames = append(r.globalNames, names...)
	}
}

// WithGlobalDecoder sets the decoder applied to the global parameter map.
func WithGlobalDecoder[R, G any](decode Decoder[G]) Option[R, G] {
	return func(r *Router[R, G]) {
		r.globalDecoder = decode
	}
}

// WithLogger sets the logger for registration and decode diagnostics.
func WithLogger[R, G any](l *slog.Logger) Option[R, G] {
	return func(r *Router[R, G]) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver sets the match observer.
func WithObserver[R, G any](o Observer) Option[R, G] {
	return func(r *Router[R, G]) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithConfig applies environment configuration.
// Global params from cfg come before those set with WithGlobalParams.
// A logger is built from cfg unless WithLogger is also given.
func WithConfig[R, G any](cfg Config) Option[R, G] {
	return func(r *Router[R, G]) {
		r.cfg = &cfg
	}
}
