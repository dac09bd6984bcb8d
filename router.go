package deeplink

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/dmitrymomot/deeplink/core/expr"
	"github.com/dmitrymomot/deeplink/core/logger"
	"github.com/dmitrymomot/deeplink/core/matcher"
	"github.com/dmitrymomot/deeplink/core/paramtype"
)

// Decoder turns a flat parameter map into a typed value.
// A returned error means the registration did not match.
type Decoder[T any] func(params matcher.Params) (T, error)

// Result is a successful match.
type Result[R, G any] struct {
	Route      R
	Global     G
	Expression string
	Params     matcher.Params
}

type route[R any] struct {
	pattern *expr.Pattern
	decode  Decoder[R]
}

// Router resolves URLs against an ordered list of registrations.
// The first registration whose pattern matches and whose decoders succeed wins.
//
// Register is not safe for concurrent use. Once registration is complete,
// matching only reads shared state and may run from many goroutines.
type Router[R, G any] struct {
	types         *paramtype.Registry
	globalNames   []string
	globalDecoder Decoder[G]
	cfg           *Config
	logger        *slog.Logger
	observer      Observer

	compiler *expr.Compiler
	routes   []route[R]
}

// New creates a router. Without options it uses the built-in types,
// no global params and a discard logger.
func New[R, G any](opts ...Option[R, G]) (*Router[R, G], error) {
	r := &Router[R, G]{observer: nopObserver{}}
	for _, opt := range opts {
		opt(r)
	}

	if r.cfg != nil {
		r.globalNames = append(append([]string{}, r.cfg.GlobalParams...), r.globalNames...)
		if r.logger == nil {
			r.logger = logger.FromConfig(r.cfg.LogLevel, r.cfg.LogFormat, os.Stderr)
		}
	}
	if r.logger == nil {
		r.logger = logger.Discard()
	}
	if r.types == nil {
		types, err := paramtype.New()
		if err != nil {
			return nil, err
		}
		r.types = types
	}

	compiler, err := expr.NewCompiler(r.types, r.globalNames...)
	if err != nil {
		return nil, err
	}
	r.compiler = compiler
	r.logger = r.logger.With(logger.Component("router"))

	return r, nil
}

// MustNew is like New but panics on error.
func MustNew[R, G any](opts ...Option[R, G]) *Router[R, G] {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Register compiles expression and appends it with its decoder.
// Compile errors are returned unchanged and can be checked with errors.Is
// against the expr package sentinels.
func (r *Router[R, G]) Register(expression string, decode Decoder[R]) error {
	if decode == nil {
		return fmt.Errorf("%w: %q", ErrNilDecoder, expression)
	}
	p, err := r.compiler.Compile(expression)
	if err != nil {
		return err
	}
	r.routes = append(r.routes, route[R]{pattern: p, decode: decode})
	r.logger.Debug("route registered", logger.Expression(expression), logger.Count("position", len(r.routes)-1))
	return nil
}

// MustRegister is like Register but panics on error. Intended for startup code.
func (r *Router[R, G]) MustRegister(expression string, decode Decoder[R]) {
	if err := r.Register(expression, decode); err != nil {
		panic(err)
	}
}

// Routes returns the registered expressions in priority order.
func (r *Router[R, G]) Routes() []string {
	out := make([]string, len(r.routes))
	for i, rt := range r.routes {
		out[i] = rt.pattern.Expression()
	}
	return out
}

// Patterns returns the compiled patterns in priority order.
func (r *Router[R, G]) Patterns() []*expr.Pattern {
	out := make([]*expr.Pattern, len(r.routes))
	for i, rt := range r.routes {
		out[i] = rt.pattern
	}
	return out
}

// Types returns the registry the router compiles against.
func (r *Router[R, G]) Types() *paramtype.Registry { return r.types }

// Match resolves a parsed URL.
func (r *Router[R, G]) Match(u *url.URL) (Result[R, G], bool) {
	if u == nil {
		return Result[R, G]{}, false
	}
	return r.MatchInput(matcher.FromURL(u))
}

// MatchString parses raw and resolves it. An unparsable URL never matches.
func (r *Router[R, G]) MatchString(raw string) (Result[R, G], bool) {
	in, err := matcher.ParseURL(raw)
	if err != nil {
		r.logger.Debug("unparsable url", logger.URL(raw), logger.Error(err))
		return Result[R, G]{}, false
	}
	return r.MatchInput(in)
}

// MatchInput resolves in against the registrations in order.
func (r *Router[R, G]) MatchInput(in matcher.Input) (Result[R, G], bool) {
	start := time.Now()

	for _, rt := range r.routes {
		params, ok := matcher.Match(in, rt.pattern)
		if !ok {
			continue
		}

		expression := rt.pattern.Expression()
		value, err := rt.decode(params)
		if err != nil {
			r.decodeFailed(expression, in, err)
			continue
		}

		var global G
		if r.globalDecoder != nil {
			global, err = r.globalDecoder(matcher.GlobalParams(in, rt.pattern.GlobalParams()))
			if err != nil {
				r.decodeFailed(expression, in, fmt.Errorf("%w: %w", ErrGlobalDecode, err))
				continue
			}
		}

		r.observer.ObserveMatch(expression, time.Since(start))
		return Result[R, G]{
			Route:      value,
			Global:     global,
			Expression: expression,
			Params:     params,
		}, true
	}

	r.observer.ObserveMiss(time.Since(start))
	return Result[R, G]{}, false
}

func (r *Router[R, G]) decodeFailed(expression string, in matcher.Input, err error) {
	r.logger.Debug("decode failed",
		logger.Expression(expression),
		logger.Path(in.Path()),
		logger.Error(err),
	)
	r.observer.ObserveDecodeFailure(expression, err)
}
