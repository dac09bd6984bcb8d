package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/deeplink"
)

// Compile-time check that Observer implements deeplink.Observer
var _ deeplink.Observer = (*Observer)(nil)

// Config configures the Prometheus observer.
type Config struct {
	// Namespace is the metrics namespace (default: "deeplink").
	Namespace string

	// Subsystem is the metrics subsystem (default: "router").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prom.Labels

	// Buckets are the histogram buckets for match duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prom.Registerer
}

// Option configures the Prometheus observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prom.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prom.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "deeplink",
		Subsystem: "router",
		// Matching is in-memory work, so the default buckets start well below a millisecond.
		Buckets:  []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		Registry: prom.DefaultRegisterer,
	}
}

// Observer exports router outcomes as Prometheus metrics:
//   - deeplink_router_matches_total{expression}
//   - deeplink_router_misses_total
//   - deeplink_router_decode_failures_total{expression}
//   - deeplink_router_match_duration_seconds{result}
type Observer struct {
	matches        *prom.CounterVec
	misses         prom.Counter
	decodeFailures *prom.CounterVec
	duration       *prom.HistogramVec
}

// New registers the metrics and returns an observer.
// Registering twice against the same registry panics, as with promauto.
func New(opts ...Option) *Observer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Observer{
		matches: factory.NewCounterVec(prom.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "matches_total",
			Help:        "Total number of URLs resolved, by matched expression",
			ConstLabels: cfg.ConstLabels,
		}, []string{"expression"}),

		misses: factory.NewCounter(prom.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "misses_total",
			Help:        "Total number of URLs no registration matched",
			ConstLabels: cfg.ConstLabels,
		}),

		decodeFailures: factory.NewCounterVec(prom.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "decode_failures_total",
			Help:        "Total number of decoder failures after a pattern matched",
			ConstLabels: cfg.ConstLabels,
		}, []string{"expression"}),

		duration: factory.NewHistogramVec(prom.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "match_duration_seconds",
			Help:        "Time spent resolving a URL in seconds",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"result"}),
	}
}

// ObserveMatch implements deeplink.Observer.
func (o *Observer) ObserveMatch(expression string, elapsed time.Duration) {
	o.matches.WithLabelValues(expression).Inc()
	o.duration.WithLabelValues("match").Observe(elapsed.Seconds())
}

// ObserveMiss implements deeplink.Observer.
func (o *Observer) ObserveMiss(elapsed time.Duration) {
	o.misses.Inc()
	o.duration.WithLabelValues("miss").Observe(elapsed.Seconds())
}

// ObserveDecodeFailure implements deeplink.Observer.
func (o *Observer) ObserveDecodeFailure(expression string, _ error) {
	o.decodeFailures.WithLabelValues(expression).Inc()
}
