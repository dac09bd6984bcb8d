package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/goccy/go-json"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/deeplink"
	"github.com/dmitrymomot/deeplink/core/config"
	"github.com/dmitrymomot/deeplink/core/health"
	"github.com/dmitrymomot/deeplink/core/logger"
	"github.com/dmitrymomot/deeplink/core/matcher"
	"github.com/dmitrymomot/deeplink/core/server"
	"github.com/dmitrymomot/deeplink/integration/metrics/prometheus"
	"github.com/dmitrymomot/deeplink/middleware"
	"github.com/dmitrymomot/deeplink/pkg/routefile"
)

var errRoutesNotLoaded = errors.New("routes not loaded")

type tableRouter = deeplink.Router[routefile.Named, matcher.Params]

// resolver serves resolution requests from the most recently loaded table.
type resolver struct {
	current  atomic.Pointer[tableRouter]
	observer deeplink.Observer
	globals  []string
	log      *slog.Logger
}

// load builds a router from t and swaps it in. The previous router keeps
// serving when t does not compile.
func (rs *resolver) load(t *routefile.Table) error {
	router, err := buildRouter(t, rs.globals,
		deeplink.WithObserver[routefile.Named, matcher.Params](rs.observer),
		deeplink.WithLogger[routefile.Named, matcher.Params](rs.log),
	)
	if err != nil {
		return err
	}
	rs.current.Store(router)
	rs.log.Info("routes loaded", logger.Count("routes", len(t.Routes)))
	return nil
}

func (rs *resolver) handler(registry *prom.Registry) http.Handler {
	mux := http.NewServeMux()

	respond := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, _ := middleware.FromContext[routefile.Named, matcher.Params](r.Context())
		writeJSON(w, http.StatusOK, matchOutput{
			Matched:    true,
			Name:       res.Route.Name,
			Expression: res.Expression,
			Params:     res.Params,
			Global:     res.Global,
		})
	})
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, matchOutput{})
	})

	mux.Handle("GET /resolve", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		router := rs.current.Load()
		if router == nil {
			http.Error(w, errRoutesNotLoaded.Error(), http.StatusServiceUnavailable)
			return
		}
		middleware.Resolve(router, middleware.ResolveConfig{
			Extract:  middleware.QueryURL("url"),
			NotFound: notFound,
			Logger:   rs.log,
		})(respond).ServeHTTP(w, r)
	}))
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /health/live", health.Liveness)
	mux.Handle("GET /health/ready", health.Readiness(rs.log, rs.ready))

	accessLog := middleware.Logging(middleware.LoggingConfig{
		Logger: rs.log,
		Skip: func(r *http.Request) bool {
			return r.URL.Path == "/metrics" || strings.HasPrefix(r.URL.Path, "/health/")
		},
	})
	return middleware.RequestID()(accessLog(mux))
}

func (rs *resolver) ready(context.Context) error {
	if rs.current.Load() == nil {
		return errRoutesNotLoaded
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func serveCmd(a *app) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve URL resolution over HTTP",
		Long: `Serve URL resolution over HTTP.

Endpoints:
  GET /resolve?url=<url>  resolve a URL, 404 when nothing matches
  GET /metrics            Prometheus metrics
  GET /health/live        liveness
  GET /health/ready       readiness, 503 until routes are loaded

With --watch a local route table is reloaded when the file changes.
Server settings come from DEEPLINK_SERVER_* variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srvCfg := server.DefaultConfig()
			if err := config.Load(&srvCfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				srvCfg.Addr = addr
			}

			registry := prom.NewRegistry()
			rs := &resolver{
				observer: prometheus.New(prometheus.WithRegistry(registry)),
				globals:  a.cfg.GlobalParams,
				log:      a.log,
			}

			table, err := a.loadTable(ctx)
			if err != nil {
				return err
			}
			if err := rs.load(table); err != nil {
				return err
			}

			if watch {
				if strings.HasPrefix(a.routes, "s3://") {
					a.log.Warn("watch is only supported for local route files", logger.Source(a.routes))
				} else {
					go watchTable(ctx, a.routes, rs)
				}
			}

			srv, err := server.NewFromConfig(srvCfg, server.WithLogger(a.log))
			if err != nil {
				return err
			}
			return srv.Run(ctx, rs.handler(registry))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address (default $DEEPLINK_SERVER_ADDR)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the route table when the file changes")

	return cmd
}

func watchTable(ctx context.Context, path string, rs *resolver) {
	err := routefile.Watch(ctx, path, func(t *routefile.Table) {
		if err := rs.load(t); err != nil {
			rs.log.Warn("route table rejected", logger.Source(path), logger.Error(err))
		}
	}, routefile.WithLogger(rs.log))
	if err != nil {
		rs.log.Error("route table watch stopped", logger.Source(path), logger.Error(err))
	}
}
