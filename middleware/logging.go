package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/deeplink/core/logger"
)

// DefaultSlowRequestThreshold marks requests slower than this at warning level.
const DefaultSlowRequestThreshold = time.Second

// LoggingConfig configures the access log middleware.
type LoggingConfig struct {
	// Skip bypasses logging for matching requests, e.g. health checks and scrapes.
	Skip func(r *http.Request) bool
	// Logger defaults to a discard logger.
	Logger *slog.Logger
	// Level for successful requests (default: info).
	Level slog.Level
	// SlowRequestThreshold defaults to DefaultSlowRequestThreshold.
	SlowRequestThreshold time.Duration
	// Component names the log source (default: "http").
	Component string
}

// Logging writes one record per request once the response is complete.
//
// Server errors are logged at error level and slow requests at warning
// level. Client errors stay at Level: a 404 from /resolve is an ordinary miss.
func Logging(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = DefaultSlowRequestThreshold
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)
			elapsed := time.Since(start)

			requestID, _ := GetRequestID(r.Context())
			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(rw.status),
				logger.BytesOut(rw.size),
				logger.Duration(elapsed),
				logger.RemoteAddr(r.RemoteAddr),
				logger.RequestID(requestID),
			}

			level := cfg.Level
			switch {
			case rw.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case elapsed > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(r.Context(), level, "http request", attrs...)
		})
	}
}

// statusRecorder captures the status code and body size written downstream.
type statusRecorder struct {
	http.ResponseWriter
	status        int
	size          int64
	headerWritten bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.headerWritten {
		rw.status = code
		rw.headerWritten = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
