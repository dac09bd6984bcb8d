// Package logger provides structured logging helpers built on log/slog.
//
// Create loggers with functional options:
//
//	log := logger.New(
//		logger.WithDevelopment("deeplink"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log := logger.New(
//		logger.WithProduction("deeplink"),
//		logger.WithOutput(os.Stderr),
//	)
//
// FromConfig builds the same logger from the textual DEEPLINK_LOG_LEVEL and
// DEEPLINK_LOG_FORMAT settings. Discard returns a logger that drops everything
// and is the default wherever a logger is optional.
//
// # Attribute Helpers
//
// Helpers keep attribute keys consistent across the router, the route file
// watcher and the CLI:
//
//	log.Debug("route decode failed",
//		logger.Component("router"),
//		logger.Expression("/newsfeed/:postId{int}"),
//		logger.Path("/newsfeed/abc"),
//		logger.Error(err),
//	)
//
// Error returns an empty attribute for a nil error, so it can be passed
// without a nil check.
package logger
