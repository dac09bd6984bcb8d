// Package server runs an http.Handler with graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx, handler)
//
// Run blocks until ctx is canceled, then drains in-flight requests for up to
// the shutdown timeout.
package server
