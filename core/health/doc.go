// Package health provides HTTP handlers for liveness and readiness probes.
//
//	mux.HandleFunc("GET /health/live", health.Liveness)
//	mux.Handle("GET /health/ready", health.Readiness(log, func(ctx context.Context) error {
//		if current.Load() == nil {
//			return errors.New("routes not loaded")
//		}
//		return nil
//	}))
//
// Readiness runs the checks in order and answers 503 on the first failure.
package health
