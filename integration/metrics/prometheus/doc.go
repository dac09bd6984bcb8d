// Package prometheus exports router match outcomes to Prometheus.
//
//	obs := prometheus.New(prometheus.WithNamespace("links"))
//	router, err := deeplink.New(deeplink.WithObserver[Route, Tracking](obs))
//
// Expression labels come from registered expressions only, so label
// cardinality is bounded by the size of the route table.
package prometheus
