package observability

import "github.com/prometheus/client_golang/prometheus"

// NewRegistry returns the registry application metrics register against.
// Go runtime and process collectors stay on the default registry, which
// /metrics serves alongside this one.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}
