// Package reliability – Prometheus instrumentation
//
// Counters for the cache-aside path: store hits/misses, gateway failures,
// and store errors. Labels are deliberately absent; phone numbers or cache
// keys would be unbounded-cardinality PII.
package reliability

import "github.com/prometheus/client_golang/prometheus"

var (
	// cacheHits counts statistics served from the store.
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reliability_cache_hits_total",
		Help: "Courier reliability lookups served from the store.",
	})

	// cacheMisses counts lookups that had to go to the gateway.
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reliability_cache_misses_total",
		Help: "Courier reliability lookups missing from the store.",
	})

	// gatewayErrors counts failed courier history calls (each one renders
	// as an unknown tier).
	gatewayErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reliability_gateway_errors_total",
		Help: "Courier history gateway calls that failed.",
	})

	// storeErrors counts store read/write failures that were degraded
	// rather than propagated.
	storeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reliability_store_errors_total",
		Help: "Reliability store operations that failed and were degraded.",
	})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses, gatewayErrors, storeErrors)
}
