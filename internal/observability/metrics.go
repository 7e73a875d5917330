package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sf_trees"

// Metrics holds the Prometheus collectors for tree lookups.
type Metrics struct {
	Lookups        *prometheus.CounterVec // labels: outcome={found,invalid_address,unknown_street,no_trees,configuration,internal}
	LookupDuration prometheus.Histogram
	NearbyProbes   *prometheus.CounterVec // labels: result={hit,empty}
	SpeciesCache   *prometheus.CounterVec // labels: result={hit,miss}
	HTTPRequests   *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Tree lookups by outcome.",
		}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Duration of a complete tree lookup, from raw input to report.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		NearbyProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nearby_probes_total",
			Help:      "Neighbouring street number lookups by result.",
		}, []string{"result"}),
		SpeciesCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "species_cache_total",
			Help:      "Species catalog cache lookups by result.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
	}

	prometheus.MustRegister(
		m.Lookups,
		m.LookupDuration,
		m.NearbyProbes,
		m.SpeciesCache,
		m.HTTPRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Lookups:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "lookups_total"}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "lookup_duration_seconds"}),
		NearbyProbes:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "nearby_probes_total"}, []string{"result"}),
		SpeciesCache:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "species_cache_total"}, []string{"result"}),
		HTTPRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total"}, []string{"route", "status"}),
	}
}
