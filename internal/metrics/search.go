package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matndex",
			Name:      "searches_total",
			Help:      "Total number of engine searches",
		},
		[]string{"kind", "field"}, // kind: phrase/wildcard, field: exact/clitic
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "matndex",
			Name:      "search_duration_seconds",
			Help:      "Engine search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)

	SearchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matndex",
			Name:      "search_errors_total",
			Help:      "Total engine search errors",
		},
		[]string{"reason"}, // "unavailable" / "bad_response"
	)

	RejectedQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "matndex",
			Name:      "rejected_queries_total",
			Help:      "Queries rejected before reaching the engine",
		},
	)

	CatalogEntries = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "matndex",
			Name:      "catalog_entries",
			Help:      "Loaded catalog entries by kind",
		},
		[]string{"kind"}, // "text" / "author"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchErrorsTotal)
	prometheus.MustRegister(RejectedQueriesTotal)
	prometheus.MustRegister(CatalogEntries)
	searchMetricsRegistered = true
}
