// Package metrics defines Prometheus metrics for the routing server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nina_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nina_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nina_errors_total",
			Help: "Total errors by code",
		},
		[]string{"code"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nina_search_duration_seconds",
			Help:    "Pareto search duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"preference", "outcome"},
	)

	SearchExpanded = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nina_search_expanded_labels",
			Help:    "Labels expanded per search",
			Buckets: prometheus.ExponentialBuckets(10, 4, 10),
		},
	)

	SupersededTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nina_search_superseded_total",
			Help: "Searches discarded because a newer query of the same session arrived",
		},
	)

	GraphNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nina_graph_nodes",
			Help: "Nodes in the loaded street graph",
		},
	)

	GraphEdges = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nina_graph_edges",
			Help: "Edges in the loaded street graph",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		SearchDuration, SearchExpanded, SupersededTotal,
		GraphNodes, GraphEdges,
	)
}
