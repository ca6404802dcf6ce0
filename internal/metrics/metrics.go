package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_http_requests_total",
			Help: "Total number of HTTP requests by route and status class",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outfit_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	AnalyzeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_analyze_total",
			Help: "Outfit analyses by outcome",
		},
		[]string{"outcome"},
	)

	// SearchCategories counts searched categories by where their products came from:
	// live, mock (no credential) or fallback (live search failed)
	SearchCategories = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfit_search_categories_total",
			Help: "Searched categories by product source",
		},
		[]string{"source"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outfit_upstream_duration_seconds",
			Help:    "Duration of calls to the language model and shopping search APIs",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"upstream"},
	)
)

// StatusClass collapses an HTTP status code into 1xx..5xx
func StatusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "0"
	}
}
