package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ImportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_imports_total",
			Help: "Import requests by outcome",
		},
		[]string{"outcome"},
	)

	ImportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "product_import_duration_seconds",
			Help:    "End-to-end import pipeline duration",
			Buckets: prometheus.DefBuckets,
		},
	)

	FXFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fx_fallback_total",
			Help: "Currency conversions that fell back to the fixed multiplier",
		},
	)
)

func init() {
	prometheus.MustRegister(ImportsTotal, ImportDuration, FXFallbackTotal)
}

// Handler exposes the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
