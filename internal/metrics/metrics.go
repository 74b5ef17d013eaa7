package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"route", "method"},
	)

	ImportRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_import_runs_total",
			Help: "Workbook import runs by outcome",
		},
		[]string{"outcome"},
	)

	ImportedRows = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "price_import_rows_total",
			Help: "Rows upserted from the source workbook",
		},
	)

	LastImport = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "price_import_last_success_timestamp_seconds",
			Help: "Unix time of the last successful import",
		},
	)

	regOnce sync.Once
)

// Register adds all collectors to reg. Later calls are no-ops.
func Register(reg prometheus.Registerer) {
	regOnce.Do(func() {
		reg.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, ImportRuns, ImportedRows, LastImport)
	})
}
