package export

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// exportsTotal counts finished exports by format and result.
	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyer_exports_total",
			Help: "Number of flyer exports by format and result",
		},
		[]string{"format", "result"},
	)

	exportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flyer_export_duration_seconds",
			Help:    "Time spent rasterizing and encoding a flyer export",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"format"},
	)

	exportBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flyer_export_bytes",
			Help:    "Size of exported flyer files",
			Buckets: prometheus.ExponentialBuckets(64*1024, 2, 10),
		},
		[]string{"format"},
	)

	previewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flyer_previews_total",
			Help: "Number of scaled flyer previews by template and result",
		},
		[]string{"template", "result"},
	)
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
