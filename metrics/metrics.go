// Package metrics exposes the pipeline's Prometheus metrics. Metrics are
// diagnostic only; no behaviour depends on them.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline Prometheus metrics.
var (
	DocumentsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veridoc",
			Name:      "documents_processed_total",
			Help:      "Total number of documents processed",
		},
		[]string{"method", "status"},
	)

	ExtractionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "veridoc",
			Name:      "extraction_duration_seconds",
			Help:      "Document extraction duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method"},
	)

	OCRPageConfidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "veridoc",
			Name:      "ocr_page_confidence",
			Help:      "Mean OCR word confidence per page",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	FactsCheckedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veridoc",
			Name:      "facts_checked_total",
			Help:      "Total summary facts checked, by source region and verdict",
		},
		[]string{"source", "status"},
	)

	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "veridoc",
			Name:      "validations_total",
			Help:      "Total cross-validation runs",
		},
		[]string{"result"}, // "passed" / "failed"
	)

	ValidationAccuracy = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "veridoc",
			Name:      "validation_accuracy_percent",
			Help:      "Fact accuracy of completed validations",
			Buckets:   []float64{10, 25, 50, 75, 90, 95, 99, 100},
		},
	)
)

var registerOnce sync.Once

// Register registers the pipeline metrics with the default Prometheus
// registry. Safe to call from any number of goroutines; only the first
// call registers.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(DocumentsProcessedTotal)
		prometheus.MustRegister(ExtractionDuration)
		prometheus.MustRegister(OCRPageConfidence)
		prometheus.MustRegister(FactsCheckedTotal)
		prometheus.MustRegister(ValidationsTotal)
		prometheus.MustRegister(ValidationAccuracy)
	})
}
