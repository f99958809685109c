package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ExtractionsTotal     *prometheus.CounterVec
	ErrorsTotal          *prometheus.CounterVec
	PipelineDuration     prometheus.Histogram
	EvidenceImages       prometheus.Histogram
	CategorizationsTotal prometheus.Counter
}

// NewMetrics registers the application metrics against the given registerer.
// Tests pass a fresh prometheus.NewRegistry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ExtractionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "importer_extractions_total",
			Help: "The total number of product extractions attempted",
		}, []string{"outcome"}), // 'success', 'failed'
		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "importer_errors_total",
			Help: "The total number of errors encountered",
		}, []string{"type"}), // e.g., 'fetch_failed', 'model_failed', 'parse_failed', 'image_fetch_failed'
		PipelineDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "importer_pipeline_duration_seconds",
			Help:    "End-to-end duration of the extraction pipeline",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
		}),
		EvidenceImages: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "importer_evidence_images",
			Help:    "Number of candidate images successfully downloaded per extraction",
			Buckets: prometheus.LinearBuckets(0, 1, 6),
		}),
		CategorizationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "importer_categorizations_total",
			Help: "The total number of one-shot categorize calls",
		}),
	}
}

func (m *Metrics) IncExtraction(outcome string) {
	m.ExtractionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncErrorsTotal(errorType string) {
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}
