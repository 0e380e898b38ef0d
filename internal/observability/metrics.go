package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// monitoring pipeline.
type Metrics struct {
	RecordsConsumed prometheus.Counter
	BundlesProduced prometheus.Counter
	TransformErrors prometheus.Counter
	PipelineRunning prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Alerting metrics.
	AlertsGenerated     *prometheus.CounterVec // labels: severity, category
	AdvisoriesPublished prometheus.Counter
	EvaluationDuration  prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jal_rakshya",
			Name:      "records_consumed_total",
			Help:      "Total water records read from the source topic.",
		}),
		BundlesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jal_rakshya",
			Name:      "bundles_produced_total",
			Help:      "Total alert bundles written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jal_rakshya",
			Name:      "transform_errors_total",
			Help:      "Total record evaluation failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jal_rakshya",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jal_rakshya",
			Name:      "batch_size",
			Help:      "Number of records per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jal_rakshya",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		AlertsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jal_rakshya",
			Name:      "alerts_generated_total",
			Help:      "Alerts emitted by severity and category.",
		}, []string{"severity", "category"}),
		AdvisoriesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jal_rakshya",
			Name:      "advisories_published_total",
			Help:      "Advisory bulletins published to the advisory topic.",
		}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jal_rakshya",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of a single record evaluation including trend scan.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}

	prometheus.MustRegister(
		m.RecordsConsumed,
		m.BundlesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.AlertsGenerated,
		m.AdvisoriesPublished,
		m.EvaluationDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsConsumed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jal_rakshya", Name: "records_consumed_total"}),
		BundlesProduced:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jal_rakshya", Name: "bundles_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jal_rakshya", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "jal_rakshya", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "jal_rakshya", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "jal_rakshya", Name: "batch_processing_duration_seconds"}),
		AlertsGenerated:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "jal_rakshya", Name: "alerts_generated_total"}, []string{"severity", "category"}),
		AdvisoriesPublished:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jal_rakshya", Name: "advisories_published_total"}),
		EvaluationDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "jal_rakshya", Name: "evaluation_duration_seconds"}),
	}
}
