// Package metrics provides Prometheus metrics for the swim records
// batch pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for one pipeline run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Ingestion
	swimsIngested  prometheus.Counter
	swimsDuplicate prometheus.Counter
	parseFailures  *prometheus.CounterVec

	// Classification
	swimmersProcessed prometheus.Counter
	swimmersSkipped   *prometheus.CounterVec
	swimsByLabel      *prometheus.CounterVec
	classifyDuration  prometheus.Histogram

	// Aggregation and output
	recordEntries  prometheus.Gauge
	reportsWritten prometheus.Counter
	batchDuration  prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collector set.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // paired with the singleton manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swimrecords",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.swimsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "swims_ingested_total",
		Help:      "Total number of swim rows ingested from sources",
	})
	m.swimsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "swims_duplicate_total",
		Help:      "Total number of duplicate swim rows dropped at ingestion",
	})
	m.parseFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "parse_failures_total",
			Help:      "Total number of parse failures by kind (event, time, date)",
		},
		[]string{"kind"},
	)

	m.swimmersProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "swimmers_processed_total",
		Help:      "Total number of swimmer careers classified",
	})
	m.swimmersSkipped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "swimmers_skipped_total",
			Help:      "Total number of swimmer careers skipped by reason",
		},
		[]string{"reason"},
	)
	m.swimsByLabel = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "swims_classified_total",
			Help:      "Total number of swims classified by label",
		},
		[]string{"label"},
	)
	m.classifyDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "classify_duration_seconds",
		Help:      "Histogram of per-swimmer classification duration",
		Buckets:   m.histogramBuckets,
	})

	m.recordEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "record_entries",
		Help:      "Number of record entries computed by the last aggregation",
	})
	m.reportsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_written_total",
		Help:      "Total number of report files written",
	})
	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_seconds",
		Help:      "Histogram of end-to-end batch run duration",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers on the global manager.

// RecordSwimIngested counts one ingested swim row.
func RecordSwimIngested() {
	if globalManager.enabled {
		globalManager.swimsIngested.Inc()
	}
}

// RecordSwimDuplicate counts one duplicate row dropped at ingestion.
func RecordSwimDuplicate() {
	if globalManager.enabled {
		globalManager.swimsDuplicate.Inc()
	}
}

// RecordParseFailure counts one parse failure of the given kind
// (event, time, date).
func RecordParseFailure(kind string) {
	if globalManager.enabled {
		globalManager.parseFailures.WithLabelValues(kind).Inc()
	}
}

// RecordSwimmerProcessed counts one classified swimmer career.
func RecordSwimmerProcessed() {
	if globalManager.enabled {
		globalManager.swimmersProcessed.Inc()
	}
}

// RecordSwimmerSkipped counts one skipped swimmer career by reason.
func RecordSwimmerSkipped(reason string) {
	if globalManager.enabled {
		globalManager.swimmersSkipped.WithLabelValues(reason).Inc()
	}
}

// RecordSwimsClassified adds a batch of classified swims for one label.
func RecordSwimsClassified(label string, count int) {
	if globalManager.enabled && count > 0 {
		globalManager.swimsByLabel.WithLabelValues(label).Add(float64(count))
	}
}

// RecordClassifyDuration observes one per-swimmer classification duration
// in seconds.
func RecordClassifyDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.classifyDuration.Observe(seconds)
	}
}

// UpdateRecordEntries sets the record-entry count of the last aggregation.
func UpdateRecordEntries(count int) {
	if globalManager.enabled {
		globalManager.recordEntries.Set(float64(count))
	}
}

// RecordReportWritten counts one report file written.
func RecordReportWritten() {
	if globalManager.enabled {
		globalManager.reportsWritten.Inc()
	}
}

// RecordBatchDuration observes one end-to-end batch duration in seconds.
func RecordBatchDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.batchDuration.Observe(seconds)
	}
}

// GetRegistry returns the custom registry backing the global manager,
// for promhttp exposure.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
