// Package metrics provides Prometheus metrics for cohortviz pipeline runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for the pipeline stages.
const (
	StageLoad            = "load"
	StageFilter          = "filter"
	StageDedupe          = "dedupe"
	StageCohortJoin      = "cohort_join"
	StageCohortUnmatched = "cohort_unmatched"
	StageCohortRange     = "cohort_range"
	StageGenderJoin      = "gender_join"
	StageAggregate       = "aggregate"
	StageRender          = "render"
)

// Manager manages all Prometheus metrics for a run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         *prometheus.Registry

	rowsLoaded    *prometheus.CounterVec
	rowsDropped   *prometheus.CounterVec
	stageRows     *prometheus.GaugeVec
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec

	participants *prometheus.GaugeVec
	cohorts      prometheus.Gauge
	totalN       prometheus.Gauge

	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	outputBytes prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cohortviz",
		subsystem:        "pipeline",
		histogramBuckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		enabled:          true,
		constLabels:      prometheus.Labels{},
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rowsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_loaded_total",
		Help:        "Rows read from each input table",
		ConstLabels: m.constLabels,
	}, []string{"table"})

	m.rowsDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_dropped_total",
		Help:        "Working rows removed by each pipeline stage",
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.stageRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_rows",
		Help:        "Working rows remaining after each pipeline stage",
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_duration_seconds",
		Help:        "Wall time spent in each pipeline stage",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.stageErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_errors_total",
		Help:        "Errors that aborted a run, by stage",
		ConstLabels: m.constLabels,
	}, []string{"stage"})

	m.participants = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "cohort_participants",
		Help:        "Counted participants per cohort and gender bucket",
		ConstLabels: m.constLabels,
	}, []string{"cohort", "gender"})

	m.cohorts = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "cohorts",
		Help:        "Distinct cohorts present in the summary",
		ConstLabels: m.constLabels,
	})

	m.totalN = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "participants_total",
		Help:        "Sum of men and women over all cohorts (the chart's n)",
		ConstLabels: m.constLabels,
	})

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Pipeline runs by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "run_duration_seconds",
		Help:        "Wall time of a full pipeline run",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.outputBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "output_bytes",
		Help:        "Size of the rendered chart",
		ConstLabels: m.constLabels,
	})
}

// RecordRowsLoaded adds n rows read from table.
func (m *Manager) RecordRowsLoaded(table string, n int) {
	if m.enabled {
		m.rowsLoaded.WithLabelValues(table).Add(float64(n))
	}
}

// RecordRowsDropped adds n rows removed by stage. Non-positive counts are ignored.
func (m *Manager) RecordRowsDropped(stage string, n int) {
	if m.enabled && n > 0 {
		m.rowsDropped.WithLabelValues(stage).Add(float64(n))
	}
}

// UpdateStageRows sets the rows remaining after stage.
func (m *Manager) UpdateStageRows(stage string, n int) {
	if m.enabled {
		m.stageRows.WithLabelValues(stage).Set(float64(n))
	}
}

// ObserveStageDuration records seconds spent in stage.
func (m *Manager) ObserveStageDuration(stage string, seconds float64) {
	if m.enabled {
		m.stageDuration.WithLabelValues(stage).Observe(seconds)
	}
}

// RecordStageError counts a run aborted in stage.
func (m *Manager) RecordStageError(stage string) {
	if m.enabled {
		m.stageErrors.WithLabelValues(stage).Inc()
	}
}

// UpdateParticipants sets the counted participants for a cohort and gender bucket.
func (m *Manager) UpdateParticipants(cohort int, gender string, n int) {
	if m.enabled {
		m.participants.WithLabelValues(fmt.Sprint(cohort), gender).Set(float64(n))
	}
}

// UpdateSummary sets the cohort count and the chart total.
func (m *Manager) UpdateSummary(cohorts, total int) {
	if m.enabled {
		m.cohorts.Set(float64(cohorts))
		m.totalN.Set(float64(total))
	}
}

// RecordRun counts a finished run with outcome "success" or "failure" and its duration.
func (m *Manager) RecordRun(outcome string, seconds float64) {
	if m.enabled {
		m.runs.WithLabelValues(outcome).Inc()
		m.runDuration.Observe(seconds)
	}
}

// UpdateOutputBytes sets the size of the written chart.
func (m *Manager) UpdateOutputBytes(n int) {
	if m.enabled {
		m.outputBytes.Set(float64(n))
	}
}

// Registry returns the registry the manager registers on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric in the registry to path in the text exposition format,
// the layout node_exporter's textfile collector reads.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
