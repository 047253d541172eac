package metrics

import (
	"fmt"
	"time"

	"github.com/ppiankov/degreefacts/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks fetch and extraction outcomes for one run.
// Each instance owns its registry so runs and tests never collide.
type Metrics struct {
	registry *prometheus.Registry

	PagesFetched       *prometheus.CounterVec
	FetchFailures      *prometheus.CounterVec
	ExtractionFailures *prometheus.CounterVec
	FieldsPopulated    *prometheus.CounterVec
	CourseDuration     *prometheus.HistogramVec
}

// New creates a Metrics instance with all counters registered
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		PagesFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "degreefacts_pages_fetched_total",
			Help: "Course pages fetched, by institution and source (network or cache)",
		}, []string{"institution", "source"}),
		FetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "degreefacts_fetch_failures_total",
			Help: "Course pages that could not be fetched",
		}, []string{"institution"}),
		ExtractionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "degreefacts_extraction_failures_total",
			Help: "Course pages whose extraction faulted and produced an all-absent record",
		}, []string{"institution"}),
		FieldsPopulated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "degreefacts_fields_populated_total",
			Help: "Records carrying a value for each output column",
		}, []string{"institution", "field"}),
		CourseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "degreefacts_course_duration_seconds",
			Help:    "Time to fetch and extract one course page",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"institution"}),
	}
}

// ObserveFetch records a fetched page
func (m *Metrics) ObserveFetch(institution string, fromCache bool) {
	source := "network"
	if fromCache {
		source = "cache"
	}
	m.PagesFetched.WithLabelValues(institution, source).Inc()
}

// IncrementFetchFailure records a page that could not be fetched
func (m *Metrics) IncrementFetchFailure(institution string) {
	m.FetchFailures.WithLabelValues(institution).Inc()
}

// IncrementExtractionFailure records a faulted extraction
func (m *Metrics) IncrementExtractionFailure(institution string) {
	m.ExtractionFailures.WithLabelValues(institution).Inc()
}

// ObserveRecord counts the populated fields of a record in the institution's schema
func (m *Metrics) ObserveRecord(institution string, schema model.Schema, facts model.DegreeFacts) {
	for _, col := range schema.Columns {
		if facts.Field(col) != "" {
			m.FieldsPopulated.WithLabelValues(institution, string(col)).Inc()
		}
	}
}

// ObserveCourse records the duration of one course.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCourse(institution string, start time.Time) {
	m.CourseDuration.WithLabelValues(institution).Observe(time.Since(start).Seconds())
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format, for the
// node_exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
