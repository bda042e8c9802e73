package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the mapping engine metrics (not domain-specific)
type Metrics struct {
	// Serializer metrics
	Serializations *prometheus.CounterVec

	// Expander metrics
	Expansions       *prometheus.CounterVec
	SubjectsExpanded prometheus.Counter
	CyclesBroken     prometheus.Counter

	// Collaborator metrics
	ParseErrors prometheus.Counter

	OperationDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all mapping metrics
func NewMetrics() *Metrics {
	return &Metrics{
		Serializations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semld",
				Subsystem: "serializer",
				Name:      "documents_total",
				Help:      "Total number of JSON-LD documents serialized",
			},
			[]string{"type"},
		),

		Expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semld",
				Subsystem: "expander",
				Name:      "expansions_total",
				Help:      "Total number of binding sets expanded",
			},
			[]string{"operation"},
		),

		SubjectsExpanded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "semld",
				Subsystem: "expander",
				Name:      "subjects_total",
				Help:      "Total number of subjects expanded into field maps",
			},
		),

		CyclesBroken: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "semld",
				Subsystem: "expander",
				Name:      "cycles_broken_total",
				Help:      "Total number of references emitted as plain ids to stop a cycle",
			},
		),

		ParseErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "semld",
				Subsystem: "graph",
				Name:      "parse_errors_total",
				Help:      "Total number of documents rejected by the JSON-LD processor",
			},
		),

		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "semld",
				Subsystem: "mapper",
				Name:      "duration_seconds",
				Help:      "Mapping operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// The Record* helpers are nil-safe so components can hold an optional *Metrics.

// RecordSerialization increments the serialized document counter
func (c *Metrics) RecordSerialization(typeName string) {
	if c == nil {
		return
	}
	c.Serializations.WithLabelValues(typeName).Inc()
}

// RecordExpansion increments the expansion counter and adds the subject count
func (c *Metrics) RecordExpansion(operation string, subjects int) {
	if c == nil {
		return
	}
	c.Expansions.WithLabelValues(operation).Inc()
	c.SubjectsExpanded.Add(float64(subjects))
}

// RecordCycleBroken increments the cycle counter
func (c *Metrics) RecordCycleBroken() {
	if c == nil {
		return
	}
	c.CyclesBroken.Inc()
}

// RecordParseError increments the parse error counter
func (c *Metrics) RecordParseError() {
	if c == nil {
		return
	}
	c.ParseErrors.Inc()
}

// RecordDuration records the time taken by a mapping operation
func (c *Metrics) RecordDuration(operation string, duration time.Duration) {
	if c == nil {
		return
	}
	c.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
