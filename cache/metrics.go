package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/semld/metric"
)

const (
	resultHit      = "hit"
	resultMiss     = "miss"
	resultEviction = "eviction"
)

// cacheMetrics counts cache lookups per result. A nil *cacheMetrics records nothing.
type cacheMetrics struct {
	operations *prometheus.CounterVec
}

func newCacheMetrics(registry *metric.MetricsRegistry, name string) (*cacheMetrics, error) {
	m := &cacheMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "semld",
			Subsystem:   "cache",
			Name:        "operations_total",
			ConstLabels: prometheus.Labels{"cache": name},
			Help:        "Total number of cache hits, misses and evictions",
		}, []string{"result"}),
	}
	if err := registry.RegisterCounterVec(name, "cache_operations", m.operations); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *cacheMetrics) record(result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(result).Inc()
}
