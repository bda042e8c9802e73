package metric

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semld/errors"
)

func TestNewMetricsRegistry(t *testing.T) {
	registry := NewMetricsRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.PrometheusRegistry())
	assert.NotNil(t, registry.CoreMetrics())
}

func TestMetricsRegistry_RegisterCounter(t *testing.T) {
	registry := NewMetricsRegistry()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_counter",
		Help: "A test counter",
	})

	err := registry.RegisterCounter("test-component", "test_counter", counter)
	require.NoError(t, err)

	counter.Inc()

	metricFamilies, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	var found *dto.MetricFamily
	for _, mf := range metricFamilies {
		if mf.GetName() == "test_counter" {
			found = mf
			break
		}
	}
	require.NotNil(t, found, "Counter should be registered in Prometheus registry")
	assert.Equal(t, dto.MetricType_COUNTER, found.GetType())
	require.Len(t, found.GetMetric(), 1)
	assert.Equal(t, 1.0, found.GetMetric()[0].GetCounter().GetValue())
}

func TestMetricsRegistry_PreventDuplicateRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	first := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dup_total", Help: "dup"}, []string{"x"})
	require.NoError(t, registry.RegisterCounterVec("svc", "dup", first))

	second := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "dup_total", Help: "dup"}, []string{"x"})
	err := registry.RegisterCounterVec("svc", "dup", second)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	// Same prometheus name under a different key is a prometheus conflict.
	err = registry.RegisterCounterVec("other", "dup", second)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestMetricsRegistry_UnregisterMetric(t *testing.T) {
	registry := NewMetricsRegistry()

	hist := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "h_seconds", Help: "h"}, []string{"op"})
	require.NoError(t, registry.RegisterHistogramVec("svc", "h", hist))

	assert.True(t, registry.Unregister("svc", "h"))
	assert.False(t, registry.Unregister("svc", "h"))

	// Re-registration works after unregistering.
	require.NoError(t, registry.RegisterHistogramVec("svc", "h", hist))
}

func TestMetricsRegistry_ThreadSafety(t *testing.T) {
	registry := NewMetricsRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("concurrent_%d", i)
			c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: "c"})
			assert.NoError(t, registry.RegisterCounter("svc", name, c))
		}(i)
	}
	wg.Wait()

	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)
	count := 0
	for _, mf := range families {
		if len(mf.GetName()) > 11 && mf.GetName()[:11] == "concurrent_" {
			count++
		}
	}
	assert.Equal(t, 20, count)
}

func TestMetricsRegistrar_Interface(t *testing.T) {
	var _ MetricsRegistrar = NewMetricsRegistry()
}

func TestCoreMetrics_RecordMethods(t *testing.T) {
	registry := NewMetricsRegistry()
	m := registry.CoreMetrics()

	m.RecordSerialization("Person")
	m.RecordSerialization("Person")
	m.RecordExpansion("type-scan", 3)
	m.RecordCycleBroken()
	m.RecordParseError()
	m.RecordDuration("query", 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Serializations.WithLabelValues("Person")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Expansions.WithLabelValues("type-scan")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SubjectsExpanded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CyclesBroken))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseErrors))
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestCoreMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordSerialization("x")
		m.RecordExpansion("x", 1)
		m.RecordCycleBroken()
		m.RecordParseError()
		m.RecordDuration("x", time.Second)
	})

	var r *MetricsRegistry
	assert.Nil(t, r.CoreMetrics())
}
