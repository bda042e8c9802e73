// Package metric provides Prometheus-based metrics for the semld mapping engine.
//
// The package offers a metrics registry managing the engine's core metrics
// (serializations, expansions, broken cycles, parse failures, operation
// durations) and extensible registration for component-specific collectors.
// It does not start an HTTP server: mount Handler() on the embedding
// application's mux, or dump everything with WriteText.
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//
//	m := mapper.New(vocab, mapper.WithMetrics(registry.CoreMetrics()))
//
//	mux.Handle("/metrics", registry.Handler())
//
// # Core Metrics
//
//   - semld_serializer_documents_total{type}
//   - semld_expander_expansions_total{operation}
//   - semld_expander_subjects_total
//   - semld_expander_cycles_broken_total
//   - semld_graph_parse_errors_total
//   - semld_mapper_duration_seconds{operation}
//
// The Record* methods on *Metrics accept a nil receiver, so components keep an
// optional metrics pointer without guarding every call site.
//
// # Custom Metrics
//
// Components register additional collectors under a component name. Duplicate
// registrations return an Invalid-classified error instead of panicking:
//
//	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "my_counter", Help: "..."})
//	if err := registry.RegisterCounter("my-component", "my_counter", counter); err != nil {
//	    return err
//	}
package metric
