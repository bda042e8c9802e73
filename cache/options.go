package cache

import (
	"github.com/c360/semld/metric"
)

// Option configures a cache.
type Option[V any] func(*cacheOptions[V])

type cacheOptions[V any] struct {
	metricsReg    *metric.MetricsRegistry
	name          string
	evictCallback EvictCallback[V]
}

// WithMetrics exports hits, misses and evictions on registry under the
// "cache" label name. A nil registry or an empty name is ignored.
func WithMetrics[V any](registry *metric.MetricsRegistry, name string) Option[V] {
	return func(opts *cacheOptions[V]) {
		if registry != nil && name != "" {
			opts.metricsReg = registry
			opts.name = name
		}
	}
}

// WithEvictionCallback sets a function called for each entry evicted by size.
func WithEvictionCallback[V any](callback EvictCallback[V]) Option[V] {
	return func(opts *cacheOptions[V]) {
		opts.evictCallback = callback
	}
}

func applyOptions[V any](options ...Option[V]) *cacheOptions[V] {
	opts := &cacheOptions[V]{}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	return opts
}
