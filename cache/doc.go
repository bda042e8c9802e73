// Package cache provides a generic, thread-safe LRU cache with built-in
// statistics and optional Prometheus counters.
//
// The mapper uses it to keep parsed documents so that repeated queries over
// the same source and context skip JSON-LD processing:
//
//	graphs, err := cache.New[*graph.Store](64,
//	    cache.WithMetrics[*graph.Store](registry, "mapper_graphs"))
//	if err != nil {
//	    return err
//	}
//	m := mapper.New(reg, mapper.WithGraphCache(graphs))
//
// Statistics are always collected; see LRU.Stats.
package cache
