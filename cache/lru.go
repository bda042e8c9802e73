package cache

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/c360/semld/errors"
)

// EvictCallback is called with the key and value of an evicted entry.
type EvictCallback[V any] func(key string, value V)

type lruEntry[V any] struct {
	key   string
	value V
}

// LRU evicts the least recently used entry once more than maxSize entries
// are stored.
type LRU[V any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List // front is most recently used
	stats   *Statistics
	metrics *cacheMetrics
	evictFn EvictCallback[V]
}

// New creates an LRU cache holding at most maxSize entries.
func New[V any](maxSize int, options ...Option[V]) (*LRU[V], error) {
	if maxSize <= 0 {
		return nil, errors.WrapInvalid(fmt.Errorf("%w: max size %d", errors.ErrInvalidConfigValue, maxSize),
			"cache", "New", "size check")
	}
	opts := applyOptions(options...)

	var metrics *cacheMetrics
	if opts.metricsReg != nil {
		var err error
		metrics, err = newCacheMetrics(opts.metricsReg, opts.name)
		if err != nil {
			return nil, errors.WrapTransient(err, "cache", "New", "metrics registration")
		}
	}

	return &LRU[V]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		stats:   NewStatistics(),
		metrics: metrics,
		evictFn: opts.evictCallback,
	}, nil
}

// Get returns the value stored under key and marks it as recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.items[key]
	if !ok {
		c.stats.Miss()
		c.metrics.record(resultMiss)
		var zero V
		return zero, false
	}

	c.order.MoveToFront(element)
	c.stats.Hit()
	c.metrics.record(resultHit)
	return element.Value.(*lruEntry[V]).value, true
}

// Set stores value under key. It reports whether a new entry was created.
func (c *LRU[V]) Set(key string, value V) (bool, error) {
	if key == "" {
		return false, errors.WrapInvalid(errors.ErrInvalidData, "cache", "Set", "empty key")
	}

	c.mu.Lock()
	if element, ok := c.items[key]; ok {
		element.Value.(*lruEntry[V]).value = value
		c.order.MoveToFront(element)
		c.stats.Set()
		c.mu.Unlock()
		return false, nil
	}

	c.items[key] = c.order.PushFront(&lruEntry[V]{key: key, value: value})
	c.stats.Set()

	var evicted *lruEntry[V]
	if len(c.items) > c.maxSize {
		evicted = c.removeOldest()
	}
	c.stats.UpdateSize(int64(len(c.items)))
	c.mu.Unlock()

	// callback runs outside the lock so it may use the cache
	if evicted != nil && c.evictFn != nil {
		c.evictFn(evicted.key, evicted.value)
	}
	return true, nil
}

// Delete removes key. It reports whether the key was present.
func (c *LRU[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.items[key]
	if !ok {
		return false
	}
	c.remove(element)
	c.stats.Delete()
	c.stats.UpdateSize(int64(len(c.items)))
	return true
}

// Clear removes every entry without calling the eviction callback.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.stats.UpdateSize(0)
}

// Len returns the number of entries.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns the keys from most to least recently used.
func (c *LRU[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for element := c.order.Front(); element != nil; element = element.Next() {
		keys = append(keys, element.Value.(*lruEntry[V]).key)
	}
	return keys
}

// Stats returns the cache statistics.
func (c *LRU[V]) Stats() *Statistics {
	return c.stats
}

// removeOldest drops the least recently used entry. Caller holds the lock.
func (c *LRU[V]) removeOldest() *lruEntry[V] {
	element := c.order.Back()
	if element == nil {
		return nil
	}
	c.remove(element)
	c.stats.Eviction()
	c.metrics.record(resultEviction)
	return element.Value.(*lruEntry[V])
}

func (c *LRU[V]) remove(element *list.Element) {
	delete(c.items, element.Value.(*lruEntry[V]).key)
	c.order.Remove(element)
}
