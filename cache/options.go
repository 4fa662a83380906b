package cache

import (
	"github.com/c360/lrucache/metric"
)

// EvictCallback is called when an entry leaves the cache through eviction,
// explicit removal, or Clear. It receives the key and value of the entry.
// Callbacks run outside the cache lock.
type EvictCallback[K, V any] func(key K, value V)

// Option configures cache behavior using the functional options pattern.
type Option[K, V any] func(*cacheOptions[K, V])

// cacheOptions holds internal configuration for cache instances.
// The metrics collector is always active; Prometheus export is opt-in.
type cacheOptions[K, V any] struct {
	// metricsReg is optional - if provided, cache counters are also exposed
	// as Prometheus metrics
	metricsReg *metric.Registry

	// metricsName is used as the cache label for Prometheus metrics
	metricsName string

	// evictCallback is called when entries leave the cache
	evictCallback EvictCallback[K, V]
}

// WithMetrics enables Prometheus export of the cache counters under the
// given cache name. If registry is nil or name is empty, the option is
// ignored.
func WithMetrics[K, V any](registry *metric.Registry, name string) Option[K, V] {
	return func(opts *cacheOptions[K, V]) {
		if registry != nil && name != "" {
			opts.metricsReg = registry
			opts.metricsName = name
		}
	}
}

// WithEvictionCallback sets a callback invoked for every entry that leaves
// the cache.
func WithEvictionCallback[K, V any](callback EvictCallback[K, V]) Option[K, V] {
	return func(opts *cacheOptions[K, V]) {
		opts.evictCallback = callback
	}
}

// applyOptions applies functional options to produce the final cache
// configuration.
func applyOptions[K, V any](options ...Option[K, V]) *cacheOptions[K, V] {
	opts := &cacheOptions[K, V]{}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}
	return opts
}
