// Package cache provides a generic, concurrency-safe, fixed-capacity cache
// with strict least-recently-used eviction, O(1) average-case access, and
// built-in performance instrumentation.
//
// # Overview
//
// The cache is an embeddable, in-process primitive for bounding the memory
// of a key-value working set while serving concurrent readers and writers.
// It is generic over key and value types, with pluggable key hashing and
// equality, and always collects performance statistics. Prometheus export is
// opt-in through functional options.
//
// # Quick Start
//
// Cache creation for comparable keys:
//
//	c, err := cache.New[string, int](1000)
//	if err != nil {
//		log.Fatal(err)
//	}
//	c.Put("answer", 42)
//	value, ok := c.Get("answer")
//
// Custom key hashing and equality for non-comparable key types:
//
//	hasher := cache.NewFuncHasher(
//		func(k []byte) uint64 { return xxhashOf(k) },
//		func(a, b []byte) bool { return bytes.Equal(a, b) },
//	)
//	c, err := cache.NewWithHasher[[]byte, string](500, hasher)
//
// Eviction callback and Prometheus metrics:
//
//	c, err := cache.New[string, *Session](5000,
//		cache.WithMetrics[string, *Session](registry, "session_cache"),
//		cache.WithEvictionCallback[string, *Session](func(key string, s *Session) {
//			s.Release()
//		}),
//	)
//
// # Eviction Semantics
//
// Eviction is strict LRU: when a genuinely new key is admitted at capacity,
// the least recently used entry is removed. Updating an existing key never
// evicts. Both Get hits and Put refresh an entry's recency; Contains does
// not, so existence can be probed without disturbing the eviction order or
// skewing the hit ratio.
//
// # Concurrency
//
// A single reader-writer lock guards the recency store and lookup index as
// one unit. Get takes the exclusive lock because a hit reorders the recency
// list; only Contains, Size, Empty, and Keys run under the shared lock.
// Exact LRU ordering is preserved at the cost of read-read parallelism on
// the hit path.
//
// # Instrumentation
//
// Every Get and Put records wall-clock latency measured from before lock
// acquisition, so averages reflect end-to-end latency under contention, not
// pure algorithmic cost. Metrics() returns a weakly-consistent snapshot; see
// the Metrics type for the exact guarantees.
package cache
