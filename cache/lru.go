package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/c360/lrucache/errors"
)

// lruCache is the strict LRU implementation of the Cache interface.
//
// Two internal structures are kept mutually consistent under a single
// reader-writer lock: the recency store (arena-backed intrusive list,
// front = most recently used) and the lookup index (hash buckets of stable
// entry references). They are guarded as one unit; locking them
// independently would reintroduce the desynchronization this design avoids.
//
// Get takes the exclusive lock even though it is read-like from the caller's
// perspective: a hit relocates the entry to the front of the recency order,
// which is a structural mutation. Only Contains, Size, Empty, and Keys run
// under the shared lock. This serializes all value-returning accesses and is
// a known scalability ceiling, accepted to keep the eviction order exact.
//
// An lruCache must not be copied after first use.
type lruCache[K, V any] struct {
	capacity int
	hasher   Hasher[K]

	mu    sync.RWMutex
	store *entryArena[K, V]
	index map[uint64][]entryRef

	stats   collector
	metrics *cacheMetrics
	evictFn EvictCallback[K, V]
}

// New creates a strict LRU cache for a comparable key type using the default
// hasher. Returns an error if capacity is not positive.
func New[K comparable, V any](capacity int, options ...Option[K, V]) (Cache[K, V], error) {
	return NewWithHasher(capacity, NewDefaultHasher[K](), options...)
}

// NewWithHasher creates a strict LRU cache with a caller-supplied Hasher,
// allowing key types that are not comparable or that need custom
// equivalence. Returns an error if capacity is not positive or hasher is nil.
func NewWithHasher[K, V any](capacity int, hasher Hasher[K], options ...Option[K, V]) (Cache[K, V], error) {
	if capacity <= 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidCapacity, "cache", "New",
			fmt.Sprintf("requested capacity %d", capacity))
	}
	if hasher == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "New",
			"hasher must not be nil")
	}

	opts := applyOptions(options...)

	var metrics *cacheMetrics
	if opts.metricsReg != nil && opts.metricsName != "" {
		var err error
		metrics, err = newCacheMetrics(opts.metricsReg, opts.metricsName)
		if err != nil {
			return nil, errors.WrapInvalid(err, "cache", "New", "metrics registration")
		}
	}

	return &lruCache[K, V]{
		capacity: capacity,
		hasher:   hasher,
		store:    newEntryArena[K, V](capacity),
		index:    make(map[uint64][]entryRef, capacity),
		metrics:  metrics,
		evictFn:  opts.evictCallback,
	}, nil
}

// Get retrieves the value for key and marks the entry most recently used.
// The second return value reports whether the key was present. The recorded
// latency spans from before lock acquisition, so it includes lock wait.
func (c *lruCache[K, V]) Get(key K) (V, bool) {
	start := time.Now()

	c.mu.Lock()
	_, ref, ok := c.lookup(key)
	if !ok {
		c.stats.recordMiss(time.Since(start))
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.recordMiss()
		}
		var zero V
		return zero, false
	}

	c.store.moveToFront(ref)
	e := c.store.resolve(ref)
	e.accessedAt = time.Now().UnixNano()
	value := e.value
	c.stats.recordHit(time.Since(start))
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.recordHit()
	}
	return value, true
}

// Put stores value under key. An existing key is updated in place and
// relocated to the front; updates never trigger eviction. A new key is
// admitted after evicting from the back of the recency order until the
// capacity bound holds. Put always returns true: there is no rejection path
// for valid input.
func (c *lruCache[K, V]) Put(key K, value V) bool {
	start := time.Now()
	now := start.UnixNano()

	var evicted []evictedEntry[K, V]

	c.mu.Lock()
	hash, ref, ok := c.lookup(key)
	if ok {
		e := c.store.resolve(ref)
		e.value = value
		e.accessedAt = now
		c.store.moveToFront(ref)
		c.stats.recordUpdate()
		c.stats.recordWrite(time.Since(start))
		c.mu.Unlock()

		if c.metrics != nil {
			c.metrics.recordPut()
		}
		return true
	}

	// Admission of a genuinely new key: make room first. In steady operation
	// the store overflows by at most one entry, so a single eviction suffices,
	// but the loop keeps the invariant unconditional.
	for c.store.len() >= c.capacity {
		backRef, _ := c.store.back()
		victim := c.store.resolve(backRef)
		c.indexRemove(c.hasher.Hash(victim.key), backRef)
		vk, vv, _ := c.store.remove(backRef)
		c.stats.recordEviction()
		if c.evictFn != nil {
			evicted = append(evicted, evictedEntry[K, V]{key: vk, value: vv})
		}
	}

	ref = c.store.pushFront(key, value, now)
	c.index[hash] = append(c.index[hash], ref)
	size := c.store.len()
	c.stats.recordInsertion()
	c.stats.recordWrite(time.Since(start))
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.recordPut()
		c.metrics.updateSize(size)
		for range evicted {
			c.metrics.recordEviction()
		}
	}

	// Callbacks run outside the lock to prevent deadlock.
	for _, ev := range evicted {
		c.evictFn(ev.key, ev.value)
	}
	return true
}

// Remove erases the entry for key if present and reports whether a removal
// occurred. Remove does not touch the hit/miss counters or the access-time
// accumulator.
func (c *lruCache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	hash, ref, ok := c.lookup(key)
	if !ok {
		c.mu.Unlock()
		return false
	}

	c.indexRemove(hash, ref)
	k, v, _ := c.store.remove(ref)
	size := c.store.len()
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.updateSize(size)
	}
	if c.evictFn != nil {
		c.evictFn(k, v)
	}
	return true
}

// Contains reports whether key is present without disturbing the recency
// order or the hit/miss counters, so callers can probe existence freely.
func (c *lruCache[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, _, ok := c.lookup(key)
	return ok
}

// Size returns the current number of entries.
func (c *lruCache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.len()
}

// Empty reports whether the cache holds no entries.
func (c *lruCache[K, V]) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.len() == 0
}

// Capacity returns the fixed capacity. It is immutable after construction
// and needs no lock.
func (c *lruCache[K, V]) Capacity() int {
	return c.capacity
}

// Keys returns the cached keys in recency order, most recently used first.
func (c *lruCache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, c.store.len())
	c.store.walk(func(e *arenaEntry[K, V]) bool {
		keys = append(keys, e.key)
		return true
	})
	return keys
}

// Clear empties the cache atomically with respect to other operations.
// Metrics counters are not reset.
func (c *lruCache[K, V]) Clear() {
	var evicted []evictedEntry[K, V]

	c.mu.Lock()
	if c.evictFn != nil {
		evicted = make([]evictedEntry[K, V], 0, c.store.len())
		c.store.walkBack(func(e *arenaEntry[K, V]) bool {
			evicted = append(evicted, evictedEntry[K, V]{key: e.key, value: e.value})
			return true
		})
	}

	c.store.clear()
	clear(c.index)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.updateSize(0)
	}
	for _, ev := range evicted {
		c.evictFn(ev.key, ev.value)
	}
}

// Metrics returns a snapshot of the performance counters. Size is read under
// the shared lock; the counters are read via atomic loads and may trail the
// size under concurrent mutation (see Metrics).
func (c *lruCache[K, V]) Metrics() Metrics {
	c.mu.RLock()
	size := c.store.len()
	c.mu.RUnlock()

	return c.stats.snapshot(size, c.capacity)
}

// ResetMetrics zeroes the hit/miss counters and the access-time accumulator.
// Cached entries are unaffected.
func (c *lruCache[K, V]) ResetMetrics() {
	c.stats.reset()
}

// evictedEntry carries a displaced key/value pair out of the critical
// section for callback delivery.
type evictedEntry[K, V any] struct {
	key   K
	value V
}

// lookup finds the reference for key. Must be called with the mutex held
// (shared mode suffices; lookup never mutates).
func (c *lruCache[K, V]) lookup(key K) (uint64, entryRef, bool) {
	hash := c.hasher.Hash(key)
	for _, ref := range c.index[hash] {
		if e := c.store.resolve(ref); e != nil && c.hasher.Equal(e.key, key) {
			return hash, ref, true
		}
	}
	return hash, noRef, false
}

// indexRemove drops a reference from its hash bucket. Must be called with
// the mutex held in exclusive mode.
func (c *lruCache[K, V]) indexRemove(hash uint64, ref entryRef) {
	bucket := c.index[hash]
	for i, r := range bucket {
		if r == ref {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.index, hash)
	} else {
		c.index[hash] = bucket
	}
}
