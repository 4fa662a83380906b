package cache

// Cache is the public contract of the fixed-capacity LRU engine. The cache
// is parameterized by key type K and value type V; key hashing and equality
// are pluggable through the Hasher interface.
//
// All operations are total over their documented inputs: apart from
// construction (which rejects a non-positive capacity), nothing fails for
// valid keys and values. A missing key is an explicit "not found" result,
// never an error.
type Cache[K, V any] interface {
	// Get retrieves the value for key and marks the entry most recently
	// used. Returns the value and true on a hit, the zero value and false
	// on a miss. Hits and misses update the performance counters.
	Get(key K) (V, bool)

	// Put stores value under key. An existing key is updated in place and
	// refreshed; a new key may evict the least recently used entry to keep
	// the capacity bound. Always returns true for valid input.
	Put(key K, value V) bool

	// Remove erases the entry for key if present and reports whether a
	// removal occurred. Metrics counters are unaffected.
	Remove(key K) bool

	// Contains reports whether key is present without refreshing recency
	// and without counting a hit or miss.
	Contains(key K) bool

	// Size returns the current number of entries.
	Size() int

	// Capacity returns the fixed capacity chosen at construction.
	Capacity() int

	// Empty reports whether the cache holds no entries.
	Empty() bool

	// Keys returns the cached keys in recency order, most recently used
	// first.
	Keys() []K

	// Clear empties the cache. Metrics counters are not reset.
	Clear()

	// Metrics returns a snapshot of the performance counters.
	Metrics() Metrics

	// ResetMetrics zeroes the performance counters without touching cached
	// entries.
	ResetMetrics()
}
