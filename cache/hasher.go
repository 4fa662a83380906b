package cache

import "hash/maphash"

// Hasher abstracts key hashing and equality so the cache can index key types
// beyond Go's comparable constraint, or apply custom equivalence (for example
// case-insensitive strings). Hash must be deterministic for the lifetime of
// the cache instance, and Equal must be an equivalence relation consistent
// with Hash: Equal(a, b) implies Hash(a) == Hash(b).
type Hasher[K any] interface {
	// Hash returns a hash of the key.
	Hash(key K) uint64

	// Equal reports whether two keys are equivalent.
	Equal(a, b K) bool
}

// comparableHasher is the default Hasher for comparable key types.
// It hashes with a per-instance random seed, so hash values are not stable
// across cache instances or process restarts.
type comparableHasher[K comparable] struct {
	seed maphash.Seed
}

// NewDefaultHasher returns a Hasher for any comparable key type, backed by
// the runtime's maphash with a freshly generated seed.
func NewDefaultHasher[K comparable]() Hasher[K] {
	return comparableHasher[K]{seed: maphash.MakeSeed()}
}

func (h comparableHasher[K]) Hash(key K) uint64 {
	return maphash.Comparable(h.seed, key)
}

func (h comparableHasher[K]) Equal(a, b K) bool {
	return a == b
}

// funcHasher adapts plain functions to the Hasher interface.
type funcHasher[K any] struct {
	hash  func(K) uint64
	equal func(K, K) bool
}

// NewFuncHasher builds a Hasher from a hash function and an equality
// function. Both must be non-nil; the cache constructor rejects nil hashers.
func NewFuncHasher[K any](hash func(K) uint64, equal func(K, K) bool) Hasher[K] {
	if hash == nil || equal == nil {
		return nil
	}
	return funcHasher[K]{hash: hash, equal: equal}
}

func (h funcHasher[K]) Hash(key K) uint64 {
	return h.hash(key)
}

func (h funcHasher[K]) Equal(a, b K) bool {
	return h.equal(a, b)
}
