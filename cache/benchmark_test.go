package cache

import (
	"fmt"
	"math/rand"
	"testing"
)

func mustCreateBench(b *testing.B, capacity int) Cache[string, string] {
	b.Helper()
	c, err := New[string, string](capacity)
	if err != nil {
		b.Fatal(err)
	}
	return c
}

// BenchmarkGet measures Get throughput on a pre-populated cache. All Gets are
// hits, so this exercises the exclusive-lock recency update on every call.
func BenchmarkGet(b *testing.B) {
	cache := mustCreateBench(b, 1000)
	for i := 0; i < 1000; i++ {
		cache.Put(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			key := fmt.Sprintf("key%d", rand.Intn(1000))
			cache.Get(key)
		}
	})
}

// BenchmarkPut measures Put throughput with a constantly growing key set,
// so evictions run continuously once the cache fills.
func BenchmarkPut(b *testing.B) {
	cache := mustCreateBench(b, 1000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			key := fmt.Sprintf("key%d", i)
			cache.Put(key, fmt.Sprintf("value%d", i))
			i++
		}
	})
}

// BenchmarkMixed measures a mixed workload (40% reads, 40% writes, 20%
// removals).
func BenchmarkMixed(b *testing.B) {
	cache := mustCreateBench(b, 1000)
	for i := 0; i < 500; i++ {
		cache.Put(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 500
		for pb.Next() {
			switch rand.Intn(5) {
			case 0, 1:
				key := fmt.Sprintf("key%d", rand.Intn(1000))
				cache.Get(key)
			case 2, 3:
				key := fmt.Sprintf("key%d", i)
				cache.Put(key, fmt.Sprintf("value%d", i))
				i++
			case 4:
				key := fmt.Sprintf("key%d", rand.Intn(1000))
				cache.Remove(key)
			}
		}
	})
}

// BenchmarkEviction measures sequential insertion cost at different
// capacities, with every insertion past the warmup triggering an eviction.
func BenchmarkEviction(b *testing.B) {
	sizes := []int{100, 500, 1000, 5000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Size_%d", size), func(b *testing.B) {
			cache := mustCreateBench(b, size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				key := fmt.Sprintf("key%d", i)
				cache.Put(key, fmt.Sprintf("value%d", i))
			}
		})
	}
}

// BenchmarkContains measures read-path throughput under the shared lock.
func BenchmarkContains(b *testing.B) {
	cache := mustCreateBench(b, 1000)
	for i := 0; i < 1000; i++ {
		cache.Put(fmt.Sprintf("key%d", i), "v")
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			cache.Contains(fmt.Sprintf("key%d", rand.Intn(2000)))
		}
	})
}

// BenchmarkCustomHasher compares the default hasher against a function
// hasher on the hit path.
func BenchmarkCustomHasher(b *testing.B) {
	base := NewDefaultHasher[string]()
	hashers := []struct {
		name   string
		hasher Hasher[string]
	}{
		{"Default", base},
		{"Func", NewFuncHasher(base.Hash, func(a, c string) bool { return a == c })},
	}

	for _, h := range hashers {
		b.Run(h.name, func(b *testing.B) {
			cache, err := NewWithHasher[string, string](1000, h.hasher)
			if err != nil {
				b.Fatal(err)
			}
			for i := 0; i < 1000; i++ {
				cache.Put(fmt.Sprintf("key%d", i), "v")
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				cache.Get(fmt.Sprintf("key%d", i%1000))
			}
		})
	}
}

// BenchmarkReadHeavy simulates a read-heavy workload (90% reads, 10% writes).
func BenchmarkReadHeavy(b *testing.B) {
	cache := mustCreateBench(b, 1000)
	for i := 0; i < 1000; i++ {
		cache.Put(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if rand.Intn(10) == 0 {
				key := fmt.Sprintf("key%d", rand.Intn(2000))
				cache.Put(key, "updated_value")
			} else {
				key := fmt.Sprintf("key%d", rand.Intn(1000))
				cache.Get(key)
			}
		}
	})
}
