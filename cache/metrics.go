package cache

import (
	"sync/atomic"
	"time"
)

// Metrics is a point-in-time snapshot of cache performance counters.
//
// Hits, misses, and the access-time accumulator are read with relaxed atomic
// loads while CurrentSize is read under the structural read lock, so the
// counters are not guaranteed to be perfectly synchronized with the size
// under concurrent mutation. This weak consistency is deliberate: producing
// the snapshot never blocks writers beyond the shared size read.
type Metrics struct {
	Hits                int64   `json:"hits"`
	Misses              int64   `json:"misses"`
	HitRatio            float64 `json:"hit_ratio"`
	AverageAccessTimeNS float64 `json:"average_access_time_ns"`
	CurrentSize         int     `json:"current_size"`
	Capacity            int     `json:"capacity"`
	Evictions           int64   `json:"evictions"`
	Insertions          int64   `json:"insertions"`
	Updates             int64   `json:"updates"`
}

// collector accumulates cache performance counters. All fields are updated
// with atomic operations and never take the structural lock.
type collector struct {
	hits          atomic.Int64
	misses        atomic.Int64
	evictions     atomic.Int64
	insertions    atomic.Int64
	updates       atomic.Int64
	totalAccessNS atomic.Int64
}

// recordHit counts a successful lookup and its end-to-end latency,
// lock wait included.
func (c *collector) recordHit(elapsed time.Duration) {
	c.hits.Add(1)
	c.totalAccessNS.Add(elapsed.Nanoseconds())
}

// recordMiss counts a failed lookup and its end-to-end latency.
func (c *collector) recordMiss(elapsed time.Duration) {
	c.misses.Add(1)
	c.totalAccessNS.Add(elapsed.Nanoseconds())
}

// recordWrite accumulates write latency. Writes are not requests for
// hit-ratio purposes; only the time accumulator moves.
func (c *collector) recordWrite(elapsed time.Duration) {
	c.totalAccessNS.Add(elapsed.Nanoseconds())
}

func (c *collector) recordEviction() {
	c.evictions.Add(1)
}

func (c *collector) recordInsertion() {
	c.insertions.Add(1)
}

func (c *collector) recordUpdate() {
	c.updates.Add(1)
}

// snapshot materializes the counters into a Metrics value. Ratios are
// defined as 0 when no requests have been recorded.
func (c *collector) snapshot(size, capacity int) Metrics {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	m := Metrics{
		Hits:        hits,
		Misses:      misses,
		CurrentSize: size,
		Capacity:    capacity,
		Evictions:   c.evictions.Load(),
		Insertions:  c.insertions.Load(),
		Updates:     c.updates.Load(),
	}
	if total > 0 {
		m.HitRatio = float64(hits) / float64(total)
		m.AverageAccessTimeNS = float64(c.totalAccessNS.Load()) / float64(total)
	}
	return m
}

// reset zeroes every counter. Cached entries are unaffected.
func (c *collector) reset() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	c.insertions.Store(0)
	c.updates.Store(0)
	c.totalAccessNS.Store(0)
}
