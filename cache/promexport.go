package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/lrucache/metric"
)

// cacheMetrics holds Prometheus metrics for cache operations.
type cacheMetrics struct {
	hits      prometheus.Counter
	misses    prometheus.Counter
	puts      prometheus.Counter
	evictions prometheus.Counter

	size prometheus.Gauge
}

// newCacheMetrics creates and registers cache metrics with the provided
// registry, labeled by cache name.
func newCacheMetrics(registry *metric.Registry, name string) (*cacheMetrics, error) {
	m := &cacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "lrucache",
			Subsystem:   "cache",
			Name:        "hits_total",
			ConstLabels: prometheus.Labels{"cache": name},
			Help:        "Total number of cache hits",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "lrucache",
			Subsystem:   "cache",
			Name:        "misses_total",
			ConstLabels: prometheus.Labels{"cache": name},
			Help:        "Total number of cache misses",
		}),
		puts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "lrucache",
			Subsystem:   "cache",
			Name:        "puts_total",
			ConstLabels: prometheus.Labels{"cache": name},
			Help:        "Total number of cache put operations",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "lrucache",
			Subsystem:   "cache",
			Name:        "evictions_total",
			ConstLabels: prometheus.Labels{"cache": name},
			Help:        "Total number of cache evictions",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "lrucache",
			Subsystem:   "cache",
			Name:        "size",
			ConstLabels: prometheus.Labels{"cache": name},
			Help:        "Current number of entries in cache",
		}),
	}

	if err := registry.RegisterCounter(name, "cache_hits", m.hits); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(name, "cache_misses", m.misses); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(name, "cache_puts", m.puts); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter(name, "cache_evictions", m.evictions); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(name, "cache_size", m.size); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *cacheMetrics) recordHit() {
	m.hits.Inc()
}

func (m *cacheMetrics) recordMiss() {
	m.misses.Inc()
}

func (m *cacheMetrics) recordPut() {
	m.puts.Inc()
}

func (m *cacheMetrics) recordEviction() {
	m.evictions.Inc()
}

func (m *cacheMetrics) updateSize(size int) {
	m.size.Set(float64(size))
}
