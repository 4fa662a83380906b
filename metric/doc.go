// Package metric provides Prometheus metrics registration and exposure for
// the lrucache module.
//
// # Overview
//
// The Registry wraps a private Prometheus registry and tracks every
// registration under a "component.metric" key, so a duplicate registration
// is reported as a classified error instead of a panic. The Server exposes
// the registry over HTTP for scraping, with /metrics, /health, and an index
// page.
//
// # Usage
//
//	registry := metric.NewRegistry()
//	c, err := cache.New[string, int](1000,
//		cache.WithMetrics[string, int](registry, "query_cache"))
//
//	server := metric.NewServer(9090, "/metrics", registry)
//	go server.Start()
//	defer server.Stop()
package metric
