package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/c360/lrucache/errors"
)

// Config contains configuration for cache creation.
type Config struct {
	// Enabled determines if caching is enabled. A disabled cache resolves
	// every lookup as a miss and stores nothing.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Capacity is the maximum number of entries. Fixed at construction;
	// must be positive when the cache is enabled.
	Capacity int `json:"capacity" yaml:"capacity"`

	// MetricsName, when non-empty, is the cache label under which counters
	// are exported to a Prometheus registry passed via WithMetrics.
	MetricsName string `json:"metrics_name" yaml:"metrics_name"`
}

// DefaultConfig returns a default cache configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Capacity: 1000,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil // No validation needed if disabled
	}

	if c.Capacity <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidCapacity, "cache", "Validate",
			fmt.Sprintf("capacity must be positive, got %d", c.Capacity))
	}

	return nil
}

// NewFromConfig creates a cache based on the provided configuration.
// Returns a disabled cache (NewNoop) if config.Enabled is false. Additional
// functional options can be passed to configure metrics and callbacks; a
// MetricsName in the config takes effect only together with a WithMetrics
// option carrying the registry.
func NewFromConfig[K comparable, V any](config Config, options ...Option[K, V]) (Cache[K, V], error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "cache", "NewFromConfig", "config validation")
	}

	if !config.Enabled {
		return NewNoop[K, V](), nil
	}

	return New[K, V](config.Capacity, options...)
}

// LoadConfig reads a Config from a YAML (.yaml/.yml) or JSON (.json) file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.WrapInvalid(errors.ErrConfigNotFound, "cache", "LoadConfig", path)
		}
		return cfg, errors.WrapTransient(err, "cache", "LoadConfig", "reading "+path)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.WrapInvalid(err, "cache", "LoadConfig", "parsing YAML")
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.WrapInvalid(err, "cache", "LoadConfig", "parsing JSON")
		}
	default:
		return cfg, errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "LoadConfig",
			fmt.Sprintf("unsupported config extension %q", filepath.Ext(path)))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewNoop creates a cache that stores nothing and misses every lookup.
// This is useful when caching is disabled via configuration.
func NewNoop[K, V any]() Cache[K, V] {
	return &noopCache[K, V]{}
}

// noopCache is a cache implementation that does nothing.
type noopCache[K, V any] struct{}

func (c *noopCache[K, V]) Get(_ K) (V, bool) {
	var zero V
	return zero, false
}

func (c *noopCache[K, V]) Put(_ K, _ V) bool {
	return true
}

func (c *noopCache[K, V]) Remove(_ K) bool {
	return false
}

func (c *noopCache[K, V]) Contains(_ K) bool {
	return false
}

func (c *noopCache[K, V]) Size() int {
	return 0
}

func (c *noopCache[K, V]) Capacity() int {
	return 0
}

func (c *noopCache[K, V]) Empty() bool {
	return true
}

func (c *noopCache[K, V]) Keys() []K {
	return nil
}

func (c *noopCache[K, V]) Clear() {}

func (c *noopCache[K, V]) Metrics() Metrics {
	return Metrics{}
}

func (c *noopCache[K, V]) ResetMetrics() {}
