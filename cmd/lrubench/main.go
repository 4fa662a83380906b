// Package main implements the entry point for lrubench, a workload driver
// for the lrucache library. It walks through a basic usage demonstration,
// a concurrent stress phase backed by a worker pool, and a single-threaded
// performance phase, optionally exposing Prometheus metrics while it runs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/c360/lrucache/cache"
	"github.com/c360/lrucache/metric"
	"github.com/c360/lrucache/pkg/worker"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "lrubench"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Run application with proper error handling
	if err := run(); err != nil {
		slog.Error("Workload failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	cacheCfg, err := resolveCacheConfig(cliCfg)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid", "capacity", cacheCfg.Capacity, "enabled", cacheCfg.Enabled)
		return nil
	}

	signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	registry := metric.NewRegistry()

	group, ctx := errgroup.WithContext(signalCtx)
	var server *metric.Server
	if cliCfg.MetricsPort > 0 {
		server = metric.NewServer(cliCfg.MetricsPort, "/metrics", registry)
		slog.Info("Exposing Prometheus metrics", "address", server.Address())
		group.Go(server.Start)
	}

	runErr := runPhases(ctx, cliCfg, cacheCfg, registry)

	if server != nil {
		if err := server.Stop(); err != nil {
			slog.Warn("Metrics server shutdown", "error", err)
		}
	}
	if err := group.Wait(); err != nil && runErr == nil {
		runErr = err
	}

	if runErr == nil {
		slog.Info("Workload completed successfully")
	}
	return runErr
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting lrubench",
		"version", Version,
		"build_time", BuildTime,
		"capacity", cliCfg.Capacity,
		"workers", cliCfg.Workers,
		"operations", cliCfg.Operations)

	return cliCfg, false, nil
}

// resolveCacheConfig builds the cache configuration from a file when one is
// given, otherwise from flags.
func resolveCacheConfig(cliCfg *CLIConfig) (cache.Config, error) {
	if cliCfg.ConfigPath == "" {
		cfg := cache.Config{Enabled: true, Capacity: cliCfg.Capacity, MetricsName: "bench"}
		return cfg, cfg.Validate()
	}

	cfg, err := cache.LoadConfig(cliCfg.ConfigPath)
	if err != nil {
		return cache.Config{}, fmt.Errorf("load config: %w", err)
	}
	slog.Info("Loaded cache configuration", "path", cliCfg.ConfigPath,
		"capacity", cfg.Capacity, "enabled", cfg.Enabled)
	return cfg, nil
}

func runPhases(ctx context.Context, cliCfg *CLIConfig, cacheCfg cache.Config, registry *metric.Registry) error {
	if err := runBasicDemo(); err != nil {
		return fmt.Errorf("basic demo: %w", err)
	}

	if err := runConcurrentPhase(ctx, cliCfg, cacheCfg, registry); err != nil {
		return fmt.Errorf("concurrent phase: %w", err)
	}

	if err := ctx.Err(); err != nil {
		slog.Info("Skipping performance phase", "reason", err)
		return nil
	}

	if err := runPerformancePhase(cliCfg.Operations); err != nil {
		return fmt.Errorf("performance phase: %w", err)
	}
	return nil
}

// runBasicDemo walks through the core operations on a tiny cache so the
// eviction behavior is visible in the log output.
func runBasicDemo() error {
	slog.Info("=== Basic usage ===")

	c, err := cache.New[int, string](3)
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}

	slog.Info("Created cache", "capacity", c.Capacity(), "size", c.Size())

	c.Put(1, "one")
	c.Put(2, "two")
	c.Put(3, "three")
	slog.Info("Populated cache", "size", c.Size())

	if value, ok := c.Get(2); ok {
		slog.Info("Retrieved key", "key", 2, "value", value)
	}

	// Key 1 is now least recently used and gets displaced.
	c.Put(4, "four")
	slog.Info("Inserted past capacity",
		"size", c.Size(),
		"key_1_present", c.Contains(1),
		"key_2_present", c.Contains(2))

	m := c.Metrics()
	slog.Info("Demo metrics",
		"hits", m.Hits,
		"misses", m.Misses,
		"hit_ratio", fmt.Sprintf("%.1f%%", m.HitRatio*100),
		"evictions", m.Evictions)
	return nil
}

// benchOp is one unit of work for the concurrent phase.
type benchOp struct {
	key  int
	kind int
}

// runConcurrentPhase presses a shared cache from a worker pool, optionally
// rate limited, and reports throughput and cache metrics.
func runConcurrentPhase(ctx context.Context, cliCfg *CLIConfig, cacheCfg cache.Config, registry *metric.Registry) error {
	slog.Info("=== Concurrent workload ===",
		"workers", cliCfg.Workers,
		"operations", cliCfg.Operations,
		"rate_limit", cliCfg.RateLimit)

	c, err := cache.NewFromConfig(cacheCfg, cache.WithMetrics[int, int](registry, cacheCfg.MetricsName))
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}

	pool := worker.NewPool(cliCfg.Workers, cliCfg.Operations/10+1,
		func(_ context.Context, op benchOp) error {
			switch op.kind {
			case 0:
				c.Put(op.key, op.key*10)
			case 1:
				c.Get(op.key)
			case 2:
				c.Contains(op.key)
			}
			return nil
		},
		worker.WithMetrics[benchOp](registry, "bench_pool"))

	if err := pool.Start(ctx); err != nil {
		return fmt.Errorf("start pool: %w", err)
	}

	limit := rate.Inf
	if cliCfg.RateLimit > 0 {
		limit = rate.Limit(cliCfg.RateLimit)
	}
	limiter := rate.NewLimiter(limit, cliCfg.Workers)

	keySpace := cacheCfg.Capacity * 2
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()

	for i := 0; i < cliCfg.Operations; i++ {
		if err := limiter.Wait(ctx); err != nil {
			slog.Info("Workload interrupted", "submitted", i, "reason", err)
			break
		}

		op := benchOp{key: rng.Intn(keySpace), kind: rng.Intn(3)}
		for {
			err := pool.Submit(op)
			if err == nil {
				break
			}
			if err != worker.ErrQueueFull {
				return fmt.Errorf("submit: %w", err)
			}
			// Saturated queue: back off briefly rather than dropping work.
			time.Sleep(100 * time.Microsecond)
		}
	}

	if err := pool.Stop(cliCfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("stop pool: %w", err)
	}
	elapsed := time.Since(start)

	stats := pool.Stats()
	m := c.Metrics()
	slog.Info("Concurrent workload finished",
		"elapsed", elapsed.Round(time.Millisecond),
		"throughput_ops_per_sec", int(float64(stats.Processed)/elapsed.Seconds()),
		"processed", stats.Processed,
		"cache_size", m.CurrentSize,
		"hits", m.Hits,
		"misses", m.Misses,
		"hit_ratio", fmt.Sprintf("%.1f%%", m.HitRatio*100),
		"avg_access_ns", fmt.Sprintf("%.0f", m.AverageAccessTimeNS),
		"evictions", m.Evictions)

	return nil
}

// runPerformancePhase measures single-threaded mixed throughput on a larger
// cache, one writer for every two readers.
func runPerformancePhase(operations int) error {
	slog.Info("=== Performance ===", "operations", operations)

	c, err := cache.New[int, string](10000)
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()

	for i := 0; i < operations; i++ {
		key := rng.Intn(50000) + 1
		if i%3 == 0 {
			c.Put(key, fmt.Sprintf("value_%d", key))
		} else {
			c.Get(key)
		}
	}

	elapsed := time.Since(start)
	m := c.Metrics()
	slog.Info("Performance phase finished",
		"elapsed", elapsed.Round(time.Millisecond),
		"avg_op_time", (elapsed / time.Duration(operations)).String(),
		"hit_ratio", fmt.Sprintf("%.1f%%", m.HitRatio*100),
		"utilization", fmt.Sprintf("%.1f%%", float64(m.CurrentSize)/float64(m.Capacity)*100))
	return nil
}
