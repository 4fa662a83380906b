package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath      string
	Capacity        int
	Workers         int
	Operations      int
	RateLimit       float64
	MetricsPort     int
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	ShowVersion     bool
	ShowHelp        bool
	Validate        bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("LRUBENCH_CONFIG", ""),
		"Path to cache configuration file, empty to use flags (env: LRUBENCH_CONFIG)")

	flag.IntVar(&cfg.Capacity, "capacity",
		getEnvInt("LRUBENCH_CAPACITY", 1000),
		"Cache capacity for the workload phases (env: LRUBENCH_CAPACITY)")

	flag.IntVar(&cfg.Workers, "workers",
		getEnvInt("LRUBENCH_WORKERS", runtime.NumCPU()),
		"Number of concurrent workers (env: LRUBENCH_WORKERS)")

	flag.IntVar(&cfg.Operations, "ops",
		getEnvInt("LRUBENCH_OPS", 100000),
		"Total operations in the concurrent phase (env: LRUBENCH_OPS)")

	flag.Float64Var(&cfg.RateLimit, "rate",
		getEnvFloat("LRUBENCH_RATE", 0),
		"Operations per second limit, 0 for unlimited (env: LRUBENCH_RATE)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("LRUBENCH_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: LRUBENCH_METRICS_PORT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("LRUBENCH_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: LRUBENCH_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("LRUBENCH_LOG_FORMAT", "text"),
		"Log format: json, text (env: LRUBENCH_LOG_FORMAT)")

	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout",
		getEnvDuration("LRUBENCH_SHUTDOWN_TIMEOUT", 10*time.Second),
		"Graceful shutdown timeout (env: LRUBENCH_SHUTDOWN_TIMEOUT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	if cfg.Capacity <= 0 {
		return fmt.Errorf("invalid capacity: %d", cfg.Capacity)
	}

	if cfg.Workers <= 0 {
		return fmt.Errorf("invalid worker count: %d", cfg.Workers)
	}

	if cfg.Operations <= 0 {
		return fmt.Errorf("invalid operation count: %d", cfg.Operations)
	}

	if cfg.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit: %v", cfg.RateLimit)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - LRU Cache Workload Driver

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run the default workload
  %s

  # Run a heavier workload with Prometheus metrics exposed
  %s --capacity=10000 --workers=16 --ops=1000000 --metrics-port=9090

  # Rate-limit the concurrent phase
  %s --rate=50000

  # Run with environment variables
  export LRUBENCH_CAPACITY=5000
  export LRUBENCH_LOG_LEVEL=debug
  %s

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
