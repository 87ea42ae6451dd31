package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"payments/executor/parallel"
	"payments/ledger"
)

const (
	ExecutorSerial   = "serial"
	ExecutorParallel = "parallel"
)

type Config struct {
	Executor    string
	Workers     int
	QueueSize   int
	LockPolicy  ledger.LockPolicy
	LogLevel    string
	LogFormat   string
	MetricsFile string
}

// Load reads the configuration from the environment, after loading a .env file
// from the working directory if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	workers, err := getEnvAsInt("PAYMENTS_WORKERS", runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	queueSize, err := getEnvAsInt("PAYMENTS_QUEUE_SIZE", parallel.DefaultQueueSize)
	if err != nil {
		return nil, err
	}
	policy, err := ledger.ParseLockPolicy(getEnv("PAYMENTS_LOCK_POLICY", ledger.LockRejectAll.String()))
	if err != nil {
		return nil, fmt.Errorf("PAYMENTS_LOCK_POLICY: %w", err)
	}

	cfg := &Config{
		Executor:    getEnv("PAYMENTS_EXECUTOR", ExecutorSerial),
		Workers:     workers,
		QueueSize:   queueSize,
		LockPolicy:  policy,
		LogLevel:    getEnv("PAYMENTS_LOG_LEVEL", "info"),
		LogFormat:   getEnv("PAYMENTS_LOG_FORMAT", "console"),
		MetricsFile: getEnv("PAYMENTS_METRICS_FILE", ""),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Executor {
	case ExecutorSerial, ExecutorParallel:
	default:
		return fmt.Errorf("unknown executor %q", c.Executor)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("queue size must not be negative, got %d", c.QueueSize)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
