// Package config loads the engine's environment-variable driven defaults,
// the same getEnv-with-fallback shape the teacher API used for its own
// runtime configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"sudoku-engine/pkg/constants"
)

// Config holds the defaults cmd/sudoku falls back to when a flag isn't set.
type Config struct {
	DefaultSize     int
	DefaultGivens   int
	FillTimeout     time.Duration
	ParallelWorkers int
	Seed            int64
	HasSeed         bool
}

// Load reads configuration from environment variables, applying the
// engine's built-in defaults for anything unset.
func Load() (*Config, error) {
	size, err := getEnvInt("SUDOKU_SIZE", constants.SizeClassic9)
	if err != nil {
		return nil, err
	}
	if size < constants.MinDomainSize {
		return nil, fmt.Errorf("SUDOKU_SIZE must be >= %d, got %d", constants.MinDomainSize, size)
	}

	givens, err := getEnvInt("SUDOKU_GIVENS", constants.DefaultGivens)
	if err != nil {
		return nil, err
	}

	timeoutSec, err := getEnvInt("SUDOKU_TIMEOUT_SECONDS", int(constants.DefaultFillTimeout/time.Second))
	if err != nil {
		return nil, err
	}

	workers, err := getEnvInt("SUDOKU_WORKERS", constants.DefaultParallelPoolSize)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, fmt.Errorf("SUDOKU_WORKERS must be >= 1, got %d", workers)
	}

	cfg := &Config{
		DefaultSize:     size,
		DefaultGivens:   givens,
		FillTimeout:     time.Duration(timeoutSec) * time.Second,
		ParallelWorkers: workers,
	}

	if raw := os.Getenv("SUDOKU_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("SUDOKU_SEED must be an integer: %w", err)
		}
		cfg.Seed = seed
		cfg.HasSeed = true
	}

	return cfg, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
