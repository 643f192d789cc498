// Package config reads process settings from GRADEKIT_* environment
// variables. Command-line flags override them in cmd.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Addr is the HTTP listen address for serve.
	Addr string

	// DB is a SQLite file path or a postgres:// URL. Empty means the
	// default data-directory path.
	DB string

	// CacheURL is a redis:// URL for the judge verdict cache. Empty
	// disables caching.
	CacheURL string
	CacheTTL time.Duration

	// Judge enables the LLM judge for free-text answers.
	Judge bool
	// JudgeMinConfidence is the verdict confidence below which the
	// deterministic result stands.
	JudgeMinConfidence float64

	// Concurrency bounds parallel validation within one submission.
	Concurrency int

	LogLevel  string
	LogFormat string

	// Vocab is an optional YAML vocabulary override file.
	Vocab string
}

func Default() Config {
	return Config{
		Addr:               ":8080",
		CacheTTL:           24 * time.Hour,
		JudgeMinConfidence: 0.7,
		Concurrency:        8,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// Load overlays the environment on Default.
func Load() (Config, error) {
	c := Default()

	str(&c.Addr, "GRADEKIT_ADDR")
	str(&c.DB, "GRADEKIT_DB")
	str(&c.CacheURL, "GRADEKIT_CACHE_URL")
	str(&c.LogLevel, "GRADEKIT_LOG_LEVEL")
	str(&c.LogFormat, "GRADEKIT_LOG_FORMAT")
	str(&c.Vocab, "GRADEKIT_VOCAB")

	if v := os.Getenv("GRADEKIT_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, fmt.Errorf("GRADEKIT_CACHE_TTL: %w", err)
		}
		c.CacheTTL = d
	}
	if v := os.Getenv("GRADEKIT_JUDGE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("GRADEKIT_JUDGE: %w", err)
		}
		c.Judge = b
	}
	if v := os.Getenv("GRADEKIT_JUDGE_MIN_CONFIDENCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("GRADEKIT_JUDGE_MIN_CONFIDENCE: %w", err)
		}
		c.JudgeMinConfidence = f
	}
	if v := os.Getenv("GRADEKIT_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("GRADEKIT_CONCURRENCY: %w", err)
		}
		c.Concurrency = n
	}

	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.JudgeMinConfidence < 0 || c.JudgeMinConfidence > 1 {
		return fmt.Errorf("judge min confidence must be within [0, 1], got %g", c.JudgeMinConfidence)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative")
	}
	return nil
}

func str(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
