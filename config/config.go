package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	str2duration "github.com/xhit/go-str2duration/v2"
)

type Config struct {
	BaseURL            string
	ListenAddr         string
	MetricsAddr        string
	RedisHost          string
	MaxPages           uint
	SearchTimeout      time.Duration
	RequestTimeout     time.Duration
	RequestsPerSecond  float64
	FailureSnapshotTTL time.Duration
}

func Default() *Config {
	return &Config{
		BaseURL:            "https://nyaa.si",
		ListenAddr:         ":7006",
		MetricsAddr:        ":8081",
		MaxPages:           50,
		SearchTimeout:      2 * time.Minute,
		RequestTimeout:     30 * time.Second,
		RequestsPerSecond:  2,
		FailureSnapshotTTL: 7 * 24 * time.Hour,
	}
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment take precedence over it.
func Load() (*Config, error) {
	LoadEnvFile()
	return FromLookup(os.LookupEnv)
}

// LoadEnvFile loads .env from the working directory if it exists.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// FromLookup builds a configuration from lookup, falling back to the
// defaults for unset or empty variables.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("NYAA_URL"); ok {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v, ok := get("LISTEN_ADDR"); ok {
		cfg.ListenAddr = v
	}
	if v, ok := get("METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := get("REDIS_HOST"); ok {
		cfg.RedisHost = v
	}
	if v, ok := get("MAX_PAGES"); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: MAX_PAGES=%q: %w", ErrInvalidValue, v, err)
		}
		cfg.MaxPages = uint(n)
	}
	if v, ok := get("REQUESTS_PER_SECOND"); ok {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: REQUESTS_PER_SECOND=%q: %w", ErrInvalidValue, v, err)
		}
		cfg.RequestsPerSecond = n
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SEARCH_TIMEOUT", &cfg.SearchTimeout},
		{"REQUEST_TIMEOUT", &cfg.RequestTimeout},
		{"FAILURE_SNAPSHOT_TTL", &cfg.FailureSnapshotTTL},
	}
	for _, d := range durations {
		v, ok := get(d.key)
		if !ok {
			continue
		}
		parsed, err := str2duration.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, d.key, v, err)
		}
		*d.dst = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	if c.ListenAddr == "" || !strings.Contains(c.ListenAddr, ":") {
		return fmt.Errorf("%w: listen %q", ErrInvalidAddr, c.ListenAddr)
	}
	if c.MetricsAddr == "" || !strings.Contains(c.MetricsAddr, ":") {
		return fmt.Errorf("%w: metrics %q", ErrInvalidAddr, c.MetricsAddr)
	}
	if c.SearchTimeout <= 0 {
		return fmt.Errorf("%w: search timeout %v", ErrInvalidTimeout, c.SearchTimeout)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout %v", ErrInvalidTimeout, c.RequestTimeout)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, c.RequestsPerSecond)
	}
	if c.FailureSnapshotTTL <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, c.FailureSnapshotTTL)
	}
	return nil
}

// SnapshotsEnabled reports whether failed pages are kept in redis.
func (c *Config) SnapshotsEnabled() bool {
	return c.RedisHost != ""
}
