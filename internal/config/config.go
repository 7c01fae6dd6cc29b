// Package config loads calproxy's server configuration from the
// environment, the way the teacher repo's config package does: a small
// getenv(key, default) helper and one Load() entry point, no config file.
package config

import (
	"os"
	"strconv"
	"time"
)

type HTTPConfig struct {
	Addr        string
	BasePath    string
	MaxICSBytes int64
}

type StorageConfig struct {
	Type       string // sqlite | memory
	SQLitePath string
}

// Config is the complete set of knobs this proxy accepts — no others, per
// the design notes: default-timezone, tenant-prefix is implicit in the
// statestore key scheme, and the timezone-map is a read-only constant.
type Config struct {
	DefaultTimezone string
	UpstreamTimeout time.Duration
	HTTP            HTTPConfig
	Storage         StorageConfig
	LogLevel        string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getenvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func Load() (*Config, error) {
	return &Config{
		DefaultTimezone: getenv("DEFAULT_TIMEZONE", "America/New_York"),
		UpstreamTimeout: getenvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		HTTP: HTTPConfig{
			Addr:        getenv("HTTP_ADDR", ":8080"),
			BasePath:    getenv("HTTP_BASE_PATH", "/feed"),
			MaxICSBytes: getenvInt64("HTTP_MAX_ICS_BYTES", 1<<20),
		},
		Storage: StorageConfig{
			Type:       getenv("STORAGE_TYPE", "sqlite"), // sqlite | memory
			SQLitePath: getenv("SQLITE_PATH", "./calproxy.db"),
		},
		LogLevel: getenv("LOG_LEVEL", "info"),
	}, nil
}
