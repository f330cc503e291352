// Package config defines all configuration structures for NFHS Explorer.
// Only plain data types and validation live here; loading is in loader.go.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Dataset source kinds accepted by DatasetConfig.Source.
const (
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceMinIO = "minio"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatasetConfig describes where the survey table is read from and how it is
// parsed.
type DatasetConfig struct {
	Source       string        `mapstructure:"source"` // "file" | "http" | "minio"
	Path         string        `mapstructure:"path"`
	URL          string        `mapstructure:"url"`
	Delimiter    string        `mapstructure:"delimiter"`
	StrictUnique bool          `mapstructure:"strict_unique"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	// MaxBytes caps the size of an http download.
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters used when
// dataset.source is "minio".
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Object    string `mapstructure:"object"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Region    string `mapstructure:"region"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// CacheConfig controls memoisation of derived dashboard views.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CORSConfig lists origins allowed to call the JSON API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.  Every infrastructure component
// reads its settings from the relevant sub-struct.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Cache   CacheConfig   `mapstructure:"cache"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Dataset
	switch c.Dataset.Source {
	case SourceFile:
		if strings.TrimSpace(c.Dataset.Path) == "" {
			return fmt.Errorf("config: dataset.path is required when dataset.source is %q", SourceFile)
		}
	case SourceHTTP:
		if !strings.HasPrefix(c.Dataset.URL, "http://") && !strings.HasPrefix(c.Dataset.URL, "https://") {
			return fmt.Errorf("config: dataset.url %q must be an http(s) URL", c.Dataset.URL)
		}
	case SourceMinIO:
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("config: minio.endpoint is required when dataset.source is %q", SourceMinIO)
		}
		if c.MinIO.Bucket == "" || c.MinIO.Object == "" {
			return fmt.Errorf("config: minio.bucket and minio.object are required when dataset.source is %q", SourceMinIO)
		}
	default:
		return fmt.Errorf("config: dataset.source %q is invalid; expected file|http|minio", c.Dataset.Source)
	}
	if c.Dataset.MaxBytes < 0 {
		return fmt.Errorf("config: dataset.max_bytes must not be negative, got %d", c.Dataset.MaxBytes)
	}
	if len([]rune(c.Dataset.Delimiter)) != 1 {
		return fmt.Errorf("config: dataset.delimiter must be a single character, got %q", c.Dataset.Delimiter)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Metrics
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("config: metrics.path %q must start with /", c.Metrics.Path)
	}

	// Cache
	if c.Cache.Enabled && c.Cache.TTL < 0 {
		return fmt.Errorf("config: cache.ttl must be ≥ 0, got %s", c.Cache.TTL)
	}

	return nil
}

//Personal.AI order the ending
