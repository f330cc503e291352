// Package config provides configuration loading, defaults, and validation for
// NFHS Explorer.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8501
	DefaultServerMode            = "release"
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second

	DefaultDatasetSource       = SourceFile
	DefaultDatasetPath         = "All India National Family Health Survey.csv"
	DefaultDatasetDelimiter    = ","
	DefaultDatasetFetchTimeout = 30 * time.Second
	DefaultDatasetMaxBytes     = 64 << 20

	DefaultMinIOEndpoint = "localhost:9000"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "stdout"

	DefaultMetricsNamespace = "nfhs"
	DefaultMetricsPath      = "/metrics"

	DefaultCacheTTL             = 10 * time.Minute
	DefaultCacheCleanupInterval = 20 * time.Minute
)

// NewDefaultConfig returns a Config with every field set to its default.  It
// is what the CLI uses when no config file is supplied.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Metrics: MetricsConfig{Enabled: true},
		Cache:   CacheConfig{Enabled: true},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with the default.
// Fields that have already been set by the caller (non-zero values) are left
// unchanged so that explicit configuration always wins.  Booleans are not
// touched; their defaults are registered with viper in loader.go.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	// ── Dataset ───────────────────────────────────────────────────────────────
	if cfg.Dataset.Source == "" {
		cfg.Dataset.Source = DefaultDatasetSource
	}
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = DefaultDatasetPath
	}
	if cfg.Dataset.Delimiter == "" {
		cfg.Dataset.Delimiter = DefaultDatasetDelimiter
	}
	if cfg.Dataset.FetchTimeout == 0 {
		cfg.Dataset.FetchTimeout = DefaultDatasetFetchTimeout
	}
	if cfg.Dataset.MaxBytes == 0 {
		cfg.Dataset.MaxBytes = DefaultDatasetMaxBytes
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = DefaultLogOutput
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.CleanupInterval == 0 {
		cfg.Cache.CleanupInterval = DefaultCacheCleanupInterval
	}
}

//Personal.AI order the ending
