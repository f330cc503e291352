package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "NFHS"

var (
	// ErrConfigFileNotFound is returned when an explicit config path does not
	// exist.
	ErrConfigFileNotFound = errors.New("config: file not found")

	// ErrConfigParseError is returned when the config file is not valid YAML.
	ErrConfigParseError = errors.New("config: parse error")
)

// newViper builds a pre-configured Viper instance: YAML file type, NFHS_ env
// prefix, automatic env binding, and a key replacer that maps "." → "_" so
// that nested keys like "dataset.path" resolve to "NFHS_DATASET_PATH".
//
// Every key is registered with its default so that AutomaticEnv overrides are
// visible to Unmarshal even when no config file mentions the key.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerDefaults(v)
	return v
}

func registerDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("dataset.source", d.Dataset.Source)
	v.SetDefault("dataset.path", d.Dataset.Path)
	v.SetDefault("dataset.url", "")
	v.SetDefault("dataset.delimiter", d.Dataset.Delimiter)
	v.SetDefault("dataset.strict_unique", false)
	v.SetDefault("dataset.fetch_timeout", d.Dataset.FetchTimeout)
	v.SetDefault("dataset.max_bytes", d.Dataset.MaxBytes)

	v.SetDefault("minio.endpoint", d.MinIO.Endpoint)
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "")
	v.SetDefault("minio.object", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.region", "")

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.path", d.Metrics.Path)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", d.Cache.CleanupInterval)

	v.SetDefault("cors.allowed_origins", []string{})
}

// loadDotEnv merges KEY=VALUE pairs from the given .env files into the
// process environment.  Variables that are already set are never overwritten,
// and a missing file is not an error.
func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: failed to read %s: %w", f, err)
		}
	}
	return nil
}

// Load is the entry point used by both binaries.  An empty configPath builds
// the Config from the environment alone; otherwise the YAML file is read and
// environment variables override it.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	return LoadFromFile(configPath)
}

// LoadFromFile reads the YAML file at configPath, merges any NFHS_*
// environment variable overrides (including those from a .env file in the
// working directory), applies defaults for unset fields, and validates the
// result.
func LoadFromFile(configPath string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
		return nil, fmt.Errorf("config: failed to stat %q: %w", configPath, err)
	}

	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParseError, configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from NFHS_* environment variables,
// with no config file required.  This is the preferred loading strategy for
// containerised (12-factor) deployments.
//
// Environment variable naming convention:
//
//	NFHS_<SECTION>_<FIELD>   e.g.  NFHS_DATASET_PATH, NFHS_LOG_LEVEL
func LoadFromEnv() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return unmarshalAndFinalize(newViper())
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified on disk.  Only the log level is
// applied at runtime by the server; the dataset is never reloaded.
//
// Watch is non-blocking; viper runs the fsnotify loop in its own goroutine.
// A change that fails to parse or validate is reported to onError (when
// non-nil) and onChange is not called.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfigParseError, configPath, err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// MustLoad is a convenience wrapper around Load that panics on any error.
// It is intended for use in main() where a config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
