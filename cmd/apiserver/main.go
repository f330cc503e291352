// API server entry point for NFHS Explorer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/config"
	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/dataset"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/storage/minio"
	httpserver "github.com/turtacn/NFHS-Explorer/internal/interfaces/http"
	"github.com/turtacn/NFHS-Explorer/internal/interfaces/http/handlers"
	"github.com/turtacn/NFHS-Explorer/internal/interfaces/http/middleware"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

const datasetLoadTimeout = 2 * time.Minute

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, port int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: []string{cfg.Log.Output},
	})
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	logger.Info("Starting NFHS Explorer API server",
		logging.String("version", version),
		logging.String("commit", commit),
		logging.String("build_date", buildDate),
		logging.String("addr", cfg.Server.Addr()),
	)

	var (
		collector prometheus.MetricsCollector
		metrics   *prometheus.AppMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return err
		}
		metrics = prometheus.NewAppMetrics(collector)
	}

	var (
		objects *minio.Client
		fetcher dataset.ObjectFetcher
	)
	if cfg.Dataset.Source == config.SourceMinIO {
		objects, err = minio.NewClient(minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Region:    cfg.MinIO.Region,
		}, logger)
		if err != nil {
			return err
		}
		defer objects.Close()
		fetcher = objects
	}

	ds, err := loadDataset(cfg, fetcher, metrics, logger)
	if err != nil {
		return err
	}

	core := explorer.NewService(ds, metrics, logger)
	var svc explorer.DashboardService = core
	if cfg.Cache.Enabled {
		svc = explorer.NewCachedService(core, explorer.CacheOptions{
			TTL:             cfg.Cache.TTL,
			CleanupInterval: cfg.Cache.CleanupInterval,
		}, metrics, logger)
	}

	checkers := []handlers.HealthChecker{handlers.DatasetChecker(ds)}
	if objects != nil {
		bucket := cfg.MinIO.Bucket
		checkers = append(checkers, handlers.NewChecker("minio", func(ctx context.Context) error {
			return objects.Ping(ctx, bucket)
		}))
	}

	logCfg := middleware.DefaultLoggingConfig()
	routerCfg := httpserver.RouterConfig{
		DashboardHandler: handlers.NewDashboardHandler(svc, logger),
		PageHandler:      handlers.NewPageHandler(svc, logger),
		HealthHandler:    handlers.NewHealthHandler(version, checkers...),
		Logging:          &logCfg,
		Logger:           logger,
		Metrics:          metrics,
		MetricsCollector: collector,
		MetricsPath:      cfg.Metrics.Path,
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = cfg.CORS.AllowedOrigins
		routerCfg.CORSMiddleware = middleware.NewCORSMiddleware(corsCfg)
	}

	if configPath != "" {
		watchLogLevel(configPath, logger)
	}

	srv := httpserver.NewServer(cfg.Server, httpserver.NewRouter(routerCfg), logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case sig := <-quit:
		logger.Info("Shutdown signal received", logging.String("signal", sig.String()))
		if err := srv.Stop(context.Background()); err != nil {
			return err
		}
	}
	return nil
}

func loadDataset(cfg *config.Config, objects dataset.ObjectFetcher, metrics *prometheus.AppMetrics, logger logging.Logger) (*survey.Dataset, error) {
	src, err := dataset.NewSource(cfg, objects)
	if err != nil {
		return nil, err
	}

	var delim rune
	for _, r := range cfg.Dataset.Delimiter {
		delim = r
		break
	}
	loader := dataset.NewLoader(dataset.Options{
		Delimiter:       delim,
		RequiredColumns: explorer.RequiredColumns(),
		StrictUnique:    cfg.Dataset.StrictUnique,
	}, metrics, logger)

	ctx, cancel := context.WithTimeout(context.Background(), datasetLoadTimeout)
	defer cancel()
	return loader.Load(ctx, src)
}

// watchLogLevel applies log.level changes from the config file at runtime.
func watchLogLevel(configPath string, logger logging.Logger) {
	leveler, ok := logger.(logging.Leveler)
	if !ok {
		return
	}
	err := config.Watch(configPath, func(cfg *config.Config) {
		if cfg.Log.Level == leveler.Level() {
			return
		}
		leveler.SetLevel(cfg.Log.Level)
		logger.Info("Log level changed", logging.String("level", cfg.Log.Level))
	}, func(err error) {
		logger.Warn("Ignoring invalid config change", logging.Err(err))
	})
	if err != nil {
		logger.Warn("Config watch disabled", logging.Err(err))
	}
}

//Personal.AI order the ending
