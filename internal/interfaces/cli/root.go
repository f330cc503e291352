package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/config"
	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/dataset"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/storage/minio"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	DatasetPath  string
	LogLevel     string
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration

	once sync.Once
	svc  *explorer.Service
	err  error
}

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "nfhs",
		Short:   "NFHS Explorer CLI for National Family Health Survey indicators",
		Long:    "nfhs queries the National Family Health Survey (NFHS) India extract from the\ncommand line: headline KPIs for a state, survey round and area, state-wise\nindicator comparisons, filtered rows and CSV/XLSX exports.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./nfhs.yaml if present)")
	pf.StringVarP(&opts.DatasetPath, "dataset", "d", "", "dataset CSV file; overrides dataset.source and dataset.path")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", OutputText, "output format (text, table, json)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "dataset load timeout")

	cmd.AddCommand(
		NewOptionsCmd(),
		NewKPICmd(),
		NewCompareCmd(),
		NewRowsCmd(),
		NewExportCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// persistentPreRun initializes config and logger, then stores CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	switch strings.ToLower(opts.OutputFormat) {
	case OutputText, OutputTable, OutputJSON:
	default:
		return errors.InvalidParam(fmt.Sprintf("unsupported output format %q", opts.OutputFormat))
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	if opts.NoColor {
		color.NoColor = true
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		NoColor:      opts.NoColor,
		Timeout:      opts.Timeout,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// initConfig loads configuration with priority: flags > env > file > defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case opts.ConfigPath != "":
		cfg, err = config.LoadFromFile(opts.ConfigPath)
	default:
		cfg, err = loadSearchPaths()
	}
	if err != nil {
		return nil, err
	}

	if opts.DatasetPath != "" {
		cfg.Dataset.Source = config.SourceFile
		cfg.Dataset.Path = opts.DatasetPath
	}
	return cfg, nil
}

func loadSearchPaths() (*config.Config, error) {
	searchPaths := []string{"./nfhs.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".nfhs", "config.yaml"))
	}

	for _, p := range searchPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			return config.LoadFromFile(p)
		}
	}
	return config.LoadFromEnv()
}

// initLogger creates a logger configured for CLI usage (output to stderr).
func initLogger(opts *RootOptions) (logging.Logger, error) {
	return logging.NewLogger(logging.LogConfig{
		Level:            opts.LogLevel,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is nil")
	}

	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.Internal("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Explorer loads the dataset on first use and returns the dashboard service
// built over it.
func (c *CLIContext) Explorer(ctx context.Context) (*explorer.Service, error) {
	c.once.Do(func() {
		loadCtx, cancel := context.WithTimeout(ctx, c.Timeout)
		defer cancel()

		var ds *survey.Dataset
		ds, c.err = LoadDataset(loadCtx, c.Config, c.Logger)
		if c.err == nil {
			c.svc = explorer.NewService(ds, nil, c.Logger)
		}
	})
	return c.svc, c.err
}

// LoadDataset opens the configured source and parses it with the columns the
// dashboard reads marked as required.
func LoadDataset(ctx context.Context, cfg *config.Config, logger logging.Logger) (*survey.Dataset, error) {
	var objects dataset.ObjectFetcher
	if cfg.Dataset.Source == config.SourceMinIO {
		client, err := minio.NewClient(minio.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Region:    cfg.MinIO.Region,
		}, logger)
		if err != nil {
			return nil, err
		}
		defer client.Close()
		objects = client
	}

	src, err := dataset.NewSource(cfg, objects)
	if err != nil {
		return nil, err
	}

	loader := dataset.NewLoader(dataset.Options{
		Delimiter:       firstRune(cfg.Dataset.Delimiter),
		RequiredColumns: explorer.RequiredColumns(),
		StrictUnique:    cfg.Dataset.StrictUnique,
	}, nil, logger)
	return loader.Load(ctx, src)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// NewVersionCmd prints build information.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintResult(cmd, versionInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate})
		},
	}
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

func (v versionInfo) String() string {
	return fmt.Sprintf("nfhs %s (commit: %s, built: %s)", v.Version, v.Commit, v.BuildDate)
}

//Personal.AI order the ending
