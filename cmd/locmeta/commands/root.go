// Package commands implements CLI command handlers for locmeta.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locmeta/pkg/config"
	"github.com/Sumatoshi-tech/locmeta/pkg/observability"
	"github.com/Sumatoshi-tech/locmeta/pkg/version"
)

const rootLong = `locmeta turns a line-level commit history export (loc.csv) into
statistics, filtered views and self-contained HTML pages.

Commands:
  stats     Summary statistics for a filter state
  plot      Interactive commit page
  story     Commit-by-commit narrative
  projects  Project gallery filtered by year and query
  theme     Show or set the color scheme preference
  export    Produce loc.csv from a git repository
  profile   Show a GitHub profile summary
  schema    JSON schema of a --format json output`

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath  string
	verbose     bool
	quiet       bool
	logJSON     bool
	metricsFile string
}

// runtime is the per-invocation state built before a command runs.
type runtime struct {
	flags globalFlags

	cfg       *config.Config
	providers observability.Providers
	metrics   *observability.PipelineMetrics
	logger    *slog.Logger
	stderr    io.Writer
	ready     bool
}

// Execute runs the CLI with args and flushes telemetry afterwards.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rt := &runtime{stderr: stderr}

	root := newRootCommand(rt)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	return errors.Join(err, rt.close(ctx))
}

func newRootCommand(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "locmeta",
		Short:         "Commit history statistics and pages from loc.csv",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return rt.init()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rt.flags.configPath, "config", "", "config file (default: locmeta.yaml in ., ./config, ~/.config/locmeta)")
	pf.BoolVarP(&rt.flags.verbose, "verbose", "v", false, "verbose output")
	pf.BoolVarP(&rt.flags.quiet, "quiet", "q", false, "suppress output")
	pf.BoolVar(&rt.flags.logJSON, "log-json", false, "log as JSON")
	pf.StringVar(&rt.flags.metricsFile, "metrics-file", "", "write pipeline metrics in Prometheus text format to this file")

	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(
		newStatsCommand(rt),
		newPlotCommand(rt),
		newStoryCommand(rt),
		newProjectsCommand(rt),
		newThemeCommand(rt),
		newExportCommand(rt),
		newProfileCommand(rt),
		newSchemaCommand(),
		newVersionCommand(),
	)

	return root
}

func (rt *runtime) init() error {
	cfg, err := config.LoadConfig(rt.flags.configPath)
	if err != nil {
		return err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Observability.Environment
	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Observability.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Observability.OTLPHeaders)
	obsCfg.SampleRatio = cfg.Observability.SampleRatio
	obsCfg.LogJSON = rt.flags.logJSON || cfg.Logging.Format == "json"
	obsCfg.LogWriter = rt.stderr
	obsCfg.LogLevel = observability.ParseLevel(cfg.Logging.Level)

	switch {
	case rt.flags.verbose:
		obsCfg.LogLevel = slog.LevelDebug
	case rt.flags.quiet:
		obsCfg.LogLevel = slog.LevelError
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewPipelineMetrics(providers.Meter)
	if err != nil {
		return errors.Join(err, providers.Shutdown(context.Background()))
	}

	if rt.flags.metricsFile == "" {
		rt.flags.metricsFile = cfg.Observability.MetricsFile
	}

	rt.cfg = cfg
	rt.providers = providers
	rt.metrics = metrics
	rt.logger = providers.Logger
	rt.ready = true

	return nil
}

// close writes the metrics file and shuts the providers down. It is a no-op
// when init never ran.
func (rt *runtime) close(ctx context.Context) error {
	if !rt.ready {
		return nil
	}

	rt.ready = false

	var errs []error

	if rt.flags.metricsFile != "" {
		err := observability.WriteMetricsFile(rt.providers.Registry, rt.flags.metricsFile)
		if err != nil {
			errs = append(errs, err)
		}
	}

	err := rt.providers.Shutdown(context.WithoutCancel(ctx))
	if err != nil {
		rt.logger.Warn("observability shutdown failed", "error", err)
	}

	return errors.Join(errs...)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())

			return err
		},
	}
}
