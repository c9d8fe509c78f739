package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/cohortviz/internal/adapters/report"
	app "github.com/okian/cohortviz/internal/app"
	"github.com/okian/cohortviz/internal/config"
	"github.com/okian/cohortviz/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use fmt for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		logger.Get().Error(ctx, "cohortviz failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the CLI. Output of the summary subcommand goes to out.
func newRootCmd(out io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "cohortviz",
		Short: "Chart the gender of external team members across award cohorts",
		Long: `cohortviz reads awards.csv, individual_awards.csv and individual_demographics.csv,
keeps external (non-PI, non-internal) team members of "it" awards, counts men and
women per cohort and writes fig_24_<level>.png into the output directory.

Configuration is layered: defaults, then a YAML file (--config or COHORTVIZ_CONFIG),
then COHORTVIZ_* environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			_, err = svc.Run(cmd.Context())
			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (overrides COHORTVIZ_CONFIG)")

	var format string
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Print the per-cohort counts without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			svc, err := newService(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			res, err := svc.Summarize(cmd.Context())
			if err != nil {
				return err
			}
			return report.Write(out, res.Summary, f)
		},
	}
	summary.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	root.AddCommand(summary)

	return root
}

// newService loads the config and applies its log settings.
func newService(ctx context.Context, configPath string) (*app.Service, error) {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return nil, err
	}

	if cfg.LogJSON {
		if err := logger.Init(logger.WithJSON(true)); err != nil {
			return nil, err
		}
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	return app.New(
		app.WithConfig(cfg),
		app.WithLogger(logger.Get()),
	), nil
}
