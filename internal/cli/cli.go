// Package cli builds the stormreport command line interface.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-impact-report/internal/chart"
	"github.com/couchcryptid/storm-impact-report/internal/config"
	"github.com/couchcryptid/storm-impact-report/internal/loader"
	"github.com/couchcryptid/storm-impact-report/internal/observability"
	"github.com/couchcryptid/storm-impact-report/internal/pipeline"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

// CLI represents the command-line interface.
type CLI struct {
	cfg     *config.Config
	logger  *slog.Logger
	out     io.Writer
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI.
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	Output io.Writer
}

// New creates a CLI instance. Output defaults to stdout.
func New(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	c := &CLI{
		cfg:    opts.Config,
		logger: opts.Logger,
		out:    opts.Output,
	}
	c.rootCmd = c.newRootCmd()
	return c
}

// Execute runs the CLI.
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

func (c *CLI) newRootCmd() *cobra.Command {
	var (
		outDir   string
		naPolicy string
		top      int
		charts   bool
	)

	cmd := &cobra.Command{
		Use:   "stormreport <input.csv[.gz|.bz2]>",
		Short: "Summarize casualties and damage in a Storm Events dataset",
		Long: "stormreport reads a NOAA Storm Events CSV, groups records by " +
			"normalized event type, and reports event counts, casualties, and " +
			"monetary damage as ranked tables and bar charts.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReport(args[0], outDir, naPolicy, top, charts)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", c.cfg.OutDir, "directory for the chart page")
	cmd.Flags().StringVar(&naPolicy, "na-policy", c.cfg.NAPolicy, "missing numeric cell handling: fail or zero")
	cmd.Flags().IntVar(&top, "top", c.cfg.TopLimit, "cap rows per ranked table, 0 for no cap")
	cmd.Flags().BoolVar(&charts, "charts", true, "render the HTML chart page")

	return cmd
}

func (c *CLI) runReport(input, outDir, naPolicy string, top int, withCharts bool) error {
	policy, err := loader.ParsePolicy(naPolicy)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()

	var chartWriter pipeline.ChartWriter
	if withCharts {
		chartWriter = chart.NewRenderer(outDir, c.cfg.ChartTheme)
	}

	p := pipeline.New(
		loader.New(policy, c.logger, metrics),
		report.NewReporter(c.out),
		chartWriter,
		c.logger,
		metrics,
		top,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return p.Run(ctx, input)
}
