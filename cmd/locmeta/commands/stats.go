package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locmeta/pkg/observability"
	"github.com/Sumatoshi-tech/locmeta/pkg/report"
)

// StatsCommand holds the flags of the stats command.
type StatsCommand struct {
	rt      *runtime
	filters filterFlags
	format  string
}

func newStatsCommand(rt *runtime) *cobra.Command {
	sc := &StatsCommand{rt: rt}

	cmd := &cobra.Command{
		Use:   "stats [loc.csv]",
		Short: "Print summary statistics for a filter state",
		Long: `Print the headline numbers, per-file line counts and language shares.

The export may be a local path or an http(s) URL; it defaults to data.loc_csv.
--progress or --until move the time cutoff; --select keeps the commits whose
scatter-plot position falls inside the rectangle.`,
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	sc.filters.register(cmd)
	cmd.Flags().StringVarP(&sc.format, "format", "f", string(report.FormatText), "output format: text, json or yaml")

	return cmd
}

func (sc *StatsCommand) run(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(sc.format)
	if err != nil {
		return err
	}

	opts, err := sc.filters.statsOptions(sc.rt)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	st, err := loadState(ctx, sc.rt, dataSource(sc.rt, args))
	if err != nil {
		return err
	}

	st, err = sc.filters.apply(cmd, sc.rt, st)
	if err != nil {
		return err
	}

	var r report.Report

	err = timed(ctx, sc.rt, observability.StageStats, func() error {
		r = report.Build(st, opts)

		return nil
	})
	if err != nil {
		return err
	}

	return report.Write(cmd.OutOrStdout(), r, format, sc.rt.cfg.Chart.TopFiles)
}
