package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locmeta/pkg/loc"
	"github.com/Sumatoshi-tech/locmeta/pkg/report"
	"github.com/Sumatoshi-tech/locmeta/pkg/timeline"
)

// StoryCommand holds the flags of the story command.
type StoryCommand struct {
	rt     *runtime
	step   int
	by     string
	format string
}

func newStoryCommand(rt *runtime) *cobra.Command {
	sc := &StoryCommand{rt: rt}

	cmd := &cobra.Command{
		Use:   "story [loc.csv]",
		Short: "Print the commit story",
		Long: `Print one narrative step per commit, oldest first.

--step N enters step N: the time cutoff moves to that commit and the
statistics of everything up to it are printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	cmd.Flags().IntVar(&sc.step, "step", -1, "enter this step (0-based) and print the resulting statistics")
	cmd.Flags().StringVar(&sc.by, flagBy, "", "count busiest stats by rows or commits (default: stats.unit)")
	cmd.Flags().StringVarP(&sc.format, "format", "f", string(report.FormatText), "output format: text, json or yaml")

	return cmd
}

func (sc *StoryCommand) run(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(sc.format)
	if err != nil {
		return err
	}

	st, err := loadState(cmd.Context(), sc.rt, dataSource(sc.rt, args))
	if err != nil {
		return err
	}

	story := timeline.NewStory(st.Dataset().Commits)

	if !cmd.Flags().Changed("step") {
		return report.WriteStory(cmd.OutOrStdout(), story, format)
	}

	filters := filterFlags{by: sc.by}

	opts, err := filters.statsOptions(sc.rt)
	if err != nil {
		return err
	}

	story.OnStepEnter(func(c loc.Commit) {
		sc.rt.logger.Debug("entered story step", "step", sc.step, "commit", c.ID)

		if format == report.FormatText {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", story.Steps()[sc.step].Text)
		}
	})

	st, err = story.Enter(st, sc.step)
	if err != nil {
		return err
	}

	return report.Write(cmd.OutOrStdout(), report.Build(st, opts), format, sc.rt.cfg.Chart.TopFiles)
}
