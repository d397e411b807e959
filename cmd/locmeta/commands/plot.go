package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locmeta/pkg/metapage"
	"github.com/Sumatoshi-tech/locmeta/pkg/observability"
	"github.com/Sumatoshi-tech/locmeta/pkg/plotpage"
)

const metaPagePath = "meta/"

// PlotCommand holds the flags of the plot command.
type PlotCommand struct {
	rt      *runtime
	filters filterFlags
	output  string
	theme   string
	noStory bool
}

func newPlotCommand(rt *runtime) *cobra.Command {
	pc := &PlotCommand{rt: rt}

	cmd := &cobra.Command{
		Use:   "plot [loc.csv]",
		Short: "Render the interactive commit page as HTML",
		Long: `Render the commit page: headline statistics, the commit scatter plot
with brush selection, file and language breakdowns and the commit story.

The page is written to stdout unless -o is given. The theme comes from the
stored color scheme preference unless --theme overrides it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: pc.run,
	}

	pc.filters.register(cmd)
	cmd.Flags().StringVarP(&pc.output, "output", "o", "", "output HTML file (default: stdout)")
	cmd.Flags().StringVar(&pc.theme, "theme", "", "auto, light or dark (default: stored preference)")
	cmd.Flags().BoolVar(&pc.noStory, "no-story", false, "omit the commit story section")

	return cmd
}

func (pc *PlotCommand) run(cmd *cobra.Command, args []string) error {
	theme, err := pageTheme(pc.rt, pc.theme)
	if err != nil {
		return err
	}

	opts, err := pc.filters.statsOptions(pc.rt)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	st, err := loadState(ctx, pc.rt, dataSource(pc.rt, args))
	if err != nil {
		return err
	}

	st, err = pc.filters.apply(cmd, pc.rt, st)
	if err != nil {
		return err
	}

	return timed(ctx, pc.rt, observability.StageRender, func() error {
		page := metapage.Build(st, metapage.Options{
			Theme:    theme,
			Nav:      navFor(pc.rt, metaPagePath),
			TopFiles: pc.rt.cfg.Chart.TopFiles,
			Stats:    opts,
			Story:    !pc.noStory,
		})

		return writePage(cmd, page, pc.output)
	})
}

// writePage renders page to path, or to the command's output when path is empty.
func writePage(cmd *cobra.Command, page *plotpage.Page, path string) error {
	if path == "" {
		return page.Render(cmd.OutOrStdout())
	}

	return page.WriteFile(path)
}
