package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locmeta/pkg/observability"
	"github.com/Sumatoshi-tech/locmeta/pkg/projects"
	"github.com/Sumatoshi-tech/locmeta/pkg/report"
	"github.com/Sumatoshi-tech/locmeta/pkg/source"
)

const projectsPagePath = "projects/"

// ProjectsCommand holds the flags of the projects command.
type ProjectsCommand struct {
	rt     *runtime
	filter projects.Filter
	output string
	theme  string
	format string
}

func newProjectsCommand(rt *runtime) *cobra.Command {
	pc := &ProjectsCommand{rt: rt}

	cmd := &cobra.Command{
		Use:   "projects [projects.json]",
		Short: "Filter the project gallery",
		Long: `List the projects matching --year and --query, with the per-year
breakdown of the projects matching the query. The query is matched case
insensitively against every field of a project.

-o writes the gallery page with its per-year pie chart instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: pc.run,
	}

	cmd.Flags().StringVar(&pc.filter.Year, "year", "", "keep projects of this year")
	cmd.Flags().StringVar(&pc.filter.Query, "query", "", "keep projects containing this text")
	cmd.Flags().StringVarP(&pc.output, "output", "o", "", "write the gallery page to this HTML file")
	cmd.Flags().StringVar(&pc.theme, "theme", "", "auto, light or dark (default: stored preference)")
	cmd.Flags().StringVarP(&pc.format, "format", "f", string(report.FormatText), "listing format: text, json or yaml")

	return cmd
}

func (pc *ProjectsCommand) run(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(pc.format)
	if err != nil {
		return err
	}

	src := pc.rt.cfg.Data.Projects
	if len(args) > 0 {
		src = args[0]
	}

	ctx := cmd.Context()

	all, err := projects.Load(ctx, src, source.Options{Timeout: pc.rt.cfg.Data.Timeout})
	if err != nil {
		return err
	}

	view := projects.NewView(all, pc.filter)

	pc.rt.logger.DebugContext(ctx, "projects filtered",
		"source", src, "total", len(all), "matching", len(view.Projects))

	if pc.output == "" {
		if format == report.FormatText {
			return projects.WriteText(cmd.OutOrStdout(), view)
		}

		return report.Encode(cmd.OutOrStdout(), view.Listing(), format)
	}

	theme, err := pageTheme(pc.rt, pc.theme)
	if err != nil {
		return err
	}

	return timed(ctx, pc.rt, observability.StageRender, func() error {
		page := projects.BuildPage(view, projects.PageOptions{
			Theme: theme,
			Nav:   navFor(pc.rt, projectsPagePath),
		})

		return writePage(cmd, page, pc.output)
	})
}
