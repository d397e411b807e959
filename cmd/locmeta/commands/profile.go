package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locmeta/pkg/report"
	"github.com/Sumatoshi-tech/locmeta/pkg/site"
	"github.com/Sumatoshi-tech/locmeta/pkg/source"
)

func newProfileCommand(rt *runtime) *cobra.Command {
	var (
		api    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "profile <username>",
		Short: "Show a GitHub profile summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			p, err := site.FetchProfile(cmd.Context(), api, args[0], source.Options{Timeout: rt.cfg.Data.Timeout})
			if err != nil {
				return err
			}

			if f != report.FormatText {
				return report.Encode(cmd.OutOrStdout(), p, f)
			}

			return writeProfile(cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().StringVar(&api, "api", site.GitHubAPI, "GitHub API base URL")
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "output format: text, json or yaml")

	return cmd
}

func writeProfile(w io.Writer, p site.Profile) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(p.Login)
	tbl.AppendRows([]table.Row{
		{"Name", p.Name},
		{"Followers", humanize.Comma(int64(p.Followers))},
		{"Following", humanize.Comma(int64(p.Following))},
		{"Public repos", humanize.Comma(int64(p.PublicRepos))},
		{"Public gists", humanize.Comma(int64(p.PublicGists))},
	})

	_, err := fmt.Fprintln(w, tbl.Render())

	return err
}
