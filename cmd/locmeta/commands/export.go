package commands

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locmeta/pkg/locexport"
	"github.com/Sumatoshi-tech/locmeta/pkg/observability"
)

const exportFilePerm = 0o644

// ExportCommand holds the flags of the export command.
type ExportCommand struct {
	rt         *runtime
	output     string
	extensions []string
}

func newExportCommand(rt *runtime) *cobra.Command {
	ec := &ExportCommand{rt: rt}

	cmd := &cobra.Command{
		Use:   "export [repository]",
		Short: "Blame a git repository into loc.csv",
		Long: `Blame every tracked file at HEAD whose extension is allowed and write
one loc.csv row per line. The repository defaults to the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: ec.run,
	}

	cmd.Flags().StringVarP(&ec.output, "output", "o", "", "output CSV file (default: stdout)")
	cmd.Flags().StringSliceVar(&ec.extensions, "ext", nil, "file extensions to blame (default: export.extensions)")

	return cmd
}

func (ec *ExportCommand) run(cmd *cobra.Command, args []string) (err error) {
	repo := "."
	if len(args) > 0 {
		repo = args[0]
	}

	exts := ec.extensions
	if len(exts) == 0 {
		exts = ec.rt.cfg.Export.Extensions
	}

	var out io.Writer = cmd.OutOrStdout()

	if ec.output != "" {
		f, createErr := os.OpenFile(ec.output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, exportFilePerm)
		if createErr != nil {
			return createErr
		}

		defer func() { err = errors.Join(err, f.Close()) }()

		out = f
	}

	buf := bufio.NewWriter(out)
	ctx := cmd.Context()

	var res locexport.Result

	err = timed(ctx, ec.rt, observability.StageExport, func() error {
		var exportErr error

		res, exportErr = locexport.Export(ctx, repo, buf, locexport.Options{
			Extensions: exts,
			IndentSize: ec.rt.cfg.Export.IndentSize,
			SkipVendor: ec.rt.cfg.Export.SkipVendor,
			Logger:     ec.rt.logger,
		})

		return exportErr
	})
	if err != nil {
		return err
	}

	err = buf.Flush()
	if err != nil {
		return err
	}

	ec.rt.logger.InfoContext(ctx, "export complete",
		"commit", res.Commit, "files", humanize.Comma(int64(res.Files)), "rows", humanize.Comma(int64(res.Rows)))

	return nil
}
