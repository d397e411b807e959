package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/locmeta/pkg/schema"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "schema <document>",
		Short:     "Print the JSON schema of a --format json output",
		Args:      cobra.ExactArgs(1),
		ValidArgs: schema.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schema.For(args[0])
			if err != nil {
				return err
			}

			data, err := schema.Marshal(s)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))

			return err
		},
	}
}
