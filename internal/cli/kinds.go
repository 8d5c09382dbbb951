package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKindsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the database kinds that can be started",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, kind := range opts.registry.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), kind)
			}
		},
	}
}
