package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rickgorman/devservices/internal/devservice"
	"github.com/rickgorman/devservices/internal/oracle"
)

func newPsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ps",
		Short: "List dev service containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			ctx := cmd.Context()
			names, err := engine.FindByNamePrefix(ctx, devservice.ContainerNamePrefix)
			if err != nil {
				return fmt.Errorf("failed to list containers: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tMODE\tSTATUS")
			for _, name := range names {
				status, err := engine.Inspect(ctx, name)
				if err != nil {
					return err
				}

				state := "exited"
				if uptime, err := engine.Uptime(ctx, name); err == nil {
					state = "up " + uptime
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					name,
					orDash(status.Labels[oracle.KindLabel]),
					orDash(status.Labels[oracle.LaunchModeLabel]),
					state)
			}
			return w.Flush()
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
