package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rickgorman/devservices/internal/devservice"
	"github.com/rickgorman/devservices/internal/ui"
)

const stopTimeout = 10 * time.Second

func newStopCmd(opts *options) *cobra.Command {
	var all, yes bool

	cmd := &cobra.Command{
		Use:   "stop [container...]",
		Short: "Stop and remove dev service containers left running",
		Long: `Stop and remove containers kept alive by reuse or started with --detach.
Name containers by name or ID, or pass --all to remove every dev service container.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return errors.New("name a container or pass --all")
			}

			engine, err := opts.newEngine()
			if err != nil {
				return err
			}
			defer engine.Close()

			ctx := cmd.Context()
			targets := args
			if all {
				targets, err = engine.FindByNamePrefix(ctx, devservice.ContainerNamePrefix)
				if err != nil {
					return fmt.Errorf("failed to list containers: %w", err)
				}
			}

			if len(targets) == 0 {
				ui.Info("No dev service containers found")
				return nil
			}

			if all && !yes && !ui.AskYesNo(fmt.Sprintf("Remove %d container(s)?", len(targets)), false) {
				ui.Warn("Aborted")
				return nil
			}

			var errs []error
			for _, target := range targets {
				if err := engine.Stop(ctx, target, stopTimeout); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", target, err))
					continue
				}
				if err := engine.Remove(ctx, target, true); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", target, err))
					continue
				}
				ui.Success("Removed %s", target)
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Remove every dev service container")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
