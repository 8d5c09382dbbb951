package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rickgorman/devservices/internal/config"
	"github.com/rickgorman/devservices/internal/ui"
)

func newStartCmd(opts *options) *cobra.Command {
	var (
		kind   string
		detach bool
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the configured database and wait for Ctrl-C",
		Long: `Start the database configured for the project, print its connection
coordinates and block until interrupted. On Ctrl-C the container is stopped
and removed unless reuse is enabled.

The JDBC URL is also written to stdout so scripts can capture it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd, opts, kind, detach)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Database kind (overrides db-kind)")
	cmd.Flags().BoolVarP(&detach, "detach", "d", false, "Leave the database running and exit")

	return cmd
}

func runStart(cmd *cobra.Command, opts *options, kind string, detach bool) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	if kind != "" {
		cfg.Kind = kind
	}

	ui.Header()
	defer ui.Footer()

	if !cfg.Enabled() {
		ui.Warn("Dev Services are disabled in %s", config.FileName)
		return nil
	}

	req, err := cfg.StartRequest()
	if err != nil {
		return err
	}

	engine, err := opts.newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	provider, err := opts.registry.Provider(cfg.Kind, cfg.Environment(engine))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.Info("Starting Dev Services for %s...", ui.Bold(cfg.Kind))
	ds, err := provider.StartDatabase(ctx, req)
	if err != nil {
		return err
	}

	ui.Success("Dev Services for %s ready", cfg.Kind)
	ui.Field("container", shortID(ds.ContainerID))
	ui.Field("url", ds.URL)
	ui.Field("username", ds.Username)
	ui.Field("password", ds.Password)
	fmt.Fprintln(cmd.OutOrStdout(), ds.URL)

	if detach {
		ui.DimMsg("Left running; remove it with: devservices stop %s", shortID(ds.ContainerID))
		return nil
	}

	ui.DimMsg("Press Ctrl-C to stop")
	<-ctx.Done()
	ui.BlankLine()

	if err := ds.Closer.Close(); err != nil {
		return err
	}
	ui.Success("Dev Services for %s stopped", cfg.Kind)
	return nil
}
