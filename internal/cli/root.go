package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rickgorman/devservices/internal/config"
	"github.com/rickgorman/devservices/internal/container"
	"github.com/rickgorman/devservices/internal/devservice"
	"github.com/rickgorman/devservices/internal/logging"
	"github.com/rickgorman/devservices/internal/oracle"
	"github.com/rickgorman/devservices/internal/ui"
)

var (
	// Version information (set at build time)
	Version = "dev"
	Commit  = "unknown"
)

// Engine is the container engine the commands drive.
type Engine interface {
	devservice.Engine
	FindByNamePrefix(ctx context.Context, prefix string) ([]string, error)
	Uptime(ctx context.Context, nameOrID string) (string, error)
	Close() error
}

// EngineFactory connects to the container engine.
type EngineFactory func() (Engine, error)

type options struct {
	dir       string
	verbose   bool
	newEngine EngineFactory
	registry  *devservice.Registry
}

// NewRootCmd creates the root command wired to the local Docker engine.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{
		newEngine: dockerEngine,
		registry:  defaultRegistry(),
	})
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devservices",
		Short: "Start disposable databases for local development and tests",
		Long: `devservices starts a throwaway database container for the current project,
prints its connection coordinates and removes it again on Ctrl-C.

Settings come from devservices.yaml in the project root, a .env file next to
it and DEVSERVICES_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := logging.GetLogger()
			logger.ConfigureFromEnv()
			if opts.verbose {
				logger.SetLogLevel("debug")
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", "", "Project directory (default: git worktree root)")

	rootCmd.AddCommand(newStartCmd(opts))
	rootCmd.AddCommand(newKindsCmd(opts))
	rootCmd.AddCommand(newPsCmd(opts))
	rootCmd.AddCommand(newStopCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		ui.Fail("%v", err)
		return 1
	}
	return 0
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(version, commit string) {
	Version = version
	Commit = commit
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devservices %s (%s)\n", Version, Commit)
		},
	}
}

func dockerEngine() (Engine, error) {
	client, err := container.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Docker: %w", err)
	}
	return client, nil
}

func defaultRegistry() *devservice.Registry {
	reg := devservice.NewRegistry()
	if err := oracle.Register(reg); err != nil {
		panic(err)
	}
	return reg
}

func (o *options) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.dir != "" {
		cfg, err = config.Load(o.dir)
	} else {
		cfg, err = config.LoadProject()
	}
	if err != nil {
		return nil, err
	}

	// --verbose beats the configured level
	if cfg.LogLevel != "" && !o.verbose {
		logging.GetLogger().SetLogLevel(cfg.LogLevel)
	}
	return cfg, nil
}

// shortID trims a container ID the way docker ps does.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
