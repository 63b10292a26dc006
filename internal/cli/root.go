package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/UlviDemirsoy/JavaReflection/internal/infra/exportstore"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/fsworkspace"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/logger"
	"github.com/UlviDemirsoy/JavaReflection/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	baseURL   string
	env       string
	workspace string
	format    string
	debug     bool

	closeLog func() error
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "acectl",
		Short:        "acectl - browse and seed a schema-driven content backend",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			g.setupLogging()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return g.shutdownLogging()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}

			deps := tui.Deps{
				API:                  s.api,
				BaseURL:              s.api.BaseURL(),
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				WorkspaceRoot:        s.root,
				Logger:               logger.L(),
				Debug:                g.debug,
			}
			if s.root != "" {
				deps.Exports = exportstore.NewJSONStore(s.root, s.cfg, exportstore.WithIndex(true))
			}
			return tui.Run(cmd.Context(), deps)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.baseURL, "base-url", "", "Backend base URL (overrides env and acectl.yaml)")
	pf.StringVarP(&g.env, "env", "e", "", "Environment name or path (defaults to the workspace default)")
	pf.StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	pf.StringVar(&g.format, "format", "pretty", "Output format: pretty|json|yaml")
	pf.BoolVar(&g.debug, "debug", false, "enable verbose logging to .acectl/logs/acectl.log")

	cmd.AddCommand(
		initCmd(),
		versionCmd(),
		collectionsCmd(g),
		seedCmd(g),
		bootstrapCmd(g),
		mockCmd(),
		envsCmd(g),
	)
	return cmd
}

// setupLogging routes the global logger into the workspace when one exists.
// Without a workspace the logger stays silent.
func (g *globalFlags) setupLogging() {
	root, err := resolveWorkspaceRoot(g.workspace)
	if err != nil {
		return
	}
	cleanup, err := logger.Setup(logger.Config{Root: root, Debug: g.debug})
	if err == nil {
		g.closeLog = cleanup
	}
}

func (g *globalFlags) shutdownLogging() error {
	if g.closeLog == nil {
		return nil
	}
	err := g.closeLog()
	g.closeLog = nil
	return err
}
