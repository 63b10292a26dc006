package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/UlviDemirsoy/JavaReflection/internal/buildinfo"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/fsworkspace"
	"github.com/UlviDemirsoy/JavaReflection/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an acectl workspace (acectl.yaml, env/, exports/)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			if err := usecase.NewInitWorkspace(fsworkspace.NewInitializer()).Execute(root, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready at %s\n", root)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", ".", "Directory to initialize")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
