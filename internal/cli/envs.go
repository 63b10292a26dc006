package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
)

func envsCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "envs",
		Short: "Manage environments in a workspace",
	}

	c.AddCommand(envsListCmd(g))
	return c
}

func envsListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			if err := s.requireWorkspace(); err != nil {
				return err
			}

			refs, err := s.envs.ListEnvironments(s.root)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), g.format, refs, func(w io.Writer) error {
				if len(refs) == 0 {
					fmt.Fprintln(w, "(no environments found)")
					return nil
				}

				fmt.Fprintf(w, "Workspace: %s\n", s.root)
				fmt.Fprintf(w, "Default:   %s\n\n", s.cfg.Defaults.Environment)

				for _, r := range refs {
					rel, _ := filepath.Rel(s.root, r.Path)
					fmt.Fprintf(w, "- %s  (%s)\n", r.Name, rel)
				}
				return nil
			})
		},
	}
}
