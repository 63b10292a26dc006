package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

func seedCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "seed",
		Short: "Generate, inspect and clear synthetic backend data",
	}

	c.AddCommand(
		seedClassesCmd(g),
		seedClassCmd(g),
		seedBulkCmd(g),
		seedAllCmd(g),
		seedDataCmd(g),
		seedStatsCmd(g),
		seedClearCmd(g),
	)
	return c
}

func seedClassesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List the model classes the backend can seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			names, err := s.api.Seeding().AvailableClasses(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.format, names, func(w io.Writer) error {
				if len(names) == 0 {
					fmt.Fprintln(w, "(no classes available)")
				}
				for _, n := range names {
					fmt.Fprintf(w, "- %s\n", n)
				}
				return nil
			})
		},
	}
}

func seedClassCmd(g *globalFlags) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "class <className>",
		Short: "Seed records for one class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			res, err := s.api.Seeding().SeedClass(cmd.Context(), args[0], count)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.format, res, func(w io.Writer) error {
				printSeedResult(w, res)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", domain.DefaultSeedCount, "Records to generate")
	return cmd
}

func seedBulkCmd(g *globalFlags) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "bulk <className>...",
		Short: "Seed records for several classes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			res, err := s.api.Seeding().SeedClasses(cmd.Context(), args, count)
			if err != nil {
				return err
			}
			return renderBulk(cmd, g, res)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", domain.DefaultSeedCountPerClass, "Records per class")
	return cmd
}

func seedAllCmd(g *globalFlags) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Seed records for every available class",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			res, err := s.api.Seeding().SeedAll(cmd.Context(), count)
			if err != nil {
				return err
			}
			return renderBulk(cmd, g, res)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", domain.DefaultSeedCountPerClass, "Records per class")
	return cmd
}

func seedDataCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "data [className]",
		Short: "Show seeded records for one class or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}

			seeding := s.api.Seeding()
			var data map[string][]domain.ContentItem
			if len(args) == 1 {
				items, err := seeding.SeededData(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				data = map[string][]domain.ContentItem{args[0]: items}
			} else {
				data, err = seeding.AllSeededData(cmd.Context())
				if err != nil {
					return err
				}
			}

			return render(cmd.OutOrStdout(), g.format, data, func(w io.Writer) error {
				if len(data) == 0 {
					fmt.Fprintln(w, "(nothing seeded)")
					return nil
				}
				for _, class := range sortedKeys(data) {
					fmt.Fprintf(w, "%s (%d)\n", class, len(data[class]))
					for i, it := range data[class] {
						fmt.Fprintf(w, "  [%d] %s\n", i, compactJSON(it))
					}
				}
				return nil
			})
		},
	}
}

func seedStatsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show seeding statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			st, err := s.api.Seeding().Statistics(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.format, st, func(w io.Writer) error {
				fmt.Fprintf(w, "Classes:  %d available, %d seeded\n", st.TotalClasses, st.SeededClasses)
				fmt.Fprintf(w, "Records:  %d\n", st.TotalRecords)
				for _, class := range sortedKeys(st.RecordsPerClass) {
					fmt.Fprintf(w, "- %s: %d\n", class, st.RecordsPerClass[class])
				}
				return nil
			})
		},
	}
}

func seedClearCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [className]",
		Short: "Clear seeded records for one class or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}

			var msg domain.StatusMessage
			if len(args) == 1 {
				msg, err = s.api.Seeding().ClearSeededData(cmd.Context(), args[0])
			} else {
				msg, err = s.api.Seeding().ClearAllSeededData(cmd.Context())
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.format, msg, func(w io.Writer) error {
				fmt.Fprintln(w, msg.Message)
				return nil
			})
		},
	}
}

// renderBulk prints a bulk result and fails the command when any class failed.
func renderBulk(cmd *cobra.Command, g *globalFlags, res domain.BulkSeedResult) error {
	err := render(cmd.OutOrStdout(), g.format, res, func(w io.Writer) error {
		if res.Message != "" {
			fmt.Fprintln(w, res.Message)
		}
		fmt.Fprintf(w, "Classes: %d, records per class: %d\n\n", res.TotalClasses, res.RecordsPerClass)
		for _, r := range res.Results {
			printSeedResult(w, r)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if failed := res.Failures(); len(failed) > 0 {
		return fmt.Errorf("seeding failed for %d class(es)", len(failed))
	}
	return nil
}

func printSeedResult(w io.Writer, r domain.SeedResult) {
	if r.Failed() {
		fmt.Fprintf(w, "- [FAIL] %s: %s\n", r.ClassName, r.Error)
		return
	}
	fmt.Fprintf(w, "- [OK] %s: %d record(s)\n", r.ClassName, r.Count)
	if r.Message != "" {
		fmt.Fprintf(w, "  %s\n", r.Message)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
