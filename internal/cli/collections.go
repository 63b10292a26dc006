package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/exportstore"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/logger"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
	"github.com/UlviDemirsoy/JavaReflection/internal/usecase"
	"github.com/UlviDemirsoy/JavaReflection/internal/usecase/browse"
	"github.com/UlviDemirsoy/JavaReflection/internal/usecase/extract"
)

func collectionsCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "collections",
		Short: "Browse collection schemas and content",
	}

	c.AddCommand(
		collectionsListCmd(g),
		collectionsShowCmd(g),
		collectionsExportCmd(g),
		collectionsValidateCmd(g),
	)
	return c
}

func collectionsListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}

			st, err := loadCollections(cmd.Context(), s.api)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), g.format, st.Collections, func(w io.Writer) error {
				printCollections(w, s.api.BaseURL(), st.Collections)
				return nil
			})
		},
	}
}

func collectionsShowCmd(g *globalFlags) *cobra.Command {
	var selects []string

	cmd := &cobra.Command{
		Use:   "show <collection>",
		Short: "Show the schema and items of one collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := extract.ParseRules(selects)
			if err != nil {
				return err
			}

			s, err := openSession(g)
			if err != nil {
				return err
			}

			st, err := loadDetail(cmd.Context(), s.api, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(rules) > 0 {
				rows, err := extract.Project(st.Items, rules)
				if err != nil {
					return err
				}
				return render(w, g.format, rowValues(rows), func(w io.Writer) error {
					return printRows(w, rules.Columns(), rows)
				})
			}

			payload := struct {
				Collection string               `json:"collection" yaml:"collection"`
				Schema     *domain.ModelSchema  `json:"schema" yaml:"schema"`
				Items      []domain.ContentItem `json:"items" yaml:"items"`
			}{st.Collection, st.Schema, st.Items}

			return render(w, g.format, payload, func(w io.Writer) error {
				printDetail(w, st)
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&selects, "select", "s", nil, "Project items with JSONPath: name=$.expr or $.expr (repeatable)")
	return cmd
}

func collectionsExportCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <collection>",
		Short: "Save the schema and items of one collection under exports/",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}
			if err := s.requireWorkspace(); err != nil {
				return err
			}

			st, err := loadDetail(cmd.Context(), s.api, args[0])
			if err != nil {
				return err
			}

			store := exportstore.NewJSONStore(s.root, s.cfg, exportstore.WithIndex(true))
			id, err := saveExport(store, s.api.BaseURL(), st)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			rel, _ := filepath.Rel(s.root, filepath.Join(store.Dir(), id+".json"))
			fmt.Fprintf(w, "Saved export: %s\n", id)
			fmt.Fprintf(w, "File:         %s\n", rel)
			fmt.Fprintf(w, "Items:        %d\n", len(st.Items))
			return nil
		},
	}
}

func collectionsValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <collection>",
		Short: "Check that every item matches the collection schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}

			report, err := usecase.NewValidateContent(s.api).Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			err = render(cmd.OutOrStdout(), g.format, report, func(w io.Writer) error {
				fmt.Fprintf(w, "Collection: %s (%d items)\n", report.Collection, report.Items)
				if report.OK() {
					fmt.Fprintln(w, "OK: every item matches the schema")
					return nil
				}
				for _, issue := range report.Issues {
					fmt.Fprintf(w, "- %s\n", issue)
				}
				return nil
			})
			if err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("validation failed (%d issue(s))", len(report.Issues))
			}
			return nil
		},
	}
}

// loadCollections runs the list loader once and turns its error state back
// into a command error.
func loadCollections(ctx context.Context, api ports.SchemaSource) (browse.CollectionListState, error) {
	l := browse.NewCollectionList(api, browse.WithLogger(logger.L()))
	l.Fetch(ctx)

	st := l.State()
	if st.Error != "" {
		return st, fmt.Errorf("list collections: %s", st.Error)
	}
	return st, nil
}

// loadDetail selects one collection and waits for the detail loader to settle.
func loadDetail(ctx context.Context, api ports.CollectionsAPI, collection string) (browse.CollectionDetailState, error) {
	name := strings.TrimSpace(collection)
	if name == "" {
		return browse.CollectionDetailState{}, domain.ErrNoSelection
	}

	sel := browse.NewSelection()
	sel.Set(name)

	d := browse.NewCollectionDetail(ctx, api, sel, browse.WithLogger(logger.L()))
	defer d.Close()
	d.Wait()

	st := d.State()
	if st.Error != "" {
		return st, fmt.Errorf("load collection %q: %s", name, st.Error)
	}
	if st.Schema == nil {
		return st, fmt.Errorf("load collection %q: no schema returned", name)
	}
	return st, nil
}

func saveExport(store ports.ExportStore, baseURL string, st browse.CollectionDetailState) (string, error) {
	return store.SaveExport(domain.ExportArtifact{
		Collection: st.Collection,
		BaseURL:    baseURL,
		Schema:     st.Schema,
		Items:      st.Items,
	})
}

func printCollections(w io.Writer, baseURL string, cols []domain.ModelSchema) {
	if len(cols) == 0 {
		fmt.Fprintln(w, "(no collections found)")
		return
	}

	fmt.Fprintf(w, "Backend: %s\n\n", baseURL)
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	for _, c := range cols {
		refs := ""
		if r := c.References(); len(r) > 0 {
			refs = "refs: " + strings.Join(r, ", ")
		}
		fmt.Fprintf(tw, "- %s\t%s\t%d fields\t%s\n", c.Collection, c.Title(), len(c.Fields), refs)
	}
	_ = tw.Flush()
}

func printDetail(w io.Writer, st browse.CollectionDetailState) {
	fmt.Fprintf(w, "Collection: %s\n", st.Collection)
	if st.Schema != nil && st.Schema.Title() != st.Collection && st.Schema.Title() != "" {
		fmt.Fprintf(w, "Title:      %s\n", st.Schema.Title())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Schema:")
	printSchemaTree(w, st.Schema)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Items: %d\n", len(st.Items))
	for i, it := range st.Items {
		fmt.Fprintf(w, "  [%d] %s\n", i, compactJSON(it))
	}
}

func printSchemaTree(w io.Writer, schema *domain.ModelSchema) {
	if schema == nil || len(schema.Fields) == 0 {
		fmt.Fprintln(w, "  (no fields)")
		return
	}
	_ = schema.Walk(func(path string, depth int, f domain.FieldDefinition) error {
		name := path
		if i := strings.LastIndex(path, "."); i >= 0 {
			name = path[i+1:]
		}
		fmt.Fprintf(w, "  %s%s: %s\n", strings.Repeat("  ", depth), name, f.Describe())
		return nil
	})
}

func printRows(w io.Writer, cols []string, rows []extract.Row) error {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintf(tw, "#\t%s\n", strings.Join(cols, "\t"))
	misses := 0
	for _, r := range rows {
		vals := make([]string, 0, len(cols))
		for _, c := range cols {
			v, ok := r.Values[c]
			if !ok {
				v = "-"
			}
			vals = append(vals, v)
		}
		fmt.Fprintf(tw, "%d\t%s\n", r.Index, strings.Join(vals, "\t"))
		if r.Failed() {
			misses++
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if misses > 0 {
		fmt.Fprintf(w, "\n%d item(s) missing at least one selected value\n", misses)
	}
	return nil
}

func rowValues(rows []extract.Row) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Values)
	}
	return out
}
