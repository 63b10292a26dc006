package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/logger"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/mongobootstrap"
	"github.com/UlviDemirsoy/JavaReflection/internal/usecase"
)

func bootstrapCmd(g *globalFlags) *cobra.Command {
	var uri string
	var database string

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the content database collections and indexes (idempotent)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(g)
			if err != nil {
				return err
			}

			target := resolveBootstrapTarget(uri, database, s.env, s.cfg)
			log := logger.L()
			log.Info("bootstrap.start", "database", target.Database)

			ctx := cmd.Context()
			admin, err := mongobootstrap.Connect(ctx, target.URI)
			if err != nil {
				log.Error("bootstrap.connect.failed", "err", err)
				return err
			}
			defer func() { _ = admin.Close(context.Background()) }()

			report, err := usecase.NewBootstrapDatabase(admin).Execute(ctx, domain.DefaultBootstrapPlan(target.Database))
			if err != nil {
				log.Error("bootstrap.failed", "err", err)
				return err
			}
			log.Info("bootstrap.ok", "created", len(report.Created), "existing", len(report.Existing))

			return render(cmd.OutOrStdout(), g.format, report, func(w io.Writer) error {
				printBootstrapReport(w, report)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "", "MongoDB connection string (default from env mongo_uri or acectl.yaml)")
	cmd.Flags().StringVar(&database, "database", "", "Database name (default from env mongo_database or acectl.yaml)")
	return cmd
}

// resolveBootstrapTarget applies flag > env var > workspace config precedence.
func resolveBootstrapTarget(uri, database string, env domain.Environment, cfg domain.Config) domain.BootstrapConfig {
	pick := func(flag, key, fallback string) string {
		if v := strings.TrimSpace(flag); v != "" {
			return v
		}
		if v, ok := domain.Get(env.Vars, key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}
	return domain.BootstrapConfig{
		URI:      pick(uri, domain.VarMongoURI, cfg.Bootstrap.URI),
		Database: pick(database, domain.VarMongoDatabase, cfg.Bootstrap.Database),
	}
}

func printBootstrapReport(w io.Writer, r domain.BootstrapReport) {
	fmt.Fprintf(w, "Database: %s\n", r.Database)
	for _, c := range r.Created {
		fmt.Fprintf(w, "- created  %s\n", c)
	}
	for _, c := range r.Existing {
		fmt.Fprintf(w, "- existing %s\n", c)
	}
	for _, idx := range r.Indexes {
		fmt.Fprintf(w, "- index    %s\n", idx)
	}
}
