package usecase

import (
	"context"
	"fmt"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

// BootstrapDatabase prepares the content database: the collections the
// backend expects plus the unique index on the schema registry.
type BootstrapDatabase struct {
	admin ports.DatabaseAdmin
}

func NewBootstrapDatabase(admin ports.DatabaseAdmin) *BootstrapDatabase {
	return &BootstrapDatabase{admin: admin}
}

// Execute applies plan. Collections that already exist are left alone, so
// running it twice is harmless.
func (uc *BootstrapDatabase) Execute(ctx context.Context, plan domain.BootstrapPlan) (domain.BootstrapReport, error) {
	if plan.Database == "" {
		return domain.BootstrapReport{}, &domain.OpError{
			Op:   "bootstrap.plan",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: database name is empty", domain.ErrInvalidConfig),
		}
	}

	report := domain.BootstrapReport{
		Database: plan.Database,
		Created:  []string{},
		Existing: []string{},
		Indexes:  []string{},
	}

	names, err := uc.admin.ListCollections(ctx, plan.Database)
	if err != nil {
		return report, &domain.OpError{Op: "bootstrap.list", Kind: domain.KindExecution, Path: plan.Database, Err: err}
	}
	existing := make(map[string]bool, len(names))
	for _, n := range names {
		existing[n] = true
	}

	for _, coll := range plan.Collections {
		if existing[coll] {
			report.Existing = append(report.Existing, coll)
			continue
		}
		if err := uc.admin.CreateCollection(ctx, plan.Database, coll); err != nil {
			return report, &domain.OpError{Op: "bootstrap.create", Kind: domain.KindExecution, Path: coll, Err: err}
		}
		existing[coll] = true
		report.Created = append(report.Created, coll)
	}

	for _, idx := range plan.Indexes {
		name, err := uc.admin.EnsureIndex(ctx, plan.Database, idx)
		if err != nil {
			return report, &domain.OpError{
				Op:   "bootstrap.index",
				Kind: domain.KindExecution,
				Path: idx.Collection + "." + idx.Field,
				Err:  err,
			}
		}
		report.Indexes = append(report.Indexes, name)
	}

	return report, nil
}
