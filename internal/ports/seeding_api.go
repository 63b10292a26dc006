package ports

import (
	"context"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

// SeedingAPI is the backend's synthetic-data workflow.
type SeedingAPI interface {
	AvailableClasses(ctx context.Context) ([]string, error)
	SeedClass(ctx context.Context, className string, count int) (domain.SeedResult, error)
	SeedClasses(ctx context.Context, classNames []string, countPerClass int) (domain.BulkSeedResult, error)
	SeedAll(ctx context.Context, countPerClass int) (domain.BulkSeedResult, error)
	SeededData(ctx context.Context, className string) ([]domain.ContentItem, error)
	AllSeededData(ctx context.Context) (map[string][]domain.ContentItem, error)
	Statistics(ctx context.Context) (domain.SeedStatistics, error)
	ClearSeededData(ctx context.Context, className string) (domain.StatusMessage, error)
	ClearAllSeededData(ctx context.Context) (domain.StatusMessage, error)
}
