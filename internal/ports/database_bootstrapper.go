package ports

import (
	"context"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

// DatabaseAdmin is the small slice of a document database the bootstrap needs.
type DatabaseAdmin interface {
	ListCollections(ctx context.Context, database string) ([]string, error)
	CreateCollection(ctx context.Context, database, collection string) error
	EnsureIndex(ctx context.Context, database string, index domain.IndexSpec) (name string, err error)
}
