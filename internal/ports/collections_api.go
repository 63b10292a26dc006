package ports

import (
	"context"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

// SchemaSource lists and fetches collection schemas.
type SchemaSource interface {
	ListSchemas(ctx context.Context) ([]domain.ModelSchema, error)
	GetSchema(ctx context.Context, collection string) (domain.ModelSchema, error)
}

// ContentSource fetches the items of a collection.
type ContentSource interface {
	ListContent(ctx context.Context, collection string) ([]domain.ContentItem, error)
}

// CollectionsAPI is everything the collection detail loader needs.
type CollectionsAPI interface {
	SchemaSource
	ContentSource
}
