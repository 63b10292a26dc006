// Package mongobootstrap implements ports.DatabaseAdmin on top of MongoDB.
package mongobootstrap

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

const defaultConnectTimeout = 10 * time.Second

type Admin struct {
	client *mongo.Client
}

type Option func(*options.ClientOptions)

// WithConnectTimeout bounds server selection and the initial connection.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *options.ClientOptions) {
		o.SetConnectTimeout(d)
		o.SetServerSelectionTimeout(d)
	}
}

// Connect opens a client for uri. Call Close when done.
func Connect(ctx context.Context, uri string, opts ...Option) (*Admin, error) {
	co := options.Client().ApplyURI(uri)
	WithConnectTimeout(defaultConnectTimeout)(co)
	for _, opt := range opts {
		opt(co)
	}

	client, err := mongo.Connect(ctx, co)
	if err != nil {
		return nil, &domain.OpError{Op: "mongo.connect", Kind: domain.KindTransport, Path: uri, Err: err}
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &domain.OpError{Op: "mongo.ping", Kind: domain.KindTransport, Path: uri, Err: err}
	}
	return &Admin{client: client}, nil
}

var _ ports.DatabaseAdmin = (*Admin)(nil)

func (a *Admin) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

func (a *Admin) ListCollections(ctx context.Context, database string) ([]string, error) {
	return a.client.Database(database).ListCollectionNames(ctx, bson.D{})
}

func (a *Admin) CreateCollection(ctx context.Context, database, collection string) error {
	return a.client.Database(database).CreateCollection(ctx, collection)
}

// EnsureIndex creates a single-field ascending index. Creating an index that
// already exists with the same options is a no-op on the server.
func (a *Admin) EnsureIndex(ctx context.Context, database string, index domain.IndexSpec) (string, error) {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: index.Field, Value: 1}},
		Options: options.Index().SetUnique(index.Unique),
	}
	return a.client.Database(database).Collection(index.Collection).Indexes().CreateOne(ctx, model)
}
