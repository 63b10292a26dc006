package domain

// DefaultBootstrapDatabase is the database prepared by the bootstrap.
const DefaultBootstrapDatabase = "acegames"

// SchemaRegistryCollection holds one document per registered collection schema.
const SchemaRegistryCollection = "modelSchemas"

// IndexSpec describes a single-field ascending index.
type IndexSpec struct {
	Collection string
	Field      string
	Unique     bool
}

// BootstrapPlan is the fixed initialization contract of the content database.
type BootstrapPlan struct {
	Database    string
	Collections []string
	Indexes     []IndexSpec
}

// DefaultBootstrapPlan returns the collections and indexes the backend expects.
// An empty database name falls back to DefaultBootstrapDatabase.
func DefaultBootstrapPlan(database string) BootstrapPlan {
	if database == "" {
		database = DefaultBootstrapDatabase
	}
	return BootstrapPlan{
		Database: database,
		Collections: []string{
			SchemaRegistryCollection,
			"cascade",
			"offer",
			"purchaseproduct",
			"skin",
		},
		Indexes: []IndexSpec{
			{Collection: SchemaRegistryCollection, Field: "collection", Unique: true},
		},
	}
}

// BootstrapReport records what a bootstrap run changed.
type BootstrapReport struct {
	Database string
	Created  []string
	Existing []string
	Indexes  []string
}
