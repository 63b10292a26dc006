// Package domain contains the core model for acectl: collection schemas,
// field definitions, content items and seeding payloads.
//
// The domain does not depend on net/http, YAML parsing or the filesystem.
// The API client and the loaders map into/from these types.
package domain
