package domain

import "time"

// WorkspaceSpec describes where a workspace should be created.
type WorkspaceSpec struct {
	Root string
}

// ExportArtifact is a persisted snapshot of one collection detail fetch.
type ExportArtifact struct {
	ID         string        `json:"id"`
	Collection string        `json:"collection"`
	BaseURL    string        `json:"base_url"`
	FetchedAt  time.Time     `json:"fetched_at"`
	Schema     *ModelSchema  `json:"schema"`
	Items      []ContentItem `json:"items"`
}
