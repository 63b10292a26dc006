package ports

import "github.com/UlviDemirsoy/JavaReflection/internal/domain"

// ExportStore persists collection snapshots.
type ExportStore interface {
	SaveExport(export domain.ExportArtifact) (id string, err error)
}
