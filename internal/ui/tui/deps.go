package tui

import (
	"log/slog"

	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

type Deps struct {
	API     ports.CollectionsAPI
	BaseURL string
	Exports ports.ExportStore

	WorkspaceInitializer ports.WorkspaceInitializer
	WorkspaceRoot        string

	Logger *slog.Logger
	Debug  bool
}
