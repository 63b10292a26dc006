package ports

import "github.com/UlviDemirsoy/JavaReflection/internal/domain"

// EnvironmentLoader loads environment variables from a source (e.g., filesystem).
type EnvironmentLoader interface {
	LoadEnvironment(nameOrPath string) (domain.Environment, error)
}

type EnvironmentCatalog interface {
	ListEnvironments(root string) ([]domain.EnvironmentRef, error)
}
