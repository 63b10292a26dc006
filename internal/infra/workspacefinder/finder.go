package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
	"github.com/UlviDemirsoy/JavaReflection/internal/ports"
)

// ConfigFileName marks the root of a workspace.
const ConfigFileName = "acectl.yaml"

// Finder locates a workspace root by searching for acectl.yaml upward.
type Finder struct {
	ConfigFile string
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFileName}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// A file path starts the search from its directory.
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	name := f.ConfigFile
	if name == "" {
		name = ConfigFileName
	}

	for cur := filepath.Clean(abs); ; {
		if _, err := os.Stat(filepath.Join(cur, name)); err == nil {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Path: abs,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
