package workspacefinder

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

// LoadConfig loads acectl.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	a := y.Acectl
	if a.API.BaseURL != "" {
		cfg.API.BaseURL = a.API.BaseURL
	}
	if a.Masking.Enabled != nil {
		cfg.Masking.Enabled = *a.Masking.Enabled
	}
	if a.Defaults.Env != "" {
		cfg.Defaults.Environment = a.Defaults.Env
	}
	if a.Paths.EnvironmentsDir != "" {
		cfg.Paths.EnvironmentsDir = a.Paths.EnvironmentsDir
	}
	if a.Paths.ExportsDir != "" {
		cfg.Paths.ExportsDir = a.Paths.ExportsDir
	}
	if a.Bootstrap.URI != "" {
		cfg.Bootstrap.URI = a.Bootstrap.URI
	}
	if a.Bootstrap.Database != "" {
		cfg.Bootstrap.Database = a.Bootstrap.Database
	}

	return cfg, nil
}

type yamlConfig struct {
	Acectl struct {
		API struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"api"`

		Masking struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"masking"`

		Defaults struct {
			Env string `yaml:"env"`
		} `yaml:"defaults"`

		Paths struct {
			EnvironmentsDir string `yaml:"environments_dir"`
			ExportsDir      string `yaml:"exports_dir"`
		} `yaml:"paths"`

		Bootstrap struct {
			URI      string `yaml:"uri"`
			Database string `yaml:"database"`
		} `yaml:"bootstrap"`
	} `yaml:"acectl"`
}
