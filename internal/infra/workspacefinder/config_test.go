package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/UlviDemirsoy/JavaReflection/internal/domain"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	writeConfig(t, root, "acectl:\n  masking:\n    enabled: false\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Masking.Enabled {
		t.Fatalf("expected masking=false")
	}
	if cfg.API.BaseURL != domain.DefaultBaseURL {
		t.Fatalf("expected default base url, got=%s", cfg.API.BaseURL)
	}
	if cfg.Defaults.Environment != "dev" {
		t.Fatalf("expected default env=dev, got=%s", cfg.Defaults.Environment)
	}
	if cfg.Paths.EnvironmentsDir != "env" || cfg.Paths.ExportsDir != "exports" {
		t.Fatalf("unexpected paths: %+v", cfg.Paths)
	}
	if cfg.Bootstrap.Database != domain.DefaultBootstrapDatabase {
		t.Fatalf("unexpected bootstrap db %q", cfg.Bootstrap.Database)
	}
}

func TestLoadConfig_OverridesEverySection(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	writeConfig(t, root, `acectl:
  api:
    base_url: http://backend:9090/api
  defaults:
    env: stg
  paths:
    environments_dir: profiles
    exports_dir: out
  bootstrap:
    uri: mongodb://db:27017
    database: content
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.API.BaseURL != "http://backend:9090/api" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.Defaults.Environment != "stg" {
		t.Fatalf("unexpected env %q", cfg.Defaults.Environment)
	}
	if cfg.Paths.EnvironmentsDir != "profiles" || cfg.Paths.ExportsDir != "out" {
		t.Fatalf("unexpected paths %+v", cfg.Paths)
	}
	if cfg.Bootstrap.URI != "mongodb://db:27017" || cfg.Bootstrap.Database != "content" {
		t.Fatalf("unexpected bootstrap %+v", cfg.Bootstrap)
	}
	if !cfg.Masking.Enabled {
		t.Fatalf("expected masking to keep its default")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "acectl: [\n")

	_, err := LoadConfig(root)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}
