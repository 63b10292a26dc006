package domain

import "strings"

// DefaultBaseURL is the backend address used when nothing else is configured.
const DefaultBaseURL = "http://localhost:8080/api"

// Config represents the workspace configuration loaded from acectl.yaml.
type Config struct {
	API       APIConfig
	Masking   MaskingConfig
	Defaults  DefaultsConfig
	Paths     PathsConfig
	Bootstrap BootstrapConfig
}

type APIConfig struct {
	BaseURL string
}

type MaskingConfig struct {
	Enabled bool
}

type DefaultsConfig struct {
	Environment string
}

type PathsConfig struct {
	EnvironmentsDir string
	ExportsDir      string
}

// BootstrapConfig describes the database the one-shot bootstrap prepares.
type BootstrapConfig struct {
	URI      string
	Database string
}

// DefaultConfig provides sane defaults if acectl.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		API:     APIConfig{BaseURL: DefaultBaseURL},
		Masking: MaskingConfig{Enabled: true},
		Defaults: DefaultsConfig{
			Environment: "dev",
		},
		Paths: PathsConfig{
			EnvironmentsDir: "env",
			ExportsDir:      "exports",
		},
		Bootstrap: BootstrapConfig{
			URI:      "mongodb://localhost:27017",
			Database: DefaultBootstrapDatabase,
		},
	}
}

// ResolveBaseURL picks the API base URL: explicit flag, then the environment's
// base_url var, then the workspace config, then DefaultBaseURL.
func ResolveBaseURL(flag string, env Environment, cfg Config) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	if v, ok := Get(env.Vars, VarBaseURL); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(cfg.API.BaseURL); v != "" {
		return v
	}
	return DefaultBaseURL
}
